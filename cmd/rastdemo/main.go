// Command rastdemo renders a ring of spinning-camera triangles with the
// rast3d software rasterizer and an overlay frame counter.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/app"
)

func main() {
	var (
		width   = flag.Int("width", app.DefaultWidth, "initial framebuffer width")
		height  = flag.Int("height", app.DefaultHeight, "initial framebuffer height")
		title   = flag.String("title", "rast3d demo", "window title")
		backend = flag.String("backend", "", "window backend (default: best available)")
		debug   = flag.Bool("debug", false, "enable rasterizer diagnostics")
	)
	flag.Parse()

	if *debug {
		rast3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	a, err := app.New(app.Config{
		Title:   *title,
		Width:   *width,
		Height:  *height,
		Debug:   *debug,
		Backend: *backend,
	})
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Fatalf("frame loop failed: %v", err)
	}
}
