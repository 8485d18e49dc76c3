// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app is the frame orchestrator: it wires the window, the
// rasterizer, the overlay, the camera and the reference scene, and runs
// the strictly ordered per-frame sequence.
package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/camera"
	"github.com/gogpu/rast3d/overlay"
	"github.com/gogpu/rast3d/scene"
	"github.com/gogpu/rast3d/window"
)

// Default configuration values.
const (
	DefaultTitle  = "rast3d"
	DefaultWidth  = 1600
	DefaultHeight = 900

	// DefaultClearColor is the fixed background of the reference demo.
	DefaultClearColor = rast3d.Pixel(0x787878FF)

	// DefaultClearDepth is the far-plane clear value.
	DefaultClearDepth = 1.0
)

// Config is the explicit configuration of an App. Everything the demo
// previously kept as compile-time or package-level state lives here.
type Config struct {
	// Title is the window title. Defaults to DefaultTitle.
	Title string

	// Width and Height are the initial framebuffer dimensions.
	// Default 1600x900.
	Width  int
	Height int

	// ClearColor and ClearDepth are the fixed per-frame clear values.
	ClearColor rast3d.Pixel
	ClearDepth float32

	// Debug enables rasterizer diagnostics.
	Debug bool

	// DisableOverlay skips overlay frame construction and compositing.
	DisableOverlay bool

	// Backend selects the window backend by registry name. Empty picks
	// the best available backend.
	Backend string

	// Window, when non-nil, is used instead of creating one through the
	// registry. The app takes ownership and destroys it on Close.
	Window window.Window

	// Rand seeds the instance colors. Nil falls back to a time-seeded
	// source, matching the reference demo's unseeded draw.
	Rand *rand.Rand
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.ClearColor == 0 {
		c.ClearColor = DefaultClearColor
	}
	if c.ClearDepth == 0 {
		c.ClearDepth = DefaultClearDepth
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// App drives the per-frame sequence: poll input, build the overlay
// frame, validate attachments, update the camera, clear, draw, composite
// the overlay and present.
//
// Any per-frame error aborts the loop; nothing is retried and no frame
// is skipped. The demo favors correctness over availability.
type App struct {
	cfg Config

	win     window.Window
	rast    *rast3d.Rasterizer
	overCtx *overlay.Context
	overRnd *overlay.Renderer

	cam      *camera.Controller
	uniforms camera.Uniforms

	depth  DepthAttachment
	fb     rast3d.Framebuffer
	draw   rast3d.DrawCall
	clears []rast3d.ClearValue

	frames   uint64
	lastTime time.Time
	closed   bool
}

// New builds an App from the configuration. Setup failures (window or
// rasterizer creation, pipeline validation) are returned as wrapped
// errors; nothing is half-initialized on error.
func New(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()

	rast, err := rast3d.New(&rast3d.Options{Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("app: rasterizer: %w", err)
	}

	win := cfg.Window
	if win == nil {
		opts := window.Options{Title: cfg.Title, Width: cfg.Width, Height: cfg.Height}
		if cfg.Backend != "" {
			win, err = window.Create(cfg.Backend, opts)
		} else {
			win, err = window.CreateDefault(opts)
		}
		if err != nil {
			rast.Release()
			return nil, fmt.Errorf("app: window: %w", err)
		}
	}

	a := &App{
		cfg:  cfg,
		win:  win,
		rast: rast,
		cam:  camera.New(),
	}

	if !cfg.DisableOverlay {
		if err := win.InitOverlay(); err != nil {
			a.teardownSetup()
			return nil, fmt.Errorf("app: overlay binding: %w", err)
		}
		a.overCtx = overlay.NewContext()
		a.overRnd, err = overlay.NewRenderer(rast)
		if err != nil {
			a.teardownSetup()
			return nil, fmt.Errorf("app: overlay renderer: %w", err)
		}
	}

	pipe, err := scene.NewPipeline()
	if err != nil {
		a.teardownSetup()
		return nil, fmt.Errorf("app: pipeline: %w", err)
	}

	vertices := scene.TriangleVertices()
	indices := scene.TriangleIndices()
	instances := scene.NewRing(scene.RingCount, cfg.Rand)

	// Two attachments: color in slot 0, depth in slot 1. The clear-value
	// table matches the attachment count exactly.
	a.fb = rast3d.Framebuffer{Attachments: make([]*rast3d.Image, 2)}
	a.clears = []rast3d.ClearValue{
		{Color: cfg.ClearColor},
		{Depth: cfg.ClearDepth},
	}

	a.draw = rast3d.DrawCall{
		Pipeline:    pipe,
		Framebuffer: &a.fb,
		VertexBuffers: []rast3d.VertexBuffer{
			rast3d.Slice(vertices),
			rast3d.Slice(instances),
		},
		Indices:       indices,
		IndexFormat:   gputypes.IndexFormatUint16,
		IndexCount:    len(indices),
		InstanceCount: len(instances),
		Uniforms:      &a.uniforms,
	}

	return a, nil
}

// teardownSetup releases resources acquired during a failed New.
func (a *App) teardownSetup() {
	a.win.Destroy()
	a.rast.Release()
}

// Camera returns the camera controller.
func (a *App) Camera() *camera.Controller { return a.cam }

// Depth returns the depth attachment manager.
func (a *App) Depth() *DepthAttachment { return &a.depth }

// Framebuffer returns the frame's render target. Attachment pointers are
// only meaningful after a Frame call.
func (a *App) Framebuffer() *rast3d.Framebuffer { return &a.fb }

// Overlay returns the overlay context, or nil when the overlay is
// disabled. UI built on it between frames shows up in the next Frame.
func (a *App) Overlay() *overlay.Context { return a.overCtx }

// Frame runs one frame with the given elapsed time in seconds.
//
// The sequence is strictly ordered: poll, overlay frame build and
// finalize, framebuffer size query, color attachment refresh, depth
// validation, camera update, clear, indexed instanced draw, overlay
// composite, present.
func (a *App) Frame(dt float64) error {
	a.win.Poll()

	var drawData *overlay.DrawData
	if a.overCtx != nil {
		a.overCtx.NewFrame()
		a.buildOverlayUI()
		drawData = a.overCtx.Render()
	}

	width, height := a.win.FramebufferSize()
	color := a.win.Backbuffer()

	depthImg, err := a.depth.Ensure(width, height)
	if err != nil {
		return err
	}

	a.cam.Advance(dt)
	a.cam.Update(&a.uniforms, width, height)

	a.fb.Width, a.fb.Height = width, height
	a.fb.Attachments[0] = color
	a.fb.Attachments[1] = depthImg

	if err := a.rast.ClearFramebuffer(&a.fb, a.clears); err != nil {
		return fmt.Errorf("app: clear: %w", err)
	}
	if err := a.rast.RenderIndexed(&a.draw); err != nil {
		return fmt.Errorf("app: draw: %w", err)
	}

	if a.overRnd != nil {
		if err := a.overRnd.Render(drawData, &a.fb); err != nil {
			return fmt.Errorf("app: overlay: %w", err)
		}
	}

	a.win.SwapBuffers()
	a.frames++
	return nil
}

// buildOverlayUI adds the demo's debug UI for the frame.
func (a *App) buildOverlayUI() {
	a.overCtx.FillRect(8, 8, 150, 22, rast3d.RGBA(0, 0, 0, 160))
	a.overCtx.Label(12, 12, rast3d.RGBA(255, 255, 255, 255),
		fmt.Sprintf("frame %d", a.frames))
}

// Run loops Frame until the window reports a close request, measuring
// the wall-clock delta between frames. The first frame runs with a zero
// delta.
func (a *App) Run() error {
	a.lastTime = time.Now()
	for !a.win.ShouldClose() {
		now := time.Now()
		dt := now.Sub(a.lastTime).Seconds()
		a.lastTime = now

		if err := a.Frame(dt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases everything in reverse acquisition order: the depth
// attachment, the overlay renderer, the window and finally the
// rasterizer. Close is idempotent.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true

	a.depth.Release()
	if a.overRnd != nil {
		a.overRnd.Shutdown()
	}
	a.win.Destroy()
	a.rast.Release()
}
