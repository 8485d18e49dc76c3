// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/rast3d"
)

// Errors returned by the overlay renderer.
var (
	// ErrNilRasterizer is returned when the renderer is created without a
	// rasterizer.
	ErrNilRasterizer = errors.New("overlay: nil rasterizer")

	// ErrShutdown is returned when Render is called after Shutdown.
	ErrShutdown = errors.New("overlay: renderer is shut down")

	// ErrNoColorAttachment is returned when the target framebuffer has no
	// color attachment to composite into.
	ErrNoColorAttachment = errors.New("overlay: framebuffer has no color attachment")
)

// Renderer composites finalized overlay draw data into a framebuffer's
// color attachment. It draws after the 3D pass and before the present,
// source-over blending on top of the rendered frame.
type Renderer struct {
	rast *rast3d.Rasterizer
	face font.Face

	// scratch is reused across text runs to rasterize glyphs before
	// blending them onto the attachment.
	scratch *image.RGBA

	shutdown bool
}

// NewRenderer initializes the rasterizer side of the overlay binding.
func NewRenderer(rast *rast3d.Rasterizer) (*Renderer, error) {
	if rast == nil {
		return nil, ErrNilRasterizer
	}
	return &Renderer{
		rast: rast,
		face: basicfont.Face7x13,
	}, nil
}

// Render composites dd into fb's color attachment. A nil or empty
// drawlist is a no-op.
func (r *Renderer) Render(dd *DrawData, fb *rast3d.Framebuffer) error {
	if r.shutdown {
		return ErrShutdown
	}
	if dd == nil || len(dd.Commands) == 0 {
		return nil
	}
	target := fb.ColorAttachment()
	if target == nil {
		return ErrNoColorAttachment
	}

	for _, cmd := range dd.Commands {
		switch cmd.Kind {
		case CommandFillRect:
			r.fillRect(target, cmd)
		case CommandText:
			r.drawText(target, cmd)
		}
	}
	return nil
}

// Shutdown releases the renderer. Further Render calls fail.
func (r *Renderer) Shutdown() {
	r.shutdown = true
	r.scratch = nil
}

// fillRect blends a rectangle onto the attachment, clipped to its bounds.
func (r *Renderer) fillRect(target *rast3d.Image, cmd Command) {
	x0, y0 := max(cmd.X, 0), max(cmd.Y, 0)
	x1 := min(cmd.X+cmd.W, target.Width())
	y1 := min(cmd.Y+cmd.H, target.Height())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			target.SetPixel(x, y, blend(target.PixelAt(x, y), cmd.Color, 255))
		}
	}
}

// drawText rasterizes the run into the scratch image with the bitmap
// face, then blends covered pixels onto the attachment.
func (r *Renderer) drawText(target *rast3d.Image, cmd Command) {
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	h := metrics.Height.Ceil()
	w := font.MeasureString(r.face, cmd.Text).Ceil()
	if w == 0 || h == 0 {
		return
	}

	if r.scratch == nil || r.scratch.Bounds().Dx() < w || r.scratch.Bounds().Dy() < h {
		r.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	bounds := image.Rect(0, 0, w, h)
	draw.Draw(r.scratch, bounds, image.Transparent, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  r.scratch,
		Src:  image.NewUniform(color.RGBA{R: cmd.Color.R(), G: cmd.Color.G(), B: cmd.Color.B(), A: cmd.Color.A()}),
		Face: r.face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(cmd.Text)

	for dy := 0; dy < h; dy++ {
		ty := cmd.Y + dy
		if ty < 0 || ty >= target.Height() {
			continue
		}
		for dx := 0; dx < w; dx++ {
			tx := cmd.X + dx
			if tx < 0 || tx >= target.Width() {
				continue
			}
			c := r.scratch.RGBAAt(dx, dy)
			if c.A == 0 {
				continue
			}
			src := rast3d.RGBA(c.R, c.G, c.B, c.A)
			target.SetPixel(tx, ty, blend(target.PixelAt(tx, ty), src, 255))
		}
	}
}

// blend composites src over dst with an extra coverage alpha.
func blend(dst, src rast3d.Pixel, coverage uint8) rast3d.Pixel {
	srcA := uint32(src.A()) * uint32(coverage) / 255
	if srcA == 255 {
		return src
	}
	if srcA == 0 {
		return dst
	}
	invA := 255 - srcA

	outR := (uint32(src.R())*srcA + uint32(dst.R())*invA) / 255
	outG := (uint32(src.G())*srcA + uint32(dst.G())*invA) / 255
	outB := (uint32(src.B())*srcA + uint32(dst.B())*invA) / 255
	outA := srcA + uint32(dst.A())*invA/255

	return rast3d.RGBA(uint8(outR), uint8(outG), uint8(outB), uint8(outA))
}
