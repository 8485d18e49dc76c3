// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d"
)

func init() {
	Register(BackendOffscreen, 10, func(opts Options) (Window, error) {
		return NewOffscreen(opts.Width, opts.Height), nil
	})
}

// Offscreen is a headless presentation surface for tests and CI. It has
// no display; SwapBuffers only counts presents. The framebuffer size can
// be changed between frames with Resize, and CloseAfter turns the
// surface into a fixed-length frame source.
type Offscreen struct {
	width  int
	height int

	backbuffer *rast3d.Image

	polls      int
	swaps      int
	closeAfter int
	closed     bool
	destroyed  bool
}

// NewOffscreen creates an offscreen surface of the given dimensions.
func NewOffscreen(width, height int) *Offscreen {
	return &Offscreen{width: width, height: height}
}

// Resize changes the framebuffer dimensions reported to the next frame.
// The backbuffer is reallocated lazily on the next Backbuffer call.
func (o *Offscreen) Resize(width, height int) {
	o.width = width
	o.height = height
}

// CloseAfter requests a close once n polls have happened. Zero disables
// the limit.
func (o *Offscreen) CloseAfter(n int) { o.closeAfter = n }

// RequestClose requests an immediate close.
func (o *Offscreen) RequestClose() { o.closed = true }

// Swaps returns the number of SwapBuffers calls.
func (o *Offscreen) Swaps() int { return o.swaps }

// Poll implements Window.
func (o *Offscreen) Poll() {
	o.polls++
	if o.closeAfter > 0 && o.polls >= o.closeAfter {
		o.closed = true
	}
}

// ShouldClose implements Window.
func (o *Offscreen) ShouldClose() bool { return o.closed }

// SwapBuffers implements Window.
func (o *Offscreen) SwapBuffers() { o.swaps++ }

// Backbuffer implements Window. The backbuffer is allocated lazily and
// replaced when the surface was resized.
func (o *Offscreen) Backbuffer() *rast3d.Image {
	if o.backbuffer != nil &&
		o.backbuffer.Width() == o.width && o.backbuffer.Height() == o.height {
		return o.backbuffer
	}
	if o.backbuffer != nil {
		o.backbuffer.Release()
	}
	img, err := rast3d.NewImage(o.width, o.height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		// Dimensions come from Resize callers; a failure here is a
		// programming defect in the test driving the surface.
		panic(err)
	}
	o.backbuffer = img
	return o.backbuffer
}

// FramebufferSize implements Window.
func (o *Offscreen) FramebufferSize() (int, int) { return o.width, o.height }

// InitOverlay implements Window. The offscreen surface has no input to
// route, so this is a no-op.
func (o *Offscreen) InitOverlay() error { return nil }

// Destroy implements Window.
func (o *Offscreen) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	if o.backbuffer != nil {
		o.backbuffer.Release()
		o.backbuffer = nil
	}
}

var _ Window = (*Offscreen)(nil)
