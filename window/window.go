// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window abstracts the presentation surface: event polling,
// close-request tracking, backbuffer access and buffer swaps.
//
// Two implementations are provided: a GLFW-backed desktop window that
// blits the CPU backbuffer through OpenGL, and an offscreen surface for
// headless use and tests. Backends register themselves in a priority
// registry; use [Create] for a specific backend or [CreateDefault] for
// the best available one.
package window

import (
	"errors"

	"github.com/gogpu/rast3d"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("window: backend not available")

// Options configures window creation.
type Options struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial framebuffer dimensions in pixels.
	Width  int
	Height int
}

// Window is the presentation surface consumed by the frame orchestrator.
//
// The backbuffer is owned by the window and borrowed by the caller each
// frame; it is never released by the renderer. Its dimensions always
// track the current framebuffer size.
type Window interface {
	// Poll processes pending window and input events.
	Poll()

	// ShouldClose reports whether a close was requested.
	ShouldClose() bool

	// SwapBuffers presents the backbuffer.
	SwapBuffers()

	// Backbuffer returns the current color attachment. The returned
	// image is valid until the next Backbuffer call; a resize may
	// replace it.
	Backbuffer() *rast3d.Image

	// FramebufferSize returns the current framebuffer dimensions.
	FramebufferSize() (width, height int)

	// InitOverlay prepares the window side of the overlay binding.
	InitOverlay() error

	// Destroy releases the window and its backbuffer.
	Destroy()
}
