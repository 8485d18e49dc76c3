// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Errors returned by rasterizer operations.
var (
	// ErrReleased is returned when operations are attempted on a released
	// rasterizer.
	ErrReleased = errors.New("rast3d: rasterizer is released")

	// ErrAttachmentCountMismatch is returned by ClearFramebuffer when the
	// clear-value count does not equal the attachment count. This is a
	// configuration defect; callers usually treat it as fatal.
	ErrAttachmentCountMismatch = errors.New("rast3d: clear value count does not match attachment count")

	// ErrNilAttachment is returned when a framebuffer slot holds no image.
	ErrNilAttachment = errors.New("rast3d: nil attachment")
)

// Options configures rasterizer creation.
type Options struct {
	// Debug enables per-draw diagnostics through the package logger.
	Debug bool
}

// Rasterizer is the facade over the software rasterization engine. It
// clears framebuffers and executes indexed instanced draw calls; triangle
// setup, fill and depth testing happen in internal/raster.
//
// A Rasterizer is NOT safe for concurrent use.
type Rasterizer struct {
	debug    bool
	released bool
}

// New creates a rasterizer.
func New(opts *Options) (*Rasterizer, error) {
	r := &Rasterizer{}
	if opts != nil {
		r.debug = opts.Debug
	}
	if r.debug {
		Logger().Info("rast3d: rasterizer created", "debug", true)
	}
	return r, nil
}

// Debug reports whether the rasterizer runs in debug mode.
func (r *Rasterizer) Debug() bool { return r.debug }

// Release frees the rasterizer. Release is idempotent.
func (r *Rasterizer) Release() {
	r.released = true
}

// ClearValue is the clear value for one attachment: Color applies to color
// attachments, Depth to depth attachments, selected by the attachment's
// format.
type ClearValue struct {
	Color Pixel
	Depth float32
}

// ClearFramebuffer clears every attachment of fb to its clear value.
//
// Exactly one clear value must be supplied per attachment, in attachment
// order; any other count fails with [ErrAttachmentCountMismatch] before
// anything is cleared.
func (r *Rasterizer) ClearFramebuffer(fb *Framebuffer, clears []ClearValue) error {
	if r.released {
		return ErrReleased
	}
	if len(clears) != len(fb.Attachments) {
		return fmt.Errorf("%w: %d clear values for %d attachments",
			ErrAttachmentCountMismatch, len(clears), len(fb.Attachments))
	}
	for i, img := range fb.Attachments {
		if img == nil {
			return fmt.Errorf("%w: slot %d", ErrNilAttachment, i)
		}
		if img.IsDepth() {
			img.FillDepth(clears[i].Depth)
		} else {
			img.FillColor(clears[i].Color)
		}
	}
	return nil
}

// depthPasses applies a gputypes comparison to an incoming fragment depth
// and the stored depth.
func depthPasses(cmp gputypes.CompareFunction, src, dst float32) bool {
	switch cmp {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return src < dst
	case gputypes.CompareFunctionEqual:
		return src == dst
	case gputypes.CompareFunctionLessEqual:
		return src <= dst
	case gputypes.CompareFunctionGreater:
		return src > dst
	case gputypes.CompareFunctionNotEqual:
		return src != dst
	case gputypes.CompareFunctionGreaterEqual:
		return src >= dst
	case gputypes.CompareFunctionAlways:
		return true
	default:
		return false
	}
}
