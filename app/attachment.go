// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d"
)

// AttachmentState is the lifecycle state of the depth attachment.
type AttachmentState uint8

const (
	// AttachmentAbsent means no depth image has been allocated yet.
	AttachmentAbsent AttachmentState = iota

	// AttachmentValid means the depth image matches the last validated
	// dimensions.
	AttachmentValid
)

// DepthAttachment owns the frame loop's single depth image. It is the
// sole allocator and releaser of that image.
//
// The lifecycle is Absent -> Valid on first Ensure, with a transient
// Stale pass-through whenever the validated dimensions change: the old
// image is released and a new one allocated before Ensure returns.
type DepthAttachment struct {
	image *rast3d.Image
	state AttachmentState
}

// State returns the current lifecycle state.
func (d *DepthAttachment) State() AttachmentState { return d.state }

// Ensure validates the depth image against the given dimensions and
// returns it. Called once per frame before clearing and drawing.
//
//   - Absent: allocates a depth image at the dimensions.
//   - Valid, dimensions match: no-op.
//   - Valid, dimensions differ: releases the old image and allocates a
//     replacement at the new dimensions.
//
// Allocation failure is returned as an error; callers treat it as fatal
// rather than drawing against a stale attachment.
func (d *DepthAttachment) Ensure(width, height int) (*rast3d.Image, error) {
	if d.image != nil && d.image.Width() == width && d.image.Height() == height {
		return d.image, nil
	}

	if d.image != nil {
		rast3d.Logger().Debug("app: depth attachment stale",
			"old_width", d.image.Width(), "old_height", d.image.Height(),
			"width", width, "height", height)
		d.image.Release()
		d.image = nil
	}

	img, err := rast3d.NewImage(width, height, gputypes.TextureFormatDepth32Float)
	if err != nil {
		d.state = AttachmentAbsent
		return nil, fmt.Errorf("app: depth attachment allocation: %w", err)
	}
	d.image = img
	d.state = AttachmentValid
	return d.image, nil
}

// Release frees the depth image if present. Safe to call when Absent,
// and idempotent: the image is freed exactly once.
func (d *DepthAttachment) Release() {
	if d.image != nil {
		d.image.Release()
		d.image = nil
	}
	d.state = AttachmentAbsent
}
