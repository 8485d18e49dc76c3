// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

// Framebuffer is an ordered set of render-target attachments plus the
// dimensions a draw or clear operates at.
//
// The attachment pointers are refreshed by the caller every frame (the
// color attachment is borrowed from the presentation surface, the depth
// attachment from its lifecycle manager), so the struct is plain mutable
// data rather than an owning container.
type Framebuffer struct {
	Width  int
	Height int

	// Attachments in clear-value order. Slot 0 is conventionally the
	// color attachment.
	Attachments []*Image
}

// AttachmentCount returns the number of attachments.
func (fb *Framebuffer) AttachmentCount() int { return len(fb.Attachments) }

// ColorAttachment returns the first color attachment, or nil if none.
func (fb *Framebuffer) ColorAttachment() *Image {
	for _, a := range fb.Attachments {
		if a != nil && !a.IsDepth() {
			return a
		}
	}
	return nil
}

// DepthAttachment returns the first depth attachment, or nil if none.
func (fb *Framebuffer) DepthAttachment() *Image {
	for _, a := range fb.Attachments {
		if a != nil && a.IsDepth() {
			return a
		}
	}
	return nil
}
