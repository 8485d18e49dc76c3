// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"testing"

	"github.com/gogpu/rast3d"
)

// TestDepthAttachmentLifecycle tests the Absent -> Valid transitions and
// the stale-on-resize reallocation.
func TestDepthAttachmentLifecycle(t *testing.T) {
	var d DepthAttachment
	if d.State() != AttachmentAbsent {
		t.Fatalf("initial state = %v, want Absent", d.State())
	}

	img, err := d.Ensure(1600, 900)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if d.State() != AttachmentValid {
		t.Errorf("state after Ensure = %v, want Valid", d.State())
	}
	if !img.IsDepth() || img.Width() != 1600 || img.Height() != 900 {
		t.Errorf("attachment = %dx%d depth=%v", img.Width(), img.Height(), img.IsDepth())
	}

	// Matching dimensions keep the same image.
	again, err := d.Ensure(1600, 900)
	if err != nil {
		t.Fatalf("Ensure same dims: %v", err)
	}
	if again != img {
		t.Error("matching Ensure reallocated the attachment")
	}

	// A resize releases the old image and allocates a replacement.
	resized, err := d.Ensure(800, 600)
	if err != nil {
		t.Fatalf("Ensure after resize: %v", err)
	}
	if resized == img {
		t.Fatal("resize kept the stale attachment")
	}
	if !img.Released() {
		t.Error("stale attachment not released")
	}
	if resized.Width() != 800 || resized.Height() != 600 {
		t.Errorf("resized attachment = %dx%d, want 800x600", resized.Width(), resized.Height())
	}
}

// TestDepthAttachmentEnsureError tests that a failed allocation reports
// Absent rather than holding a stale image.
func TestDepthAttachmentEnsureError(t *testing.T) {
	var d DepthAttachment
	if _, err := d.Ensure(1600, 900); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	_, err := d.Ensure(0, 900)
	if !errors.Is(err, rast3d.ErrInvalidDimensions) {
		t.Fatalf("err = %v, want ErrInvalidDimensions", err)
	}
	if d.State() != AttachmentAbsent {
		t.Errorf("state after failed Ensure = %v, want Absent", d.State())
	}
}

// TestDepthAttachmentRelease tests idempotent release.
func TestDepthAttachmentRelease(t *testing.T) {
	var d DepthAttachment
	d.Release() // safe when absent

	img, err := d.Ensure(32, 32)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	d.Release()
	d.Release()
	if !img.Released() {
		t.Error("attachment not released")
	}
	if d.State() != AttachmentAbsent {
		t.Errorf("state after release = %v, want Absent", d.State())
	}
}
