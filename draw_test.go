// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// testTriangle is a clip-space triangle wound counter-clockwise when
// viewed down the negative Z axis.
var testTriangle = []testVertex{
	{Position: mgl32.Vec3{0, 0.5, 0}},
	{Position: mgl32.Vec3{-0.5, -0.5, 0}},
	{Position: mgl32.Vec3{0.5, -0.5, 0}},
}

func newTestDraw(t *testing.T, fb *Framebuffer, vertices []testVertex, instances []testInstance) *DrawCall {
	t.Helper()
	pipe, err := NewPipeline(validDesc())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return &DrawCall{
		Pipeline:    pipe,
		Framebuffer: fb,
		VertexBuffers: []VertexBuffer{
			Slice(vertices),
			Slice(instances),
		},
		Indices:       []uint16{0, 1, 2},
		IndexFormat:   gputypes.IndexFormatUint16,
		IndexCount:    3,
		InstanceCount: len(instances),
	}
}

// countPixels returns the number of pixels in img not equal to bg.
func countPixels(img *Image, bg Pixel) int {
	n := 0
	for _, p := range img.Pixels() {
		if p != bg {
			n++
		}
	}
	return n
}

// TestRenderIndexed tests that a front-facing triangle produces coverage
// with the bound instance color.
func TestRenderIndexed(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Release()

	fb := newTestFramebuffer(t, 64, 64)
	bg := RGBA(0x78, 0x78, 0x78, 0xFF)
	if err := r.ClearFramebuffer(fb, []ClearValue{{Color: bg}, {Depth: 1}}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	want := RGBA(200, 10, 10, 255)
	dc := newTestDraw(t, fb, testTriangle, []testInstance{{Color: want}})
	if err := r.RenderIndexed(dc); err != nil {
		t.Fatalf("RenderIndexed: %v", err)
	}

	if n := countPixels(fb.ColorAttachment(), bg); n == 0 {
		t.Fatal("no pixels touched")
	}
	// The triangle centroid maps near the framebuffer center.
	if got := fb.ColorAttachment().PixelAt(32, 32); got != want {
		t.Errorf("center pixel = %#x, want %#x", uint32(got), uint32(want))
	}
	// Clip-space z=0 maps to depth 0.5.
	if got := fb.DepthAttachment().DepthAt(32, 32); got < 0.5-1e-5 || got > 0.5+1e-5 {
		t.Errorf("center depth = %v, want 0.5", got)
	}
}

// TestRenderIndexedBackfaceCulled tests that reversing the winding culls
// the triangle entirely.
func TestRenderIndexedBackfaceCulled(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Release()

	fb := newTestFramebuffer(t, 32, 32)
	bg := RGBA(0, 0, 0, 255)
	if err := r.ClearFramebuffer(fb, []ClearValue{{Color: bg}, {Depth: 1}}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	dc := newTestDraw(t, fb, testTriangle, []testInstance{{Color: RGBA(255, 0, 0, 255)}})
	dc.Indices = []uint16{0, 2, 1}
	if err := r.RenderIndexed(dc); err != nil {
		t.Fatalf("RenderIndexed: %v", err)
	}
	if n := countPixels(fb.ColorAttachment(), bg); n != 0 {
		t.Errorf("back-facing triangle touched %d pixels", n)
	}
}

// TestRenderIndexedDepthTest tests that a farther triangle loses against
// an already written nearer depth.
func TestRenderIndexedDepthTest(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Release()

	fb := newTestFramebuffer(t, 32, 32)
	bg := RGBA(0, 0, 0, 255)
	// Clear depth to 0.25, nearer than the triangle's 0.5.
	if err := r.ClearFramebuffer(fb, []ClearValue{{Color: bg}, {Depth: 0.25}}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	dc := newTestDraw(t, fb, testTriangle, []testInstance{{Color: RGBA(255, 0, 0, 255)}})
	if err := r.RenderIndexed(dc); err != nil {
		t.Fatalf("RenderIndexed: %v", err)
	}
	if n := countPixels(fb.ColorAttachment(), bg); n != 0 {
		t.Errorf("occluded triangle touched %d pixels", n)
	}
}

// TestRenderIndexedDegenerateW tests that a primitive with a vertex at
// w close to zero is dropped rather than divided through.
func TestRenderIndexedDegenerateW(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Release()

	fb := newTestFramebuffer(t, 16, 16)
	bg := RGBA(0, 0, 0, 255)
	if err := r.ClearFramebuffer(fb, []ClearValue{{Color: bg}, {Depth: 1}}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	dc := newTestDraw(t, fb, testTriangle, []testInstance{{Color: RGBA(255, 0, 0, 255)}})
	dc.Pipeline = mustPipeline(t, func(d *PipelineDesc) { d.Program = zeroWProgram{} })
	if err := r.RenderIndexed(dc); err != nil {
		t.Fatalf("RenderIndexed: %v", err)
	}
	if n := countPixels(fb.ColorAttachment(), bg); n != 0 {
		t.Errorf("degenerate primitive touched %d pixels", n)
	}
}

// zeroWProgram forces the degenerate w=0 path.
type zeroWProgram struct{ testProgram }

func (zeroWProgram) VertexStage(in StageInput, ctx *StageContext) mgl32.Vec4 {
	v := in.Slot(0).(testVertex)
	return v.Position.Vec4(0)
}

func mustPipeline(t *testing.T, mutate func(*PipelineDesc)) *Pipeline {
	t.Helper()
	desc := validDesc()
	mutate(desc)
	p, err := NewPipeline(desc)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p
}

// TestValidateDraw tests the draw-call configuration checks.
func TestValidateDraw(t *testing.T) {
	r, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Release()

	fb := newTestFramebuffer(t, 8, 8)
	inst := []testInstance{{Color: RGBA(1, 2, 3, 4)}}

	t.Run("nil pipeline", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.Pipeline = nil
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrNilPipeline) {
			t.Errorf("err = %v, want ErrNilPipeline", err)
		}
	})

	t.Run("nil framebuffer", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.Framebuffer = nil
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrNilFramebuffer) {
			t.Errorf("err = %v, want ErrNilFramebuffer", err)
		}
	})

	t.Run("index format", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.IndexFormat = gputypes.IndexFormatUint32
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrUnsupportedIndexFormat) {
			t.Errorf("err = %v, want ErrUnsupportedIndexFormat", err)
		}
	})

	t.Run("index range", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.IndexCount = 4
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrBadIndexRange) {
			t.Errorf("not multiple of three: err = %v, want ErrBadIndexRange", err)
		}
		dc.IndexCount = 6
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrBadIndexRange) {
			t.Errorf("past buffer end: err = %v, want ErrBadIndexRange", err)
		}
	})

	t.Run("binding count", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.VertexBuffers = dc.VertexBuffers[:1]
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrBindingCount) {
			t.Errorf("err = %v, want ErrBindingCount", err)
		}
	})

	t.Run("slot type", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.VertexBuffers[1] = Slice(testTriangle)
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrSlotTypeMismatch) {
			t.Errorf("err = %v, want ErrSlotTypeMismatch", err)
		}
	})

	t.Run("missing depth", func(t *testing.T) {
		colorOnly := &Framebuffer{Width: 8, Height: 8, Attachments: fb.Attachments[:1]}
		dc := newTestDraw(t, colorOnly, testTriangle, inst)
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrMissingAttachment) {
			t.Errorf("err = %v, want ErrMissingAttachment", err)
		}
	})

	t.Run("missing color", func(t *testing.T) {
		depthOnly := &Framebuffer{Width: 8, Height: 8, Attachments: fb.Attachments[1:]}
		dc := newTestDraw(t, depthOnly, testTriangle, inst)
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrMissingAttachment) {
			t.Errorf("err = %v, want ErrMissingAttachment", err)
		}
	})

	t.Run("attachment size", func(t *testing.T) {
		dc := newTestDraw(t, fb, testTriangle, inst)
		dc.Framebuffer = &Framebuffer{Width: 16, Height: 16, Attachments: fb.Attachments}
		if err := r.RenderIndexed(dc); !errors.Is(err, ErrAttachmentSizeMismatch) {
			t.Errorf("err = %v, want ErrAttachmentSizeMismatch", err)
		}
	})
}

// TestSlice tests the typed vertex buffer wrapper.
func TestSlice(t *testing.T) {
	buf := Slice(testTriangle)
	if buf.Len() != 3 {
		t.Errorf("Len = %d, want 3", buf.Len())
	}
	if v, ok := buf.At(1).(testVertex); !ok || v != testTriangle[1] {
		t.Errorf("At(1) = %v", buf.At(1))
	}
}
