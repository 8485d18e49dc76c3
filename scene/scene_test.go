// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// TestNewRing tests count, placement and alpha of the generated ring.
func TestNewRing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	instances := NewRing(RingCount, rng)
	if len(instances) != RingCount {
		t.Fatalf("len = %d, want %d", len(instances), RingCount)
	}

	for i, inst := range instances {
		// The model transform places the mesh origin on a ring of radius
		// 0.125: rotation composes before translation, scale applies last.
		theta := 2 * math.Pi * float64(i) / float64(RingCount)
		wantX := float32(-0.125 * math.Sin(theta))
		wantZ := float32(-0.125 * math.Cos(theta))

		pos := inst.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		if math32.Abs(pos.X()-wantX) > 1e-6 ||
			math32.Abs(pos.Y()) > 1e-6 ||
			math32.Abs(pos.Z()-wantZ) > 1e-6 {
			t.Errorf("instance %d origin = (%v, %v, %v), want (%v, 0, %v)",
				i, pos.X(), pos.Y(), pos.Z(), wantX, wantZ)
		}

		if inst.Color.A() != 0xFF {
			t.Errorf("instance %d alpha = %#x, want 0xFF", i, inst.Color.A())
		}
	}
}

// TestNewRingSeeded tests that a seeded source reproduces colors.
func TestNewRingSeeded(t *testing.T) {
	a := NewRing(RingCount, rand.New(rand.NewSource(7)))
	b := NewRing(RingCount, rand.New(rand.NewSource(7)))
	for i := range a {
		if a[i].Color != b[i].Color {
			t.Errorf("instance %d colors differ across identical seeds", i)
		}
	}
}

// TestTriangleMesh tests the reference mesh layout.
func TestTriangleMesh(t *testing.T) {
	vertices := TriangleVertices()
	if len(vertices) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(vertices))
	}
	indices := TriangleIndices()
	if len(indices) != 3 {
		t.Fatalf("index count = %d, want 3", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Errorf("index %d out of range", idx)
		}
	}

	// The winding is counter-clockwise viewed from +Z: the cross product
	// of the first two edges points toward the viewer.
	e1 := vertices[1].Position.Sub(vertices[0].Position)
	e2 := vertices[2].Position.Sub(vertices[0].Position)
	if n := e1.Cross(e2); n.Z() <= 0 {
		t.Errorf("mesh normal z = %v, want positive", n.Z())
	}
}

// TestNewPipeline tests the reference pipeline configuration.
func TestNewPipeline(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	bindings := p.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("binding count = %d, want 2", len(bindings))
	}
	if bindings[0].StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("slot 0 step mode = %v, want per-vertex", bindings[0].StepMode)
	}
	if bindings[1].StepMode != gputypes.VertexStepModeInstance {
		t.Errorf("slot 1 step mode = %v, want per-instance", bindings[1].StepMode)
	}
	if bindings[0].Stride != 12 {
		t.Errorf("vertex stride = %d, want 12", bindings[0].Stride)
	}
	if bindings[1].Stride != 68 {
		t.Errorf("instance stride = %d, want 68", bindings[1].Stride)
	}

	depth := p.Depth()
	if !depth.Test || !depth.Write || depth.Compare != gputypes.CompareFunctionLess {
		t.Errorf("depth state = %+v, want test+write with less", depth)
	}
	if p.Cull() != gputypes.CullModeBack || p.FrontFace() != gputypes.FrontFaceCCW {
		t.Errorf("cull = %v front = %v, want back-face culling of clockwise", p.Cull(), p.FrontFace())
	}
}
