// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TestAdvance tests orbit angle accumulation from frame deltas.
func TestAdvance(t *testing.T) {
	c := New()
	if c.Theta() != 0 {
		t.Fatalf("initial theta = %v, want 0", c.Theta())
	}

	c.Advance(0)
	if c.Theta() != 0 {
		t.Errorf("theta after zero delta = %v, want 0", c.Theta())
	}

	// 10 seconds in uneven slices accumulate to one radian.
	for _, dt := range []float64{2.5, 0.5, 3, 4} {
		c.Advance(dt)
	}
	if got := c.Theta(); math32.Abs(got-1) > 1e-5 {
		t.Errorf("theta after 10s = %v, want 1", got)
	}
}

// TestViewStatic tests that the view matrix is a pure function of the
// orbit angle.
func TestViewStatic(t *testing.T) {
	c := New()
	v1 := c.View()
	v2 := c.View()
	if v1 != v2 {
		t.Error("View differs across calls without Advance")
	}

	c.Advance(1)
	if c.View() == v1 {
		t.Error("View unchanged after Advance")
	}
}

// TestViewAtZero tests the eye position at orbit angle zero: elevation
// pi/4 and distance 5 place the eye at (0, 5*sin(pi/4), 5*cos(pi/4)).
func TestViewAtZero(t *testing.T) {
	c := New()
	want := mgl32.LookAtV(
		mgl32.Vec3{0, 5 * math32.Sin(math32.Pi/4), 5 * math32.Cos(math32.Pi/4)},
		mgl32.Vec3{},
		mgl32.Vec3{0, 1, 0})
	if got := c.View(); !got.ApproxEqual(want) {
		t.Errorf("View at theta=0 =\n%v\nwant\n%v", got, want)
	}
}

// TestProjection tests the fixed perspective parameters against mathgl.
func TestProjection(t *testing.T) {
	c := New()
	got := c.Projection(1600, 900)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1600.0/900.0, 0.1, 100)
	if got != want {
		t.Errorf("Projection =\n%v\nwant\n%v", got, want)
	}
}

// TestUpdate tests that Update fills both matrices consistently with the
// individual accessors.
func TestUpdate(t *testing.T) {
	c := New()
	c.Advance(3)

	var u Uniforms
	c.Update(&u, 800, 600)
	if u.Projection != c.Projection(800, 600) {
		t.Error("Update projection differs from Projection")
	}
	if u.View != c.View() {
		t.Error("Update view differs from View")
	}
}
