// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements triangle setup and fill for the software
// rasterizer: clip-space to screen-space projection, winding/orientation
// tests and barycentric coverage walks with per-fragment depth.
//
// The package is deliberately free of pipeline and shader knowledge; the
// root package drives it per primitive.
package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minW is the smallest clip-space w accepted during projection. Vertices
// at or behind the camera plane reject the whole primitive rather than
// producing an unstable divide.
const minW = 1e-6

// ScreenVertex is a projected vertex in screen space. X and Y are pixel
// coordinates with y growing downward; Z is the depth in [0, 1] after the
// perspective divide.
type ScreenVertex struct {
	X, Y float32
	Z    float32
	InvW float32
}

// ToScreen projects a clip-space position into screen space for a
// viewport of the given dimensions. It reports false for vertices with
// non-positive w, which callers must treat as rejecting the primitive.
func ToScreen(clip mgl32.Vec4, width, height int) (ScreenVertex, bool) {
	w := clip.W()
	if w < minW {
		return ScreenVertex{}, false
	}
	inv := 1 / w
	ndcX := clip.X() * inv
	ndcY := clip.Y() * inv
	ndcZ := clip.Z() * inv

	return ScreenVertex{
		X:    (ndcX*0.5 + 0.5) * float32(width),
		Y:    (1 - (ndcY*0.5 + 0.5)) * float32(height),
		Z:    ndcZ*0.5 + 0.5,
		InvW: inv,
	}, true
}

// Orient2D returns twice the signed area of the screen-space triangle
// (a, b, c). Screen space is y-down, so a triangle that is
// counter-clockwise in NDC has a negative signed area here.
func Orient2D(a, b, c ScreenVertex) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// CCWInNDC reports whether the projected triangle winds counter-clockwise
// in normalized device coordinates (y-up), given its screen-space signed
// area from [Orient2D].
func CCWInNDC(area float32) bool { return area < 0 }

// ForEachFragment walks every covered pixel of the screen-space triangle
// (v0, v1, v2), clipped to the viewport, and calls fn with the pixel
// coordinates and the interpolated depth at the pixel center.
//
// Coverage is sampled at pixel centers. The walk makes no depth decision;
// the caller owns the depth test.
func ForEachFragment(v0, v1, v2 ScreenVertex, width, height int, fn func(x, y int, depth float32)) {
	area := Orient2D(v0, v1, v2)
	if area == 0 {
		return
	}
	invArea := 1 / area

	minX := clampInt(floorInt(min3(v0.X, v1.X, v2.X)), 0, width-1)
	maxX := clampInt(ceilInt(max3(v0.X, v1.X, v2.X)), 0, width-1)
	minY := clampInt(floorInt(min3(v0.Y, v1.Y, v2.Y)), 0, height-1)
	maxY := clampInt(ceilInt(max3(v0.Y, v1.Y, v2.Y)), 0, height-1)

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			p := ScreenVertex{X: px, Y: py}

			// Barycentric weights, normalized so they sum to 1 and are
			// all non-negative inside the triangle regardless of its
			// winding.
			l0 := Orient2D(v1, v2, p) * invArea
			l1 := Orient2D(v2, v0, p) * invArea
			l2 := Orient2D(v0, v1, p) * invArea
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			depth := l0*v0.Z + l1*v1.Z + l2*v2.Z
			fn(x, y, depth)
		}
	}
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func floorInt(v float32) int { return int(math32.Floor(v)) }
func ceilInt(v float32) int  { return int(math32.Ceil(v)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
