// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene holds the reference demo scene: a single triangle mesh,
// a procedurally generated ring of colored instances, and the shader
// program and pipeline descriptor that draw them.
package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d"
)

// Vertex is one mesh vertex. The mesh is created once and shared,
// unmodified, by every instance.
type Vertex struct {
	Position mgl32.Vec3
}

// Instance is one drawable copy of the mesh: a model transform and a
// packed color. Instances are immutable after generation; only the camera
// moves at runtime.
type Instance struct {
	Model mgl32.Mat4
	Color rast3d.Pixel
}

// TriangleVertices returns the reference 3-vertex mesh, wound
// counter-clockwise when viewed from +Z.
func TriangleVertices() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec3{0, 0.5, 0}},
		{Position: mgl32.Vec3{-0.5, -0.5, 0}},
		{Position: mgl32.Vec3{0.5, -0.5, 0}},
	}
}

// TriangleIndices returns the index buffer for the reference mesh.
func TriangleIndices() []uint16 {
	return []uint16{0, 1, 2}
}

// RingCount is the instance count of the reference scenario.
const RingCount = 6

// NewRing generates count instances arranged in a ring around the origin.
//
// For index i the model transform is
// scale(0.25) * (rotateY(2*pi*i/count) * translate(0, 0, -0.5)):
// the rotation is composed before the translation, so each instance sits
// at the rotated offset rather than being an already-placed instance
// rotated in place. The ordering is load-bearing for the arrangement.
//
// Colors carry three independently drawn random channel bytes with the
// alpha byte forced to 0xFF in the lowest position. Exact color values
// are draw-order-dependent; pass a seeded rng for reproducible output.
func NewRing(count int, rng *rand.Rand) []Instance {
	instances := make([]Instance, count)
	for i := range instances {
		theta := 2 * math.Pi * float64(i) / float64(count)

		model := mgl32.Scale3D(0.25, 0.25, 0.25).Mul4(
			mgl32.HomogRotate3DY(float32(theta)).Mul4(
				mgl32.Translate3D(0, 0, -0.5)))

		color := rast3d.RGBA(
			uint8(rng.Intn(256)),
			uint8(rng.Intn(256)),
			uint8(rng.Intn(256)),
			0xFF)

		instances[i] = Instance{Model: model, Color: color}
	}
	return instances
}
