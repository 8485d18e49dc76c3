// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera derives per-frame view and projection matrices from
// elapsed wall-clock time, producing an orbiting viewpoint around the
// origin.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// orbitRate is the orbit angle advance in radians per second.
	orbitRate = 0.1

	// fovY is the vertical field of view in degrees.
	fovY = 45

	nearPlane = 0.1
	farPlane  = 100
)

// Uniforms is the per-draw shared shader input, recomputed every frame
// before the draw call is issued.
type Uniforms struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// Controller advances an internal orbit angle from frame deltas and
// derives the eye position from it.
//
// The elevation angle and the camera distance are both periodic functions
// of the orbit angle (phi = cos(theta)*pi/4, distance = |cos(theta)|*5),
// so the camera oscillates in height and apparent distance while it
// orbits. The coupling is a deliberate visual choice, not an
// approximation.
type Controller struct {
	theta float32
}

// New creates a controller at orbit angle zero.
func New() *Controller {
	return &Controller{}
}

// Theta returns the current orbit angle in radians. It is not reduced
// modulo 2*pi.
func (c *Controller) Theta() float32 { return c.theta }

// Advance adds dt seconds of orbit to the controller. A zero dt leaves
// the viewpoint unchanged.
func (c *Controller) Advance(dt float64) {
	c.theta += float32(dt) * orbitRate
}

// View returns the view matrix for the current orbit angle: an eye on the
// coupled azimuth/elevation path, looking at the origin with +Y up.
func (c *Controller) View() mgl32.Mat4 {
	cosT := math32.Cos(c.theta)
	sinT := math32.Sin(c.theta)

	phi := cosT * (math32.Pi / 4)
	dist := math32.Abs(cosT) * 5

	eye := mgl32.Vec3{
		dist * math32.Cos(phi) * sinT,
		dist * math32.Sin(phi),
		dist * math32.Cos(phi) * cosT,
	}
	return mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection returns a perspective projection for the given framebuffer
// dimensions: 45 degree vertical field of view, near 0.1, far 100.
func (c *Controller) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(fovY), aspect, nearPlane, farPlane)
}

// Update recomputes both matrices of u for the current orbit angle and
// framebuffer dimensions.
func (c *Controller) Update(u *Uniforms, width, height int) {
	u.Projection = c.Projection(width, height)
	u.View = c.View()
}
