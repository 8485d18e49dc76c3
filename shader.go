// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is the calling convention between a pipeline and its two
// user-supplied shader stages.
//
// VertexStage is invoked once per (vertex, instance) pair of a draw. The
// input carries the current element of each bound buffer slot, advanced
// per vertex or per instance according to the pipeline bindings. The stage
// must return the clip-space position and may write into the invocation's
// working-data block through the context.
//
// FragmentStage is invoked once per covered pixel, after the depth test
// has passed. It reads the working data produced for the covering
// primitive and returns the packed color written to the color attachment.
//
// Stages must not retain state across invocations; each invocation is
// pure given its inputs. Stage functions do not report errors: sizing and
// layout mismatches are configuration defects caught by pipeline
// validation, not runtime conditions.
type Program interface {
	VertexStage(in StageInput, ctx *StageContext) mgl32.Vec4
	FragmentStage(ctx *StageContext) Pixel
}

// StageInput carries the current element of each bound buffer slot, in
// pipeline binding order.
type StageInput struct {
	slots []any
}

// Slot returns the current element for the given binding slot. The
// dynamic type matches the binding's declared element type.
func (in StageInput) Slot(i int) any { return in.slots[i] }

// StageContext exposes the per-draw uniform block and the invocation's
// working-data block to a shader stage.
type StageContext struct {
	uniforms any
	working  WorkingData
}

// Uniforms returns the per-draw uniform block. The vertex and fragment
// stages must treat it as read-only.
func (c *StageContext) Uniforms() any { return c.uniforms }

// Working returns the invocation's working-data block. The vertex stage
// writes it, the paired fragment invocation reads it.
func (c *StageContext) Working() *WorkingData { return &c.working }

// WorkingData is the scratch block threaded from a vertex-stage invocation
// to its fragment-stage invocation(s). Its size is declared by the
// pipeline; fields live at the offsets declared by the pipeline's
// inter-stage parameters.
type WorkingData struct {
	buf []byte
}

// Bytes returns the raw block.
func (w *WorkingData) Bytes() []byte { return w.buf }

// PutColor writes a packed color at the given byte offset.
func (w *WorkingData) PutColor(offset int, p Pixel) {
	binary.LittleEndian.PutUint32(w.buf[offset:], uint32(p))
}

// Color reads a packed color from the given byte offset.
func (w *WorkingData) Color(offset int) Pixel {
	return Pixel(binary.LittleEndian.Uint32(w.buf[offset:]))
}

// PutFloat32 writes a float32 at the given byte offset.
func (w *WorkingData) PutFloat32(offset int, v float32) {
	binary.LittleEndian.PutUint32(w.buf[offset:], math.Float32bits(v))
}

// Float32 reads a float32 from the given byte offset.
func (w *WorkingData) Float32(offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(w.buf[offset:]))
}
