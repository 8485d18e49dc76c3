// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"reflect"

	"github.com/gogpu/gputypes"
)

// VertexBuffer is a typed view over one vertex-buffer slot's data.
// Implementations carry a concrete element type that is checked against
// the pipeline binding's declared type when a draw is issued.
type VertexBuffer interface {
	// Len returns the number of elements in the buffer.
	Len() int

	// At returns the element at index i.
	At(i int) any

	// ElemType returns the buffer's element type.
	ElemType() reflect.Type
}

// sliceBuffer adapts a Go slice to VertexBuffer.
type sliceBuffer[T any] struct {
	s []T
}

// Slice wraps a Go slice as a VertexBuffer. The slice is used directly,
// not copied; callers must not mutate it while draws are in flight.
func Slice[T any](s []T) VertexBuffer {
	return sliceBuffer[T]{s: s}
}

func (b sliceBuffer[T]) Len() int               { return len(b.s) }
func (b sliceBuffer[T]) At(i int) any           { return b.s[i] }
func (b sliceBuffer[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

// DrawCall is one indexed, instanced draw. It is constructed once and
// mutated in place each frame (framebuffer attachment pointers, uniform
// values) before being resubmitted to [Rasterizer.RenderIndexed].
type DrawCall struct {
	// Pipeline describes how the draw is interpreted.
	Pipeline *Pipeline

	// Framebuffer is the draw target.
	Framebuffer *Framebuffer

	// VertexBuffers are bound to the pipeline's binding slots in the
	// same order the pipeline declares them.
	VertexBuffers []VertexBuffer

	// Indices is the shared index buffer.
	Indices []uint16

	// IndexFormat is the index element format. Only
	// [gputypes.IndexFormatUint16] is supported.
	IndexFormat gputypes.IndexFormat

	// IndexCount is the number of indices consumed per instance.
	IndexCount int

	// InstanceCount is the number of instances drawn.
	InstanceCount int

	// Uniforms points at the per-draw uniform block shared by every
	// shader invocation of the draw.
	Uniforms any
}
