// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d/internal/raster"
)

// Errors returned by RenderIndexed validation.
var (
	// ErrNilPipeline is returned when the draw call has no pipeline.
	ErrNilPipeline = errors.New("rast3d: draw call has no pipeline")

	// ErrNilFramebuffer is returned when the draw call has no target.
	ErrNilFramebuffer = errors.New("rast3d: draw call has no framebuffer")

	// ErrBindingCount is returned when the bound buffer count differs from
	// the pipeline's binding slot count.
	ErrBindingCount = errors.New("rast3d: vertex buffer count does not match pipeline bindings")

	// ErrSlotTypeMismatch is returned when a bound buffer's element type
	// differs from the binding's declared type.
	ErrSlotTypeMismatch = errors.New("rast3d: vertex buffer element type does not match binding")

	// ErrUnsupportedIndexFormat is returned for index formats other than
	// uint16.
	ErrUnsupportedIndexFormat = errors.New("rast3d: unsupported index format")

	// ErrBadIndexRange is returned when the index count is not a multiple
	// of three or exceeds the index buffer.
	ErrBadIndexRange = errors.New("rast3d: invalid index range")

	// ErrMissingAttachment is returned when the pipeline needs an
	// attachment (color, or depth with depth test/write enabled) the
	// framebuffer does not carry.
	ErrMissingAttachment = errors.New("rast3d: framebuffer is missing a required attachment")

	// ErrAttachmentSizeMismatch is returned when an attachment's
	// dimensions differ from the framebuffer dimensions at draw time.
	ErrAttachmentSizeMismatch = errors.New("rast3d: attachment dimensions do not match framebuffer")
)

// RenderIndexed executes one indexed instanced draw call.
//
// The vertex stage runs once per (vertex, instance) pair; slot 0 advances
// per vertex and slot 1 per instance, following the pipeline bindings.
// Primitives are culled by winding per the pipeline, then filled; the
// fragment stage runs once per covered pixel after the depth test passes,
// reading the working data of the primitive's provoking vertex.
func (r *Rasterizer) RenderIndexed(dc *DrawCall) error {
	if r.released {
		return ErrReleased
	}
	if err := validateDraw(dc); err != nil {
		return err
	}

	pipe := dc.Pipeline
	fb := dc.Framebuffer
	color := fb.ColorAttachment()
	depth := fb.DepthAttachment()
	depthState := pipe.Depth()
	prog := pipe.Program()
	bindings := pipe.Bindings()

	if r.debug {
		Logger().Debug("rast3d: render indexed",
			"indices", dc.IndexCount,
			"instances", dc.InstanceCount,
			"target", fmt.Sprintf("%dx%d", fb.Width, fb.Height))
	}

	// Per-corner contexts, reused across triangles. The working-data
	// blocks are zeroed before each vertex invocation so a stage never
	// observes a previous invocation's values.
	var ctx [3]StageContext
	var clip [3]raster.ScreenVertex
	scratch := make([]byte, 3*pipe.WorkingDataSize())
	in := StageInput{slots: make([]any, len(bindings))}

	for inst := 0; inst < dc.InstanceCount; inst++ {
		for tri := 0; tri+2 < dc.IndexCount; tri += 3 {
			visible := true
			for k := 0; k < 3; k++ {
				idx := int(dc.Indices[tri+k])
				for s, b := range bindings {
					if b.StepMode == gputypes.VertexStepModeInstance {
						in.slots[s] = dc.VertexBuffers[s].At(inst)
					} else {
						in.slots[s] = dc.VertexBuffers[s].At(idx)
					}
				}

				wd := scratch[k*pipe.WorkingDataSize() : (k+1)*pipe.WorkingDataSize()]
				clear(wd)
				ctx[k] = StageContext{uniforms: dc.Uniforms, working: WorkingData{buf: wd}}

				pos := prog.VertexStage(in, &ctx[k])
				sv, ok := raster.ToScreen(pos, fb.Width, fb.Height)
				if !ok {
					visible = false
					break
				}
				clip[k] = sv
			}
			if !visible {
				continue
			}

			area := raster.Orient2D(clip[0], clip[1], clip[2])
			if area == 0 {
				continue
			}
			front := raster.CCWInNDC(area) == (pipe.FrontFace() == gputypes.FrontFaceCCW)
			switch pipe.Cull() {
			case gputypes.CullModeBack:
				if !front {
					continue
				}
			case gputypes.CullModeFront:
				if front {
					continue
				}
			}

			// Flat inter-stage parameters: the fragment stage reads the
			// provoking vertex's (corner 0) working data.
			fragCtx := StageContext{uniforms: dc.Uniforms, working: ctx[0].working}

			raster.ForEachFragment(clip[0], clip[1], clip[2], fb.Width, fb.Height,
				func(x, y int, d float32) {
					if d < 0 || d > 1 {
						return
					}
					if depthState.Test {
						if !depthPasses(depthState.Compare, d, depth.DepthAt(x, y)) {
							return
						}
					}
					if depthState.Write {
						depth.SetDepth(x, y, d)
					}
					color.SetPixel(x, y, prog.FragmentStage(&fragCtx))
				})
		}
	}
	return nil
}

// validateDraw checks a draw call against its pipeline and target before
// any stage runs. Violations are configuration defects.
func validateDraw(dc *DrawCall) error {
	if dc == nil || dc.Pipeline == nil {
		return ErrNilPipeline
	}
	if dc.Framebuffer == nil {
		return ErrNilFramebuffer
	}
	if dc.IndexFormat != gputypes.IndexFormatUint16 {
		return fmt.Errorf("%w: %v", ErrUnsupportedIndexFormat, dc.IndexFormat)
	}
	if dc.IndexCount%3 != 0 || dc.IndexCount < 0 || dc.IndexCount > len(dc.Indices) {
		return fmt.Errorf("%w: count %d of %d indices", ErrBadIndexRange, dc.IndexCount, len(dc.Indices))
	}

	bindings := dc.Pipeline.Bindings()
	if len(dc.VertexBuffers) != len(bindings) {
		return fmt.Errorf("%w: %d buffers for %d bindings",
			ErrBindingCount, len(dc.VertexBuffers), len(bindings))
	}
	for s, b := range bindings {
		if got := dc.VertexBuffers[s].ElemType(); got != b.ElemType {
			return fmt.Errorf("%w: slot %d has %v, binding declares %v",
				ErrSlotTypeMismatch, s, got, b.ElemType)
		}
	}

	fb := dc.Framebuffer
	color := fb.ColorAttachment()
	if color == nil {
		return fmt.Errorf("%w: color", ErrMissingAttachment)
	}
	depthState := dc.Pipeline.Depth()
	depth := fb.DepthAttachment()
	if (depthState.Test || depthState.Write) && depth == nil {
		return fmt.Errorf("%w: depth", ErrMissingAttachment)
	}
	for i, img := range fb.Attachments {
		if img == nil {
			return fmt.Errorf("%w: slot %d", ErrNilAttachment, i)
		}
		if img.Width() != fb.Width || img.Height() != fb.Height {
			return fmt.Errorf("%w: slot %d is %dx%d, framebuffer is %dx%d",
				ErrAttachmentSizeMismatch, i, img.Width(), img.Height(), fb.Width, fb.Height)
		}
	}
	return nil
}
