// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d"
	"github.com/gogpu/rast3d/camera"
)

// colorOffset is the byte offset of the instance color inside the
// working-data block, matching the pipeline's inter-stage layout.
const colorOffset = 0

// Program is the demo shader pair. The vertex stage transforms the mesh
// position by projection * view * model and forwards the instance color
// through the working-data block; the fragment stage returns that color
// unchanged.
type Program struct{}

// VertexStage implements rast3d.Program.
func (Program) VertexStage(in rast3d.StageInput, ctx *rast3d.StageContext) mgl32.Vec4 {
	v := in.Slot(0).(Vertex)
	inst := in.Slot(1).(Instance)
	u := ctx.Uniforms().(*camera.Uniforms)

	ctx.Working().PutColor(colorOffset, inst.Color)

	mvp := u.Projection.Mul4(u.View).Mul4(inst.Model)
	return mvp.Mul4x1(v.Position.Vec4(1))
}

// FragmentStage implements rast3d.Program.
func (Program) FragmentStage(ctx *rast3d.StageContext) rast3d.Pixel {
	return ctx.Working().Color(colorOffset)
}

var _ rast3d.Program = Program{}

// NewPipeline builds the reference pipeline descriptor: a per-vertex
// stream in slot 0 and a per-instance stream in slot 1, depth test and
// write with a less comparison, back-face culling of clockwise triangles,
// and a single flat 4-byte color parameter carried between stages.
func NewPipeline() (*rast3d.Pipeline, error) {
	return rast3d.NewPipeline(&rast3d.PipelineDesc{
		Bindings: []rast3d.VertexBinding{
			rast3d.BindingOf[Vertex](gputypes.VertexStepModeVertex),
			rast3d.BindingOf[Instance](gputypes.VertexStepModeInstance),
		},
		Program:         Program{},
		WorkingDataSize: 4,
		Params: []rast3d.InterStageParam{
			{Format: gputypes.VertexFormatUnorm8x4, Offset: colorOffset, Flat: true},
		},
		Depth: rast3d.DepthState{
			Test:    true,
			Write:   true,
			Compare: gputypes.CompareFunctionLess,
		},
		Cull:      gputypes.CullModeBack,
		FrontFace: gputypes.FrontFaceCCW,
		Topology:  gputypes.PrimitiveTopologyTriangleList,
	})
}
