// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gogpu/gputypes"
)

// Errors returned by pipeline construction.
var (
	// ErrNilProgram is returned when a pipeline declares no shader program.
	ErrNilProgram = errors.New("rast3d: pipeline has no shader program")

	// ErrBadBinding is returned for a binding with no element type or a
	// non-positive stride.
	ErrBadBinding = errors.New("rast3d: invalid vertex binding")

	// ErrWorkingDataOverflow is returned when an inter-stage parameter does
	// not fit inside the declared working-data block.
	ErrWorkingDataOverflow = errors.New("rast3d: inter-stage parameter exceeds working-data size")

	// ErrInterpolationUnsupported is returned for non-flat inter-stage
	// parameters, which the software backend does not interpolate.
	ErrInterpolationUnsupported = errors.New("rast3d: interpolated inter-stage parameters are not supported")

	// ErrBadParamFormat is returned for inter-stage parameter formats the
	// software backend cannot carry.
	ErrBadParamFormat = errors.New("rast3d: unsupported inter-stage parameter format")

	// ErrUnsupportedTopology is returned for any topology other than
	// triangle lists.
	ErrUnsupportedTopology = errors.New("rast3d: unsupported primitive topology")
)

// VertexBinding declares one vertex-buffer input slot: the size of one
// element, whether the slot advances per vertex or per instance, and the
// Go element type the slot carries. The element type is checked against
// the bound buffer at draw time, replacing raw per-slot pointer casts.
type VertexBinding struct {
	// Stride is the size of one element in bytes.
	Stride int

	// StepMode selects per-vertex or per-instance advancement.
	StepMode gputypes.VertexStepMode

	// ElemType is the element type bound buffers must carry.
	ElemType reflect.Type
}

// BindingOf builds a VertexBinding for element type T with the given step
// mode. The stride is derived from the in-memory size of T.
func BindingOf[T any](step gputypes.VertexStepMode) VertexBinding {
	t := reflect.TypeFor[T]()
	return VertexBinding{
		Stride:   int(t.Size()),
		StepMode: step,
		ElemType: t,
	}
}

// DepthState declares whether depth comparison gates color writes and
// whether passing fragments update the depth attachment.
type DepthState struct {
	// Test enables the depth comparison.
	Test bool

	// Write enables depth updates for passing fragments.
	Write bool

	// Compare is the comparison applied when Test is enabled.
	Compare gputypes.CompareFunction
}

// InterStageParam declares one field of the working-data block forwarded
// from the vertex stage to the fragment stage.
type InterStageParam struct {
	// Format is the field's component type and count.
	Format gputypes.VertexFormat

	// Offset is the field's byte offset inside the working-data block.
	Offset int

	// Flat marks the field as passed through unmodified from the
	// primitive's provoking vertex rather than interpolated.
	Flat bool
}

// PipelineDesc is the mutable input to [NewPipeline]. Once a Pipeline is
// built the descriptor contents are copied and the pipeline is immutable.
type PipelineDesc struct {
	// Bindings declares the vertex-buffer slots in bind order.
	// Slot 0 is conventionally the per-vertex stream, slot 1 the
	// per-instance stream.
	Bindings []VertexBinding

	// Program supplies the vertex and fragment stages.
	Program Program

	// WorkingDataSize is the scratch block size in bytes allocated per
	// shader invocation pair. It must cover every declared parameter.
	WorkingDataSize int

	// Params declares the inter-stage parameter layout.
	Params []InterStageParam

	// Depth configures depth test and write.
	Depth DepthState

	// Cull selects back-face rejection.
	Cull gputypes.CullMode

	// FrontFace selects the winding considered front-facing.
	FrontFace gputypes.FrontFace

	// Topology selects primitive assembly. Only triangle lists are
	// supported by the software backend.
	Topology gputypes.PrimitiveTopology
}

// Pipeline is an immutable description of how a draw call is interpreted.
// It is pure data; the behavioral meaning of every field is carried out by
// the rasterizer. Pipelines are compared by reference only.
type Pipeline struct {
	desc PipelineDesc
}

// NewPipeline validates a descriptor and freezes it into a Pipeline.
//
// Validation catches configuration defects at construction time: missing
// program, malformed bindings, parameters that overflow the working-data
// block, and features the software backend does not implement.
func NewPipeline(desc *PipelineDesc) (*Pipeline, error) {
	if desc == nil || desc.Program == nil {
		return nil, ErrNilProgram
	}
	if desc.Topology != gputypes.PrimitiveTopologyTriangleList {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTopology, desc.Topology)
	}
	for i, b := range desc.Bindings {
		if b.ElemType == nil || b.Stride <= 0 {
			return nil, fmt.Errorf("%w: slot %d", ErrBadBinding, i)
		}
	}
	for i, p := range desc.Params {
		if !p.Flat {
			return nil, fmt.Errorf("%w: param %d", ErrInterpolationUnsupported, i)
		}
		sz := vertexFormatSize(p.Format)
		if sz == 0 {
			return nil, fmt.Errorf("%w: param %d (%v)", ErrBadParamFormat, i, p.Format)
		}
		end := p.Offset + sz
		if p.Offset < 0 || end > desc.WorkingDataSize {
			return nil, fmt.Errorf("%w: param %d needs [%d, %d), block is %d bytes",
				ErrWorkingDataOverflow, i, p.Offset, end, desc.WorkingDataSize)
		}
	}

	p := &Pipeline{desc: *desc}
	p.desc.Bindings = append([]VertexBinding(nil), desc.Bindings...)
	p.desc.Params = append([]InterStageParam(nil), desc.Params...)
	return p, nil
}

// Bindings returns the declared vertex-buffer slots.
func (p *Pipeline) Bindings() []VertexBinding { return p.desc.Bindings }

// Program returns the shader program.
func (p *Pipeline) Program() Program { return p.desc.Program }

// WorkingDataSize returns the per-invocation scratch block size in bytes.
func (p *Pipeline) WorkingDataSize() int { return p.desc.WorkingDataSize }

// Params returns the inter-stage parameter layout.
func (p *Pipeline) Params() []InterStageParam { return p.desc.Params }

// Depth returns the depth test/write configuration.
func (p *Pipeline) Depth() DepthState { return p.desc.Depth }

// Cull returns the cull mode.
func (p *Pipeline) Cull() gputypes.CullMode { return p.desc.Cull }

// FrontFace returns the front-facing winding.
func (p *Pipeline) FrontFace() gputypes.FrontFace { return p.desc.FrontFace }

// Topology returns the primitive topology.
func (p *Pipeline) Topology() gputypes.PrimitiveTopology { return p.desc.Topology }

// vertexFormatSize returns the byte size of an inter-stage parameter
// format. Unknown formats size to 0 and fail working-data validation.
func vertexFormatSize(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x2:
		return 8
	case gputypes.VertexFormatFloat32x3:
		return 12
	case gputypes.VertexFormatFloat32x4:
		return 16
	case gputypes.VertexFormatUnorm8x4:
		return 4
	default:
		return 0
	}
}
