// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rast3d is a tiny real-time 3D software-rasterization framework.
//
// The package provides the contract layer between a declarative draw
// [Pipeline] and user-supplied shader stages, the render-target
// [Framebuffer]/[Image] types, and the [Rasterizer] facade that clears
// framebuffers and executes indexed instanced draw calls.
//
// Pipeline vocabulary (texture formats, cull modes, compare functions,
// vertex step modes, topology) comes from github.com/gogpu/gputypes so that
// descriptors read like their WebGPU counterparts. Linear algebra is
// github.com/go-gl/mathgl/mgl32 throughout.
//
// The actual triangle setup and fill lives in internal/raster; callers only
// issue draw calls against it. Presentation, overlay and frame orchestration
// live in the window, overlay and app subpackages.
//
// # Basic usage
//
//	rast, err := rast3d.New(&rast3d.Options{})
//	if err != nil {
//	    return err
//	}
//	defer rast.Release()
//
//	pipe, err := rast3d.NewPipeline(&rast3d.PipelineDesc{ ... })
//	if err != nil {
//	    return err
//	}
//
//	dc := rast3d.DrawCall{Pipeline: pipe, Framebuffer: fb, ...}
//	if err := rast.RenderIndexed(&dc); err != nil {
//	    return err
//	}
package rast3d
