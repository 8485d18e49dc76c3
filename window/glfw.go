// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !js && cgo

package window

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rast3d"
)

func init() {
	Register(BackendGLFW, 100, newGLFWWindow)
}

// Shader pair used to blit the CPU backbuffer to the default GL
// framebuffer as a fullscreen triangle. The v coordinate is flipped so
// row 0 of the backbuffer lands at the top of the window.
const (
	blitVertexShader = `#version 330 core
out vec2 uv;
void main() {
	vec2 pos = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
	uv = vec2(pos.x, 1.0 - pos.y);
	gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

	blitFragmentShader = `#version 330 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, uv);
}
` + "\x00"
)

// glfwWindow is a desktop presentation surface. The CPU backbuffer is
// uploaded to a GL texture and drawn as a fullscreen triangle on every
// SwapBuffers.
type glfwWindow struct {
	win *glfw.Window

	backbuffer *rast3d.Image
	upload     []uint8

	texture uint32
	program uint32
	vao     uint32
	texW    int
	texH    int

	destroyed bool
}

// newGLFWWindow creates the window, the GL context and the blit
// resources. Failures surface as errors rather than nil handles.
func newGLFWWindow(opts Options) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("window: gl init: %w", err)
	}

	w := &glfwWindow{win: win}
	if err := w.initBlit(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	rast3d.Logger().Info("window: glfw backend created",
		"width", opts.Width, "height", opts.Height)
	return w, nil
}

// initBlit creates the texture, shader program and VAO for presenting
// the backbuffer.
func (w *glfwWindow) initBlit() error {
	vs, err := compileShader(blitVertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("window: vertex shader: %w", err)
	}
	fs, err := compileShader(blitFragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return fmt.Errorf("window: fragment shader: %w", err)
	}

	w.program = gl.CreateProgram()
	gl.AttachShader(w.program, vs)
	gl.AttachShader(w.program, fs)
	gl.LinkProgram(w.program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(w.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(w.program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(w.program, logLen, nil, gl.Str(log))
		return fmt.Errorf("window: link blit program: %s", log)
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return nil
}

// compileShader compiles one GLSL shader and returns its handle.
func compileShader(src string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	cstr, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, cstr, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", log)
	}
	return shader, nil
}

// Poll implements Window.
func (w *glfwWindow) Poll() { glfw.PollEvents() }

// ShouldClose implements Window.
func (w *glfwWindow) ShouldClose() bool { return w.win.ShouldClose() }

// FramebufferSize implements Window.
func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// Backbuffer implements Window. The backbuffer is reallocated whenever
// the framebuffer size changed since the previous call.
func (w *glfwWindow) Backbuffer() *rast3d.Image {
	fbW, fbH := w.FramebufferSize()
	if w.backbuffer != nil &&
		w.backbuffer.Width() == fbW && w.backbuffer.Height() == fbH {
		return w.backbuffer
	}
	if w.backbuffer != nil {
		w.backbuffer.Release()
	}
	img, err := rast3d.NewImage(fbW, fbH, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		// The size comes from the live framebuffer query; a failure
		// here means a zero-sized (minimized) window. Keep a 1x1
		// placeholder so the frame can still run.
		img, _ = rast3d.NewImage(1, 1, gputypes.TextureFormatRGBA8Unorm)
	}
	w.backbuffer = img
	return w.backbuffer
}

// SwapBuffers implements Window: uploads the backbuffer to the blit
// texture, draws it and presents.
func (w *glfwWindow) SwapBuffers() {
	if w.backbuffer == nil {
		w.win.SwapBuffers()
		return
	}

	bw, bh := w.backbuffer.Width(), w.backbuffer.Height()
	if need := bw * bh * 4; cap(w.upload) < need {
		w.upload = make([]uint8, need)
	}
	buf := w.upload[:bw*bh*4]
	for i, p := range w.backbuffer.Pixels() {
		buf[i*4+0] = p.R()
		buf[i*4+1] = p.G()
		buf[i*4+2] = p.B()
		buf[i*4+3] = p.A()
	}

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	if w.texW != bw || w.texH != bh {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(bw), int32(bh), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
		w.texW, w.texH = bw, bh
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(bw), int32(bh),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	}

	fbW, fbH := w.FramebufferSize()
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	w.win.SwapBuffers()
}

// InitOverlay implements Window. The overlay renders CPU-side into the
// backbuffer, so no window binding is needed beyond event polling.
func (w *glfwWindow) InitOverlay() error { return nil }

// Destroy implements Window.
func (w *glfwWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true

	if w.backbuffer != nil {
		w.backbuffer.Release()
		w.backbuffer = nil
	}
	gl.DeleteTextures(1, &w.texture)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	w.win.Destroy()
	glfw.Terminate()
}

var _ Window = (*glfwWindow)(nil)
