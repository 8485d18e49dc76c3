// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay is a minimal immediate-mode GUI overlay: a per-frame
// drawlist builder plus a renderer that composites the finalized drawlist
// into a framebuffer's color attachment.
//
// The overlay follows the classic immediate-mode frame shape: NewFrame,
// build UI, Render to finalize the frame's draw data, then hand the draw
// data to [Renderer.Render] after the 3D pass.
package overlay

import "github.com/gogpu/rast3d"

// CommandKind identifies one drawlist command.
type CommandKind uint8

const (
	// CommandFillRect fills an axis-aligned rectangle.
	CommandFillRect CommandKind = iota + 1

	// CommandText draws a text run at a baseline position.
	CommandText
)

// Command is one drawlist entry. X/Y are the top-left corner for rects
// and the baseline origin for text.
type Command struct {
	Kind  CommandKind
	X, Y  int
	W, H  int
	Color rast3d.Pixel
	Text  string
}

// DrawData is a finalized frame's drawlist. It is valid until the next
// NewFrame call on the owning context.
type DrawData struct {
	Commands []Command
}

// drawList accumulates commands for the frame under construction.
// Reset keeps the backing array to avoid per-frame allocation.
type drawList struct {
	cmds []Command
}

func (l *drawList) reset() {
	l.cmds = l.cmds[:0]
}

func (l *drawList) push(c Command) {
	l.cmds = append(l.cmds, c)
}
