// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "github.com/gogpu/rast3d"

// Context builds one overlay frame at a time.
//
// A frame runs NewFrame -> (rect/label calls) -> Render. Calls outside an
// active frame are ignored; this mirrors immediate-mode GUI conventions
// where a missing NewFrame is a programming defect, not a runtime error.
//
// Context is NOT safe for concurrent use.
type Context struct {
	list   drawList
	data   DrawData
	active bool
}

// NewContext creates an overlay context.
func NewContext() *Context {
	return &Context{}
}

// NewFrame begins a new overlay frame, discarding the previous frame's
// draw data.
func (c *Context) NewFrame() {
	c.list.reset()
	c.active = true
}

// FillRect adds a filled rectangle to the current frame.
func (c *Context) FillRect(x, y, w, h int, color rast3d.Pixel) {
	if !c.active || w <= 0 || h <= 0 {
		return
	}
	c.list.push(Command{Kind: CommandFillRect, X: x, Y: y, W: w, H: h, Color: color})
}

// Label adds a text run to the current frame. The position is the top
// left of the first glyph cell.
func (c *Context) Label(x, y int, color rast3d.Pixel, text string) {
	if !c.active || text == "" {
		return
	}
	c.list.push(Command{Kind: CommandText, X: x, Y: y, Color: color, Text: text})
}

// Render finalizes the current frame and returns its draw data. The
// returned data is valid until the next NewFrame call.
func (c *Context) Render() *DrawData {
	c.active = false
	c.data = DrawData{Commands: c.list.cmds}
	return &c.data
}
