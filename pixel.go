// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

// Pixel is a packed 32-bit color with 0xRRGGBBAA channel order.
// The alpha channel occupies the lowest byte, matching the layout the
// rasterizer stores in color attachments.
type Pixel uint32

// RGBA packs four 8-bit channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// R returns the red channel.
func (p Pixel) R() uint8 { return uint8(p >> 24) }

// G returns the green channel.
func (p Pixel) G() uint8 { return uint8(p >> 16) }

// B returns the blue channel.
func (p Pixel) B() uint8 { return uint8(p >> 8) }

// A returns the alpha channel.
func (p Pixel) A() uint8 { return uint8(p) }

// WithAlpha returns a copy of p with the alpha channel replaced.
func (p Pixel) WithAlpha(a uint8) Pixel {
	return p&^0xFF | Pixel(a)
}
