// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rast3d

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Errors returned by image allocation.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("rast3d: invalid image dimensions")

	// ErrUnsupportedFormat is returned for formats the software rasterizer
	// cannot store.
	ErrUnsupportedFormat = errors.New("rast3d: unsupported image format")
)

// Image is a single render-target attachment.
//
// Color images store packed [Pixel] values; depth images store one float32
// per texel. An Image is either color or depth depending on its format;
// the other plane is nil.
//
// Images are NOT safe for concurrent use.
type Image struct {
	width  int
	height int
	format gputypes.TextureFormat

	pix   []Pixel
	depth []float32

	released bool
}

// NewImage allocates an image of the given dimensions and format.
//
// Supported formats: [gputypes.TextureFormatRGBA8Unorm] for color
// attachments and [gputypes.TextureFormatDepth32Float] for depth
// attachments.
func NewImage(width, height int, format gputypes.TextureFormat) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	img := &Image{width: width, height: height, format: format}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		img.pix = make([]Pixel, width*height)
	case gputypes.TextureFormatDepth32Float:
		img.depth = make([]float32, width*height)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Format returns the image's texture format.
func (img *Image) Format() gputypes.TextureFormat { return img.format }

// IsDepth reports whether the image is a depth attachment.
func (img *Image) IsDepth() bool { return img.depth != nil }

// Pixels returns the color plane, or nil for depth images.
// The slice aliases the image storage; writes are visible immediately.
func (img *Image) Pixels() []Pixel { return img.pix }

// Depth returns the depth plane, or nil for color images.
func (img *Image) Depth() []float32 { return img.depth }

// PixelAt returns the color at (x, y). The coordinates must be in bounds.
func (img *Image) PixelAt(x, y int) Pixel { return img.pix[y*img.width+x] }

// SetPixel writes the color at (x, y). The coordinates must be in bounds.
func (img *Image) SetPixel(x, y int, p Pixel) { img.pix[y*img.width+x] = p }

// DepthAt returns the depth value at (x, y).
func (img *Image) DepthAt(x, y int) float32 { return img.depth[y*img.width+x] }

// SetDepth writes the depth value at (x, y).
func (img *Image) SetDepth(x, y int, d float32) { img.depth[y*img.width+x] = d }

// FillColor sets every texel of a color image to p.
func (img *Image) FillColor(p Pixel) {
	for i := range img.pix {
		img.pix[i] = p
	}
}

// FillDepth sets every texel of a depth image to d.
func (img *Image) FillDepth(d float32) {
	for i := range img.depth {
		img.depth[i] = d
	}
}

// Release frees the image storage. After Release, the image must not be
// used. Release is idempotent; a second call warns and does nothing.
func (img *Image) Release() {
	if img.released {
		Logger().Warn("rast3d: image released twice",
			"width", img.width, "height", img.height)
		return
	}
	img.released = true
	img.pix = nil
	img.depth = nil
}

// Released reports whether Release has been called.
func (img *Image) Released() bool { return img.released }
