// seehuhn.de/go/meshrender - a software renderer for triangle meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package meshrender

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// Frame holds the output buffers of a render, all in row-major order
// with row 0 at the top.
type Frame struct {
	Width  int
	Height int

	// Pixels holds 4 bytes (R, G, B, A) per pixel.
	Pixels []byte

	// Color holds the interpolated per-vertex color attribute,
	// 3 values per pixel.
	Color []float32

	// Coords holds the interpolated Euclidean vertex position
	// (x/w, y/w, z/w of the input point), 3 values per pixel.
	Coords []float32

	// Depth holds the window depth in [0, 1] of the visible surface,
	// or +Inf where nothing was drawn.
	Depth []float32

	// Triangle holds the index of the visible triangle, or -1.
	Triangle []int32
}

// NewFrame allocates a frame and clears it to opaque black.
// It panics if width or height is negative.
func NewFrame(width, height int) *Frame {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("meshrender: invalid frame size %dx%d", width, height))
	}
	n := width * height
	f := &Frame{
		Width:    width,
		Height:   height,
		Pixels:   make([]byte, 4*n),
		Color:    make([]float32, 3*n),
		Coords:   make([]float32, 3*n),
		Depth:    make([]float32, n),
		Triangle: make([]int32, n),
	}
	f.Clear(color.RGBA{A: 255})
	return f
}

// Clear resets all buffers. Pixels are set to bg.
func (f *Frame) Clear(bg color.RGBA) {
	for i := 0; i < len(f.Pixels); i += 4 {
		f.Pixels[i] = bg.R
		f.Pixels[i+1] = bg.G
		f.Pixels[i+2] = bg.B
		f.Pixels[i+3] = bg.A
	}
	clear(f.Color)
	clear(f.Coords)
	inf := float32(math.Inf(1))
	for i := range f.Depth {
		f.Depth[i] = inf
	}
	for i := range f.Triangle {
		f.Triangle[i] = -1
	}
}

// Image returns an image.RGBA sharing the frame's pixel memory.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: 4 * f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// WritePNG encodes the pixel buffer as a PNG image.
func (f *Frame) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Image())
}

// Covered returns the number of pixels at which a triangle is visible.
func (f *Frame) Covered() int {
	n := 0
	for _, t := range f.Triangle {
		if t >= 0 {
			n++
		}
	}
	return n
}

// NonBlackRatio returns the fraction of color attribute values written
// by the renderer which exceed DefaultNonBlackThreshold.
func (f *Frame) NonBlackRatio() float64 {
	return NonBlackRatio(f.Color, DefaultNonBlackThreshold)
}

// DefaultNonBlackThreshold is the brightness above which a color value
// counts as non-black.
const DefaultNonBlackThreshold = 0.1

// NonBlackRatio returns the fraction of values strictly greater than
// threshold. The result is in [0, 1]; an empty slice gives 0.
func NonBlackRatio(values []float32, threshold float32) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}
