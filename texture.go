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
	"math"

	"golang.org/x/image/draw"
)

// Texture is an RGBA bitmap with 4 bytes per texel, stored row by row.
// Row 0 is addressed by texture coordinate v = 0.
type Texture struct {
	Width  int
	Height int
	Pix    []byte
}

// NewTexture returns a texture over pix, which must hold exactly
// width*height RGBA texels.
func NewTexture(width, height int, pix []byte) (*Texture, error) {
	t := &Texture{Width: width, Height: height, Pix: pix}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Texture) validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrTextureSize, t.Width, t.Height)
	}
	if len(t.Pix) != 4*t.Width*t.Height {
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d",
			ErrTextureSize, t.Width, t.Height, 4*t.Width*t.Height, len(t.Pix))
	}
	return nil
}

// TextureFromImage copies img into a new texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Texture{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Resize returns a copy of the texture scaled to width×height using the
// given interpolator, for example draw.BiLinear or draw.NearestNeighbor.
func (t *Texture) Resize(width, height int, interp draw.Interpolator) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := t.Image()
	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &Texture{Width: width, Height: height, Pix: dst.Pix}, nil
}

// Image returns an image.RGBA sharing the texture's pixel memory.
func (t *Texture) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.Pix,
		Stride: 4 * t.Width,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}

// Filter selects how texels are combined during sampling.
type Filter int

const (
	// Nearest returns the texel containing the sample point.
	Nearest Filter = iota

	// Bilinear blends the four texels around the sample point.
	Bilinear
)

func (f Filter) String() string {
	switch f {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Wrap selects how texture coordinates outside [0, 1] are handled.
type Wrap int

const (
	// ClampToEdge repeats the outermost texels.
	ClampToEdge Wrap = iota

	// Repeat tiles the texture.
	Repeat
)

func (w Wrap) String() string {
	switch w {
	case ClampToEdge:
		return "clamp"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("Wrap(%d)", int(w))
	}
}

// Sample returns the normalised RGBA value of the texture at (u, v).
// Texel (i, j) has its centre at ((i+0.5)/Width, (j+0.5)/Height).
func (t *Texture) Sample(u, v float64, filter Filter, wrap Wrap) [4]float32 {
	w := float64(t.Width)
	h := float64(t.Height)

	if filter != Bilinear {
		return t.texel(floorIndex(u*w), floorIndex(v*h), wrap)
	}

	x := u*w - 0.5
	y := v*h - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := float32(x - x0)
	fy := float32(y - y0)
	ix := floorIndex(x0)
	iy := floorIndex(y0)

	c00 := t.texel(ix, iy, wrap)
	c10 := t.texel(ix+1, iy, wrap)
	c01 := t.texel(ix, iy+1, wrap)
	c11 := t.texel(ix+1, iy+1, wrap)

	var res [4]float32
	for k := range res {
		top := c00[k] + (c10[k]-c00[k])*fx
		bot := c01[k] + (c11[k]-c01[k])*fx
		res[k] = top + (bot-top)*fy
	}
	return res
}

// texel returns texel (x, y) after applying the wrap mode.
func (t *Texture) texel(x, y int, wrap Wrap) [4]float32 {
	x = wrapIndex(x, t.Width, wrap)
	y = wrapIndex(y, t.Height, wrap)
	i := 4 * (y*t.Width + x)
	p := t.Pix[i : i+4 : i+4]
	return [4]float32{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// floorIndex converts a texel-space coordinate to an integer index.
// Values far outside the texture are limited so that the conversion to
// int is well defined; NaN maps to 0.
func floorIndex(x float64) int {
	const limit = 1 << 30
	switch {
	case x >= limit:
		return limit
	case x <= -limit:
		return -limit
	case x == x:
		return int(math.Floor(x))
	default:
		return 0
	}
}

func wrapIndex(i, n int, wrap Wrap) int {
	if wrap == Repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}
