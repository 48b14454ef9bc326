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
	"math"
	"slices"
)

// sameSurfaceDepth is the largest depth difference for which two
// antialiased fragments in one pixel are treated as adjacent pieces of
// the same surface. Their coverage is added instead of composited.
const sameSurfaceDepth = 1.0 / 1024

var farDepth = float32(math.Inf(1))

// beginAA clears the accumulator for a frame of n pixels.
func (r *Rasterizer) beginAA(n int) {
	r.aaPix = slices.Grow(r.aaPix[:0], 4*n)[:4*n]
	clear(r.aaPix)
	r.aaDepth = fillDepth(r.aaDepth, n)
	r.aaFront = fillDepth(r.aaFront, n)
}

func fillDepth(buf []float32, n int) []float32 {
	buf = slices.Grow(buf[:0], n)[:n]
	for i := range buf {
		buf[i] = farDepth
	}
	return buf
}

// accumulate adds a fragment with straight-alpha color src, pixel
// coverage cov and the given depth to pixel idx of the accumulator.
//
// A fragment clearly in front of everything collected so far is
// composited over the pixel. Otherwise the fragment fills the part of the
// pixel which is not yet covered, so that two triangles sharing an edge
// add up to full coverage.
func (r *Rasterizer) accumulate(idx int, src [4]float32, cov, depth float32) {
	a := cov * src[3]
	if a <= 0 {
		return
	}
	acc := r.aaPix[4*idx : 4*idx+4 : 4*idx+4]

	if depth < r.aaDepth[idx]-sameSurfaceDepth {
		inv := 1 - a
		for k := range 3 {
			acc[k] = acc[k]*inv + src[k]*a
		}
		acc[3] = acc[3]*inv + a
		r.aaDepth[idx] = depth
		return
	}

	add := min(a, 1-acc[3])
	if add <= 0 {
		return
	}
	for k := range 3 {
		acc[k] += src[k] * add
	}
	acc[3] += add
	r.aaDepth[idx] = min(r.aaDepth[idx], depth)
}

// resolveAA blends the accumulator into the frame and updates the depth
// buffer where a fragment wrote the attribute buffers.
func (r *Rasterizer) resolveAA() {
	f := r.frame
	for idx := range f.Width * f.Height {
		acc := r.aaPix[4*idx : 4*idx+4 : 4*idx+4]
		if alpha := acc[3]; alpha > 0 {
			dst := f.Pixels[4*idx : 4*idx+4 : 4*idx+4]
			inv := 1 - min(alpha, 1)
			for k := range 3 {
				dst[k] = toByte(acc[k] + float32(dst[k])/255*inv)
			}
			dst[3] = toByte(alpha + float32(dst[3])/255*inv)
		}
		if d := r.aaFront[idx]; d < f.Depth[idx] {
			f.Depth[idx] = d
		}
	}
}
