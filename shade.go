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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// triangle is a projected triangle with positive orientation,
// i.e. edgeFunc(a, b, c) > 0.
type triangle struct {
	a, b, c *projVertex
	area2   float64 // edgeFunc(a, b, c)
}

// newTriangle orients a, b, c positively. It returns false for a
// triangle of zero area.
func newTriangle(a, b, c *projVertex) (triangle, bool) {
	area2 := edgeFunc(a.p, b.p, c.p)
	if area2 == 0 {
		return triangle{}, false
	}
	if area2 < 0 {
		b, c = c, b
		area2 = -area2
	}
	return triangle{a: a, b: b, c: c, area2: area2}, true
}

// barycentric returns the screen-space barycentric coordinates of p.
// They are negative outside the triangle.
func (t *triangle) barycentric(p vec.Vec2) (la, lb, lc float64) {
	la = edgeFunc(t.b.p, t.c.p, p) / t.area2
	lb = edgeFunc(t.c.p, t.a.p, p) / t.area2
	lc = edgeFunc(t.a.p, t.b.p, p) / t.area2
	return la, lb, lc
}

// edgeFunc returns twice the signed area of the triangle (a, b, p).
// For a positively oriented triangle, all three edge functions are
// non-negative at interior points.
func edgeFunc(a, b, p vec.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// isTopLeft reports whether the edge a→b of a positively oriented
// triangle is a top or a left edge. Sample points exactly on such edges
// belong to the triangle, so that a point on an edge shared by two
// triangles is drawn exactly once.
func isTopLeft(a, b vec.Vec2) bool {
	dy := b.Y - a.Y
	return dy < 0 || (dy == 0 && b.X > a.X)
}

// drawPolygon rasterises the projected polygon r.proj of mesh triangle
// index into r.frame.
func (r *Rasterizer) drawPolygon(index int32) {
	r.index = index
	r.fan = r.fan[:0]

	if !r.Antialias {
		for k := 1; k+1 < len(r.proj); k++ {
			t, ok := newTriangle(&r.proj[0], &r.proj[k], &r.proj[k+1])
			if !ok {
				continue
			}
			r.fan = append(r.fan[:0], t)
			r.sampleTriangle(&r.fan[0], r.shadeRow)
		}
		return
	}

	// The polygon is filled as a whole, so that the fan diagonals do not
	// show. Each pixel is shaded using the fan triangle nearest to it.
	for k := 1; k+1 < len(r.proj); k++ {
		if t, ok := newTriangle(&r.proj[0], &r.proj[k], &r.proj[k+1]); ok {
			r.fan = append(r.fan, t)
		}
	}
	if len(r.fan) == 0 {
		return
	}
	r.outline.Cmds = append(r.outline.Cmds[:0], path.CmdMoveTo)
	r.outline.Coords = append(r.outline.Coords[:0], r.proj[0].p)
	for i := 1; i < len(r.proj); i++ {
		r.outline.Cmds = append(r.outline.Cmds, path.CmdLineTo)
		r.outline.Coords = append(r.outline.Coords, r.proj[i].p)
	}
	r.outline.Cmds = append(r.outline.Cmds, path.CmdClose)
	r.Fill(&r.outline, r.shadeRow)
}

// sampleTriangle delivers the point-sampled coverage of t row by row.
// A pixel is covered if its centre lies inside the triangle.
func (r *Rasterizer) sampleTriangle(t *triangle, emit func(y, xMin int, coverage []float32)) {
	a, b, c := t.a.p, t.b.p, t.c.p

	xMin := max(int(math.Floor(min(a.X, b.X, c.X))), int(r.Clip.LLx))
	xMax := min(int(math.Ceil(max(a.X, b.X, c.X))), int(r.Clip.URx))
	yMin := max(int(math.Floor(min(a.Y, b.Y, c.Y))), int(r.Clip.LLy))
	yMax := min(int(math.Ceil(max(a.Y, b.Y, c.Y))), int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	tlA := isTopLeft(b, c)
	tlB := isTopLeft(c, a)
	tlC := isTopLeft(a, b)

	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	for y := yMin; y < yMax; y++ {
		clear(r.cover)
		for x := xMin; x < xMax; x++ {
			p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if inside(edgeFunc(b, c, p), tlA) &&
				inside(edgeFunc(c, a, p), tlB) &&
				inside(edgeFunc(a, b, p), tlC) {
				r.cover[x-xMin] = 1
			}
		}
		if trimmed, k := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+k, trimmed)
		}
	}
}

func inside(w float64, topLeft bool) bool {
	return w > 0 || (w == 0 && topLeft)
}

// pick returns the triangle of r.fan which best contains p, together
// with the barycentric coordinates of p. The result is nil only if no
// barycentric coordinates can be computed.
func (r *Rasterizer) pick(p vec.Vec2) (t *triangle, la, lb, lc float64) {
	best := math.Inf(-1)
	for i := range r.fan {
		ca, cb, cc := r.fan[i].barycentric(p)
		if m := min(ca, cb, cc); m > best {
			best = m
			t, la, lb, lc = &r.fan[i], ca, cb, cc
		}
	}
	return t, la, lb, lc
}

// shadeRow interpolates the attributes of the current polygon for a row
// of covered pixels, performs the depth test and writes the frame.
//
// Without antialiasing, all buffers are written directly. With
// antialiasing, colors are collected in the coverage accumulator and
// composited by resolveAA; the attribute and triangle buffers are only
// written where coverage is at least 1/2.
func (r *Rasterizer) shadeRow(y, xMin int, coverage []float32) {
	f := r.frame

	for i, cov := range coverage {
		if cov <= 0 {
			continue
		}
		x := xMin + i
		p := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}

		t, la, lb, lc := r.pick(p)
		if t == nil {
			continue
		}
		a, b, c := t.a, t.b, t.c

		// Depth is a plane in screen space, so it may be extrapolated to
		// pixel centres just outside the polygon.
		depth := float32(min(max(la*a.z+lb*b.z+lc*c.z, 0), 1))
		idx := y*f.Width + x
		if !(depth < f.Depth[idx]) {
			continue
		}

		if la < 0 || lb < 0 || lc < 0 {
			// With antialiasing, the centre of an edge pixel may lie
			// outside the polygon. Use the nearest point on the triangle
			// for the attributes.
			la, lb, lc = max(la, 0), max(lb, 0), max(lc, 0)
			s := la + lb + lc
			la, lb, lc = la/s, lb/s, lc/s
		}

		// perspective-correct weights
		qa := la * a.invW
		qb := lb * b.invW
		qc := lc * c.invW
		s := qa + qb + qc
		qa, qb, qc = qa/s, qb/s, qc/s

		var attr [numAttrs]float64
		for k := range attr {
			attr[k] = qa*a.attr[k] + qb*b.attr[k] + qc*c.attr[k]
		}

		var src [4]float32
		if r.Textured {
			src = r.tex.Sample(attr[attrTCoord], attr[attrTCoord+1], r.Filter, r.Wrap)
		} else {
			src = [4]float32{
				clamp01(float32(attr[attrColor])),
				clamp01(float32(attr[attrColor+1])),
				clamp01(float32(attr[attrColor+2])),
				1,
			}
		}

		if r.Antialias {
			r.accumulate(idx, src, cov, depth)
			if cov < 0.5 || !(depth < r.aaFront[idx]) {
				continue
			}
			r.aaFront[idx] = depth
		} else {
			blendPixel(f.Pixels[4*idx:4*idx+4:4*idx+4], src, cov)
			f.Depth[idx] = depth
		}

		f.Triangle[idx] = r.index
		for k := range 3 {
			f.Color[3*idx+k] = float32(attr[attrColor+k])
			f.Coords[3*idx+k] = float32(attr[attrCoord+k])
		}
		r.Stats.Fragments++
	}
}

// blendPixel composites the straight-alpha color src, scaled by
// coverage, over the RGBA pixel dst.
func blendPixel(dst []byte, src [4]float32, coverage float32) {
	alpha := src[3] * coverage
	if alpha >= 1 {
		dst[0] = toByte(src[0])
		dst[1] = toByte(src[1])
		dst[2] = toByte(src[2])
		dst[3] = 255
		return
	}
	if alpha <= 0 {
		return
	}
	inv := 1 - alpha
	for k := range 3 {
		dst[k] = toByte(src[k]*alpha + float32(dst[k])/255*inv)
	}
	dst[3] = toByte(alpha + float32(dst[3])/255*inv)
}

func toByte(v float32) byte {
	return byte(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v != v {
		return 0
	}
	return v
}
