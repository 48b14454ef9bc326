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
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// WireStyle describes how mesh edges are stroked by Wireframe.
type WireStyle struct {
	// Width is the line width in device pixels. Must be positive.
	Width float64

	// Cap is the style of the line ends (butt, round, or square).
	Cap graphics.LineCapStyle

	// Color is the straight-alpha line color.
	Color color.RGBA
}

// DefaultWireStyle is a one pixel wide white line with round caps.
var DefaultWireStyle = WireStyle{
	Width: 1,
	Cap:   graphics.LineCapRound,
	Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
}

// Wireframe strokes the visible part of every mesh edge into f.Pixels.
// Edges are clipped and culled like in Render, but no depth test is
// applied, and the parts of clipped triangles which run along the view
// volume boundary are not drawn. The other buffers of f are unchanged.
//
// Edges shared by several triangles are drawn once per triangle; since
// all outlines are filled in a single pass, overlapping strokes are not
// blended twice.
func (r *Rasterizer) Wireframe(m *Mesh, f *Frame, style WireStyle) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := r.checkFrame(f); err != nil {
		return err
	}
	if !(style.Width > 0) {
		return fmt.Errorf("%w %g", ErrWireWidth, style.Width)
	}
	r.begin()

	d := style.Width / 2
	r.resetEdges()
	for t := range m.NumTriangles() {
		r.Stats.Triangles++
		if !r.prepareTriangle(m, t) {
			continue
		}
		n := len(r.proj)
		for i := range n {
			if r.proj[i].clipEdge {
				continue
			}
			r.outline.Cmds = r.outline.Cmds[:0]
			r.outline.Coords = r.outline.Coords[:0]
			appendSegment(&r.outline, r.proj[i].p, r.proj[(i+1)%n].p, d, style.Cap)
			r.collectPathEdges(&r.outline)
		}
	}

	src := [4]float32{
		float32(style.Color.R) / 255,
		float32(style.Color.G) / 255,
		float32(style.Color.B) / 255,
		float32(style.Color.A) / 255,
	}
	r.fillEdges(func(y, xMin int, coverage []float32) {
		row := f.Pixels[4*(y*f.Width+xMin):]
		for i, cov := range coverage {
			blendPixel(row[4*i:4*i+4:4*i+4], src, cov)
		}
	})
	return nil
}

// arcKappa is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const arcKappa = 0.5522847498307936

// appendSegment appends the outline of a stroked line segment from p0 to
// p1 with half-width d to p. All outlines are generated with the same
// orientation.
func appendSegment(p *path.Data, p0, p1 vec.Vec2, d float64, capStyle graphics.LineCapStyle) {
	T := p1.Sub(p0)
	length := T.Length()
	if length < zeroLengthThreshold {
		// A degenerate segment is drawn as a dot, if the cap has an
		// extent.
		if capStyle == graphics.LineCapButt {
			return
		}
		T = vec.Vec2{X: 1, Y: 0}
	} else {
		T = T.Mul(1 / length)
	}
	N := vec.Vec2{X: -T.Y, Y: T.X}

	if capStyle == graphics.LineCapSquare {
		p0 = p0.Sub(T.Mul(d))
		p1 = p1.Add(T.Mul(d))
	}
	round := capStyle == graphics.LineCapRound

	moveTo(p, p0.Add(N.Mul(d)))
	lineTo(p, p1.Add(N.Mul(d)))
	if round {
		appendHalfCircle(p, p1, T, N, d)
	} else {
		lineTo(p, p1.Sub(N.Mul(d)))
	}
	lineTo(p, p0.Sub(N.Mul(d)))
	if round {
		appendHalfCircle(p, p0, T.Mul(-1), N.Mul(-1), d)
	}
	p.Cmds = append(p.Cmds, path.CmdClose)
}

// appendHalfCircle appends two quarter arcs around c, from c+N*d via
// c+T*d to c-N*d.
func appendHalfCircle(p *path.Data, c, T, N vec.Vec2, d float64) {
	k := arcKappa * d
	a := c.Add(N.Mul(d))
	b := c.Add(T.Mul(d))
	e := c.Sub(N.Mul(d))
	cubeTo(p, a.Add(T.Mul(k)), b.Add(N.Mul(k)), b)
	cubeTo(p, b.Sub(N.Mul(k)), e.Add(T.Mul(k)), e)
}

func moveTo(p *path.Data, a vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, a)
}

func lineTo(p *path.Data, a vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdLineTo)
	p.Coords = append(p.Coords, a)
}

func cubeTo(p *path.Data, c1, c2, a vec.Vec2) {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, c1, c2, a)
}

// zeroLengthThreshold is the shortest segment with a defined direction.
const zeroLengthThreshold = 1e-10
