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

import "github.com/go-gl/mathgl/mgl64"

// Layout of clipVertex.attr.
const (
	attrColor  = 0 // r, g, b
	attrTCoord = 3 // u, v
	attrCoord  = 5 // x, y, z
	numAttrs   = 8
)

// clipVertex is a polygon vertex in homogeneous clip space.
type clipVertex struct {
	pos  mgl64.Vec4
	attr [numAttrs]float64

	// clipEdge is set if the polygon edge starting at this vertex was
	// created by clipping, rather than being part of a mesh edge.
	clipEdge bool
}

// minClipW keeps vertices away from the w = 0 singularity.
const minClipW = 1e-6

// clipPlanes are the signed distances to the planes of the view volume
// -w <= x, y, z <= w. Points with non-negative distance are inside.
var clipPlanes = [...]func(p mgl64.Vec4) float64{
	func(p mgl64.Vec4) float64 { return p[3] - minClipW },
	func(p mgl64.Vec4) float64 { return p[3] + p[0] },
	func(p mgl64.Vec4) float64 { return p[3] - p[0] },
	func(p mgl64.Vec4) float64 { return p[3] + p[1] },
	func(p mgl64.Vec4) float64 { return p[3] - p[1] },
	func(p mgl64.Vec4) float64 { return p[3] + p[2] },
	func(p mgl64.Vec4) float64 { return p[3] - p[2] },
}

// loadTriangle fills r.poly with the transformed vertices of triangle t.
func (r *Rasterizer) loadTriangle(m *Mesh, t int) {
	r.poly = r.poly[:0]
	for _, idx := range m.Trilist[3*t : 3*t+3] {
		i := int(idx)
		p := m.Points[4*i : 4*i+4]
		v := clipVertex{
			pos: r.transform.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], p[3]}),
		}
		c := m.Colors[3*i : 3*i+3]
		v.attr[attrColor] = float64(c[0])
		v.attr[attrColor+1] = float64(c[1])
		v.attr[attrColor+2] = float64(c[2])
		if m.TCoords != nil {
			v.attr[attrTCoord] = float64(m.TCoords[2*i])
			v.attr[attrTCoord+1] = float64(m.TCoords[2*i+1])
		}
		if p[3] != 0 {
			v.attr[attrCoord] = p[0] / p[3]
			v.attr[attrCoord+1] = p[1] / p[3]
			v.attr[attrCoord+2] = p[2] / p[3]
		}
		r.poly = append(r.poly, v)
	}
}

// clipPoly clips the polygon in r.poly against the view volume, using
// Sutherland-Hodgman clipping in homogeneous coordinates. On return,
// r.poly holds the clipped polygon, which has either zero or at least
// three vertices.
func (r *Rasterizer) clipPoly() (clipped bool) {
	for _, dist := range clipPlanes {
		inside := true
		for i := range r.poly {
			if dist(r.poly[i].pos) < 0 {
				inside = false
				break
			}
		}
		if inside {
			continue
		}
		clipped = true

		out := r.polyTmp[:0]
		n := len(r.poly)
		for i := range n {
			s := &r.poly[i]
			e := &r.poly[(i+1)%n]
			ds := dist(s.pos)
			de := dist(e.pos)
			switch {
			case ds >= 0 && de >= 0:
				out = append(out, *e)
			case ds >= 0:
				v := lerpVertex(s, e, ds/(ds-de))
				v.clipEdge = true
				out = append(out, v)
			case de >= 0:
				v := lerpVertex(s, e, ds/(ds-de))
				v.clipEdge = s.clipEdge
				out = append(out, v, *e)
			}
		}
		r.poly, r.polyTmp = out, r.poly

		if len(r.poly) < 3 {
			r.poly = r.poly[:0]
			return true
		}
	}
	return clipped
}

// lerpVertex returns the point s + t*(e-s), interpolating all attributes.
func lerpVertex(s, e *clipVertex, t float64) clipVertex {
	var v clipVertex
	for k := range v.pos {
		v.pos[k] = s.pos[k] + t*(e.pos[k]-s.pos[k])
	}
	for k := range v.attr {
		v.attr[k] = s.attr[k] + t*(e.attr[k]-s.attr[k])
	}
	return v
}
