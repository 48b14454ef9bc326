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
	"testing"
)

// clipTriangle loads a single triangle with vertex colors (1,0,0),
// (0,1,0), (0,0,1) and clips it.
func clipTriangle(t *testing.T, points []float64) (*Rasterizer, bool) {
	t.Helper()
	m, err := NewMesh(points, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, nil, []uint32{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRasterizer(64, 64)
	r.begin()
	r.loadTriangle(m, 0)
	return r, r.clipPoly()
}

func TestClipInside(t *testing.T) {
	r, clipped := clipTriangle(t, []float64{
		-0.5, -0.5, 0, 1,
		0.5, -0.5, 0, 1,
		0, 0.5, 0, 1,
	})
	if clipped {
		t.Error("triangle inside the view volume was clipped")
	}
	if len(r.poly) != 3 {
		t.Fatalf("got %d vertices", len(r.poly))
	}
	for i, v := range r.poly {
		if v.clipEdge {
			t.Errorf("vertex %d marked as clip edge", i)
		}
	}
}

func TestClipOneCorner(t *testing.T) {
	r, clipped := clipTriangle(t, []float64{
		0, -0.5, 0, 1,
		2, 0, 0, 1,
		0, 0.5, 0, 1,
	})
	if !clipped {
		t.Fatal("triangle not clipped")
	}
	if len(r.poly) != 4 {
		t.Fatalf("got %d vertices, want 4", len(r.poly))
	}

	nClip := 0
	for i, v := range r.poly {
		x, w := v.pos[0], v.pos[3]
		if x > w+1e-12 || x < -w-1e-12 {
			t.Errorf("vertex %d outside: x=%g w=%g", i, x, w)
		}
		if v.clipEdge {
			nClip++
			// the edge runs along the plane x = w
			next := r.poly[(i+1)%len(r.poly)]
			if math.Abs(v.pos[0]-1) > 1e-12 || math.Abs(next.pos[0]-1) > 1e-12 {
				t.Errorf("clip edge from x=%g to x=%g", v.pos[0], next.pos[0])
			}
		}
	}
	if nClip != 1 {
		t.Errorf("got %d clip edges, want 1", nClip)
	}

	// the intersections lie halfway along the edges to the middle vertex
	for _, v := range r.poly {
		if v.pos[0] != 1 {
			continue
		}
		if g := v.attr[attrColor+1]; math.Abs(g-0.5) > 1e-12 {
			t.Errorf("green at intersection = %g, want 0.5", g)
		}
	}
}

func TestClipOutside(t *testing.T) {
	for _, c := range []struct {
		name   string
		points []float64
	}{
		{"right", []float64{2, 0, 0, 1, 3, 0, 0, 1, 2.5, 1, 0, 1}},
		{"behind", []float64{0, 0, 0, -1, 1, 0, 0, -1, 0, 1, 0, -1}},
		{"far", []float64{0, 0, 2, 1, 0.5, 0, 2, 1, 0, 0.5, 2, 1}},
	} {
		t.Run(c.name, func(t *testing.T) {
			r, clipped := clipTriangle(t, c.points)
			if !clipped {
				t.Error("not clipped")
			}
			if len(r.poly) != 0 {
				t.Errorf("got %d vertices, want 0", len(r.poly))
			}
		})
	}
}

func TestLerpVertex(t *testing.T) {
	s := clipVertex{}
	e := clipVertex{}
	s.pos = [4]float64{0, 0, 0, 1}
	e.pos = [4]float64{4, 2, 0, 3}
	s.attr[attrTCoord] = 1
	e.attr[attrTCoord] = 3
	e.clipEdge = true

	v := lerpVertex(&s, &e, 0.25)
	if v.pos != [4]float64{1, 0.5, 0, 1.5} {
		t.Errorf("pos = %v", v.pos)
	}
	if v.attr[attrTCoord] != 1.5 {
		t.Errorf("u = %g", v.attr[attrTCoord])
	}
	if v.clipEdge {
		t.Error("clipEdge copied")
	}
}
