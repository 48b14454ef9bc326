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
	"errors"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func TestWireframe(t *testing.T) {
	tc := findCase(t, "driver", "triangle")
	m, _, r := setup(t, tc)
	f := NewFrame(tc.Width, tc.Height)

	style := WireStyle{
		Width: 2,
		Cap:   graphics.LineCapButt,
		Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	if err := r.Wireframe(m, f, style); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		x, y int
		want byte
	}{
		{63, 40, 255}, // left edge, x = 64
		{64, 40, 255},
		{80, 63, 255}, // bottom edge, y = 64
		{80, 64, 255},
		{80, 40, 0},  // interior
		{10, 10, 0},  // background
		{62, 40, 0},  // beyond the stroke
		{80, 66, 0},  // beyond the stroke
		{64, 13, 0},  // beyond the butt cap
		{118, 64, 0}, // beyond the butt cap
	}
	for _, c := range cases {
		if got := pixelAt(f, c.x, c.y)[0]; got != c.want {
			t.Errorf("pixel (%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}

	for i, v := range f.Color {
		if v != 0 {
			t.Fatalf("color attribute %d changed to %g", i, v)
		}
	}
	if f.Covered() != 0 {
		t.Error("wireframe wrote the triangle buffer")
	}
}

// TestWireframeClipEdges checks that edges created by clipping are not
// drawn.
func TestWireframeClipEdges(t *testing.T) {
	tc := findCase(t, "clip", "offscreen_right")
	m, _, r := setup(t, tc)
	f := NewFrame(tc.Width, tc.Height)

	style := WireStyle{Width: 2, Cap: graphics.LineCapButt, Color: color.RGBA{G: 255, A: 255}}
	if err := r.Wireframe(m, f, style); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(f, 32, 32)[1]; got != 255 {
		t.Errorf("left edge pixel = %d, want 255", got)
	}
	if got := pixelAt(f, 63, 32)[1]; got != 0 {
		t.Errorf("clip edge pixel = %d, want 0", got)
	}
}

func TestWireframeCaps(t *testing.T) {
	for _, c := range []struct {
		name string
		cap  graphics.LineCapStyle
		area float64
	}{
		{"butt", graphics.LineCapButt, 20 * 4},
		{"square", graphics.LineCapSquare, 24 * 4},
		{"round", graphics.LineCapRound, 20*4 + math.Pi*4},
	} {
		t.Run(c.name, func(t *testing.T) {
			r := NewRasterizer(64, 64)
			r.Flatness = 0.02
			p := &path.Data{}
			appendSegment(p, vec.Vec2{X: 20, Y: 32}, vec.Vec2{X: 40, Y: 32}, 2, c.cap)
			coverage := collectCoverage(r, p, 64, 64)
			if got := sum(coverage); math.Abs(got-c.area) > 0.02*c.area {
				t.Errorf("area = %g, want %g", got, c.area)
			}
		})
	}
}

func TestWireframeDot(t *testing.T) {
	p := &path.Data{}
	q := vec.Vec2{X: 10, Y: 10}
	appendSegment(p, q, q, 1, graphics.LineCapButt)
	if len(p.Cmds) != 0 {
		t.Error("zero-length butt segment produced an outline")
	}
	appendSegment(p, q, q, 1, graphics.LineCapSquare)
	if len(p.Cmds) == 0 {
		t.Error("zero-length square segment produced no outline")
	}
}

func TestWireframeWidth(t *testing.T) {
	tc := findCase(t, "driver", "triangle")
	m, _, r := setup(t, tc)
	f := NewFrame(tc.Width, tc.Height)
	for _, w := range []float64{0, -1, math.NaN()} {
		style := DefaultWireStyle
		style.Width = w
		if err := r.Wireframe(m, f, style); !errors.Is(err, ErrWireWidth) {
			t.Errorf("width %g: got %v, want ErrWireWidth", w, err)
		}
	}
}
