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
	"maps"
	"slices"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/meshrender/testcases"
)

// BenchmarkRenderAll measures steady-state performance by reusing one
// Rasterizer and one Frame per test case across iterations.
func BenchmarkRenderAll(b *testing.B) {
	type job struct {
		m   *Mesh
		tex *Texture
		r   *Rasterizer
		f   *Frame
	}
	var jobs []job
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			m, tex, r := setup(b, tc)
			jobs = append(jobs, job{m, tex, r, NewFrame(tc.Width, tc.Height)})
		}
	}

	b.ResetTimer()
	for b.Loop() {
		for _, j := range jobs {
			j.f.Clear(color.RGBA{A: 255})
			if err := j.r.Render(j.m, j.tex, j.f); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkTriangle compares the coverage computation for one large
// triangle with golang.org/x/image/vector.
func BenchmarkTriangle(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		s := float64(size)
		a := vec.Vec2{X: 0.05 * s, Y: 0.9 * s}
		c := vec.Vec2{X: 0.95 * s, Y: 0.8 * s}
		d := vec.Vec2{X: 0.4 * s, Y: 0.05 * s}

		b.Run(fmt.Sprintf("meshrender/%dx%d", size, size), func(b *testing.B) {
			r := NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			p := &path.Data{}
			moveTo(p, a)
			lineTo(p, c)
			lineTo(p, d)
			p.Cmds = append(p.Cmds, path.CmdClose)

			b.ReportAllocs()
			for b.Loop() {
				r.Fill(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, v := range coverage {
						row[i] = uint8(v * 255)
					}
				})
			}
		})

		b.Run(fmt.Sprintf("vector/%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				r.MoveTo(float32(a.X), float32(a.Y))
				r.LineTo(float32(c.X), float32(c.Y))
				r.LineTo(float32(d.X), float32(d.Y))
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkDriver renders the demonstration scene at increasing sizes,
// with and without antialiasing.
func BenchmarkDriver(b *testing.B) {
	tc := findCase(b, "driver", "triangle")
	for _, size := range []int{128, 1024} {
		for _, aa := range []bool{false, true} {
			b.Run(fmt.Sprintf("%d/aa=%t", size, aa), func(b *testing.B) {
				tc := tc
				tc.Width, tc.Height = size, size
				m, tex, r := setup(b, tc)
				r.Antialias = aa
				f := NewFrame(size, size)

				b.ReportAllocs()
				for b.Loop() {
					f.Clear(color.RGBA{A: 255})
					if err := r.Render(m, tex, f); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
