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

package testcases

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var basicCases = []TestCase{
	{
		Name:      "quad_textured",
		Points:    quadPoints(-0.5, -0.5, 0.5, 0.5, 0),
		Colors:    solidColors(4, 1, 1, 1),
		TCoords:   quadTCoords(),
		Trilist:   []uint32{0, 1, 2, 0, 2, 3},
		Texture:   BandTexture(64, 64),
		TexWidth:  64,
		TexHeight: 64,
		Width:     64,
		Height:    64,
		Textured:  true,
	},
	{
		Name: "vertex_colors",
		Points: []float64{
			-0.8, -0.8, 0, 1,
			0.8, -0.6, 0, 1,
			-0.1, 0.8, 0, 1,
		},
		Colors: []float32{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
		Trilist: []uint32{0, 1, 2},
		Width:   64,
		Height:  64,
	},
	{
		Name:    "hexagon_fan",
		Points:  fanPoints(6, 0.7),
		Colors:  solidColors(7, 0.2, 0.6, 1),
		Trilist: fanTrilist(6),
		Width:   64,
		Height:  64,
	},
}

var depthCases = []TestCase{
	{
		Name: "overlap_far_first",
		Points: append(
			trianglePoints(-0.8, -0.6, 0.6, -0.6, -0.1, 0.8, 0.5),
			trianglePoints(-0.6, 0.6, 0.8, 0.6, 0.1, -0.8, -0.5)...),
		Colors:  append(solidColors(3, 1, 0, 0), solidColors(3, 0, 1, 0)...),
		Trilist: []uint32{0, 1, 2, 3, 4, 5},
		Width:   64,
		Height:  64,
	},
	{
		Name: "overlap_near_first",
		Points: append(
			trianglePoints(-0.6, 0.6, 0.8, 0.6, 0.1, -0.8, -0.5),
			trianglePoints(-0.8, -0.6, 0.6, -0.6, -0.1, 0.8, 0.5)...),
		Colors:  append(solidColors(3, 0, 1, 0), solidColors(3, 1, 0, 0)...),
		Trilist: []uint32{0, 1, 2, 3, 4, 5},
		Width:   64,
		Height:  64,
	},
	{
		Name:      "cube",
		Points:    cubePoints(),
		Colors:    cubeColors(),
		TCoords:   cubeTCoords(),
		Trilist:   cubeTrilist(),
		Width:     96,
		Height:    96,
		Transform: Camera(1).Mul4(mgl64.HomogRotate3DY(0.6)).Mul4(mgl64.HomogRotate3DX(0.4)),
		CullBack:  true,
	},
}

var clipCases = []TestCase{
	{
		// one vertex lies behind the camera
		Name: "near_plane",
		Points: []float64{
			-1, -1, 0, 1,
			1, -1, 0, 1,
			0, -0.5, 5, 1,
		},
		Colors:    solidColors(3, 1, 0.5, 0),
		Trilist:   []uint32{0, 1, 2},
		Width:     64,
		Height:    64,
		Transform: Camera(1),
	},
	{
		Name: "offscreen_right",
		Points: []float64{
			0, -0.5, 0, 1,
			2, 0, 0, 1,
			0, 0.5, 0, 1,
		},
		Colors:  solidColors(3, 1, 1, 1),
		Trilist: []uint32{0, 1, 2},
		Width:   64,
		Height:  64,
	},
	{
		Name:      "perspective_floor",
		Points:    quadPoints(-1, -1, 1, 1, 0),
		Colors:    solidColors(4, 1, 1, 1),
		TCoords:   quadTCoords(),
		Trilist:   []uint32{0, 1, 2, 0, 2, 3},
		Texture:   BandTexture(64, 64),
		TexWidth:  64,
		TexHeight: 64,
		Width:     64,
		Height:    64,
		Transform: Camera(1).Mul4(mgl64.HomogRotate3DX(-1.2)),
		Textured:  true,
	},
}

// largeCases have bounding boxes of more than 65536 pixels, so that the
// active edge list is used for antialiased coverage.
var largeCases = []TestCase{
	{
		Name:    "large_triangle",
		Points:  trianglePoints(-0.9, -0.95, 0.95, -0.7, -0.3, 0.9, 0),
		Colors:  solidColors(3, 1, 1, 1),
		Trilist: []uint32{0, 1, 2},
		Width:   512,
		Height:  512,
	},
}

// Camera returns a perspective camera at distance 3 from the origin,
// looking down the negative z axis, with a vertical field of view of 60
// degrees.
func Camera(aspect float64) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(60), aspect, 0.5, 10)
	view := mgl64.LookAtV(
		mgl64.Vec3{0, 0, 3},
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// trianglePoints returns three points at depth z.
func trianglePoints(x0, y0, x1, y1, x2, y2, z float64) []float64 {
	return []float64{
		x0, y0, z, 1,
		x1, y1, z, 1,
		x2, y2, z, 1,
	}
}

// quadPoints returns the corners of an axis-parallel rectangle at depth
// z, in counter-clockwise order starting at the lower left.
func quadPoints(x0, y0, x1, y1, z float64) []float64 {
	return []float64{
		x0, y0, z, 1,
		x1, y0, z, 1,
		x1, y1, z, 1,
		x0, y1, z, 1,
	}
}

func quadTCoords() []float32 {
	return []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}
}

// solidColors returns n copies of the color (r, g, b).
func solidColors(n int, r, g, b float32) []float32 {
	res := make([]float32, 0, 3*n)
	for range n {
		res = append(res, r, g, b)
	}
	return res
}

// fanPoints returns the centre and n points on a circle.
func fanPoints(n int, radius float64) []float64 {
	res := []float64{0, 0, 0, 1}
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		res = append(res, radius*math.Cos(phi), radius*math.Sin(phi), 0, 1)
	}
	return res
}

func fanTrilist(n int) []uint32 {
	var res []uint32
	for i := range n {
		res = append(res, 0, uint32(1+i), uint32(1+(i+1)%n))
	}
	return res
}

// cubeFaces lists outward normal n and tangents u, v with u×v = n for
// each face of the unit cube, so that the corners c-u-v, c+u-v, c+u+v,
// c-u+v are counter-clockwise when seen from outside.
var cubeFaces = [6][3]mgl64.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

func cubePoints() []float64 {
	const s = 0.6
	var res []float64
	for _, f := range cubeFaces {
		n, u, v := f[0].Mul(s), f[1].Mul(s), f[2].Mul(s)
		for _, p := range [4]mgl64.Vec3{
			n.Sub(u).Sub(v),
			n.Add(u).Sub(v),
			n.Add(u).Add(v),
			n.Sub(u).Add(v),
		} {
			res = append(res, p[0], p[1], p[2], 1)
		}
	}
	return res
}

func cubeColors() []float32 {
	faceColors := [6][3]float32{
		{1, 0, 0}, {0, 1, 1},
		{0, 1, 0}, {1, 0, 1},
		{0, 0, 1}, {1, 1, 0},
	}
	var res []float32
	for _, c := range faceColors {
		res = append(res, solidColors(4, c[0], c[1], c[2])...)
	}
	return res
}

func cubeTCoords() []float32 {
	var res []float32
	for range 6 {
		res = append(res, quadTCoords()...)
	}
	return res
}

func cubeTrilist() []uint32 {
	var res []uint32
	for i := range uint32(6) {
		k := 4 * i
		res = append(res, k, k+1, k+2, k, k+2, k+3)
	}
	return res
}
