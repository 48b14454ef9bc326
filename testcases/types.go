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

// Package testcases defines the scenes used by the tests and the
// reference image generators.
package testcases

import "github.com/go-gl/mathgl/mgl64"

// TestCase defines a single rendering test. The mesh buffers use the
// layout of meshrender.Mesh.
type TestCase struct {
	Name string // lowercase a-z, 0-9 and _ only

	Points  []float64 // (x, y, z, w) per vertex
	Colors  []float32 // (r, g, b) per vertex
	TCoords []float32 // (u, v) per vertex, or nil
	Trilist []uint32  // three vertex indices per triangle

	Texture   []byte // RGBA texels, or nil
	TexWidth  int
	TexHeight int

	Width  int // canvas width in pixels
	Height int // canvas height in pixels

	Transform mgl64.Mat4 // zero value means identity
	Textured  bool       // color pixels from the texture
	CullBack  bool       // discard clockwise triangles
}

// All contains all test cases, grouped by category.
// The category name is used as a prefix in reference image filenames.
var All = map[string][]TestCase{
	"driver": driverCases,
	"basic":  basicCases,
	"depth":  depthCases,
	"clip":   clipCases,
	"large":  largeCases,
}
