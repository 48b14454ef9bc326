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

// Sizes used by the demonstration scene.
const (
	DriverTextureWidth  = 64
	DriverTextureHeight = 64
	DriverOutputWidth   = 128
	DriverOutputHeight  = 128
)

// DriverPoints returns the three vertices of the demonstration triangle.
func DriverPoints() []float64 {
	return []float64{
		0, 0, 0, 1,
		0, 0.75, 0, 1,
		0.75, 0, 0, 1,
	}
}

// DriverColors returns the vertex colors of the demonstration triangle.
// All three vertices are blue.
func DriverColors() []float32 {
	return []float32{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	}
}

// DriverTCoords returns the texture coordinates of the demonstration
// triangle.
func DriverTCoords() []float32 {
	return []float32{
		0, 0,
		0, 1,
		1, 0,
	}
}

// DriverTrilist returns the triangle list of the demonstration scene.
func DriverTrilist() []uint32 {
	return []uint32{0, 2, 1}
}

// Colors of the four texture bands, as opaque RGBA.
var (
	BandRed    = [4]byte{255, 0, 0, 255}
	BandGreen  = [4]byte{0, 255, 0, 255}
	BandBlue   = [4]byte{0, 0, 255, 255}
	BandYellow = [4]byte{255, 255, 0, 255}
)

// BandTexture returns a width×height RGBA texture made of four bands of
// solid color: red, green, blue and yellow. Each band covers one quarter
// of the texels in memory order, so for a height divisible by four the
// bands are horizontal stripes starting at row 0.
func BandTexture(width, height int) []byte {
	bands := [4][4]byte{BandRed, BandGreen, BandBlue, BandYellow}

	n := width * height
	pix := make([]byte, 4*n)
	for i := range n {
		copy(pix[4*i:4*i+4], bands[4*i/n][:])
	}
	return pix
}

var driverCases = []TestCase{
	{
		Name:      "triangle",
		Points:    DriverPoints(),
		Colors:    DriverColors(),
		TCoords:   DriverTCoords(),
		Trilist:   DriverTrilist(),
		Texture:   BandTexture(DriverTextureWidth, DriverTextureHeight),
		TexWidth:  DriverTextureWidth,
		TexHeight: DriverTextureHeight,
		Width:     DriverOutputWidth,
		Height:    DriverOutputHeight,
		Textured:  true,
	},
}
