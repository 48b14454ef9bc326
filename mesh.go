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
	"fmt"
)

// Errors reported when validating meshes, textures, frames and wireframe
// styles.
var (
	ErrPointBuffer  = errors.New("meshrender: invalid point buffer")
	ErrColorBuffer  = errors.New("meshrender: invalid color buffer")
	ErrTCoordBuffer = errors.New("meshrender: invalid texture coordinate buffer")
	ErrTrilist      = errors.New("meshrender: invalid triangle list")
	ErrIndexRange   = errors.New("meshrender: vertex index out of range")
	ErrTextureSize  = errors.New("meshrender: invalid texture size")
	ErrNoTexture    = errors.New("meshrender: textured render without texture")
	ErrFrameSize    = errors.New("meshrender: frame smaller than clip rectangle")
	ErrWireWidth    = errors.New("meshrender: invalid wireframe width")
)

// Mesh is a triangle mesh stored in flat buffers.
//
// All slices are owned by the caller; the renderer only reads them.
type Mesh struct {
	// Points holds one homogeneous point (x, y, z, w) per vertex.
	Points []float64

	// Colors holds one RGB triple per vertex. The values are arbitrary
	// per-vertex attributes and are interpolated without clamping.
	Colors []float32

	// TCoords holds one (u, v) texture coordinate pair per vertex.
	// It may be nil if the mesh is never rendered with a texture.
	TCoords []float32

	// Trilist holds three vertex indices per triangle.
	Trilist []uint32
}

// NewMesh returns a mesh over the given buffers, after checking that the
// buffer lengths agree and that all triangle indices are in range.
func NewMesh(points []float64, colors []float32, tcoords []float32, trilist []uint32) (*Mesh, error) {
	m := &Mesh{
		Points:  points,
		Colors:  colors,
		TCoords: tcoords,
		Trilist: trilist,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NumPoints returns the number of vertices.
func (m *Mesh) NumPoints() int {
	return len(m.Points) / 4
}

// NumTriangles returns the number of triangles.
func (m *Mesh) NumTriangles() int {
	return len(m.Trilist) / 3
}

// Validate checks the buffer layout of the mesh.
func (m *Mesh) Validate() error {
	if len(m.Points) == 0 || len(m.Points)%4 != 0 {
		return fmt.Errorf("%w: %d values is not a positive multiple of 4",
			ErrPointBuffer, len(m.Points))
	}
	n := m.NumPoints()
	if len(m.Colors) != 3*n {
		return fmt.Errorf("%w: have %d values, want %d",
			ErrColorBuffer, len(m.Colors), 3*n)
	}
	if m.TCoords != nil && len(m.TCoords) != 2*n {
		return fmt.Errorf("%w: have %d values, want %d",
			ErrTCoordBuffer, len(m.TCoords), 2*n)
	}
	if len(m.Trilist)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3",
			ErrTrilist, len(m.Trilist))
	}
	for i, idx := range m.Trilist {
		if int(idx) >= n {
			return fmt.Errorf("%w: triangle %d references vertex %d of %d",
				ErrIndexRange, i/3, idx, n)
		}
	}
	return nil
}
