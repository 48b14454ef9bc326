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
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// CullMode selects which triangles are discarded by orientation.
type CullMode int

const (
	// CullNone draws all triangles.
	CullNone CullMode = iota

	// CullBack discards triangles which are clockwise in normalised
	// device coordinates.
	CullBack

	// CullFront discards triangles which are counter-clockwise in
	// normalised device coordinates.
	CullFront
)

func (c CullMode) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullBack:
		return "back"
	case CullFront:
		return "front"
	default:
		return fmt.Sprintf("CullMode(%d)", int(c))
	}
}

// Stats counts what happened to the triangles of the last Render call.
type Stats struct {
	Triangles int // triangles in the mesh
	Clipped   int // triangles intersecting the view volume boundary
	Culled    int // triangles removed by the cull mode
	Discarded int // triangles outside the view volume or of zero area
	Fragments int // pixels written to the depth buffer
}

// Rasterizer renders triangle meshes into a Frame.
//
// The caller creates one instance and reuses it for multiple meshes.
// Internal buffers grow as needed but never shrink.
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Transform maps mesh points to homogeneous clip space.
	// The zero value is treated as the identity.
	Transform mgl64.Mat4

	// Viewport maps normalised device coordinates (x, y) to device
	// pixels, with pixel (0, 0) at the top left.
	Viewport matrix.Matrix

	// Clip limits drawing to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Textured selects the texture as the source of pixel colors.
	// Otherwise the vertex colors, clamped to [0, 1], are used.
	Textured bool

	// Filter and Wrap control texture sampling.
	Filter Filter
	Wrap   Wrap

	// Cull selects back- or front-face culling.
	Cull CullMode

	// Antialias enables exact area coverage at polygon edges. When
	// false, a pixel is covered if its centre lies inside the triangle.
	//
	// With antialiasing, partial coverage from all triangles of one
	// Render call is collected per pixel before it is blended into the
	// frame, so that edges shared by adjacent triangles do not show.
	Antialias bool

	// Flatness is the curve flattening tolerance in device pixels, used
	// for round wireframe caps and curved paths passed to Fill.
	// Values which are not positive select a tolerance of 0.25.
	Flatness float64

	// Stats describes the most recent call to Render.
	Stats Stats

	// smallPathThreshold is the largest bounding box area, in pixels,
	// for which coverage is computed with 2D buffers. Larger shapes use
	// an active edge list.
	smallPathThreshold int

	transform mgl64.Mat4 // Transform, with the zero value resolved
	tex       *Texture   // texture for the current Render call
	frame     *Frame     // target of the current Render call
	index     int32      // mesh triangle being shaded
	fan       []triangle // fan triangulation of the current polygon

	// reused buffers
	poly        []clipVertex // current clip polygon
	polyTmp     []clipVertex // scratch polygon for clipping
	proj        []projVertex // projected clip polygon
	outline     path.Data    // device-space outlines
	cover       []float32    // cover change per pixel; reused as output
	area        []float32    // area within pixel
	edges       []edge       // edge list for the current outline
	activeIdx   []int        // indices of active edges
	rowHasEdges []bool       // per-scanline flag for the 2D buffer approach

	// antialiasing accumulator, one entry per frame pixel
	aaPix   []float32 // premultiplied RGB and alpha, 4 per pixel
	aaDepth []float32 // nearest depth of any contribution
	aaFront []float32 // depth of the fragment which wrote the attributes

	edgeBBoxFirst bool // true if no edges were added yet
	edgeXMin      float64
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewRasterizer returns a Rasterizer for a width×height pixel target.
// The viewport maps the square [-1, 1]×[-1, 1] onto the whole target,
// with y pointing up.
func NewRasterizer(width, height int) *Rasterizer {
	w := float64(width)
	h := float64(height)
	return &Rasterizer{
		Transform: mgl64.Ident4(),
		Viewport:  matrix.Matrix{w / 2, 0, 0, -h / 2, w / 2, h / 2},
		Clip:      rect.Rect{LLx: 0, LLy: 0, URx: w, URy: h},
		Flatness:  defaultFlatness,

		smallPathThreshold: smallPathThreshold,
	}
}

// projVertex is a clip polygon vertex after the perspective divide.
type projVertex struct {
	p    vec.Vec2 // device coordinates
	z    float64  // window depth in [0, 1]
	invW float64  // 1/w in clip space
	attr [numAttrs]float64

	clipEdge bool
}

// Render draws the mesh into f. If r.Textured is set, tex must be
// non-nil and the mesh must have texture coordinates.
//
// Render does not clear f, so that several meshes can be combined into
// one frame.
func (r *Rasterizer) Render(m *Mesh, tex *Texture, f *Frame) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if r.Textured {
		if tex == nil {
			return ErrNoTexture
		}
		if err := tex.validate(); err != nil {
			return err
		}
		if m.TCoords == nil {
			return fmt.Errorf("%w: textured render without texture coordinates",
				ErrTCoordBuffer)
		}
	}
	if err := r.checkFrame(f); err != nil {
		return err
	}

	r.begin()
	r.tex = tex
	r.frame = f
	defer func() {
		r.tex = nil
		r.frame = nil
	}()
	if r.Antialias {
		r.beginAA(f.Width * f.Height)
	}

	for t := range m.NumTriangles() {
		r.Stats.Triangles++
		if !r.prepareTriangle(m, t) {
			continue
		}
		r.drawPolygon(int32(t))
	}

	if r.Antialias {
		r.resolveAA()
	}

	Logger().Debug("render",
		slog.Int("triangles", r.Stats.Triangles),
		slog.Int("clipped", r.Stats.Clipped),
		slog.Int("culled", r.Stats.Culled),
		slog.Int("discarded", r.Stats.Discarded),
		slog.Int("fragments", r.Stats.Fragments))
	return nil
}

// Silhouette returns the visible part of every triangle as a closed
// polygon in device coordinates, after clipping and culling. All polygons
// have the same orientation, so filling the path with the nonzero rule
// gives the union of the triangles.
func (r *Rasterizer) Silhouette(m *Mesh) (*path.Data, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	r.begin()

	res := &path.Data{}
	for t := range m.NumTriangles() {
		r.Stats.Triangles++
		if !r.prepareTriangle(m, t) {
			continue
		}

		n := len(r.proj)
		reverse := polygonArea(r.proj) < 0
		for i := range n {
			k := i
			if reverse {
				k = n - 1 - i
			}
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			res.Cmds = append(res.Cmds, cmd)
			res.Coords = append(res.Coords, r.proj[k].p)
		}
		res.Cmds = append(res.Cmds, path.CmdClose)
	}
	return res, nil
}

// begin resets per-call state.
func (r *Rasterizer) begin() {
	r.Stats = Stats{}
	r.transform = r.Transform
	if r.transform == (mgl64.Mat4{}) {
		r.transform = mgl64.Ident4()
	}
}

// prepareTriangle clips, projects and culls triangle t. On success the
// projected polygon is in r.proj.
func (r *Rasterizer) prepareTriangle(m *Mesh, t int) bool {
	r.loadTriangle(m, t)
	if r.clipPoly() {
		r.Stats.Clipped++
	}
	if len(r.poly) == 0 {
		r.Stats.Discarded++
		return false
	}

	r.project()
	area := polygonArea(r.proj)
	if area == 0 {
		r.Stats.Discarded++
		return false
	}
	if r.culled(area) {
		r.Stats.Culled++
		return false
	}
	return true
}

// project applies the perspective divide and the viewport transform to
// r.poly, storing the result in r.proj.
func (r *Rasterizer) project() {
	V := r.Viewport
	r.proj = r.proj[:0]
	for i := range r.poly {
		v := &r.poly[i]
		invW := 1 / v.pos[3]
		x := v.pos[0] * invW
		y := v.pos[1] * invW
		z := v.pos[2] * invW
		r.proj = append(r.proj, projVertex{
			p: vec.Vec2{
				X: V[0]*x + V[2]*y + V[4],
				Y: V[1]*x + V[3]*y + V[5],
			},
			z:        (z + 1) / 2,
			invW:     invW,
			attr:     v.attr,
			clipEdge: v.clipEdge,
		})
	}
}

// culled reports whether a polygon with the given signed device-space
// area is removed by the cull mode.
func (r *Rasterizer) culled(area float64) bool {
	if r.Cull == CullNone {
		return false
	}
	// The viewport may flip the orientation.
	V := r.Viewport
	det := V[0]*V[3] - V[1]*V[2]
	front := area*det > 0
	if r.Cull == CullBack {
		return !front
	}
	return front
}

// polygonArea returns the signed area of the polygon, positive for
// counter-clockwise order in a y-up coordinate system.
func polygonArea(poly []projVertex) float64 {
	var sum float64
	n := len(poly)
	for i := range n {
		a := poly[i].p
		b := poly[(i+1)%n].p
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// checkFrame verifies that f is a well-formed frame containing the clip
// rectangle.
func (r *Rasterizer) checkFrame(f *Frame) error {
	n := f.Width * f.Height
	if f.Width <= 0 || f.Height <= 0 ||
		len(f.Pixels) != 4*n || len(f.Color) != 3*n || len(f.Coords) != 3*n ||
		len(f.Depth) != n || len(f.Triangle) != n {
		return fmt.Errorf("%w: malformed %dx%d frame", ErrFrameSize, f.Width, f.Height)
	}
	c := r.Clip
	if c.LLx < 0 || c.LLy < 0 || c.URx > float64(f.Width) || c.URy > float64(f.Height) {
		return fmt.Errorf("%w: clip [%g,%g]x[%g,%g], frame %dx%d",
			ErrFrameSize, c.LLx, c.URx, c.LLy, c.URy, f.Width, f.Height)
	}
	return nil
}
