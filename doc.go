// Package meshrender renders textured triangle meshes on the CPU.
//
// A [Mesh] stores homogeneous vertex positions, per-vertex colors,
// texture coordinates and a triangle list in flat buffers. A [Rasterizer]
// transforms the vertices, clips the triangles against the view volume,
// and fills the visible pixels of a [Frame]:
//
//   - Pixels: the RGBA image, either textured or vertex colored,
//   - Color: the interpolated per-vertex color, as float values,
//   - Coords: the interpolated vertex position ("shape image"),
//   - Depth and Triangle: the depth buffer and the visible triangle.
//
// Attributes are interpolated perspective-correctly. Pixel coverage is
// either point sampled with the top-left fill rule or, with
// Rasterizer.Antialias set, computed exactly from the pixel area inside
// each clipped triangle. Antialiased coverage is collected across all
// triangles of one Render call, so that shared edges do not show.
package meshrender
