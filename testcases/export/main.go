// Command export writes the test case definitions to JSON, for use by
// external reference renderers.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"seehuhn.de/go/meshrender/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Points    [][]float64 `json:"points"`
	Colors    [][]float32 `json:"colors"`
	TCoords   [][]float32 `json:"tcoords,omitempty"`
	Triangles [][]uint32  `json:"triangles"`
	Transform [][]float64 `json:"transform"`
	TexWidth  int         `json:"tex_width,omitempty"`
	TexHeight int         `json:"tex_height,omitempty"`
	Textured  bool        `json:"textured,omitempty"`
	CullBack  bool        `json:"cull_back,omitempty"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	transform := tc.Transform
	if transform == (mgl64.Mat4{}) {
		transform = mgl64.Ident4()
	}

	jtc := jsonTestCase{
		Name:      category + "_" + tc.Name,
		Width:     tc.Width,
		Height:    tc.Height,
		Points:    chunks(tc.Points, 4),
		Colors:    chunks(tc.Colors, 3),
		TCoords:   chunks(tc.TCoords, 2),
		Triangles: chunks(tc.Trilist, 3),
		TexWidth:  tc.TexWidth,
		TexHeight: tc.TexHeight,
		Textured:  tc.Textured,
		CullBack:  tc.CullBack,
	}

	// row-major, for readability
	for row := range 4 {
		r := transform.Row(row)
		jtc.Transform = append(jtc.Transform, r[:])
	}
	return jtc
}

// chunks splits a flat buffer into groups of n values.
func chunks[T any](flat []T, n int) [][]T {
	if flat == nil {
		return nil
	}
	return slices.Collect(slices.Chunk(flat, n))
}
