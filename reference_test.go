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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/draw"

	"seehuhn.de/go/meshrender/testcases"
)

// TestSilhouetteMatchesRender checks the antialiased silhouette of every
// test case against point-sampled rendering: fully covered pixels must
// be drawn and pixels outside the silhouette must stay empty.
func TestSilhouetteMatchesRender(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, approach := range approaches {
				t.Run(category+"_"+tc.Name+"_"+approach.name, func(t *testing.T) {
					coverage := silhouetteCoverage(t, tc, approach.threshold)
					f, _ := render(t, tc)

					bad := 0
					for i, c := range coverage {
						drawn := f.Triangle[i] >= 0
						if (c > 1-1e-4 && !drawn) || (c < 1e-4 && drawn) {
							if bad < 5 {
								t.Errorf("pixel (%d, %d): coverage %g, drawn=%t",
									i%tc.Width, i/tc.Width, c, drawn)
							}
							bad++
						}
					}
					if bad > 0 {
						t.Errorf("%d inconsistent pixels", bad)
					}
				})
			}
		}
	}
}

// TestAgainstReference compares the antialiased silhouettes of all test
// cases with images rendered by Ghostscript from the PDF files written
// by testcases/genpdf.
func TestAgainstReference(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			baseName := category + "_" + tc.Name
			for _, approach := range approaches {
				name := baseName + "_" + approach.name
				t.Run(name, func(t *testing.T) {
					ref, err := readReference(filepath.Join("testdata", "reference", baseName+".png"))
					if errors.Is(err, fs.ErrNotExist) {
						t.Skip("no reference image; run testcases/genpdf")
					} else if err != nil {
						t.Fatal(err)
					}
					if ref.Rect.Dx() != tc.Width || ref.Rect.Dy() != tc.Height {
						t.Fatalf("reference is %dx%d, want %dx%d",
							ref.Rect.Dx(), ref.Rect.Dy(), tc.Width, tc.Height)
					}

					actual := image.NewGray(ref.Rect)
					for i, c := range silhouetteCoverage(t, tc, approach.threshold) {
						actual.Pix[i] = byte(min(c, 1)*255 + 0.5)
					}

					if err := compareCoverage(ref, actual); err != nil {
						if serr := saveComparison(name, ref, actual); serr != nil {
							t.Log(serr)
						}
						t.Error(err)
					}
				})
			}
		}
	}
}

// silhouetteCoverage fills the silhouette of a test case and returns the
// coverage of every pixel.
func silhouetteCoverage(t *testing.T, tc testcases.TestCase, threshold int) []float32 {
	t.Helper()
	m, _, r := setup(t, tc)
	r.smallPathThreshold = threshold

	outline, err := r.Silhouette(m)
	if err != nil {
		t.Fatal(err)
	}
	return collectCoverage(r, outline, tc.Width, tc.Height)
}

// readReference decodes a PNG file into a grayscale image with its
// origin at (0, 0).
func readReference(name string) (*image.Gray, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
	return gray, nil
}

// compareCoverage accepts small differences along edges, where the
// reference renderer uses a different antialiasing method.
func compareCoverage(ref, actual *image.Gray) error {
	var total, large int
	for i, e := range ref.Pix {
		d := int(e) - int(actual.Pix[i])
		if d < 0 {
			d = -d
		}
		total += d
		if d > 64 {
			large++
		}
	}
	n := len(ref.Pix)
	if mean := float64(total) / float64(n); mean > 2 {
		return fmt.Errorf("mean difference %.2f exceeds 2", mean)
	}
	if 100*large > n {
		return fmt.Errorf("%d of %d pixels differ by more than 64", large, n)
	}
	return nil
}

// saveComparison writes debug/<name>.png, showing the rendered coverage
// on the left and the reference on the right.
func saveComparison(name string, ref, actual *image.Gray) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	w, h := ref.Rect.Dx(), ref.Rect.Dy()
	img := image.NewGray(image.Rect(0, 0, 2*w, h))
	draw.Draw(img, image.Rect(0, 0, w, h), actual, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w, 0, 2*w, h), ref, image.Point{}, draw.Src)

	out, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(out, img)
}
