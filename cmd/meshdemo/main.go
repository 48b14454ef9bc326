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

// Command meshdemo renders a single textured triangle and reports the
// proportion of non-black values in the rendered color buffer.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/meshrender"
	"seehuhn.de/go/meshrender/testcases"
)

func main() {
	var (
		width     = flag.Int("width", testcases.DriverOutputWidth, "output width in pixels")
		height    = flag.Int("height", testcases.DriverOutputHeight, "output height in pixels")
		texFile   = flag.String("texture", "", "texture image (png, jpeg, bmp, tiff or webp); default: four color bands")
		texSize   = flag.Int("texsize", 0, "resample the texture to `n`×n texels")
		antialias = flag.Bool("aa", false, "antialias triangle edges")
		filter    = flag.String("filter", "nearest", "texture filter: nearest or bilinear")
		wrap      = flag.String("wrap", "clamp", "texture wrap mode: clamp or repeat")
		cull      = flag.String("cull", "none", "face culling: none, back or front")
		persp     = flag.Bool("persp", false, "view the triangle through a perspective camera")
		wireframe = flag.Bool("wireframe", false, "draw triangle edges")
		output    = flag.String("o", "", "write the rendered image to this PNG file")
		scale     = flag.Int("scale", 1, "enlarge the PNG output by this factor")
		verbose   = flag.Bool("v", false, "log render statistics")
	)
	flag.Parse()

	if err := checkSizes(*width, *height, *scale, *texSize); err != nil {
		log.Fatal(err)
	}

	if *verbose {
		meshrender.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	mesh, err := meshrender.NewMesh(
		testcases.DriverPoints(),
		testcases.DriverColors(),
		testcases.DriverTCoords(),
		testcases.DriverTrilist())
	if err != nil {
		log.Fatal(err)
	}

	tex, err := loadTexture(*texFile, *texSize)
	if err != nil {
		log.Fatalf("texture: %v", err)
	}

	r := meshrender.NewRasterizer(*width, *height)
	r.Textured = true
	r.Antialias = *antialias
	if r.Filter, err = parseFilter(*filter); err != nil {
		log.Fatal(err)
	}
	if r.Wrap, err = parseWrap(*wrap); err != nil {
		log.Fatal(err)
	}
	if r.Cull, err = parseCull(*cull); err != nil {
		log.Fatal(err)
	}
	if *persp {
		r.Transform = testcases.Camera(float64(*width) / float64(*height))
	}

	frame := meshrender.NewFrame(*width, *height)
	if err := r.Render(mesh, tex, frame); err != nil {
		log.Fatalf("render: %v", err)
	}
	if *wireframe {
		if err := r.Wireframe(mesh, frame, meshrender.DefaultWireStyle); err != nil {
			log.Fatalf("wireframe: %v", err)
		}
	}

	fmt.Println("Proportion non-black:", frame.NonBlackRatio())

	if *output != "" {
		if err := writePNG(*output, frame, *scale); err != nil {
			log.Fatalf("failed to save: %v", err)
		}
		log.Printf("image saved to %s (%dx%d)", *output, *width**scale, *height**scale)
	}
}

// maxSize is the largest accepted image dimension in pixels, after
// scaling.
const maxSize = 1 << 14

// checkSizes validates the size flags before any buffers are allocated.
func checkSizes(width, height, scale, texSize int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid output size %dx%d", width, height)
	}
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}
	if width > maxSize/scale || height > maxSize/scale {
		return fmt.Errorf("output size %dx%d at scale %d exceeds %d pixels",
			width, height, scale, maxSize)
	}
	if texSize < 0 || texSize > maxSize {
		return fmt.Errorf("invalid texture size %d", texSize)
	}
	return nil
}

// loadTexture reads a texture file, or returns the band texture if name
// is empty. If size is positive, the texture is resampled to size×size.
func loadTexture(name string, size int) (*meshrender.Texture, error) {
	var tex *meshrender.Texture
	if name == "" {
		w, h := testcases.DriverTextureWidth, testcases.DriverTextureHeight
		var err error
		tex, err = meshrender.NewTexture(w, h, testcases.BandTexture(w, h))
		if err != nil {
			return nil, err
		}
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tex = meshrender.TextureFromImage(img)
	}

	if size > 0 {
		return tex.Resize(size, size, draw.BiLinear)
	}
	return tex, nil
}

func writePNG(name string, frame *meshrender.Frame, scale int) (err error) {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if scale <= 1 {
		return frame.WritePNG(out)
	}

	src := frame.Image()
	b := src.Bounds()
	big := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), src, b, draw.Src, nil)
	enlarged := &meshrender.Frame{
		Width:  big.Rect.Dx(),
		Height: big.Rect.Dy(),
		Pixels: big.Pix,
	}
	return enlarged.WritePNG(out)
}

func parseFilter(s string) (meshrender.Filter, error) {
	for _, f := range []meshrender.Filter{meshrender.Nearest, meshrender.Bilinear} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

func parseWrap(s string) (meshrender.Wrap, error) {
	for _, w := range []meshrender.Wrap{meshrender.ClampToEdge, meshrender.Repeat} {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown wrap mode %q", s)
}

func parseCull(s string) (meshrender.CullMode, error) {
	for _, c := range []meshrender.CullMode{meshrender.CullNone, meshrender.CullBack, meshrender.CullFront} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown cull mode %q", s)
}
