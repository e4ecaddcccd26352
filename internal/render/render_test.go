/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	lib, err := textlayout.GoFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	return New(lib, textlayout.BasicMeasurer{})
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func rectEl(x, y, w, h float64, fill scene.Fill) scene.Element {
	return scene.Element{ID: "r", Shape: &scene.Rect{X: x, Y: y, W: w, H: h}, Fill: fill, Opacity: 1}
}

func TestLayerScalesAndStaysTransparent(t *testing.T) {
	r := newRenderer(t)
	f := Frame{Width: 100, Height: 50, Elements: []scene.Element{rectEl(10, 10, 30, 20, scene.Solid("#ff0000"))}}
	img := r.Layer(f, 2)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("layer size %v", b)
	}
	if c := rgba(img, 50, 40); c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("inside pixel %v", c)
	}
	if c := rgba(img, 150, 80); c.A != 0 {
		t.Fatalf("outside pixel %v", c)
	}
}

func TestElementOpacityComposites(t *testing.T) {
	r := newRenderer(t)
	el := rectEl(0, 0, 20, 20, scene.Solid("#0000ff"))
	el.Opacity = 0.5
	img := r.Layer(Frame{Width: 40, Height: 40, Elements: []scene.Element{el}}, 1)
	c := rgba(img, 10, 10)
	if c.A < 125 || c.A > 130 {
		t.Fatalf("alpha %d, want about 128", c.A)
	}
	el.Opacity = 0
	img = r.Layer(Frame{Width: 40, Height: 40, Elements: []scene.Element{el}}, 1)
	if rgba(img, 10, 10).A != 0 {
		t.Fatalf("invisible element painted")
	}
}

func TestGradientRunsAlongWidth(t *testing.T) {
	r := newRenderer(t)
	el := rectEl(0, 0, 100, 10, scene.Linear(scene.Gradient{Start: "#000000", End: "#ffffff"}))
	img := r.Layer(Frame{Width: 100, Height: 10, Elements: []scene.Element{el}}, 1)
	if c := rgba(img, 5, 5); c.R > 40 {
		t.Fatalf("start of gradient %v", c)
	}
	if c := rgba(img, 95, 5); c.R < 215 {
		t.Fatalf("end of gradient %v", c)
	}
}

func TestImageFillIsClippedToShape(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = []uint8{0, 255, 0, 255}[i%4]
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	bm, err := bitmap.Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	r := newRenderer(t)
	el := rectEl(10, 10, 40, 20, scene.ImageFill(bm.Ref))
	img := r.Layer(Frame{Width: 60, Height: 60, Elements: []scene.Element{el}}, 1)
	if c := rgba(img, 30, 20); c.G < 240 || c.R > 15 {
		t.Fatalf("fill pixel %v", c)
	}
	// the covering bitmap is 40x40 but the outline stops at y=10
	if c := rgba(img, 30, 4); c.A != 0 {
		t.Fatalf("image leaked outside the rect: %v", c)
	}
}

func TestBrokenBitmapIsSkipped(t *testing.T) {
	r := newRenderer(t)
	el := rectEl(0, 0, 10, 10, scene.ImageFill("data:image/png;base64,AAAA"))
	img := r.Layer(Frame{Width: 20, Height: 20, Elements: []scene.Element{el}}, 1)
	if rgba(img, 5, 5).A != 0 {
		t.Fatalf("broken bitmap painted")
	}
	if _, cached := r.images["data:image/png;base64,AAAA"]; !cached {
		t.Fatalf("failed decode not remembered")
	}
}

func TestTextPaintsGlyphs(t *testing.T) {
	r := newRenderer(t)
	el := scene.Element{ID: "t", Shape: &scene.Text{X: 10, Y: 40, Content: "Hello", FontSize: 24}, Fill: scene.Solid("#000000"), Opacity: 1}
	img := r.Layer(Frame{Width: 120, Height: 60, Elements: []scene.Element{el}}, 1)
	inked := 0
	for y := 15; y < 41; y++ {
		for x := 10; x < 80; x++ {
			if rgba(img, x, y).A > 0 {
				inked++
			}
		}
	}
	if inked < 50 {
		t.Fatalf("only %d inked pixels above the baseline", inked)
	}
	for x := 0; x < 120; x++ {
		if rgba(img, x, 55).A != 0 {
			t.Fatalf("ink below the descender line at x=%d", x)
		}
	}
}

func TestSurfaceBackgroundAndSelection(t *testing.T) {
	r := newRenderer(t)
	f := Frame{
		Width: 200, Height: 100, Background: "#0f172a",
		Elements:  []scene.Element{rectEl(50, 30, 40, 20, scene.Solid("#ffffff"))},
		Selection: "r",
	}
	img := r.Surface(f, 1)
	if c := rgba(img, 190, 90); c != (color.RGBA{0x0f, 0x17, 0x2a, 255}) {
		t.Fatalf("background %v", c)
	}
	// se grip is centered on (90,50)
	if c := rgba(img, 92, 52); c.B < 200 || c.R > 120 {
		t.Fatalf("grip pixel %v", c)
	}
}

func TestRotatedSwapsSides(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	out := Rotated(img, 90)
	if b := out.Bounds(); b.Dx() != 10 || b.Dy() != 40 {
		t.Fatalf("rotated bounds %v", b)
	}
	if out := Rotated(img, 180); out.Bounds().Dx() != 40 {
		t.Fatalf("half turn changed width")
	}
	if Rotated(img, 0) != image.Image(img) {
		t.Fatalf("zero rotation copied")
	}
}
