/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render paints canvases onto raster surfaces with gg. It serves
// the live editor view (grid, previews, selection handles) and the raster
// export, which only needs the element layer.
package render

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/editor"
	applog "minicanvas/internal/log"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

// Frame is one canvas as the painter sees it. The overlay fields stay empty
// for exports.
type Frame struct {
	Width, Height   int
	Background      string
	BackgroundImage string
	Rotation        scene.Rotation
	Elements        []scene.Element

	// live view only
	Grid      bool
	Selection string
	Draft     *scene.Element
	Path      []vector.Pt
	Guides    []vector.Guide
}

// FromCanvas returns the export frame of c.
func FromCanvas(c *scene.Canvas) Frame {
	return Frame{
		Width:           c.Width,
		Height:          c.Height,
		Background:      c.Background,
		BackgroundImage: c.BackgroundImage,
		Rotation:        c.Rotation,
		Elements:        c.Elements,
	}
}

// FromSession captures the active canvas of s together with its in-flight
// overlays. ok is false when no canvas is open.
func FromSession(s *editor.Session) (f Frame, ok bool) {
	c := s.Canvas()
	if c == nil {
		return Frame{}, false
	}
	f = FromCanvas(c)
	f.Grid = s.ShowGrid()
	f.Selection = s.Selection()
	if d, ok := s.Draft(); ok {
		f.Draft = &d
	}
	f.Path = s.PathPoints()
	f.Guides = s.Guides()
	return f, true
}

type fontKey struct{ bold, italic bool }

type faceKey struct {
	style fontKey
	px    float64
}

// Renderer owns parsed fonts, sized faces and decoded bitmaps. Methods are
// safe for concurrent use; painting is serialized.
type Renderer struct {
	lib     *textlayout.FontLibrary
	measure textlayout.Measurer
	log     *slog.Logger

	mu     sync.Mutex
	fonts  map[fontKey]*truetype.Font
	faces  map[faceKey]font.Face
	images map[string]image.Image
}

// New returns a renderer drawing text from lib. m computes the element
// boxes used for image fills and the selection outline; it should measure
// with the same fonts.
func New(lib *textlayout.FontLibrary, m textlayout.Measurer) *Renderer {
	if m == nil {
		m = textlayout.Default()
	}
	return &Renderer{
		lib:     lib,
		measure: m,
		log:     applog.WithComponent("render"),
		fonts:   make(map[fontKey]*truetype.Font),
		faces:   make(map[faceKey]font.Face),
		images:  make(map[string]image.Image),
	}
}

// Default returns a renderer on the embedded Go fonts.
func Default() (*Renderer, error) {
	lib, err := textlayout.GoFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	return New(lib, textlayout.Default()), nil
}

// Layer paints only the elements of f onto a transparent surface of the
// canvas size times scale. Rotation is not applied.
func (r *Renderer) Layer(f Frame, scale float64) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	dc, scale := surface(f, scale)
	for _, e := range f.Elements {
		r.paint(dc, e, scale, style{fill: 1, stroke: 1})
	}
	return dc.Image()
}

// Surface paints the live view of f: background, bitmap backdrop, grid,
// elements, the shape being drawn, the pen path under construction, the
// selection outline with its grips and active alignment guides.
func (r *Renderer) Surface(f Frame, scale float64) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	dc, scale := surface(f, scale)
	w, h := float64(f.Width), float64(f.Height)

	dc.SetColor(scene.MustColor(orDefault(f.Background, scene.DefaultBackground)))
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	if f.BackgroundImage != "" {
		if img := r.bitmap(f.BackgroundImage); img != nil {
			r.stretch(dc, img, vector.R(0, 0, w, h), scale)
		}
	}
	if f.Grid {
		drawGrid(dc, w, h)
	}
	for _, e := range f.Elements {
		r.paint(dc, e, scale, style{fill: 1, stroke: 1})
	}
	if f.Draft != nil {
		r.paint(dc, *f.Draft, scale, style{fill: 0.5, stroke: 0.8})
	}
	drawPenPath(dc, f.Path)
	if i := scene.IndexOf(f.Elements, f.Selection); i >= 0 {
		drawSelection(dc, scene.BoundingBoxWith(f.Elements[i], r.measure), scale)
	}
	drawGuides(dc, f.Guides)
	return dc.Image()
}

// Rotated returns img turned clockwise by rot around its center. For 90 and
// 270 degrees width and height trade places.
func Rotated(img image.Image, rot scene.Rotation) image.Image {
	if rot == 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if rot.Swapped() {
		w, h = h, w
	}
	dc := gg.NewContext(w, h)
	dc.RotateAbout(gg.Radians(float64(rot)), float64(w)/2, float64(h)/2)
	dc.DrawImageAnchored(img, w/2, h/2, 0.5, 0.5)
	return dc.Image()
}

func surface(f Frame, scale float64) (*gg.Context, float64) {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(f.Width) * scale))
	h := int(math.Ceil(float64(f.Height) * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(scale, scale)
	return dc, scale
}

// face returns a truetype face for spec rendered at scale. gg positions
// glyphs through its matrix but never scales them, so the pixel size is
// baked into the face.
func (r *Renderer) face(spec textlayout.FontSpec, scale float64) (font.Face, error) {
	size := spec.Size
	if size <= 0 {
		size = textlayout.DefaultSize
	}
	fk := fontKey{spec.Bold, spec.Italic}
	key := faceKey{fk, size * scale}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	tt, ok := r.fonts[fk]
	if !ok {
		if r.lib == nil {
			return nil, errors.New("render: no font library")
		}
		data := r.lib.Data(spec.Bold, spec.Italic)
		if data == nil {
			return nil, errors.New("render: font library is empty")
		}
		var err error
		if tt, err = truetype.Parse(data); err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		r.fonts[fk] = tt
	}
	f := truetype.NewFace(tt, &truetype.Options{Size: key.px, DPI: 72, Hinting: font.HintingNone})
	r.faces[key] = f
	return f, nil
}

// bitmap decodes ref once. Failures are logged and cached as nil so a bad
// reference does not cost a decode per frame.
func (r *Renderer) bitmap(ref string) image.Image {
	if img, ok := r.images[ref]; ok {
		return img
	}
	img, err := bitmap.DecodeRef(ref)
	if err != nil {
		r.log.Warn("bitmap unavailable", slog.String("ref", abbrev(ref)), slog.Any("err", err))
	}
	r.images[ref] = img
	return img
}

func abbrev(ref string) string {
	if len(ref) > 48 {
		return ref[:48] + "…"
	}
	return ref
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
