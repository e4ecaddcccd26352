/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

// style scales the alpha of fill and stroke; previews paint translucent.
type style struct {
	fill, stroke float64
}

// paint draws e with its opacity applied to the element as a whole, the way
// a group opacity composites: overlapping fill and stroke do not add up.
func (r *Renderer) paint(dc *gg.Context, e scene.Element, scale float64, st style) {
	op := e.Opacity
	switch {
	case op <= 0:
		return
	case op >= 1:
		r.paintShape(dc, e, scale, st)
		return
	}
	layer := gg.NewContext(dc.Width(), dc.Height())
	layer.Scale(scale, scale)
	r.paintShape(layer, e, scale, st)
	dst := dc.Image().(*image.RGBA)
	mask := image.NewUniform(color.Alpha{A: uint8(op*255 + 0.5)})
	xdraw.DrawMask(dst, dst.Bounds(), layer.Image(), image.Point{}, mask, image.Point{}, xdraw.Over)
}

func (r *Renderer) paintShape(dc *gg.Context, e scene.Element, scale float64, st style) {
	switch s := e.Shape.(type) {
	case *scene.Rect, *scene.Ellipse:
		outline(dc, s)
		r.fill(dc, e, scale, st)
		stroke(dc, e, scale, st)
	case *scene.Line:
		dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
		stroke(dc, e, scale, st)
	case *scene.Path:
		if len(s.Points) == 0 {
			return
		}
		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		stroke(dc, e, scale, st)
	case *scene.Text:
		r.paintText(dc, e, s, scale, st)
	default:
		panic(fmt.Sprintf("render: unknown shape %T", e.Shape))
	}
}

// outline adds the closed outline of a fillable shape to the current path.
func outline(dc *gg.Context, sh scene.Shape) {
	switch s := sh.(type) {
	case *scene.Rect:
		if rad := math.Min(s.Radius, math.Min(s.W, s.H)/2); rad > 0 {
			dc.DrawRoundedRectangle(s.X, s.Y, s.W, s.H, rad)
		} else {
			dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		}
	case *scene.Ellipse:
		dc.DrawEllipse(s.CX, s.CY, s.RX, s.RY)
	}
}

// fill paints the interior of the current path and keeps the path for the stroke.
func (r *Renderer) fill(dc *gg.Context, e scene.Element, scale float64, st style) {
	switch e.Fill.Kind {
	case scene.FillSolid:
		dc.SetColor(scene.WithAlpha(scene.MustColor(e.Fill.Color), st.fill))
		dc.FillPreserve()
	case scene.FillGradient:
		if e.Fill.Gradient == nil {
			return
		}
		box := scene.BoundingBoxWith(e, r.measure)
		dc.SetFillStyle(linear(*e.Fill.Gradient, box, scale, st.fill))
		dc.FillPreserve()
	case scene.FillImage:
		img := r.bitmap(e.Fill.Image)
		if img == nil {
			return
		}
		box := scene.BoundingBoxWith(e, r.measure)
		cover(dc, e.Shape, img, box, scale, st.fill)
	}
}

// linear builds the gradient in device pixels. The axis runs along the box
// width at angle 0 and turns with the angle in box-relative units.
func linear(g scene.Gradient, box vector.Rect, scale, alpha float64) gg.Gradient {
	a := gg.Radians(g.Angle)
	x0, y0 := box.X*scale, box.Y*scale
	x1 := (box.X + box.W*math.Cos(a)) * scale
	y1 := (box.Y + box.H*math.Sin(a)) * scale
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	grad.AddColorStop(0, scene.WithAlpha(scene.MustColor(g.Start), alpha))
	grad.AddColorStop(1, scene.WithAlpha(scene.MustColor(g.End), alpha))
	return grad
}

// cover scales img to cover box, centered, and paints it through a mask of
// the shape outline.
func cover(dc *gg.Context, sh scene.Shape, img image.Image, box vector.Rect, scale, alpha float64) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 || box.W <= 0 || box.H <= 0 {
		return
	}
	k := math.Max(box.W/iw, box.H/ih)
	w, h := iw*k, ih*k
	x, y := box.X+(box.W-w)/2, box.Y+(box.H-h)/2

	m := gg.NewContext(dc.Width(), dc.Height())
	m.Scale(scale, scale)
	outline(m, sh)
	m.SetColor(color.NRGBA{A: uint8(math.Min(1, math.Max(0, alpha))*255 + 0.5)})
	m.Fill()

	xdraw.CatmullRom.Scale(dc.Image().(*image.RGBA), devRect(x, y, w, h, scale), img, b, xdraw.Over,
		&xdraw.Options{DstMask: m.AsMask()})
}

// stretch paints img over box ignoring its aspect ratio.
func (r *Renderer) stretch(dc *gg.Context, img image.Image, box vector.Rect, scale float64) {
	xdraw.CatmullRom.Scale(dc.Image().(*image.RGBA), devRect(box.X, box.Y, box.W, box.H, scale), img, img.Bounds(), xdraw.Over, nil)
}

func devRect(x, y, w, h, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x*scale)), int(math.Round(y*scale)),
		int(math.Round((x+w)*scale)), int(math.Round((y+h)*scale)),
	)
}

// stroke outlines the current path, or drops it when e has no visible stroke.
func stroke(dc *gg.Context, e scene.Element, scale float64, st style) {
	c, ok := scene.ParseColor(e.Stroke)
	if !ok || c.A == 0 || e.StrokeWidth <= 0 {
		dc.ClearPath()
		return
	}
	dc.SetColor(scene.WithAlpha(c, st.stroke))
	dc.SetLineWidth(e.StrokeWidth * scale)
	dc.Stroke()
}

// paintText sets one line of text with its baseline at Y. Text takes a flat
// color: the solid color or the gradient start; image fills paint black.
func (r *Renderer) paintText(dc *gg.Context, e scene.Element, t *scene.Text, scale float64, st style) {
	if t.Content == "" || e.Fill.Kind == scene.FillNone {
		return
	}
	spec := textlayout.FontSpec{Size: t.FontSize, Bold: t.Bold, Italic: t.Italic}
	face, err := r.face(spec, scale)
	if err != nil {
		r.log.Warn("font unavailable", slog.Any("err", err))
		return
	}
	col := scene.MustColor(e.Fill.TextColor())
	dc.SetColor(scene.WithAlpha(col, st.fill))
	dc.SetFontFace(face)
	dc.DrawString(t.Content, t.X, t.Y)
	if t.Underline {
		size := spec.Size
		if size <= 0 {
			size = textlayout.DefaultSize
		}
		thick := math.Max(1/scale, size/16)
		dc.DrawRectangle(t.X, t.Y+size/10, r.measure.Width(spec, t.Content), thick)
		dc.Fill()
	}
}
