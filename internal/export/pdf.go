/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

// pdfDoc carries per-document state while elements are drawn.
type pdfDoc struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	m      textlayout.Measurer
	images map[string]string
}

// PDF renders c as a one-page vector document. One canvas pixel maps to
// one point; the page trades sides for 90 and 270 degree rotations.
// Text uses the built-in Helvetica, so widths differ from the editor's.
func PDF(c *scene.Canvas, m textlayout.Measurer) ([]byte, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if m == nil {
		m = textlayout.Default()
	}
	w, h := float64(c.Width), float64(c.Height)
	pw, ph := w, h
	if c.Rotation.Swapped() {
		pw, ph = h, w
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetTitle(c.Name, true)
	pdf.SetCreator("minicanvas", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pw, Ht: ph})
	doc := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), m: m, images: map[string]string{}}

	bg := c.Background
	if bg == "" {
		bg = scene.DefaultBackground
	}
	setFill(pdf, bg)
	pdf.Rect(0, 0, pw, ph, "F")
	if c.BackgroundImage != "" {
		name, err := doc.image(c.BackgroundImage)
		if err != nil {
			return nil, fmt.Errorf("background image: %w", err)
		}
		pdf.ImageOptions(name, 0, 0, pw, ph, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.TransformBegin()
	if c.Rotation != 0 {
		// applied in reverse: move the canvas center onto the page center, then turn
		pdf.TransformRotate(-float64(c.Rotation), pw/2, ph/2)
		pdf.TransformTranslate((pw-w)/2, (ph-h)/2)
	}
	for _, e := range c.Elements {
		doc.element(e)
	}
	pdf.TransformEnd()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *pdfDoc) element(e scene.Element) {
	pdf := d.pdf
	pdf.SetAlpha(math.Max(0, math.Min(1, e.Opacity)), "Normal")
	defer pdf.SetAlpha(1, "Normal")

	stroked := setDraw(pdf, e.Stroke) && e.StrokeWidth > 0
	pdf.SetLineWidth(e.StrokeWidth)
	switch s := e.Shape.(type) {
	case *scene.Rect, *scene.Ellipse:
		d.fillShape(e)
		if stroked {
			outlinePDF(pdf, s, "D")
		}
	case *scene.Line:
		if stroked {
			pdf.Line(s.X1, s.Y1, s.X2, s.Y2)
		}
	case *scene.Path:
		if stroked && len(s.Points) > 1 {
			pdf.MoveTo(s.Points[0].X, s.Points[0].Y)
			for _, p := range s.Points[1:] {
				pdf.LineTo(p.X, p.Y)
			}
			pdf.DrawPath("D")
		}
	case *scene.Text:
		style := ""
		if s.Bold {
			style += "B"
		}
		if s.Italic {
			style += "I"
		}
		if s.Underline {
			style += "U"
		}
		c, _ := scene.ParseColor(e.Fill.TextColor())
		pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		pdf.SetFont("Helvetica", style, s.FontSize)
		pdf.Text(s.X, s.Y, d.tr(s.Content))
	default:
		panic(fmt.Sprintf("export: unknown shape %T", e.Shape))
	}
}

func (d *pdfDoc) fillShape(e scene.Element) {
	pdf := d.pdf
	box := scene.BoundingBoxWith(e, d.m)
	switch e.Fill.Kind {
	case scene.FillSolid:
		if setFill(pdf, e.Fill.Color) {
			outlinePDF(pdf, e.Shape, "F")
		}
	case scene.FillGradient:
		g := e.Fill.Gradient
		if g == nil {
			return
		}
		a, b := scene.MustColor(g.Start), scene.MustColor(g.End)
		rad := g.Angle * math.Pi / 180
		clipPDF(pdf, e.Shape)
		// gradient vectors are relative to the box with the origin bottom-left
		pdf.LinearGradient(box.X, box.Y, box.W, box.H,
			int(a.R), int(a.G), int(a.B), int(b.R), int(b.G), int(b.B),
			0, 1, math.Cos(rad), 1-math.Sin(rad))
		pdf.ClipEnd()
	case scene.FillImage:
		name, err := d.image(e.Fill.Image)
		if err != nil {
			return
		}
		info := pdf.GetImageInfo(name)
		if info == nil || info.Width() == 0 || info.Height() == 0 {
			return
		}
		r := coverBox(info.Width(), info.Height(), box)
		clipPDF(pdf, e.Shape)
		pdf.ImageOptions(name, r.X, r.Y, r.W, r.H, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.ClipEnd()
	}
}

// coverBox scales an iw×ih image to cover box, centered.
func coverBox(iw, ih float64, box vector.Rect) vector.Rect {
	k := math.Max(box.W/iw, box.H/ih)
	w, h := iw*k, ih*k
	return vector.R(box.X+(box.W-w)/2, box.Y+(box.H-h)/2, w, h)
}

// image registers the bitmap behind ref once per document as PNG.
func (d *pdfDoc) image(ref string) (string, error) {
	if name, ok := d.images[ref]; ok {
		return name, nil
	}
	img, err := bitmap.DecodeRef(ref)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	name := fmt.Sprintf("img%d", len(d.images))
	d.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := d.pdf.Error(); err != nil {
		return "", fmt.Errorf("register image: %w", err)
	}
	d.images[ref] = name
	return name, nil
}

// outlinePDF draws the outline of a rect or ellipse with style "F" or "D".
func outlinePDF(pdf *gofpdf.Fpdf, sh scene.Shape, style string) {
	switch s := sh.(type) {
	case *scene.Rect:
		if r := math.Min(s.Radius, math.Min(s.W, s.H)/2); r > 0 {
			roundedRect(pdf, s.X, s.Y, s.W, s.H, r, style)
		} else {
			pdf.Rect(s.X, s.Y, s.W, s.H, style)
		}
	case *scene.Ellipse:
		pdf.Ellipse(s.CX, s.CY, s.RX, s.RY, 0, style)
	}
}

func clipPDF(pdf *gofpdf.Fpdf, sh scene.Shape) {
	switch s := sh.(type) {
	case *scene.Rect:
		pdf.ClipRoundedRect(s.X, s.Y, s.W, s.H, math.Min(s.Radius, math.Min(s.W, s.H)/2), false)
	case *scene.Ellipse:
		pdf.ClipEllipse(s.CX, s.CY, s.RX, s.RY, false)
	}
}

// roundedRect traces a rectangle with quarter-circle corners of radius r.
func roundedRect(pdf *gofpdf.Fpdf, x, y, w, h, r float64, style string) {
	const k = 0.5523 // cubic approximation of a quarter circle
	c := r * k
	pdf.MoveTo(x+r, y)
	pdf.LineTo(x+w-r, y)
	pdf.CurveBezierCubicTo(x+w-r+c, y, x+w, y+r-c, x+w, y+r)
	pdf.LineTo(x+w, y+h-r)
	pdf.CurveBezierCubicTo(x+w, y+h-r+c, x+w-r+c, y+h, x+w-r, y+h)
	pdf.LineTo(x+r, y+h)
	pdf.CurveBezierCubicTo(x+r-c, y+h, x, y+h-r+c, x, y+h-r)
	pdf.LineTo(x, y+r)
	pdf.CurveBezierCubicTo(x, y+r-c, x+r-c, y, x+r, y)
	pdf.ClosePath()
	pdf.DrawPath(style)
}

// setFill and setDraw report false for transparent or unparsable colors.
func setFill(pdf *gofpdf.Fpdf, s string) bool {
	c, ok := scene.ParseColor(s)
	if !ok || c.A == 0 {
		return false
	}
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	return true
}

func setDraw(pdf *gofpdf.Fpdf, s string) bool {
	c, ok := scene.ParseColor(s)
	if !ok || c.A == 0 {
		return false
	}
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	return true
}

// WritePDF writes the PDF of c to dir as "{name}.pdf".
func WritePDF(c *scene.Canvas, dir string) (string, error) {
	data, err := PDF(c, nil)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	name := filepath.Join(dir, fileSafe(c.Name)+".pdf")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return name, nil
}
