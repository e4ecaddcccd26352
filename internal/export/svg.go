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
	"os"
	"path/filepath"
	"strings"

	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
)

// SVG serializes the vector view of c: gradient and image-pattern
// definitions, then every element in z-order, all inside a rotation group.
// m measures text for image-pattern boxes.
func SVG(c *scene.Canvas, m textlayout.Measurer) ([]byte, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if m == nil {
		m = textlayout.Default()
	}
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	w, h := float64(c.Width), float64(c.Height)
	bg := c.Background
	if bg == "" {
		bg = scene.DefaultBackground
	}
	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%gpx\" height=\"%gpx\" viewBox=\"0 0 %g %g\">\n", w, h, w, h)

	wf("  <defs>\n")
	for _, e := range c.Elements {
		switch e.Fill.Kind {
		case scene.FillGradient:
			if g := e.Fill.Gradient; g != nil && e.Filled() {
				wf("    <linearGradient id=\"grad_%s\" x1=\"0%%\" y1=\"0%%\" x2=\"100%%\" y2=\"0%%\" gradientTransform=\"rotate(%g)\">", escAttr(e.ID), g.Angle)
				wf("<stop offset=\"0%%\" stop-color=\"%s\"/><stop offset=\"100%%\" stop-color=\"%s\"/></linearGradient>\n", escAttr(g.Start), escAttr(g.End))
			}
		case scene.FillImage:
			if e.Fill.Image != "" && e.Filled() {
				b := scene.BoundingBoxWith(e, m)
				wf("    <pattern id=\"img_%s\" patternUnits=\"userSpaceOnUse\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\">", escAttr(e.ID), b.X, b.Y, b.W, b.H)
				wf("<image href=\"%s\" x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" preserveAspectRatio=\"xMidYMid slice\"/></pattern>\n", escAttr(e.Fill.Image), b.W, b.H)
			}
		}
	}
	wf("  </defs>\n")

	wf("  <g transform=\"rotate(%d %g %g)\">\n", int(c.Rotation), w/2, h/2)
	wf("    <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", w, h, escAttr(bg))
	if c.BackgroundImage != "" {
		wf("    <image href=\"%s\" x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" preserveAspectRatio=\"none\"/>\n", escAttr(c.BackgroundImage), w, h)
	}
	for _, e := range c.Elements {
		wf("    %s\n", svgElement(e))
	}
	wf("  </g>\n")
	wf("</svg>\n")

	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

func svgElement(e scene.Element) string {
	paint := fmt.Sprintf(`stroke="%s" stroke-width="%g" opacity="%g" data-id="%s"`, escAttr(e.Stroke), e.StrokeWidth, e.Opacity, escAttr(e.ID))
	switch s := e.Shape.(type) {
	case *scene.Rect:
		return fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" rx="%g" ry="%g" fill="%s" %s/>`,
			s.X, s.Y, s.W, s.H, s.Radius, s.Radius, svgFill(e), paint)
	case *scene.Ellipse:
		return fmt.Sprintf(`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s" %s/>`, s.CX, s.CY, s.RX, s.RY, svgFill(e), paint)
	case *scene.Line:
		return fmt.Sprintf(`<line x1="%g" y1="%g" x2="%g" y2="%g" %s/>`, s.X1, s.Y1, s.X2, s.Y2, paint)
	case *scene.Path:
		var d strings.Builder
		for i, p := range s.Points {
			if i == 0 {
				fmt.Fprintf(&d, "M %g %g", p.X, p.Y)
			} else {
				fmt.Fprintf(&d, " L %g %g", p.X, p.Y)
			}
		}
		return fmt.Sprintf(`<path d="%s" fill="none" %s/>`, d.String(), paint)
	case *scene.Text:
		weight, style, deco := "normal", "normal", "none"
		if s.Bold {
			weight = "bold"
		}
		if s.Italic {
			style = "italic"
		}
		if s.Underline {
			deco = "underline"
		}
		return fmt.Sprintf(`<text x="%g" y="%g" fill="%s" font-size="%g" font-family="Inter, system-ui" font-weight="%s" font-style="%s" text-decoration="%s" opacity="%g" data-id="%s">%s</text>`,
			s.X, s.Y, escAttr(e.Fill.CSSColor()), s.FontSize, weight, style, deco, e.Opacity, escAttr(e.ID), escText(s.Content))
	default:
		panic(fmt.Sprintf("export: unknown shape %T", e.Shape))
	}
}

// svgFill references the element's gradient or pattern definition.
func svgFill(e scene.Element) string {
	switch e.Fill.Kind {
	case scene.FillGradient:
		if e.Fill.Gradient != nil {
			return "url(#grad_" + escAttr(e.ID) + ")"
		}
	case scene.FillImage:
		if e.Fill.Image != "" {
			return "url(#img_" + escAttr(e.ID) + ")"
		}
	}
	return escAttr(e.Fill.CSSColor())
}

// WriteSVG writes the SVG of c to dir as "{name}.svg".
func WriteSVG(c *scene.Canvas, dir string) (string, error) {
	data, err := SVG(c, nil)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	name := filepath.Join(dir, fileSafe(c.Name)+".svg")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write svg: %w", err)
	}
	return name, nil
}

func escAttr(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", "\n", " ", "\r", "").Replace(s)
}

func escText(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;").Replace(s)
}
