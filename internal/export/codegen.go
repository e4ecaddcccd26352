/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export turns a canvas into files: the HTML/CSS/JS code bundle,
// a 2x PNG raster of the vector view, SVG and PDF renditions, and batch
// runs of those per preset.
package export

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"minicanvas/internal/scene"
)

// ErrNoCanvas is returned by writers called without an active canvas.
var ErrNoCanvas = errors.New("export: no active canvas")

// Fixed names the generated page links to.
const (
	HTMLFile = "index.html"
	CSSFile  = "style.css"
	JSFile   = "script.js"
)

// GenerateHTML returns the markup document: one absolutely positioned div
// per element, text elements carrying their content.
func GenerateHTML(c *scene.Canvas) string {
	if c == nil {
		return "<!-- Create a canvas to see the generated HTML code -->"
	}
	rows := make([]string, 0, len(c.Elements))
	for _, e := range c.Elements {
		inner := ""
		if t, ok := e.Shape.(*scene.Text); ok {
			inner = html.EscapeString(t.Content)
		}
		rows = append(rows, fmt.Sprintf(`        <div id="%s" class="element %s">%s</div>`, html.EscapeString(e.ID), e.Kind(), inner))
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(c.Name))
	fmt.Fprintf(&b, "    <link rel=\"stylesheet\" href=\"%s\">\n", CSSFile)
	b.WriteString("</head>\n<body>\n    <div class=\"canvas-container\">\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n    </div>\n")
	fmt.Fprintf(&b, "    <script src=\"%s\"></script>\n", JSFile)
	b.WriteString("</body>\n</html>")
	return b.String()
}

const pageCSS = `body {
    margin: 0;
    padding: 0;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
    font-family: 'Inter', system-ui, -apple-system, sans-serif;
}
`

const elementCSS = `.element {
    position: absolute;
    box-sizing: border-box;
}
`

// GenerateCSS returns the stylesheet: page reset, the canvas container, one
// rule per element id and one @keyframes block per effect in use.
func GenerateCSS(c *scene.Canvas) string {
	if c == nil {
		return "/* Create a canvas to see the generated CSS code */"
	}
	var b strings.Builder
	b.WriteString(pageCSS)

	b.WriteString(".canvas-container {\n")
	decl(&b, "width: %spx;", num(float64(c.Width)))
	decl(&b, "height: %spx;", num(float64(c.Height)))
	decl(&b, "position: relative;")
	bg := c.Background
	if bg == "" {
		bg = scene.DefaultBackground
	}
	decl(&b, "background-color: %s;", bg)
	if c.BackgroundImage != "" {
		decl(&b, "background-image: url(%s);", c.BackgroundImage)
		decl(&b, "background-size: cover;")
	}
	decl(&b, "transform: rotate(%ddeg);", int(c.Rotation))
	decl(&b, "overflow: hidden;")
	b.WriteString("}\n")

	b.WriteString(elementCSS)
	var used []scene.AnimationType
	seen := make(map[scene.AnimationType]bool)
	for _, e := range c.Elements {
		fmt.Fprintf(&b, "\n#%s {\n", e.ID)
		for _, d := range geometry(e) {
			decl(&b, "%s", d)
		}
		decl(&b, "opacity: %s;", num(e.Opacity))
		if a := e.Animation; a != nil && a.Type != scene.AnimNone {
			decl(&b, "animation: %s %ss %ss both;", a.Type, num(a.Duration), num(a.Delay))
			if !seen[a.Type] {
				seen[a.Type] = true
				used = append(used, a.Type)
			}
		}
		b.WriteString("}\n")
	}

	if len(used) > 0 {
		b.WriteString("/* --- Animation Keyframes --- */\n")
		for _, t := range used {
			fmt.Fprintf(&b, "@keyframes %s {\n    %s\n}\n\n", t, Keyframes(t))
		}
	}
	return b.String()
}

// geometry returns the positioning and paint declarations of e. A line
// becomes a bar as long as the segment, stroke-wide, turned about its
// first endpoint. Paths have no box of their own.
func geometry(e scene.Element) []string {
	switch s := e.Shape.(type) {
	case *scene.Rect:
		out := []string{
			"left: " + num(s.X) + "px;",
			"top: " + num(s.Y) + "px;",
			"width: " + num(s.W) + "px;",
			"height: " + num(s.H) + "px;",
		}
		out = append(out, background(e.Fill)...)
		return append(out,
			"border: "+num(e.StrokeWidth)+"px solid "+e.Stroke+";",
			"border-radius: "+num(s.Radius)+"px;",
		)
	case *scene.Ellipse:
		out := []string{
			"left: " + num(s.CX-s.RX) + "px;",
			"top: " + num(s.CY-s.RY) + "px;",
			"width: " + num(s.RX*2) + "px;",
			"height: " + num(s.RY*2) + "px;",
		}
		out = append(out, background(e.Fill)...)
		return append(out,
			"border: "+num(e.StrokeWidth)+"px solid "+e.Stroke+";",
			"border-radius: 50%;",
		)
	case *scene.Line:
		dx, dy := s.X2-s.X1, s.Y2-s.Y1
		return []string{
			"left: " + num(s.X1) + "px;",
			"top: " + num(s.Y1) + "px;",
			"width: " + num(math.Hypot(dx, dy)) + "px;",
			"height: " + num(e.StrokeWidth) + "px;",
			"background-color: " + e.Stroke + ";",
			"transform: rotate(" + num(math.Atan2(dy, dx)*180/math.Pi) + "deg);",
			"transform-origin: 0 0;",
		}
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
		return []string{
			"left: " + num(s.X) + "px;",
			"top: " + num(s.Y-s.FontSize) + "px;",
			"color: " + e.Fill.CSSColor() + ";",
			"font-size: " + num(s.FontSize) + "px;",
			"font-weight: " + weight + ";",
			"font-style: " + style + ";",
			"text-decoration: " + deco + ";",
		}
	case *scene.Path:
		return nil
	default:
		panic(fmt.Sprintf("export: unknown shape %T", e.Shape))
	}
}

func background(f scene.Fill) []string {
	switch f.Kind {
	case scene.FillGradient:
		if g := f.Gradient; g != nil {
			return []string{fmt.Sprintf("background-image: linear-gradient(%sdeg, %s, %s);", num(g.Angle), g.Start, g.End)}
		}
	case scene.FillImage:
		if f.Image != "" {
			return []string{
				"background-image: url(" + f.Image + ");",
				"background-size: cover;",
				"background-position: center;",
			}
		}
	}
	return []string{"background-color: " + f.CSSColor() + ";"}
}

// GenerateJS returns the script stub wired to the page.
func GenerateJS(c *scene.Canvas) string {
	if c == nil {
		return "// Create a canvas to see the generated JavaScript code"
	}
	first := "element-id"
	if len(c.Elements) > 0 {
		first = c.Elements[0].ID
	}
	return `// script.js
document.addEventListener('DOMContentLoaded', () => {
    console.log('Canvas elements loaded and ready.');

    // You can add interactivity here. For example:
    // const myElement = document.getElementById('` + first + `');
    // if (myElement) {
    //     myElement.addEventListener('click', () => {
    //         alert('You clicked an element!');
    //     });
    // }
});
`
}

// decl writes one indented declaration line.
func decl(b *strings.Builder, format string, args ...any) {
	b.WriteString("    ")
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

// num prints v the shortest way that reads back exactly.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
