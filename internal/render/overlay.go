/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"minicanvas/internal/scene"
	"minicanvas/internal/vector"
)

// Overlay colors and grid spacing in canvas units.
var (
	accent    = scene.MustColor("#3b82f6")
	guideTint = scene.MustColor("#ec4899")
	white     = scene.MustColor("#ffffff")
)

const (
	gridMinor = 20
	gridMajor = 100
)

// Overlay strokes keep a constant on-screen weight: line widths and dashes
// are device pixels, the grip side is divided by scale.

func drawGrid(dc *gg.Context, w, h float64) {
	dc.SetLineWidth(1)
	for _, g := range []struct {
		step  float64
		alpha float64
	}{{gridMinor, 0.12}, {gridMajor, 0.25}} {
		dc.SetColor(scene.WithAlpha(accent, g.alpha))
		for x := g.step; x < w; x += g.step {
			dc.DrawLine(x, 0, x, h)
		}
		for y := g.step; y < h; y += g.step {
			dc.DrawLine(0, y, w, y)
		}
		dc.Stroke()
	}
}

// drawPenPath traces the pen points placed so far as a dashed polyline.
func drawPenPath(dc *gg.Context, pts []vector.Pt) {
	if len(pts) == 0 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dashed(dc, accent, 2)
}

// drawSelection outlines box two units outside its edges and places the
// eight resize grips.
func drawSelection(dc *gg.Context, box vector.Rect, scale float64) {
	dc.DrawRectangle(box.X-2, box.Y-2, box.W+4, box.H+4)
	dashed(dc, accent, 2)

	side := vector.HandleScreenSize / scale
	dc.SetLineWidth(2)
	for _, h := range vector.Handles {
		p := h.Point(box)
		dc.DrawRectangle(p.X-side/2, p.Y-side/2, side, side)
		dc.SetColor(accent)
		dc.FillPreserve()
		dc.SetColor(white)
		dc.Stroke()
	}
}

func drawGuides(dc *gg.Context, guides []vector.Guide) {
	if len(guides) == 0 {
		return
	}
	dc.SetColor(guideTint)
	dc.SetLineWidth(1)
	for _, g := range guides {
		dc.DrawLine(g.From.X, g.From.Y, g.To.X, g.To.Y)
	}
	dc.Stroke()
}

func dashed(dc *gg.Context, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetDash(4, 4)
	dc.Stroke()
	dc.SetDash()
}
