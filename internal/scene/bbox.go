/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"math"

	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

// TextLineHeight is the text box height as a multiple of the font size.
const TextLineHeight = 1.2

// BoundingBox returns the axis-aligned box of e using the default text measurer.
// It is cheap; recompute it after every mutation instead of caching.
func BoundingBox(e Element) vector.Rect { return BoundingBoxWith(e, textlayout.Default()) }

// BoundingBoxWith is BoundingBox with an explicit text measurer.
func BoundingBoxWith(e Element, m textlayout.Measurer) vector.Rect {
	switch s := e.Shape.(type) {
	case *Rect:
		return vector.R(s.X, s.Y, s.W, s.H)
	case *Ellipse:
		return vector.R(s.CX-s.RX, s.CY-s.RY, 2*s.RX, 2*s.RY)
	case *Line:
		// outset by the stroke width so thin lines stay hittable
		sw := e.StrokeWidth
		x0, x1 := math.Min(s.X1, s.X2), math.Max(s.X1, s.X2)
		y0, y1 := math.Min(s.Y1, s.Y2), math.Max(s.Y1, s.Y2)
		return vector.R(x0-sw, y0-sw, x1-x0+2*sw, y1-y0+2*sw)
	case *Text:
		if m == nil {
			m = textlayout.Default()
		}
		w := m.Width(textlayout.FontSpec{Size: s.FontSize}, s.Content)
		return vector.R(s.X, s.Y-s.FontSize, w, s.FontSize*TextLineHeight)
	case *Path:
		return vector.Span(s.Points...)
	default:
		panic(unknownShape(e.Shape))
	}
}

// HitTest returns the index of the topmost element whose box contains p, or -1.
func HitTest(els []Element, p vector.Pt, m textlayout.Measurer) int {
	for i := len(els) - 1; i >= 0; i-- {
		if BoundingBoxWith(els[i], m).Contains(p) {
			return i
		}
	}
	return -1
}

// Resizable reports whether e accepts handle resizing. Lines and paths are only dragged.
func Resizable(e Element) bool {
	switch e.Shape.(type) {
	case *Rect, *Ellipse, *Text:
		return true
	case *Line, *Path:
		return false
	default:
		panic(unknownShape(e.Shape))
	}
}
