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

// Translate returns a copy of e moved by (dx,dy).
func Translate(e Element, dx, dy float64) Element {
	out := e.Clone()
	switch s := out.Shape.(type) {
	case *Rect:
		s.X += dx
		s.Y += dy
	case *Ellipse:
		s.CX += dx
		s.CY += dy
	case *Line:
		s.X1 += dx
		s.Y1 += dy
		s.X2 += dx
		s.Y2 += dy
	case *Text:
		s.X += dx
		s.Y += dy
	case *Path:
		for i := range s.Points {
			s.Points[i].X += dx
			s.Points[i].Y += dy
		}
	default:
		panic(unknownShape(e.Shape))
	}
	return out
}

// MoveBoxTo translates e so that its bounding box starts at origin.
func MoveBoxTo(e Element, origin vector.Pt, m textlayout.Measurer) Element {
	box := BoundingBoxWith(e, m)
	return Translate(e, origin.X-box.X, origin.Y-box.Y)
}

// Resize drags handle h of e's bounding box to p. Rects take the new box
// directly, ellipses re-center inside it and text scales its font size by the
// height ratio (width ratio for e/w), keeping the box top as the baseline
// reference. ok is false when the box would collapse or e is not resizable;
// e is then returned unchanged.
func Resize(e Element, h vector.Handle, p vector.Pt, m textlayout.Measurer) (Element, bool) {
	if !Resizable(e) {
		return e, false
	}
	old := BoundingBoxWith(e, m)
	box, ok := vector.ResizeBox(old, h, p)
	if !ok {
		return e, false
	}
	out := e.Clone()
	switch s := out.Shape.(type) {
	case *Rect:
		s.X, s.Y, s.W, s.H = box.X, box.Y, box.W, box.H
	case *Ellipse:
		s.RX, s.RY = box.W/2, box.H/2
		s.CX, s.CY = box.X+s.RX, box.Y+s.RY
	case *Text:
		scale := box.H / old.H
		if h == vector.HandleE || h == vector.HandleW {
			scale = box.W / old.W
		}
		if math.IsNaN(scale) || math.IsInf(scale, 0) {
			return e, false
		}
		s.FontSize = math.Max(1, s.FontSize*scale)
		s.X = box.X
		s.Y = box.Y + s.FontSize
	default:
		panic(unknownShape(e.Shape))
	}
	return out, true
}

// Degenerate reports whether a freshly drawn shape is too small to keep.
// Rects and ellipses need both extents ≥ min (radii for ellipses), lines a
// length ≥ min, paths at least two points. Text is never degenerate.
func Degenerate(e Element, min float64) bool {
	switch s := e.Shape.(type) {
	case *Rect:
		return s.W < min || s.H < min
	case *Ellipse:
		return s.RX < min || s.RY < min
	case *Line:
		return math.Hypot(s.X2-s.X1, s.Y2-s.Y1) < min
	case *Text:
		return false
	case *Path:
		return len(s.Points) < 2
	default:
		panic(unknownShape(e.Shape))
	}
}
