/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"math"

	"minicanvas/internal/vector"
)

// Zoom limits and steps.
const (
	MinZoom      = 0.1
	MaxZoom      = 5.0
	ZoomStep     = 1.2
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9
)

// Viewport maps canvas coordinates onto the stage: screen = canvas*Zoom + Pan.
type Viewport struct {
	Width  float64 // stage size in screen pixels
	Height float64
	Zoom   float64
	Pan    vector.Pt
}

func NewViewport(w, h float64) Viewport { return Viewport{Width: w, Height: h, Zoom: 1} }

func (v Viewport) ToCanvas(p vector.Pt) vector.Pt {
	return vector.Pt{X: (p.X - v.Pan.X) / v.Zoom, Y: (p.Y - v.Pan.Y) / v.Zoom}
}

func (v Viewport) ToScreen(p vector.Pt) vector.Pt {
	return vector.Pt{X: p.X*v.Zoom + v.Pan.X, Y: p.Y*v.Zoom + v.Pan.Y}
}

// Transform returns the canvas-to-screen matrix.
func (v Viewport) Transform() vector.Affine2D {
	return vector.Translate(v.Pan.X, v.Pan.Y).Mul(vector.Scale(v.Zoom, v.Zoom))
}

// Fit centers a cw×ch canvas, shrinking it (never enlarging) so that it
// fits inside the stage minus padding.
func (v Viewport) Fit(cw, ch, padding float64) Viewport {
	if cw <= 0 || ch <= 0 || v.Width <= 0 || v.Height <= 0 {
		v.Zoom, v.Pan = 1, vector.Pt{}
		return v
	}
	z := math.Min(math.Min((v.Width-padding)/cw, (v.Height-padding)/ch), 1)
	if z <= 0 {
		z = MinZoom
	}
	return v.centerAt(cw, ch, z)
}

// Center shows the canvas at 100% in the middle of the stage.
func (v Viewport) Center(cw, ch float64) Viewport { return v.centerAt(cw, ch, 1) }

func (v Viewport) centerAt(cw, ch, z float64) Viewport {
	v.Zoom = z
	v.Pan = vector.Pt{X: (v.Width - cw*z) / 2, Y: (v.Height - ch*z) / 2}
	return v
}

// ZoomBy multiplies the zoom by f within [MinZoom, MaxZoom]. Pan is kept.
func (v Viewport) ZoomBy(f float64) Viewport {
	v.Zoom = clampZoom(v.Zoom * f)
	return v
}

// PanBy shifts the view by a screen-space delta.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	v.Pan = vector.Pt{X: v.Pan.X + dx, Y: v.Pan.Y + dy}
	return v
}

func clampZoom(z float64) float64 { return math.Max(MinZoom, math.Min(MaxZoom, z)) }
