/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// FillKind tags the Fill variant.
type FillKind string

const (
	FillNone     FillKind = "none"
	FillSolid    FillKind = "solid"
	FillGradient FillKind = "gradient"
	FillImage    FillKind = "image"
)

// Gradient is a two-stop linear gradient; Angle is in degrees.
type Gradient struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Angle float64 `json:"angle"`
}

// Fill describes how an element's interior is painted. Only the payload
// matching Kind is meaningful: Color for solid, Gradient for gradient,
// Image for image.
type Fill struct {
	Kind     FillKind  `json:"kind"`
	Color    string    `json:"color,omitempty"`
	Gradient *Gradient `json:"gradient,omitempty"`
	Image    string    `json:"image,omitempty"` // bitmap reference, usually a data URL
}

func NoFill() Fill              { return Fill{Kind: FillNone} }
func Solid(color string) Fill   { return Fill{Kind: FillSolid, Color: color} }
func Linear(g Gradient) Fill    { return Fill{Kind: FillGradient, Gradient: &g} }
func ImageFill(ref string) Fill { return Fill{Kind: FillImage, Image: ref} }

// Normalize drops payloads that do not belong to Kind. An image fill without
// a bitmap or a gradient without stops degrades to solid black.
func (f Fill) Normalize() Fill {
	switch f.Kind {
	case FillSolid:
		return Solid(f.Color)
	case FillGradient:
		if f.Gradient == nil {
			return Solid("#000000")
		}
		return Linear(*f.Gradient)
	case FillImage:
		if f.Image == "" {
			return Solid("#000000")
		}
		return ImageFill(f.Image)
	default:
		return NoFill()
	}
}

// CSSColor returns the color used where only a flat color makes sense
// (text color, previews): the solid color or the gradient start.
func (f Fill) CSSColor() string {
	switch f.Kind {
	case FillSolid:
		return f.Color
	case FillGradient:
		if f.Gradient != nil {
			return f.Gradient.Start
		}
	}
	return "none"
}

// TextColor is the flat color text is painted with. Image fills have no
// flat color and paint black.
func (f Fill) TextColor() string {
	if c := f.CSSColor(); c != "none" || f.Kind == FillNone {
		return c
	}
	return "#000000"
}
