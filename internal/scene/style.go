/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// Style holds the attributes new shapes are drawn with. The editor keeps one
// as its current defaults and mirrors it onto the selected element.
type Style struct {
	FillKind    FillKind
	FillColor   string
	Gradient    Gradient
	FillImage   string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64
	Bold        bool
	Italic      bool
	Underline   bool
}

// Defaults applied to a fresh editor session.
const (
	DefaultFill        = "#3b82f6"
	DefaultStroke      = "#1f2937"
	DefaultStrokeWidth = 2
	DefaultFontSize    = 24
	DefaultBackground  = "#ffffff"
	PlaceholderText    = "Click to edit text"
)

// DefaultStyle returns the style a new session starts with.
func DefaultStyle() Style {
	return Style{
		FillKind:    FillSolid,
		FillColor:   DefaultFill,
		Gradient:    Gradient{Start: "#5e81f7", End: "#a855f7", Angle: 90},
		Stroke:      DefaultStroke,
		StrokeWidth: DefaultStrokeWidth,
		Opacity:     1,
		FontSize:    DefaultFontSize,
	}
}

// Fill builds the fill descriptor the style currently selects.
func (s Style) Fill() Fill {
	switch s.FillKind {
	case FillGradient:
		return Linear(s.Gradient)
	case FillImage:
		if s.FillImage != "" {
			return ImageFill(s.FillImage)
		}
		return Solid(s.FillColor)
	default:
		return Solid(s.FillColor)
	}
}

// StyleOf loads e's attributes into base; attributes e does not carry keep base's value.
func StyleOf(e Element, base Style) Style {
	s := base
	switch e.Fill.Kind {
	case FillSolid:
		s.FillKind, s.FillColor = FillSolid, e.Fill.Color
	case FillGradient:
		s.FillKind = FillGradient
		if e.Fill.Gradient != nil {
			s.Gradient = *e.Fill.Gradient
		}
	case FillImage:
		s.FillKind, s.FillImage = FillImage, e.Fill.Image
	}
	s.Stroke = e.Stroke
	s.StrokeWidth = e.StrokeWidth
	s.Opacity = e.Opacity
	if t, ok := e.Shape.(*Text); ok {
		s.FontSize = t.FontSize
		s.Bold, s.Italic, s.Underline = t.Bold, t.Italic, t.Underline
	}
	return s
}

// ApplyStyle returns a copy of e restyled with s. Lines and paths keep their
// "none" fill; only text takes the font attributes.
func ApplyStyle(e Element, s Style) Element {
	out := e.Clone()
	if out.Filled() {
		out.Fill = s.Fill()
	}
	out.Stroke = s.Stroke
	out.StrokeWidth = s.StrokeWidth
	out.Opacity = s.Opacity
	if t, ok := out.Shape.(*Text); ok {
		t.FontSize = s.FontSize
		t.Bold, t.Italic, t.Underline = s.Bold, s.Italic, s.Underline
	}
	return out
}
