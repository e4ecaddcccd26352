/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene is the editor's document model: the ordered element
// sequence of a canvas, element geometry, fills, animations and the
// snapshot format used by the history.
//
// Elements are a closed sum type. Shape is sealed; every consumer switches
// over the five variants and panics on anything else, so adding a variant
// fails loudly at each site that has not learned about it.
package scene

import (
	"fmt"

	"minicanvas/internal/vector"
)

// Kind names an element variant. The values double as CSS class names.
type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindLine    Kind = "line"
	KindText    Kind = "text"
	KindPath    Kind = "path"
)

// Shape is the variant-specific geometry of an element.
type Shape interface {
	Kind() Kind
	sealed()
}

// Rect is a box anchored at its top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Radius float64 `json:"radius"`
}

// Ellipse is centered at (CX,CY).
type Ellipse struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// Line runs from (X1,Y1) to (X2,Y2). Lines are never filled.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Text is a single line whose Y is the baseline.
type Text struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Content   string  `json:"content"`
	FontSize  float64 `json:"fontSize"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
}

// Path is an open polyline. Paths are never filled.
type Path struct {
	Points []vector.Pt `json:"points"`
}

func (*Rect) Kind() Kind    { return KindRect }
func (*Ellipse) Kind() Kind { return KindEllipse }
func (*Line) Kind() Kind    { return KindLine }
func (*Text) Kind() Kind    { return KindText }
func (*Path) Kind() Kind    { return KindPath }

func (*Rect) sealed()    {}
func (*Ellipse) sealed() {}
func (*Line) sealed()    {}
func (*Text) sealed()    {}
func (*Path) sealed()    {}

// Element is one drawable. Z-order is its position in the canvas sequence.
type Element struct {
	ID          string
	Shape       Shape
	Fill        Fill
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Animation   *Animation
}

// Kind returns the variant of e.
func (e Element) Kind() Kind { return e.Shape.Kind() }

// Clone returns a deep copy; the copy shares no geometry with e.
func (e Element) Clone() Element {
	out := e
	switch s := e.Shape.(type) {
	case *Rect:
		c := *s
		out.Shape = &c
	case *Ellipse:
		c := *s
		out.Shape = &c
	case *Line:
		c := *s
		out.Shape = &c
	case *Text:
		c := *s
		out.Shape = &c
	case *Path:
		c := Path{Points: append([]vector.Pt(nil), s.Points...)}
		out.Shape = &c
	default:
		panic(unknownShape(e.Shape))
	}
	if e.Animation != nil {
		a := *e.Animation
		out.Animation = &a
	}
	return out
}

// Filled reports whether the variant takes a fill. Lines and paths do not.
func (e Element) Filled() bool {
	switch e.Shape.(type) {
	case *Rect, *Ellipse, *Text:
		return true
	case *Line, *Path:
		return false
	default:
		panic(unknownShape(e.Shape))
	}
}

func unknownShape(s Shape) string { return fmt.Sprintf("scene: unknown shape %T", s) }

// CloneAll deep-copies an element sequence.
func CloneAll(els []Element) []Element {
	if els == nil {
		return nil
	}
	out := make([]Element, len(els))
	for i, e := range els {
		out[i] = e.Clone()
	}
	return out
}

// IndexOf returns the position of id in els, or -1.
func IndexOf(els []Element, id string) int {
	for i := range els {
		if els[i].ID == id {
			return i
		}
	}
	return -1
}
