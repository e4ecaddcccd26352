/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"testing"

	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

var fixed = textlayout.BasicMeasurer{}

func sampleElements() []Element {
	return []Element{
		{ID: "r", Shape: &Rect{X: 10, Y: 20, W: 30, H: 40}, Fill: Solid("#ff0000"), StrokeWidth: 2, Opacity: 1},
		{ID: "e", Shape: &Ellipse{CX: 50, CY: 50, RX: 10, RY: 5}, Fill: Solid("#00ff00"), StrokeWidth: 1, Opacity: 1},
		{ID: "l", Shape: &Line{X1: 100, Y1: 10, X2: 0, Y2: 10}, Fill: NoFill(), StrokeWidth: 2, Opacity: 1},
		{ID: "t", Shape: &Text{X: 5, Y: 30, Content: "Hi", FontSize: 13}, Fill: Solid("#000000"), Opacity: 1},
		{ID: "p", Shape: &Path{Points: []vector.Pt{{X: 3, Y: 9}, {X: -1, Y: 4}, {X: 7, Y: 2}}}, Fill: NoFill(), Opacity: 1},
	}
}

func TestBoundingBoxPerVariant(t *testing.T) {
	want := map[string]vector.Rect{
		"r": vector.R(10, 20, 30, 40),
		"e": vector.R(40, 45, 20, 10),
		"l": vector.R(-2, 8, 104, 4),
		"t": vector.R(5, 17, 14, 13*TextLineHeight),
		"p": vector.R(-1, 2, 8, 7),
	}
	for _, e := range sampleElements() {
		if got := BoundingBoxWith(e, fixed); got != want[e.ID] {
			t.Fatalf("%s: bbox %+v, want %+v", e.ID, got, want[e.ID])
		}
	}
	empty := Element{ID: "x", Shape: &Path{}}
	if got := BoundingBoxWith(empty, fixed); got != (vector.Rect{}) {
		t.Fatalf("empty path bbox = %+v", got)
	}
}

func TestBoundingBoxTranslationInvariant(t *testing.T) {
	for _, e := range sampleElements() {
		before := BoundingBoxWith(e, fixed)
		moved := Translate(e, 12.5, -7)
		after := BoundingBoxWith(moved, fixed)
		if after != before.Translate(12.5, -7) {
			t.Fatalf("%s: translated bbox %+v, want %+v", e.ID, after, before.Translate(12.5, -7))
		}
		if BoundingBoxWith(e, fixed) != before {
			t.Fatalf("%s: Translate mutated its input", e.ID)
		}
	}
}

func TestMoveBoxTo(t *testing.T) {
	for _, e := range sampleElements() {
		moved := MoveBoxTo(e, vector.Pt{X: 200, Y: 300}, fixed)
		box := BoundingBoxWith(moved, fixed)
		if box.X != 200 || box.Y != 300 {
			t.Fatalf("%s: box origin %+v", e.ID, box)
		}
	}
}

func TestHitTestTopmostFirst(t *testing.T) {
	els := []Element{
		{ID: "bottom", Shape: &Rect{X: 0, Y: 0, W: 100, H: 100}},
		{ID: "top", Shape: &Rect{X: 50, Y: 50, W: 100, H: 100}},
	}
	if i := HitTest(els, vector.Pt{X: 60, Y: 60}, fixed); i != 1 {
		t.Fatalf("expected top (1), got %d", i)
	}
	if i := HitTest(els, vector.Pt{X: 10, Y: 10}, fixed); i != 0 {
		t.Fatalf("expected bottom (0), got %d", i)
	}
	if i := HitTest(els, vector.Pt{X: 100, Y: 100}, fixed); i != 1 {
		t.Fatalf("edges are inclusive; expected 1, got %d", i)
	}
	if i := HitTest(els, vector.Pt{X: 500, Y: 10}, fixed); i != -1 {
		t.Fatalf("expected miss, got %d", i)
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := sampleElements()[4]
	e.Animation = &Animation{Type: AnimPulse, Duration: 1}
	c := e.Clone()
	c.Shape.(*Path).Points[0].X = 999
	c.Animation.Duration = 5
	if e.Shape.(*Path).Points[0].X == 999 || e.Animation.Duration == 5 {
		t.Fatalf("clone shares state with original")
	}
}
