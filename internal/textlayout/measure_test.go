/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "testing"

func TestBasicMeasurerIsLinear(t *testing.T) {
	m := BasicMeasurer{}
	one := m.Width(FontSpec{Size: 13}, "A")
	if one != 7 {
		t.Fatalf("expected 7px advance at native size, got %v", one)
	}
	if got := m.Width(FontSpec{Size: 26}, "ABC"); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
	if got := m.Width(FontSpec{}, "é"); got != 7*24.0/13 {
		t.Fatalf("default size not applied: %v", got)
	}
}

func TestGoFontsMeasureDeterministic(t *testing.T) {
	lib, err := GoFonts()
	if err != nil {
		t.Fatalf("GoFonts: %v", err)
	}
	m := &OTMeasurer{Lib: lib}
	w1 := m.Width(FontSpec{Size: 24}, "Click to edit text")
	w2 := m.Width(FontSpec{Size: 24}, "Click to edit text")
	if w1 <= 0 || w1 != w2 {
		t.Fatalf("expected stable positive width, got %v and %v", w1, w2)
	}
	if m.Width(FontSpec{Size: 24}, "") != 0 {
		t.Fatalf("empty text must measure 0")
	}
	double := m.Width(FontSpec{Size: 48}, "Click to edit text")
	if double <= w1*1.9 || double >= w1*2.1 {
		t.Fatalf("width should scale with size: %v vs %v", w1, double)
	}
	bold := m.Width(FontSpec{Size: 24, Bold: true}, "Click to edit text")
	if bold == w1 {
		t.Fatalf("bold variant should measure differently")
	}
}

func TestFontLibraryFallsBackToRegular(t *testing.T) {
	lib, err := GoFonts()
	if err != nil {
		t.Fatalf("GoFonts: %v", err)
	}
	fresh := NewFontLibrary()
	if err := fresh.Add(false, false, lib.Data(false, false)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := fresh.Face(FontSpec{Size: 12, Bold: true, Italic: true}); err != nil {
		t.Fatalf("expected regular fallback, got %v", err)
	}
	if len(fresh.Data(true, true)) == 0 {
		t.Fatalf("Data should fall back to regular")
	}
	if err := NewFontLibrary().Add(false, false, []byte("not a font")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewFontLibrary().Face(FontSpec{}); err == nil {
		t.Fatalf("empty library must fail")
	}
}

func TestDefaultUsesGoFonts(t *testing.T) {
	if _, ok := Default().(*OTMeasurer); !ok {
		t.Fatalf("expected OT measurer, got %T", Default())
	}
}
