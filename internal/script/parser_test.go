/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"strings"
	"testing"

	"minicanvas/internal/editor"
)

const sample = `canvas:
  preset: desktop
steps:
  - tool: rect
  - drag: {from: [100, 100], to: [300, 200]}
  - animate: {type: fadeIn, duration: 1}
  - key: ctrl+shift+z
`

func TestParseRecordsStepPositions(t *testing.T) {
	sc, errs := Parse([]byte(sample))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sc.Canvas == nil || sc.Canvas.Preset != "desktop" {
		t.Fatalf("canvas = %+v", sc.Canvas)
	}
	if len(sc.Steps) != 4 {
		t.Fatalf("steps = %d", len(sc.Steps))
	}
	for i, want := range []int{4, 5, 6, 7} {
		if sc.Steps[i].Line != want {
			t.Errorf("step %d line = %d, want %d", i, sc.Steps[i].Line, want)
		}
	}
	if d := sc.Steps[1].Drag; d == nil || d.To[0] != 300 {
		t.Fatalf("drag = %+v", d)
	}
}

func TestParseRejectsBadSteps(t *testing.T) {
	src := `steps:
  - tool: lasso
  - {tool: rect, clear: true}
  - click: [1]
  - animate: {type: wobble}
  - key: hyper+x
  - resize: {}
`
	_, errs := Parse([]byte(src))
	if len(errs) != 6 {
		t.Fatalf("errors = %v, want 6", errs)
	}
	for i, e := range errs {
		if e.Line != i+2 {
			t.Errorf("error %d at line %d, want %d (%s)", i, e.Line, i+2, e.Message)
		}
	}
	if !strings.Contains(errs[1].Message, "exactly one") {
		t.Errorf("two actions message = %q", errs[1].Message)
	}
}

func TestParseUnknownFieldHasLine(t *testing.T) {
	src := "steps:\n  - tool: rect\n  - colour: red\n"
	_, errs := Parse([]byte(src))
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	if errs[0].Line != 3 || !strings.Contains(errs[0].Message, "colour") {
		t.Fatalf("error = %+v", errs[0])
	}
}

func TestParseEmptyAndBadCanvas(t *testing.T) {
	if _, errs := Parse(nil); len(errs) != 1 {
		t.Fatalf("empty: %v", errs)
	}
	if _, errs := Parse([]byte("canvas: {preset: poster}\n")); len(errs) != 1 {
		t.Fatalf("unknown preset: %v", errs)
	}
	if _, errs := Parse([]byte("canvas: {width: 0, height: 10}\n")); len(errs) != 1 {
		t.Fatalf("zero width: %v", errs)
	}
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		key  editor.Key
		mods editor.Modifiers
	}{
		{"j", "j", editor.Modifiers{}},
		{"ctrl+z", "z", editor.Modifiers{Ctrl: true}},
		{"Cmd+Shift+Z", "Z", editor.Modifiers{Ctrl: true, Shift: true}},
		{"ctrl++", "+", editor.Modifiers{Ctrl: true}},
		{"+", "+", editor.Modifiers{}},
		{"delete", editor.KeyDelete, editor.Modifiers{}},
		{"ctrl+backspace", editor.KeyBackspace, editor.Modifiers{Ctrl: true}},
		{"esc", editor.KeyEscape, editor.Modifiers{}},
		{"space", editor.KeySpace, editor.Modifiers{}},
		{`ctrl+shift+\`, `\`, editor.Modifiers{Ctrl: true, Shift: true}},
	}
	for _, c := range cases {
		k, m, err := ParseKey(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if k != c.key || m != c.mods {
			t.Errorf("%q = %q %+v, want %q %+v", c.in, k, m, c.key, c.mods)
		}
	}
	for _, bad := range []string{"", "alt+x", "ctrl+home"} {
		if _, _, err := ParseKey(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}
