/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#3b82f6":   {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
		"#fff":      {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		"#3b82f680": {R: 0x3b, G: 0x82, B: 0xf6, A: 0x80},
		"none":      {},
	}
	for in, want := range cases {
		got, ok := ParseColor(in)
		if !ok || got != want {
			t.Fatalf("ParseColor(%q) = %+v %v, want %+v", in, got, ok, want)
		}
	}
	for _, in := range []string{"red", "#12345", "#zzzzzz", "#3b82f6zz"} {
		if _, ok := ParseColor(in); ok {
			t.Fatalf("ParseColor(%q) accepted", in)
		}
	}
	if c := MustColor("bogus"); c != (color.NRGBA{A: 0xff}) {
		t.Fatalf("MustColor fallback = %+v", c)
	}
}

func TestHexAndAlpha(t *testing.T) {
	if h := Hex(color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}); h != "#1f2937" {
		t.Fatalf("Hex = %q", h)
	}
	if c := WithAlpha(color.NRGBA{A: 200}, 0.5); c.A != 100 {
		t.Fatalf("WithAlpha = %d", c.A)
	}
	if c := WithAlpha(color.NRGBA{A: 200}, 4); c.A != 200 {
		t.Fatalf("WithAlpha clamp = %d", c.A)
	}
}

func TestNewIDIsCSSFriendly(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b || !strings.HasPrefix(a, "id") || len(a) != 11 {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}
