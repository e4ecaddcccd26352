/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"strings"
	"testing"

	"minicanvas/internal/editor"
	"minicanvas/internal/render"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

func session(t *testing.T) *editor.Session {
	t.Helper()
	opts := editor.DefaultOptions()
	opts.Measurer = textlayout.BasicMeasurer{}
	return editor.NewSession(opts)
}

func TestStageImagePlacesCanvasAtPan(t *testing.T) {
	r := render.New(nil, textlayout.BasicMeasurer{})
	f := render.Frame{Width: 100, Height: 50, Background: "#ff0000"}
	vp := editor.Viewport{Width: 400, Height: 300, Zoom: 0.5, Pan: vector.Pt{X: 20, Y: 10}}
	img := stageImage(r, f, true, vp, 400, 300, 1)

	if got := color.NRGBAModel.Convert(img.At(5, 5)).(color.NRGBA); got != workspaceColor {
		t.Fatalf("backdrop = %v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(30, 20)).(color.NRGBA); got.R != 0xff || got.G != 0 {
		t.Fatalf("canvas pixel = %v, want red", got)
	}
	// 100×0.5 wide, starting at x=20
	if got := color.NRGBAModel.Convert(img.At(75, 20)).(color.NRGBA); got != workspaceColor {
		t.Fatalf("right of canvas = %v", got)
	}
}

func TestStageImageWithoutCanvas(t *testing.T) {
	img := stageImage(nil, render.Frame{}, false, editor.Viewport{Zoom: 1}, 10, 10, 2)
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestEditorKeyNames(t *testing.T) {
	cases := map[string]editor.Key{
		"Space":     editor.KeySpace,
		"Delete":    editor.KeyDelete,
		"BackSpace": editor.KeyBackspace,
		"Escape":    editor.KeyEscape,
		"Z":         "z",
		"0":         "0",
		"\\":        "\\",
	}
	for in, want := range cases {
		got, ok := editorKey(in)
		if !ok || got != want {
			t.Errorf("editorKey(%q) = %q %v, want %q", in, got, ok, want)
		}
	}
	if _, ok := editorKey("F1"); ok {
		t.Error("F1 mapped")
	}
}

func TestStatusText(t *testing.T) {
	s := session(t)
	if !strings.Contains(statusText(s), "No canvas") {
		t.Fatalf("empty status = %q", statusText(s))
	}
	s.CreateCanvas("Poster", 800, 600)
	s.RotateCanvas()
	got := statusText(s)
	for _, want := range []string{"Poster", "800×600", "select", "90°", "history 2/2"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status %q lacks %q", got, want)
		}
	}
	if len(presetLabels()) != len(scene.Presets) {
		t.Fatal("preset labels out of sync")
	}
}
