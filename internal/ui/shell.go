/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop shell of the editor. The fyne window is only
// compiled with -tags fyne; the pieces here are shared and headless.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/fogleman/gg"

	"minicanvas/internal/config"
	"minicanvas/internal/editor"
	"minicanvas/internal/render"
	"minicanvas/internal/scene"
)

// Options configure Run.
type Options struct {
	Config    config.AppConfig
	Session   *editor.Session
	Renderer  *render.Renderer
	Principal string // shown in the title bar
}

var workspaceColor = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}

// stageImage paints the stage: the workspace backdrop with the live canvas
// at the viewport's zoom and pan. px is device pixels per stage unit.
func stageImage(r *render.Renderer, f render.Frame, ok bool, vp editor.Viewport, w, h int, px float64) image.Image {
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetColor(workspaceColor)
	dc.Clear()
	if !ok || r == nil {
		return dc.Image()
	}
	if px <= 0 {
		px = 1
	}
	surf := r.Surface(f, vp.Zoom*px)
	dc.DrawImage(surf, int(vp.Pan.X*px), int(vp.Pan.Y*px))
	return dc.Image()
}

// editorKey maps a toolkit key name ("A", "Space", "BackSpace", "=") to the
// editor's key vocabulary. ok is false for keys the editor ignores.
func editorKey(name string) (editor.Key, bool) {
	switch name {
	case "Space":
		return editor.KeySpace, true
	case "Delete":
		return editor.KeyDelete, true
	case "BackSpace", "Backspace":
		return editor.KeyBackspace, true
	case "Escape":
		return editor.KeyEscape, true
	}
	if len([]rune(name)) != 1 {
		return "", false
	}
	return editor.Key(strings.ToLower(name)), true
}

// statusText is the one-line summary under the stage.
func statusText(s *editor.Session) string {
	c := s.Canvas()
	if c == nil {
		return "No canvas. Pick a preset to start."
	}
	i, n := s.HistoryIndex()
	out := fmt.Sprintf("%s · %d×%d · %s · %.0f%%", c.Name, c.Width, c.Height, s.Tool(), s.Viewport().Zoom*100)
	if s.Rotation() != 0 {
		out += fmt.Sprintf(" · %d°", int(s.Rotation()))
	}
	return out + fmt.Sprintf(" · history %d/%d", i+1, n)
}

// presetLabels lists the new-canvas menu.
func presetLabels() []string {
	out := make([]string, len(scene.Presets))
	for i, p := range scene.Presets {
		out[i] = p.Label
	}
	return out
}
