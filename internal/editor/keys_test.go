/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "testing"

func TestToolShortcuts(t *testing.T) {
	s := newTestSession(t)
	for _, tc := range []struct {
		key  Key
		want Tool
	}{{"r", ToolRect}, {"O", ToolEllipse}, {"l", ToolLine}, {"p", ToolPath}, {"t", ToolText}, {"v", ToolSelect}} {
		s.KeyDown(tc.key, Modifiers{Ctrl: true})
		if s.Tool() != tc.want {
			t.Fatalf("ctrl+%s -> %s, want %s", tc.key, s.Tool(), tc.want)
		}
	}
	if eff := s.KeyDown("i", Modifiers{Ctrl: true}); eff != EffectOpenFilePicker {
		t.Fatalf("ctrl+i without bitmap effect = %v", eff)
	}
	s.KeyDown("r", Modifiers{})
	if s.Tool() != ToolSelect {
		t.Fatalf("bare letter switched tools")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	s := desktopWithRect(t)
	s.KeyDown("z", Modifiers{Ctrl: true})
	if len(s.Elements()) != 0 {
		t.Fatalf("ctrl+z did not undo")
	}
	s.KeyDown("Z", Modifiers{Ctrl: true, Shift: true})
	if len(s.Elements()) != 1 {
		t.Fatalf("ctrl+shift+z did not redo")
	}
}

func TestDeleteKeys(t *testing.T) {
	s := threeRects(t)
	s.KeyDown(KeyBackspace, Modifiers{})
	if len(s.Elements()) != 3 {
		t.Fatalf("bare backspace deleted")
	}
	s.KeyDown(KeyBackspace, Modifiers{Ctrl: true})
	s.SelectElement("el1")
	s.KeyDown(KeyDelete, Modifiers{})
	if got := ids(s); len(got) != 1 || got[0] != "el2" {
		t.Fatalf("ids after deletes = %v", got)
	}
}

func TestPanelToggles(t *testing.T) {
	s := newTestSession(t)
	s.KeyDown("\\", Modifiers{Ctrl: true})
	if s.PropertiesOpen() || !s.CodeOpen() {
		t.Fatalf("ctrl+\\ should toggle only properties")
	}
	s.KeyDown("|", Modifiers{Ctrl: true, Shift: true})
	if s.PropertiesOpen() || s.CodeOpen() {
		t.Fatalf("ctrl+shift+\\ should toggle only code")
	}
	s.ToggleGrid()
	if s.ShowGrid() {
		t.Fatalf("grid toggle")
	}
}

func TestViewAndRotateKeys(t *testing.T) {
	s := newTestSession(t)
	s.CreateFromPreset("square")
	z := s.Viewport().Zoom
	s.KeyDown("=", Modifiers{Ctrl: true})
	if !near(s.Viewport().Zoom, z*ZoomStep) {
		t.Fatalf("ctrl+= zoom = %v", s.Viewport().Zoom)
	}
	s.KeyDown("-", Modifiers{Ctrl: true})
	if !near(s.Viewport().Zoom, z) {
		t.Fatalf("ctrl+- zoom = %v", s.Viewport().Zoom)
	}
	s.KeyDown("0", Modifiers{Ctrl: true})
	if s.Viewport().Zoom != 1 {
		t.Fatalf("ctrl+0 zoom = %v", s.Viewport().Zoom)
	}
	s.KeyDown("j", Modifiers{})
	if s.Rotation() != 90 {
		t.Fatalf("j rotation = %d", s.Rotation())
	}
	s.KeyDown("j", Modifiers{Ctrl: true})
	if s.Rotation() != 90 {
		t.Fatalf("ctrl+j must not rotate")
	}
}
