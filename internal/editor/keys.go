/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "strings"

// Key identifies a pressed key: the character it produces ("z", "\\", "+")
// or one of the named keys below.
type Key string

const (
	KeySpace     Key = "Space"
	KeyDelete    Key = "Delete"
	KeyBackspace Key = "Backspace"
	KeyEscape    Key = "Escape"
)

// KeyDown dispatches a shortcut. While the text editor is open only Escape
// is honored; it cancels the edit.
func (s *Session) KeyDown(k Key, mods Modifiers) Effect {
	if s.mode == ModeTextEditing {
		if k == KeyEscape {
			s.CancelText()
		}
		return EffectNone
	}
	lower := Key(strings.ToLower(string(k)))
	if mods.Ctrl {
		if r := []rune(string(k)); len(r) == 1 {
			if t, ok := ToolForShortcut(r[0]); ok {
				return s.SelectTool(t)
			}
		}
	}
	switch {
	case mods.Ctrl && lower == "z":
		if mods.Shift {
			s.Redo()
		} else {
			s.Undo()
		}
	case k == KeyDelete || (mods.Ctrl && k == KeyBackspace):
		s.DeleteSelected()
	case k == KeySpace:
		s.beginPan()
	case k == KeyEscape:
		if s.mode == ModePathDrawing || s.mode == ModeDrawing {
			s.resetGesture()
		}
	case mods.Ctrl && k == "0":
		s.ResetView()
	case mods.Ctrl && (k == "=" || k == "+"):
		s.ZoomIn()
	case mods.Ctrl && k == "-":
		s.ZoomOut()
	case mods.Ctrl && mods.Shift && (k == "\\" || k == "|"):
		s.ToggleCodePanel()
	case mods.Ctrl && k == "\\":
		s.TogglePropertiesPanel()
	case !mods.Ctrl && k == "j":
		s.RotateCanvas()
	}
	return EffectNone
}

// KeyUp ends panning when Space is released.
func (s *Session) KeyUp(k Key) {
	if k == KeySpace {
		s.endPan()
	}
}

func (s *Session) beginPan() {
	if s.mode == ModePanning {
		return
	}
	s.resumeMode = s.mode
	s.mode = ModePanning
	s.panPrimed = false
}

func (s *Session) endPan() {
	if s.mode != ModePanning {
		return
	}
	s.mode = s.resumeMode
	s.resumeMode = ModeIdle
	s.panPrimed = false
}
