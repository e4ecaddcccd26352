/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "unicode"

// Tool selects what a pointer-down on the canvas does.
type Tool string

const (
	ToolSelect  Tool = "select"
	ToolRect    Tool = "rect"
	ToolEllipse Tool = "ellipse"
	ToolLine    Tool = "line"
	ToolPath    Tool = "path"
	ToolText    Tool = "text"
	ToolImage   Tool = "image"
)

// ToolInfo is a toolbar entry. Shortcut is pressed together with Ctrl/Cmd.
type ToolInfo struct {
	Tool     Tool
	Label    string
	Shortcut rune
}

// Tools lists the toolbar in display order.
var Tools = []ToolInfo{
	{Tool: ToolSelect, Label: "Select", Shortcut: 'V'},
	{Tool: ToolRect, Label: "Rectangle", Shortcut: 'R'},
	{Tool: ToolEllipse, Label: "Ellipse", Shortcut: 'O'},
	{Tool: ToolLine, Label: "Line", Shortcut: 'L'},
	{Tool: ToolPath, Label: "Pen", Shortcut: 'P'},
	{Tool: ToolText, Label: "Text", Shortcut: 'T'},
	{Tool: ToolImage, Label: "Image", Shortcut: 'I'},
}

// ToolForShortcut resolves a shortcut letter, ignoring case.
func ToolForShortcut(r rune) (Tool, bool) {
	r = unicode.ToUpper(r)
	for _, t := range Tools {
		if t.Shortcut == r {
			return t.Tool, true
		}
	}
	return "", false
}

func (t Tool) Valid() bool {
	for _, info := range Tools {
		if info.Tool == t {
			return true
		}
	}
	return false
}
