/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "fmt"

// Script is a scene script: an optional canvas to open and a list of editor
// actions replayed against a session, one action per step.
type Script struct {
	Canvas *CanvasSpec `yaml:"canvas"`
	Steps  []Step      `yaml:"steps"`
}

// CanvasSpec names a preset or gives an explicit size.
type CanvasSpec struct {
	Preset string `yaml:"preset"`
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Step holds exactly one action. Points are [x, y] in canvas coordinates.
type Step struct {
	Canvas     *CanvasSpec  `yaml:"canvas"`
	Switch     *int         `yaml:"switch"`
	Tool       string       `yaml:"tool"`
	Style      *StyleStep   `yaml:"style"`
	Drag       *DragStep    `yaml:"drag"`
	Click      []float64    `yaml:"click"`
	DblClick   []float64    `yaml:"dblclick"`
	Text       *string      `yaml:"text"`
	Key        string       `yaml:"key"`
	Select     *int         `yaml:"select"`
	Forward    *int         `yaml:"forward"`
	Backward   *int         `yaml:"backward"`
	Delete     bool         `yaml:"delete"`
	Clear      bool         `yaml:"clear"`
	Undo       int          `yaml:"undo"`
	Redo       int          `yaml:"redo"`
	Animate    *AnimateStep `yaml:"animate"`
	Property   *PropStep    `yaml:"property"`
	Background string       `yaml:"background"`
	BgImage    string       `yaml:"backgroundImage"`
	RemoveBg   bool         `yaml:"removeBackgroundImage"`
	Resize     *ResizeStep  `yaml:"resize"`
	Rotate     bool         `yaml:"rotate"`
	Image      string       `yaml:"image"`
	FillImage  string       `yaml:"fillImage"`

	// position in the source, set by Parse
	Line, Column int `yaml:"-"`
}

// StyleStep changes the drawing defaults; unset fields keep their value.
type StyleStep struct {
	Fill        string    `yaml:"fill"`
	Gradient    *[]string `yaml:"gradient"` // [start, end]
	Angle       *float64  `yaml:"angle"`
	Stroke      string    `yaml:"stroke"`
	StrokeWidth *float64  `yaml:"strokeWidth"`
	Opacity     *float64  `yaml:"opacity"`
	FontSize    *float64  `yaml:"fontSize"`
	Bold        *bool     `yaml:"bold"`
	Italic      *bool     `yaml:"italic"`
	Underline   *bool     `yaml:"underline"`
}

type DragStep struct {
	From  []float64 `yaml:"from"`
	To    []float64 `yaml:"to"`
	Shift bool      `yaml:"shift"`
}

// ResizeStep changes the active canvas size; an unset side keeps its value.
type ResizeStep struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type AnimateStep struct {
	Type     string  `yaml:"type"`
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
}

type PropStep struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Error represents a parse error with position context.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message) }
