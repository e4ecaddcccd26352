/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"time"
)

// Rotation is a canvas rotation in degrees: 0, 90, 180 or 270.
type Rotation int

// Next returns r advanced by a quarter turn.
func (r Rotation) Next() Rotation { return (r + 90) % 360 }

// Swapped reports whether width and height trade places when displayed.
func (r Rotation) Swapped() bool { return r == 90 || r == 270 }

// Canvas is a named workspace owning its own element sequence.
type Canvas struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Elements        []Element `json:"elements"`
	Background      string    `json:"background"`
	BackgroundImage string    `json:"backgroundImage,omitempty"`
	Rotation        Rotation  `json:"rotation"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewCanvas returns an empty white canvas.
func NewCanvas(name string, w, h int) *Canvas {
	return &Canvas{
		ID:         CanvasIDGen(),
		Name:       name,
		Width:      w,
		Height:     h,
		Elements:   []Element{},
		Background: DefaultBackground,
		CreatedAt:  time.Now(),
	}
}

// Bounds returns the drawable area in canvas coordinates.
func (c *Canvas) Bounds() (w, h float64) { return float64(c.Width), float64(c.Height) }

// Preset is a named canvas size from the "new canvas" menu.
type Preset struct {
	ID     string
	Label  string
	Width  int
	Height int
}

// Presets lists the built-in sizes in menu order.
var Presets = []Preset{
	{ID: "desktop", Label: "Desktop", Width: 1920, Height: 1080},
	{ID: "tablet", Label: "Tablet", Width: 1024, Height: 768},
	{ID: "mobile", Label: "Mobile", Width: 812, Height: 375},
	{ID: "square", Label: "Square", Width: 800, Height: 800},
	{ID: "banner", Label: "Banner", Width: 1200, Height: 300},
	{ID: "story", Label: "Instagram Story", Width: 1920, Height: 1080},
	{ID: "post", Label: "Instagram Post", Width: 1080, Height: 1080},
}

// Custom canvas defaults.
const (
	CustomWidth  = 800
	CustomHeight = 600
)

// PresetByID looks up a preset.
func PresetByID(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// CanvasName is the display name given to canvases created from p.
func (p Preset) CanvasName() string { return p.Label + " Canvas" }
