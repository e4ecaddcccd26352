/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures single-line text the way the canvas draws it.
// Measurement is offscreen and deterministic: the family is fixed and
// resolved to the embedded Go fonts.
package textlayout

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Family is the CSS font stack used by the editor. Measurement resolves it to Go fonts.
const Family = "Inter, system-ui"

// DefaultSize is the font size used when a spec carries none.
const DefaultSize = 24

// FontSpec describes a requested font in canvas pixels.
type FontSpec struct {
	Size   float64
	Bold   bool
	Italic bool
}

// Measurer returns the advance width of text set in spec.
type Measurer interface {
	Width(spec FontSpec, text string) float64
}

// OTMeasurer measures with real glyph advances from a FontLibrary.
// Faces are not safe for concurrent use, so calls are serialized.
type OTMeasurer struct {
	Lib      *FontLibrary
	Fallback Measurer

	mu sync.Mutex
}

func (m *OTMeasurer) Width(spec FontSpec, text string) float64 {
	if text == "" {
		return 0
	}
	if m.Lib != nil {
		if face, err := m.Lib.Face(spec); err == nil {
			m.mu.Lock()
			adv := font.MeasureString(face, text)
			m.mu.Unlock()
			return fixedToFloat(adv)
		}
	}
	fb := m.Fallback
	if fb == nil {
		fb = BasicMeasurer{}
	}
	return fb.Width(spec, text)
}

// BasicMeasurer scales the 7x13 bitmap face to the requested size.
// Every rune advances by the same amount, which keeps tests exact.
type BasicMeasurer struct{}

func (BasicMeasurer) Width(spec FontSpec, text string) float64 {
	size := spec.Size
	if size <= 0 {
		size = DefaultSize
	}
	adv := float64(basicfont.Face7x13.Advance)
	return float64(utf8.RuneCountInString(text)) * adv * size / float64(basicfont.Face7x13.Height)
}

var (
	defaultOnce sync.Once
	defaultM    Measurer
)

// Default returns the shared measurer: Go fonts when they parse, otherwise BasicMeasurer.
func Default() Measurer {
	defaultOnce.Do(func() {
		lib, err := GoFonts()
		if err != nil {
			defaultM = BasicMeasurer{}
			return
		}
		defaultM = &OTMeasurer{Lib: lib}
	})
	return defaultM
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
