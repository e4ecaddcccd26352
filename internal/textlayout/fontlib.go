/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontLibrary maps style variants of one family to parsed OpenType fonts and
// caches faces per size. It is safe for concurrent use.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[styleKey]*opentype.Font
	data  map[styleKey][]byte
	faces map[faceKey]font.Face
}

type styleKey struct{ bold, italic bool }

type faceKey struct {
	style styleKey
	size  float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{
		fonts: make(map[styleKey]*opentype.Font),
		data:  make(map[styleKey][]byte),
		faces: make(map[faceKey]font.Face),
	}
}

var (
	goOnce sync.Once
	goLib  *FontLibrary
	goErr  error
)

// GoFonts returns the shared library backed by the embedded Go font family.
// Every text measurement and raster in the editor resolves through it, so
// widths stay identical across machines.
func GoFonts() (*FontLibrary, error) {
	goOnce.Do(func() {
		lib := NewFontLibrary()
		for _, v := range []struct {
			bold, italic bool
			ttf          []byte
		}{
			{false, false, goregular.TTF},
			{true, false, gobold.TTF},
			{false, true, goitalic.TTF},
			{true, true, gobolditalic.TTF},
		} {
			if err := lib.Add(v.bold, v.italic, v.ttf); err != nil {
				goErr = err
				return
			}
		}
		goLib = lib
	})
	return goLib, goErr
}

// Add registers raw TTF/OTF data for a style variant.
func (fl *FontLibrary) Add(bold, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	k := styleKey{bold, italic}
	fl.fonts[k] = f
	fl.data[k] = data
	for fk := range fl.faces {
		if fk.style == k {
			delete(fl.faces, fk)
		}
	}
	return nil
}

// LoadFile registers a font file for a style variant.
func (fl *FontLibrary) LoadFile(bold, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Add(bold, italic, data)
}

// Data returns the raw font bytes for a style, falling back to regular.
func (fl *FontLibrary) Data(bold, italic bool) []byte {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if d, ok := fl.data[styleKey{bold, italic}]; ok {
		return d
	}
	return fl.data[styleKey{}]
}

// Face returns a cached face for spec at 72 DPI, so one point equals one canvas pixel.
func (fl *FontLibrary) Face(spec FontSpec) (font.Face, error) {
	size := spec.Size
	if size <= 0 {
		size = DefaultSize
	}
	k := styleKey{spec.Bold, spec.Italic}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if face, ok := fl.faces[faceKey{k, size}]; ok {
		return face, nil
	}
	f, ok := fl.fonts[k]
	if !ok {
		if f, ok = fl.fonts[styleKey{}]; !ok {
			return nil, fmt.Errorf("no font for bold=%v italic=%v", spec.Bold, spec.Italic)
		}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	fl.faces[faceKey{k, size}] = face
	return face, nil
}
