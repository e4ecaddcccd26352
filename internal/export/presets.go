/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"minicanvas/internal/render"
	"minicanvas/internal/scene"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// Format names one output kind of a batch run.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatZip  = "zip"
)

// BatchOptions controls batch export across canvases and formats.
//
// Output layout under OutDir: html/<canvas>/ holds a code bundle, zip/ the
// same bundle as one archive per canvas. png/, svg/ and pdf/ hold one file
// per canvas.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // html, zip, png, svg, pdf; empty means preset defaults
	OutDir  string
	Scale   float64 // raster scale; zero means RasterScale
}

// BatchExport runs the preset over every canvas and returns the written paths.
func BatchExport(r *render.Renderer, canvases []*scene.Canvas, opt BatchOptions) ([]string, error) {
	if len(canvases) == 0 {
		return nil, ErrNoCanvas
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	base := opt.OutDir
	if base == "" {
		base = string(opt.Preset)
	}

	var written []string
	dirs := make(map[string]int)
	for _, c := range canvases {
		if c == nil {
			continue
		}
		slug := fileSafe(c.Name)
		if n := dirs[slug]; n > 0 {
			dirs[slug] = n + 1
			slug = fmt.Sprintf("%s-%d", slug, n+1)
		} else {
			dirs[slug] = 1
		}
		for _, f := range formats {
			switch strings.ToLower(strings.TrimSpace(f)) {
			case FormatHTML:
				paths, err := WriteBundle(c, filepath.Join(base, FormatHTML, slug))
				if err != nil {
					return written, fmt.Errorf("html %s: %w", c.Name, err)
				}
				written = append(written, paths...)
			case FormatZip:
				p := filepath.Join(base, FormatZip, slug+".zip")
				if err := WriteBundleZip(c, p); err != nil {
					return written, fmt.Errorf("zip %s: %w", c.Name, err)
				}
				written = append(written, p)
			case FormatPNG:
				p, err := WriteRaster(r, c, filepath.Join(base, FormatPNG), opt.Scale)
				if err != nil {
					return written, fmt.Errorf("png %s: %w", c.Name, err)
				}
				written = append(written, p)
			case FormatSVG:
				p, err := WriteSVG(c, filepath.Join(base, FormatSVG))
				if err != nil {
					return written, fmt.Errorf("svg %s: %w", c.Name, err)
				}
				written = append(written, p)
			case FormatPDF:
				p, err := WritePDF(c, filepath.Join(base, FormatPDF))
				if err != nil {
					return written, fmt.Errorf("pdf %s: %w", c.Name, err)
				}
				written = append(written, p)
			default:
				return written, fmt.Errorf("unknown format: %s", f)
			}
		}
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{FormatHTML, FormatPNG, FormatSVG}
	case PresetPrint:
		return []string{FormatPDF, FormatPNG}
	default:
		return []string{FormatHTML}
	}
}
