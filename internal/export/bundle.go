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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	applog "minicanvas/internal/log"
	"minicanvas/internal/scene"
)

// Part names one file of the code bundle.
type Part string

const (
	PartHTML Part = "html"
	PartCSS  Part = "css"
	PartJS   Part = "js"
)

// Parts lists the code tabs in display order.
var Parts = []Part{PartHTML, PartCSS, PartJS}

// Code returns the generated source of one part.
func Code(c *scene.Canvas, p Part) (string, error) {
	switch p {
	case PartHTML:
		return GenerateHTML(c), nil
	case PartCSS:
		return GenerateCSS(c), nil
	case PartJS:
		return GenerateJS(c), nil
	default:
		return "", fmt.Errorf("unknown code part %q", p)
	}
}

// FileName returns the bundle file name of p.
func (p Part) FileName() string {
	switch p {
	case PartCSS:
		return CSSFile
	case PartJS:
		return JSFile
	default:
		return HTMLFile
	}
}

// WriteBundle writes index.html, style.css and script.js for c into dir and
// returns their paths.
func WriteBundle(c *scene.Canvas, dir string) ([]string, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	var paths []string
	for _, p := range Parts {
		src, _ := Code(c, p)
		name := filepath.Join(dir, p.FileName())
		if err := os.WriteFile(name, []byte(src), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", p.FileName(), err)
		}
		paths = append(paths, name)
	}
	applog.WithComponent("export").Info("bundle written", slog.String("dir", dir), slog.String("canvas", c.Name))
	return paths, nil
}

// writeClipboard is replaced in tests; headless machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// CopyToClipboard puts one generated part on the system clipboard.
func CopyToClipboard(c *scene.Canvas, p Part) error {
	src, err := Code(c, p)
	if err != nil {
		return err
	}
	if err := writeClipboard(src); err != nil {
		return fmt.Errorf("copy %s: %w", p, err)
	}
	return nil
}
