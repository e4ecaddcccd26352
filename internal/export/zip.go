/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	applog "minicanvas/internal/log"
	"minicanvas/internal/scene"
)

// WriteBundleZip archives the code bundle of c at dest. The archive holds
// index.html, style.css and script.js at its root.
func WriteBundleZip(c *scene.Canvas, dest string) error {
	if c == nil {
		return ErrNoCanvas
	}
	l := applog.WithOperation(applog.WithComponent("export"), "zip").With(slog.String("canvas", c.Name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	_ = os.Remove(dest)

	zf, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	mod := time.Now()
	for _, p := range Parts {
		src, _ := Code(c, p)
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.FileName(), Method: zip.Deflate, Modified: mod})
		if err != nil {
			return fmt.Errorf("zip add %s: %w", p.FileName(), err)
		}
		if _, err := w.Write([]byte(src)); err != nil {
			return fmt.Errorf("zip write %s: %w", p.FileName(), err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	l.Info("bundle archived", slog.String("path", dest))
	return nil
}
