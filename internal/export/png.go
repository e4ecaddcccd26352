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
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"minicanvas/internal/bitmap"
	applog "minicanvas/internal/log"
	"minicanvas/internal/render"
	"minicanvas/internal/scene"
)

// RasterScale is the pixel density of raster exports.
const RasterScale = 2

// now stamps raster file names.
var now = time.Now

// Raster composites c at scale: background color, then the background
// bitmap stretched over the whole image, then the element layer. For 90
// and 270 degrees the output trades width and height and the layer turns
// with it. Overlays (grid, selection) never reach the raster.
func Raster(r *render.Renderer, c *scene.Canvas, scale float64) (image.Image, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	if scale <= 0 {
		scale = RasterScale
	}
	w, h := c.Width, c.Height
	if c.Rotation.Swapped() {
		w, h = h, w
	}
	pw, ph := int(float64(w)*scale), int(float64(h)*scale)
	dc := gg.NewContext(max(pw, 1), max(ph, 1))

	bg := c.Background
	if bg == "" {
		bg = scene.DefaultBackground
	}
	dc.SetColor(scene.MustColor(bg))
	dc.Clear()

	if c.BackgroundImage != "" {
		img, err := bitmap.DecodeRef(c.BackgroundImage)
		if err != nil {
			return nil, fmt.Errorf("background image: %w", err)
		}
		drawStretched(dc, img, pw, ph)
	}

	layer := render.Rotated(r.Layer(render.FromCanvas(c), scale), c.Rotation)
	drawStretched(dc, layer, pw, ph)
	return dc.Image(), nil
}

// drawStretched scales img onto the whole of dc.
func drawStretched(dc *gg.Context, img image.Image, w, h int) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	dc.Push()
	dc.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	dc.Pop()
}

// RasterName returns "{name}-{unix millis}.png".
func RasterName(c *scene.Canvas, at time.Time) string {
	return fmt.Sprintf("%s-%d.png", fileSafe(c.Name), at.UnixMilli())
}

// WriteRaster renders c at scale into dir and returns the written path.
func WriteRaster(r *render.Renderer, c *scene.Canvas, dir string, scale float64) (string, error) {
	img, err := Raster(r, c, scale)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure out dir: %w", err)
	}
	name := filepath.Join(dir, RasterName(c, now()))
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close png: %w", err)
	}
	b := img.Bounds()
	applog.WithComponent("export").Info("raster written",
		slog.String("path", name), slog.Int("w", b.Dx()), slog.Int("h", b.Dy()))
	return name, nil
}

// fileSafe keeps a canvas name usable as a file name.
func fileSafe(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "canvas"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
