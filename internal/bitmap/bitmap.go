/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bitmap loads user-supplied images off the UI thread. A load
// resolves to a Bitmap carrying a self-contained data URL reference, which
// is what scene fills and canvas backgrounds store.
package bitmap

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	applog "minicanvas/internal/log"
)

// ErrUnsupported is returned for data no registered decoder understands.
var ErrUnsupported = errors.New("unsupported image format")

// Bitmap is a decoded image with its natural size.
type Bitmap struct {
	Ref    string // data URL; safe to store in scene documents
	Width  int
	Height int
	Format string
	Image  image.Image
}

// Aspect returns width/height, or 0 for an empty bitmap.
func (b Bitmap) Aspect() float64 {
	if b.Height == 0 {
		return 0
	}
	return float64(b.Width) / float64(b.Height)
}

var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
}

// Decode decodes data and builds its data URL.
func Decode(data []byte) (Bitmap, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Bitmap{}, ErrUnsupported
		}
		return Bitmap{}, fmt.Errorf("decode image: %w", err)
	}
	mime, ok := mimeTypes[format]
	if !ok {
		return Bitmap{}, ErrUnsupported
	}
	b := img.Bounds()
	return Bitmap{
		Ref:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
		Image:  img,
	}, nil
}

// ReadFile reads and decodes path synchronously.
func ReadFile(path string) (Bitmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bitmap{}, fmt.Errorf("read image: %w", err)
	}
	bm, err := Decode(data)
	if err != nil {
		return Bitmap{}, fmt.Errorf("load %s: %w", path, err)
	}
	return bm, nil
}

// DecodeRef turns a stored reference back into an image. data: URLs are
// decoded in place; anything else is treated as a local file path.
func DecodeRef(ref string) (image.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("decode ref: empty reference")
	}
	if !strings.HasPrefix(ref, "data:") {
		bm, err := ReadFile(ref)
		if err != nil {
			return nil, err
		}
		return bm.Image, nil
	}
	comma := strings.IndexByte(ref, ',')
	if comma < 0 || !strings.HasSuffix(ref[:comma], ";base64") {
		return nil, fmt.Errorf("decode ref: %w", ErrUnsupported)
	}
	data, err := base64.StdEncoding.DecodeString(ref[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decode ref: %w", err)
	}
	bm, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return bm.Image, nil
}

// Future is a pending load. It resolves exactly once.
type Future struct {
	done chan struct{}
	bm   Bitmap
	err  error
}

// Pending returns an unresolved future and the function resolving it.
// Calls after the first are ignored.
func Pending() (*Future, func(Bitmap, error)) {
	f := &Future{done: make(chan struct{})}
	var once sync.Once
	return f, func(bm Bitmap, err error) {
		once.Do(func() {
			f.bm, f.err = bm, err
			close(f.done)
		})
	}
}

// Resolved returns a future that is already complete.
func Resolved(bm Bitmap, err error) *Future {
	f, resolve := Pending()
	resolve(bm, err)
	return f
}

type result struct {
	bm  Bitmap
	err error
}

// Load starts reading path in the background. Cancelling ctx resolves the
// future with ctx's error unless the decode already finished.
func Load(ctx context.Context, path string) *Future {
	f, resolve := Pending()
	go func() {
		ch := make(chan result, 1)
		go func() {
			bm, err := ReadFile(path)
			ch <- result{bm: bm, err: err}
		}()
		var r result
		select {
		case r = <-ch:
		case <-ctx.Done():
			r.err = ctx.Err()
		}
		if r.err != nil {
			applog.WithComponent("bitmap").Warn("image load failed", "path", path, "err", r.err)
		}
		resolve(r.bm, r.err)
	}()
	return f
}

// Done is closed once the load has finished.
func (f *Future) Done() <-chan struct{} { return f.done }

// Ready reports the result without blocking; ok is false while pending.
func (f *Future) Ready() (bm Bitmap, ok bool, err error) {
	select {
	case <-f.done:
		return f.bm, true, f.err
	default:
		return Bitmap{}, false, nil
	}
}

// Wait blocks until the load finishes or ctx ends.
func (f *Future) Wait(ctx context.Context) (Bitmap, error) {
	select {
	case <-f.done:
		return f.bm, f.err
	case <-ctx.Done():
		return Bitmap{}, ctx.Err()
	}
}
