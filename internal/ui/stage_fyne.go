//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/editor"
	"minicanvas/internal/render"
	"minicanvas/internal/vector"
)

// Stage is the drawing surface. It forwards pointer and key events to the
// session in canvas coordinates and repaints from it.
type Stage struct {
	widget.BaseWidget
	s      *editor.Session
	r      *render.Renderer
	raster *canvas.Raster
	mods   editor.Modifiers

	// OnChange runs after every event that may have changed the session.
	OnChange func()
	// OnEffect handles requests the session cannot serve itself.
	OnEffect func(editor.Effect)
}

var (
	_ desktop.Mouseable   = (*Stage)(nil)
	_ desktop.Hoverable   = (*Stage)(nil)
	_ desktop.Keyable     = (*Stage)(nil)
	_ fyne.Draggable      = (*Stage)(nil)
	_ fyne.Scrollable     = (*Stage)(nil)
	_ fyne.DoubleTappable = (*Stage)(nil)
)

func NewStage(s *editor.Session, r *render.Renderer) *Stage {
	st := &Stage{s: s, r: r}
	st.ExtendBaseWidget(st)
	return st
}

func (st *Stage) CreateRenderer() fyne.WidgetRenderer {
	st.raster = canvas.NewRaster(st.draw)
	return widget.NewSimpleRenderer(st.raster)
}

func (st *Stage) MinSize() fyne.Size { return fyne.NewSize(480, 320) }

func (st *Stage) Resize(size fyne.Size) {
	st.BaseWidget.Resize(size)
	st.s.SetViewportSize(float64(size.Width), float64(size.Height))
}

func (st *Stage) draw(w, h int) image.Image {
	size := st.Size()
	px := 1.0
	if size.Width > 0 {
		px = float64(w) / float64(size.Width)
	}
	f, ok := render.FromSession(st.s)
	return stageImage(st.r, f, ok, st.s.Viewport(), w, h, px)
}

func (st *Stage) canvasPt(pos fyne.Position) vector.Pt {
	return st.s.Viewport().ToCanvas(vector.Pt{X: float64(pos.X), Y: float64(pos.Y)})
}

func (st *Stage) changed(eff editor.Effect) {
	st.Refresh()
	if st.OnChange != nil {
		st.OnChange()
	}
	if eff != editor.EffectNone && st.OnEffect != nil {
		st.OnEffect(eff)
	}
}

func modsOf(m fyne.KeyModifier) editor.Modifiers {
	return editor.Modifiers{
		Shift: m&fyne.KeyModifierShift != 0,
		Ctrl:  m&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0,
	}
}

func (st *Stage) MouseDown(ev *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(st); c != nil {
		c.Focus(st)
	}
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	st.mods = modsOf(ev.Modifier)
	st.changed(st.s.PointerDown(st.canvasPt(ev.Position), st.mods))
}

func (st *Stage) MouseUp(ev *desktop.MouseEvent) {
	st.s.PointerUp(st.canvasPt(ev.Position), modsOf(ev.Modifier))
	st.changed(editor.EffectNone)
}

func (st *Stage) Dragged(ev *fyne.DragEvent) {
	st.s.PointerMove(st.canvasPt(ev.Position), st.mods)
	st.changed(editor.EffectNone)
}

func (st *Stage) DragEnd() {}

func (st *Stage) MouseIn(*desktop.MouseEvent) {}

// MouseMoved only matters while panning with Space held.
func (st *Stage) MouseMoved(ev *desktop.MouseEvent) {
	if st.s.Mode() != editor.ModePanning {
		return
	}
	st.s.PointerMove(st.canvasPt(ev.Position), modsOf(ev.Modifier))
	st.changed(editor.EffectNone)
}

func (st *Stage) MouseOut() {}

func (st *Stage) Scrolled(ev *fyne.ScrollEvent) {
	if st.s.Wheel(-float64(ev.Scrolled.DY), st.mods) {
		st.changed(editor.EffectNone)
	}
}

func (st *Stage) DoubleTapped(ev *fyne.PointEvent) {
	st.changed(st.s.DoubleClick(st.canvasPt(ev.Position)))
}

func (st *Stage) FocusGained()            {}
func (st *Stage) FocusLost()              { st.mods = editor.Modifiers{} }
func (st *Stage) TypedRune(rune)          {}
func (st *Stage) TypedKey(*fyne.KeyEvent) {}

func (st *Stage) KeyDown(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		st.mods.Shift = true
		return
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		st.mods.Ctrl = true
		return
	}
	k, ok := editorKey(string(ev.Name))
	if !ok {
		return
	}
	st.changed(st.s.KeyDown(k, st.mods))
}

func (st *Stage) KeyUp(ev *fyne.KeyEvent) {
	switch ev.Name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		st.mods.Shift = false
		return
	case desktop.KeyControlLeft, desktop.KeyControlRight, desktop.KeySuperLeft, desktop.KeySuperRight:
		st.mods.Ctrl = false
		return
	}
	if k, ok := editorKey(string(ev.Name)); ok {
		st.s.KeyUp(k)
		st.changed(editor.EffectNone)
	}
}

// armFrom decodes rc off the event thread and arms the image tool with the
// pending result.
func armFrom(s *editor.Session, rc io.ReadCloser, done func()) {
	f, resolve := bitmap.Pending()
	s.ArmImage(f)
	go func() {
		defer rc.Close()
		data, err := io.ReadAll(rc)
		var bm bitmap.Bitmap
		if err == nil {
			bm, err = bitmap.Decode(data)
		}
		fyne.Do(func() {
			resolve(bm, err)
			done()
		})
	}()
}
