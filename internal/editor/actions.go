/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"bytes"
	"log/slog"
	"math"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/scene"
)

// SelectTool switches the active tool. Any path under construction is
// discarded. Choosing the image tool with nothing armed asks for a file.
func (s *Session) SelectTool(t Tool) Effect {
	if !t.Valid() || s.mode == ModeTextEditing {
		return EffectNone
	}
	if t == ToolImage && s.upload == nil {
		return EffectOpenFilePicker
	}
	s.resetGesture()
	s.tool = t
	s.log.Debug("tool", slog.String("tool", string(t)))
	return EffectNone
}

// ArmImage arms the image tool with a bitmap that may still be loading.
// Pointer-down waits for it without blocking: a pending load refuses the
// press, a failed one disarms and asks for another file.
func (s *Session) ArmImage(f *bitmap.Future) {
	if f == nil || s.mode == ModeTextEditing {
		return
	}
	s.resetGesture()
	s.upload = f
	s.tool = ToolImage
}

// ImageArmed reports whether a bitmap is armed for placement.
func (s *Session) ImageArmed() bool { return s.upload != nil }

// CreateCanvas adds a w×h canvas, makes it active and fits it into view.
// The outgoing canvas is flushed first. It returns nil for non-positive sizes.
func (s *Session) CreateCanvas(name string, w, h int) *scene.Canvas {
	if w <= 0 || h <= 0 {
		s.reject("create canvas", "bad dimension", slog.Int("w", w), slog.Int("h", h))
		return nil
	}
	s.flush()
	c := scene.NewCanvas(name, w, h)
	s.ws.add(c)
	s.load(c)
	s.log.Info("canvas created", slog.String("id", c.ID), slog.String("name", name), slog.Int("w", w), slog.Int("h", h))
	return c
}

// CreateFromPreset creates a canvas from a named preset.
func (s *Session) CreateFromPreset(id string) (*scene.Canvas, bool) {
	p, ok := scene.PresetByID(id)
	if !ok {
		s.reject("create canvas", "unknown preset", slog.String("preset", id))
		return nil, false
	}
	return s.CreateCanvas(p.CanvasName(), p.Width, p.Height), true
}

// SwitchCanvas stores the live state of the active canvas and loads id.
// History restarts from the loaded state.
func (s *Session) SwitchCanvas(id string) bool {
	target := s.ws.Find(id)
	if target == nil {
		return s.reject("switch canvas", "unknown canvas", slog.String("id", id))
	}
	if cur := s.ws.Active(); cur != nil && cur.ID == id {
		return true
	}
	s.flush()
	s.ws.activate(id)
	s.load(target)
	s.log.Info("canvas switched", slog.String("id", id))
	return true
}

// ImportCanvas adds a decoded canvas document to the workspace and activates it.
func (s *Session) ImportCanvas(c *scene.Canvas) bool {
	if c == nil || c.Width <= 0 || c.Height <= 0 {
		return s.reject("import canvas", "bad dimension")
	}
	if s.ws.Find(c.ID) != nil {
		c.ID = scene.CanvasIDGen()
	}
	s.flush()
	s.ws.add(c)
	s.load(c)
	return true
}

// flush writes the live state back into the active record.
func (s *Session) flush() {
	rec := s.ws.Active()
	if rec == nil {
		return
	}
	rec.Elements = scene.CloneAll(s.elements)
	rec.Background = s.background
	rec.BackgroundImage = s.backgroundImage
	rec.Rotation = s.rotation
}

func (s *Session) load(c *scene.Canvas) {
	s.mode = ModeIdle
	s.editing = ""
	s.resetGesture()
	s.elements = scene.CloneAll(c.Elements)
	if s.elements == nil {
		s.elements = []scene.Element{}
	}
	s.background = c.Background
	if s.background == "" {
		s.background = scene.DefaultBackground
	}
	s.backgroundImage = c.BackgroundImage
	s.rotation = c.Rotation
	s.selection = ""
	s.history.Reset()
	s.snapshot("open canvas")
	s.FitView()
}

// Dimension names a canvas side for ResizeCanvas.
type Dimension string

const (
	DimWidth  Dimension = "width"
	DimHeight Dimension = "height"
)

// ResizeCanvas changes one side of the active canvas and recenters the
// view. Non-positive values are refused. The change reaches history only
// through CommitCanvasChanges.
func (s *Session) ResizeCanvas(d Dimension, v int) bool {
	rec := s.ws.Active()
	if rec == nil {
		return false
	}
	if v <= 0 {
		return s.reject("resize canvas", "bad dimension", slog.String("dim", string(d)), slog.Int("value", v))
	}
	switch d {
	case DimWidth:
		rec.Width = v
	case DimHeight:
		rec.Height = v
	default:
		return s.reject("resize canvas", "unknown dimension", slog.String("dim", string(d)))
	}
	s.FitView()
	return true
}

// CommitCanvasChanges records pending canvas edits once they are final.
// Canvas size is not part of a snapshot, so a commit that changed nothing
// else records nothing.
func (s *Session) CommitCanvasChanges() bool {
	if s.ws.Active() == nil {
		return false
	}
	blob, err := s.state()
	if err != nil {
		s.log.Error("snapshot failed", slog.String("action", "canvas settings"), slog.Any("err", err))
		return false
	}
	if cur, ok := s.history.Current(); ok && bytes.Equal(cur.Blob, blob) {
		return false
	}
	s.snapshot("canvas settings")
	return true
}

// Viewport control.

func (s *Session) ZoomIn()  { s.vp = s.vp.ZoomBy(ZoomStep) }
func (s *Session) ZoomOut() { s.vp = s.vp.ZoomBy(1 / ZoomStep) }

// Wheel zooms by a small factor per tick, only with Ctrl/Cmd held.
func (s *Session) Wheel(deltaY float64, mods Modifiers) bool {
	if !mods.Ctrl {
		return false
	}
	f := WheelZoomIn
	if deltaY > 0 {
		f = WheelZoomOut
	}
	s.vp = s.vp.ZoomBy(f)
	return true
}

// ResetView shows the active canvas at 100%, centered.
func (s *Session) ResetView() {
	if c := s.ws.Active(); c != nil {
		s.vp = s.vp.Center(c.Bounds())
	}
}

// FitView centers the active canvas and shrinks it to fit the stage.
func (s *Session) FitView() {
	if c := s.ws.Active(); c != nil {
		w, h := c.Bounds()
		s.vp = s.vp.Fit(w, h, s.opts.FitPadding)
	}
}

// SetViewportSize records a new stage size. The current zoom and pan stay.
func (s *Session) SetViewportSize(w, h float64) {
	if w > 0 && h > 0 {
		s.vp.Width, s.vp.Height = w, h
	}
}

func (s *Session) ToggleGrid()            { s.showGrid = !s.showGrid }
func (s *Session) TogglePropertiesPanel() { s.propsOpen = !s.propsOpen }
func (s *Session) ToggleCodePanel()       { s.codeOpen = !s.codeOpen }

// Style defaults.

// SetStyle replaces the defaults and restyles the selected element. It is a
// live edit: nothing is recorded until CommitProperties.
func (s *Session) SetStyle(st scene.Style) {
	s.style = st
	if i := s.selectedIndex(); i >= 0 {
		s.elements[i] = scene.ApplyStyle(s.elements[i], st)
	}
}

// SetFillImage makes ref the image fill of the defaults and the selection.
func (s *Session) SetFillImage(ref string) {
	if ref == "" {
		return
	}
	st := s.style
	st.FillKind, st.FillImage = scene.FillImage, ref
	s.SetStyle(st)
}

// Selection and layers.

// SelectElement selects id (from the layer list) and loads its style.
func (s *Session) SelectElement(id string) bool {
	i := scene.IndexOf(s.elements, id)
	if i < 0 {
		return s.reject("select", "unknown element", slog.String("id", id))
	}
	s.selection = id
	s.style = scene.StyleOf(s.elements[i], s.style)
	return true
}

func (s *Session) ClearSelection() { s.selection = "" }

// DeleteSelected removes the selected element.
func (s *Session) DeleteSelected() bool {
	i := s.selectedIndex()
	if i < 0 {
		return false
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	s.selection = ""
	s.snapshot("delete")
	return true
}

// BringForward swaps id with the element drawn directly above it.
func (s *Session) BringForward(id string) bool {
	i := scene.IndexOf(s.elements, id)
	if i < 0 || i == len(s.elements)-1 {
		return false
	}
	s.elements[i], s.elements[i+1] = s.elements[i+1], s.elements[i]
	s.snapshot("bring forward")
	return true
}

// SendBackward swaps id with the element drawn directly below it.
func (s *Session) SendBackward(id string) bool {
	i := scene.IndexOf(s.elements, id)
	if i <= 0 {
		return false
	}
	s.elements[i], s.elements[i-1] = s.elements[i-1], s.elements[i]
	s.snapshot("send backward")
	return true
}

// ClearCanvas removes every element of the active canvas.
func (s *Session) ClearCanvas() bool {
	if s.ws.Active() == nil || len(s.elements) == 0 {
		return false
	}
	s.elements = []scene.Element{}
	s.selection = ""
	s.snapshot("clear canvas")
	return true
}

// Canvas appearance.

// SetBackground sets the canvas background color.
func (s *Session) SetBackground(color string) bool {
	if s.ws.Active() == nil {
		return false
	}
	if _, ok := scene.ParseColor(color); !ok {
		return s.reject("background", "bad color", slog.String("color", color))
	}
	s.background = color
	s.snapshot("background")
	return true
}

// SetBackgroundImage sets the canvas background bitmap reference.
func (s *Session) SetBackgroundImage(ref string) bool {
	if s.ws.Active() == nil || ref == "" {
		return false
	}
	s.backgroundImage = ref
	s.snapshot("background image")
	return true
}

func (s *Session) RemoveBackgroundImage() bool {
	if s.backgroundImage == "" {
		return false
	}
	s.backgroundImage = ""
	s.snapshot("remove background image")
	return true
}

// RotateCanvas turns the canvas a quarter turn clockwise.
func (s *Session) RotateCanvas() bool {
	if s.ws.Active() == nil {
		return false
	}
	s.rotation = s.rotation.Next()
	s.snapshot("rotate")
	return true
}

// Animations.

// SetAnimation stores the animation settings ApplyAnimation uses.
func (s *Session) SetAnimation(a scene.Animation) { s.animation = a }

// ApplyAnimation attaches the current animation settings to the selection.
// Applying AnimNone removes an existing animation.
func (s *Session) ApplyAnimation() bool {
	i := s.selectedIndex()
	if i < 0 {
		return s.reject("animate", "no selection")
	}
	a := s.animation
	if !a.Type.Valid() || a.Duration < 0 || a.Delay < 0 {
		return s.reject("animate", "bad settings", slog.String("type", string(a.Type)))
	}
	if a.Type == scene.AnimNone {
		if s.elements[i].Animation == nil {
			return false
		}
		s.elements[i].Animation = nil
		s.snapshot("remove animation")
		return true
	}
	s.elements[i].Animation = &a
	s.snapshot("animate")
	return true
}

// Property panel.

// Property names an editable geometry field.
type Property string

const (
	PropX        Property = "x"
	PropY        Property = "y"
	PropW        Property = "w"
	PropH        Property = "h"
	PropRadius   Property = "radius"
	PropCX       Property = "cx"
	PropCY       Property = "cy"
	PropRX       Property = "rx"
	PropRY       Property = "ry"
	PropX1       Property = "x1"
	PropY1       Property = "y1"
	PropX2       Property = "x2"
	PropY2       Property = "y2"
	PropFontSize Property = "fontSize"
)

// SetProperty edits one geometry field of the selection. Sizes must stay
// positive; the corner radius is clamped to [0, min(w,h)/2]. Like SetStyle
// it records nothing until CommitProperties.
func (s *Session) SetProperty(p Property, v float64) bool {
	i := s.selectedIndex()
	if i < 0 {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.reject("property", "not a number", slog.String("prop", string(p)))
	}
	out := s.elements[i].Clone()
	ok := true
	switch sh := out.Shape.(type) {
	case *scene.Rect:
		switch p {
		case PropX:
			sh.X = v
		case PropY:
			sh.Y = v
		case PropW:
			ok = v > 0
			sh.W = v
		case PropH:
			ok = v > 0
			sh.H = v
		case PropRadius:
			sh.Radius = v
		default:
			ok = false
		}
		sh.Radius = clampRadius(sh.Radius, sh.W, sh.H)
	case *scene.Ellipse:
		switch p {
		case PropCX:
			sh.CX = v
		case PropCY:
			sh.CY = v
		case PropRX:
			ok = v > 0
			sh.RX = v
		case PropRY:
			ok = v > 0
			sh.RY = v
		default:
			ok = false
		}
	case *scene.Line:
		switch p {
		case PropX1:
			sh.X1 = v
		case PropY1:
			sh.Y1 = v
		case PropX2:
			sh.X2 = v
		case PropY2:
			sh.Y2 = v
		default:
			ok = false
		}
	case *scene.Text:
		switch p {
		case PropX:
			sh.X = v
		case PropY:
			sh.Y = v
		case PropFontSize:
			ok = v > 0
			sh.FontSize = v
		default:
			ok = false
		}
	case *scene.Path:
		ok = false
	}
	if !ok {
		return s.reject("property", "not editable", slog.String("prop", string(p)), slog.String("kind", string(out.Kind())))
	}
	s.elements[i] = out
	if t, isText := out.Shape.(*scene.Text); isText {
		s.style.FontSize = t.FontSize
	}
	return true
}

// CommitProperties records the property-panel edits made since the last commit.
func (s *Session) CommitProperties() bool {
	if s.selectedIndex() < 0 {
		return false
	}
	s.snapshot("properties")
	return true
}

func clampRadius(r, w, h float64) float64 {
	return math.Max(0, math.Min(r, math.Min(w, h)/2))
}

// Text editor.

// EditText opens the text editor on the text element id.
func (s *Session) EditText(id string) Effect {
	i := scene.IndexOf(s.elements, id)
	if i < 0 || s.elements[i].Kind() != scene.KindText {
		return EffectNone
	}
	s.resetGesture()
	s.selection = id
	s.editing = id
	s.mode = ModeTextEditing
	return EffectOpenTextEditor
}

// SaveText stores content into the edited element and closes the editor.
func (s *Session) SaveText(content string) bool {
	if s.mode != ModeTextEditing {
		return false
	}
	i := scene.IndexOf(s.elements, s.editing)
	s.closeEditor()
	if i < 0 {
		return false
	}
	out := s.elements[i].Clone()
	out.Shape.(*scene.Text).Content = content
	s.elements[i] = out
	s.snapshot("edit text")
	return true
}

// CancelText closes the editor without changes.
func (s *Session) CancelText() {
	if s.mode == ModeTextEditing {
		s.closeEditor()
	}
}

func (s *Session) closeEditor() {
	s.editing = ""
	s.mode = ModeIdle
}
