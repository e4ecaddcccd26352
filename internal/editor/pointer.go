/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"math"

	"minicanvas/internal/scene"
	"minicanvas/internal/vector"
)

// PointerDown starts a gesture at canvas point p with the active tool.
func (s *Session) PointerDown(p vector.Pt, mods Modifiers) Effect {
	c := s.ws.Active()
	if c == nil || s.mode == ModeTextEditing {
		return EffectNone
	}
	if s.mode == ModePanning {
		s.pointerDown = true
		s.lastScreen = s.vp.ToScreen(p)
		s.panPrimed = true
		return EffectNone
	}
	if s.tool != ToolSelect && !s.inBounds(c, p) {
		s.reject(string(s.tool), "outside canvas", slog.Float64("x", p.X), slog.Float64("y", p.Y))
		return EffectNone
	}
	s.pointerDown = true
	switch s.tool {
	case ToolSelect:
		s.pressSelect(p)
	case ToolPath:
		s.pressPath(p)
	case ToolText:
		return s.placeText(p)
	case ToolImage:
		return s.pressImage(p)
	case ToolRect, ToolEllipse, ToolLine:
		s.startDraft(p, s.newShape(p))
	}
	return EffectNone
}

// PointerMove advances the gesture in flight. Moves without a pressed
// pointer only matter while panning is primed.
func (s *Session) PointerMove(p vector.Pt, mods Modifiers) {
	switch s.mode {
	case ModePanning:
		if !s.pointerDown {
			return
		}
		cur := s.vp.ToScreen(p)
		if s.panPrimed {
			d := cur.Sub(s.lastScreen)
			s.vp = s.vp.PanBy(d.X, d.Y)
		}
		s.lastScreen, s.panPrimed = cur, true
	case ModeResizing:
		if s.pointerDown {
			s.resizeTo(p)
		}
	case ModeDragging:
		if s.pointerDown {
			s.dragTo(p)
		}
	case ModeDrawing:
		if s.pointerDown {
			s.updateDraft(p, mods)
		}
	}
}

// PointerUp ends the gesture in flight. Shapes are committed, drags and
// resizes record their snapshot here.
func (s *Session) PointerUp(p vector.Pt, mods Modifiers) {
	if !s.pointerDown {
		return
	}
	s.pointerDown = false
	if s.mode == ModePanning {
		// the gesture interrupted by Space ends with the pointer
		if s.resumeMode.gesture() {
			s.finishGesture(s.resumeMode)
			s.resumeMode = ModeIdle
		}
		return
	}
	if s.mode == ModeDrawing {
		s.updateDraft(p, mods)
	}
	s.finishGesture(s.mode)
}

// DoubleClick finalizes a path under construction or opens the text editor
// on a text element.
func (s *Session) DoubleClick(p vector.Pt) Effect {
	if s.ws.Active() == nil || s.mode == ModeTextEditing {
		return EffectNone
	}
	if s.mode == ModePathDrawing {
		if len(s.pathPoints) < 2 {
			s.reject("path", "too few points", slog.Int("points", len(s.pathPoints)))
			return EffectNone
		}
		s.commitPath()
		return EffectNone
	}
	i := scene.HitTest(s.elements, p, s.measure)
	if i < 0 || s.elements[i].Kind() != scene.KindText {
		return EffectNone
	}
	return s.EditText(s.elements[i].ID)
}

func (s *Session) inBounds(c *scene.Canvas, p vector.Pt) bool {
	w, h := c.Bounds()
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

func (s *Session) pressSelect(p vector.Pt) {
	// handles of the current selection reach outside its box, so test them first
	if i := s.selectedIndex(); i >= 0 && s.tryHandle(i, p) {
		return
	}
	i := scene.HitTest(s.elements, p, s.measure)
	if i < 0 {
		s.selection = ""
		s.mode = ModeIdle
		return
	}
	el := s.elements[i]
	s.selection = el.ID
	s.style = scene.StyleOf(el, s.style)
	if s.tryHandle(i, p) {
		return
	}
	s.dragOffset = p.Sub(s.bbox(el).Min())
	s.changed = false
	s.mode = ModeDragging
}

func (s *Session) tryHandle(i int, p vector.Pt) bool {
	el := s.elements[i]
	if !scene.Resizable(el) {
		return false
	}
	h := vector.HandleAt(s.bbox(el), p, s.vp.Zoom)
	if h == vector.HandleNone {
		return false
	}
	s.handle = h
	s.changed = false
	s.mode = ModeResizing
	return true
}

func (s *Session) resizeTo(p vector.Pt) {
	i := s.selectedIndex()
	if i < 0 {
		return
	}
	out, ok := scene.Resize(s.elements[i], s.handle, p, s.measure)
	if !ok {
		return
	}
	s.elements[i] = out
	s.changed = true
}

func (s *Session) dragTo(p vector.Pt) {
	i := s.selectedIndex()
	if i < 0 {
		return
	}
	origin := p.Sub(s.dragOffset)
	if s.opts.SmartGuides {
		box := s.bbox(s.elements[i])
		box.X, box.Y = origin.X, origin.Y
		snapped, guides := vector.SmartGuides(box, s.anchorsExcept(i), vector.SnapOptions{
			Threshold:     6 / s.vp.Zoom,
			SnapToEdges:   true,
			SnapToCenters: true,
		})
		origin, s.guides = snapped.Min(), guides
	}
	s.elements[i] = scene.MoveBoxTo(s.elements[i], origin, s.measure)
	s.changed = true
}

// anchorsExcept returns the canvas rectangle and every box but element skip's.
func (s *Session) anchorsExcept(skip int) []vector.Rect {
	w, h := s.ws.Active().Bounds()
	out := []vector.Rect{vector.R(0, 0, w, h)}
	for i, e := range s.elements {
		if i != skip {
			out = append(out, s.bbox(e))
		}
	}
	return out
}

func (s *Session) pressPath(p vector.Pt) {
	if s.mode != ModePathDrawing {
		s.pathPoints = []vector.Pt{p}
		s.mode = ModePathDrawing
		return
	}
	// the two presses of a double-click land on the same spot
	if n := len(s.pathPoints); n > 0 && s.pathPoints[n-1] == p {
		return
	}
	s.pathPoints = append(s.pathPoints, p)
}

func (s *Session) commitPath() {
	el := scene.ApplyStyle(scene.Element{
		ID:    scene.NewID(),
		Shape: &scene.Path{Points: append([]vector.Pt(nil), s.pathPoints...)},
		Fill:  scene.NoFill(),
	}, s.style)
	s.pathPoints = nil
	s.mode = ModeIdle
	s.elements = append(s.elements, el)
	s.selection = el.ID
	s.snapshot("draw path")
	s.tool = ToolSelect
}

func (s *Session) placeText(p vector.Pt) Effect {
	el := scene.ApplyStyle(scene.Element{
		ID:    scene.NewID(),
		Shape: &scene.Text{X: p.X, Y: p.Y, Content: scene.PlaceholderText},
	}, s.style)
	s.pointerDown = false
	s.elements = append(s.elements, el)
	s.selection = el.ID
	s.snapshot("add text")
	s.editing = el.ID
	s.mode = ModeTextEditing
	return EffectOpenTextEditor
}

func (s *Session) pressImage(p vector.Pt) Effect {
	if s.upload == nil {
		s.pointerDown = false
		return EffectOpenFilePicker
	}
	bm, ok, err := s.upload.Ready()
	if !ok {
		s.pointerDown = false
		s.reject("image", "bitmap pending")
		return EffectNone
	}
	if err != nil {
		s.pointerDown = false
		s.upload = nil
		s.log.Warn("armed bitmap failed to load", slog.Any("err", err))
		return EffectOpenFilePicker
	}
	el := scene.Element{
		ID:    scene.NewID(),
		Shape: &scene.Rect{X: p.X, Y: p.Y},
	}
	el = scene.ApplyStyle(el, s.style)
	el.Fill = scene.ImageFill(bm.Ref)
	s.startDraft(p, el)
	s.draftAspect = bm.Aspect()
	return EffectNone
}

func (s *Session) newShape(p vector.Pt) scene.Element {
	el := scene.Element{ID: scene.NewID(), Fill: scene.NoFill()}
	switch s.tool {
	case ToolRect:
		el.Shape = &scene.Rect{X: p.X, Y: p.Y}
	case ToolEllipse:
		el.Shape = &scene.Ellipse{CX: p.X, CY: p.Y}
	case ToolLine:
		el.Shape = &scene.Line{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
	}
	return scene.ApplyStyle(el, s.style)
}

func (s *Session) startDraft(anchor vector.Pt, el scene.Element) {
	s.anchor = anchor
	s.draft = &el
	s.draftAspect = 0
	s.mode = ModeDrawing
}

// updateDraft recomputes the provisional shape from the anchor and p.
// Shift squares rects, makes circles, keeps a placed image's aspect ratio
// and snaps lines to 45°.
func (s *Session) updateDraft(p vector.Pt, mods Modifiers) {
	if s.draft == nil {
		return
	}
	a := s.anchor
	switch sh := s.draft.Shape.(type) {
	case *scene.Rect:
		box := vector.DragBox(a, p, mods.Shift, s.draftAspect)
		sh.X, sh.Y, sh.W, sh.H = box.X, box.Y, box.W, box.H
	case *scene.Ellipse:
		rx, ry := math.Abs(p.X-a.X)/2, math.Abs(p.Y-a.Y)/2
		if mods.Shift {
			rx = math.Max(rx, ry)
			ry = rx
		}
		sh.CX, sh.CY = a.X+(p.X-a.X)/2, a.Y+(p.Y-a.Y)/2
		sh.RX, sh.RY = rx, ry
	case *scene.Line:
		end := p
		if mods.Shift {
			end = vector.SnapAngle(a, p)
		}
		sh.X2, sh.Y2 = end.X, end.Y
	}
}

// finishGesture completes a gesture of mode m.
func (s *Session) finishGesture(m Mode) {
	switch m {
	case ModeDragging, ModeResizing:
		changed := s.changed
		s.handle = vector.HandleNone
		s.dragOffset = vector.Pt{}
		s.changed = false
		s.guides = nil
		if s.mode == m {
			s.mode = ModeIdle
		}
		if !changed {
			return
		}
		if m == ModeResizing {
			s.snapshot("resize")
		} else {
			s.snapshot("move")
		}
	case ModeDrawing:
		s.commitDraft()
	}
}

func (s *Session) commitDraft() {
	d := s.draft
	s.draft = nil
	if s.mode == ModeDrawing {
		s.mode = ModeIdle
	}
	placing := s.tool == ToolImage
	if placing {
		s.tool = ToolSelect
		s.upload = nil
		s.draftAspect = 0
	}
	if d == nil {
		return
	}
	if scene.Degenerate(*d, MinShapeSize) {
		s.reject("draw", "degenerate", slog.String("kind", string(d.Kind())))
		return
	}
	s.elements = append(s.elements, *d)
	s.selection = d.ID
	s.snapshot("draw " + string(d.Kind()))
}
