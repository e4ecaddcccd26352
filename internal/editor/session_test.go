/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"minicanvas/internal/config"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/vector"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	n := 0
	prev := scene.IDGen
	scene.IDGen = func() string {
		n++
		return fmt.Sprintf("el%d", n)
	}
	t.Cleanup(func() { scene.IDGen = prev })
	opts := DefaultOptions()
	opts.Measurer = textlayout.BasicMeasurer{}
	return NewSession(opts)
}

func pt(x, y float64) vector.Pt { return vector.Pt{X: x, Y: y} }

func drag(s *Session, from, to vector.Pt, mods Modifiers) {
	s.PointerDown(from, mods)
	s.PointerMove(to, mods)
	s.PointerUp(to, mods)
}

func click(s *Session, p vector.Pt) {
	s.PointerDown(p, Modifiers{})
	s.PointerUp(p, Modifiers{})
}

func rectOf(t *testing.T, e scene.Element) scene.Rect {
	t.Helper()
	r, ok := e.Shape.(*scene.Rect)
	if !ok {
		t.Fatalf("element %s is %s, want rect", e.ID, e.Kind())
	}
	return *r
}

func desktopWithRect(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	if _, ok := s.CreateFromPreset("desktop"); !ok {
		t.Fatalf("desktop preset missing")
	}
	s.SelectTool(ToolRect)
	drag(s, pt(100, 100), pt(300, 200), Modifiers{})
	return s
}

func TestDrawRectUndoRedo(t *testing.T) {
	s := desktopWithRect(t)
	els := s.Elements()
	if len(els) != 1 {
		t.Fatalf("elements = %d, want 1", len(els))
	}
	want := scene.Rect{X: 100, Y: 100, W: 200, H: 100}
	if got := rectOf(t, els[0]); got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
	if s.Selection() != els[0].ID {
		t.Fatalf("new shape should be selected")
	}

	if !s.Undo() {
		t.Fatalf("undo refused")
	}
	if n := len(s.Elements()); n != 0 {
		t.Fatalf("after undo elements = %d", n)
	}
	if s.Selection() != "" {
		t.Fatalf("undo must clear selection")
	}
	if s.Undo() {
		t.Fatalf("undo past the canvas baseline")
	}
	if !s.Redo() {
		t.Fatalf("redo refused")
	}
	if !reflect.DeepEqual(s.Elements(), els) {
		t.Fatalf("redo did not restore the rect: %+v", s.Elements())
	}
}

func TestResizeHandleSE(t *testing.T) {
	s := desktopWithRect(t)
	_, before := s.HistoryIndex()
	s.SelectTool(ToolSelect)
	s.PointerDown(pt(300, 200), Modifiers{})
	if s.Mode() != ModeResizing {
		t.Fatalf("mode = %v, want resizing", s.Mode())
	}
	s.PointerMove(pt(350, 250), Modifiers{})
	s.PointerUp(pt(350, 250), Modifiers{})
	want := scene.Rect{X: 100, Y: 100, W: 250, H: 150}
	if got := rectOf(t, s.Elements()[0]); got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
	if _, after := s.HistoryIndex(); after != before+1 {
		t.Fatalf("resize recorded %d snapshots", after-before)
	}
}

func TestResizeRejectsCollapse(t *testing.T) {
	s := desktopWithRect(t)
	s.SelectTool(ToolSelect)
	s.PointerDown(pt(300, 200), Modifiers{})
	s.PointerMove(pt(100.5, 250), Modifiers{})
	if got := rectOf(t, s.Elements()[0]); got.W != 200 || got.H != 100 {
		t.Fatalf("collapsed resize applied: %+v", got)
	}
	_, before := s.HistoryIndex()
	s.PointerUp(pt(100.5, 250), Modifiers{})
	if _, after := s.HistoryIndex(); after != before {
		t.Fatalf("unchanged resize must not snapshot")
	}
}

func TestDragMovesByBoxOrigin(t *testing.T) {
	s := desktopWithRect(t)
	s.SelectTool(ToolSelect)
	drag(s, pt(150, 150), pt(160, 170), Modifiers{})
	want := scene.Rect{X: 110, Y: 120, W: 200, H: 100}
	if got := rectOf(t, s.Elements()[0]); got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
	s.Undo()
	if got := rectOf(t, s.Elements()[0]); got.X != 100 || got.Y != 100 {
		t.Fatalf("undo after drag: %+v", got)
	}
}

func TestClickWithoutMoveRecordsNothing(t *testing.T) {
	s := desktopWithRect(t)
	s.SelectTool(ToolSelect)
	_, before := s.HistoryIndex()
	click(s, pt(150, 150))
	if _, after := s.HistoryIndex(); after != before {
		t.Fatalf("plain click added %d snapshots", after-before)
	}
	click(s, pt(1000, 900))
	if s.Selection() != "" {
		t.Fatalf("click on empty canvas should clear selection")
	}
}

func TestLineSnapsToAxis(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("c", 800, 600)
	s.SelectTool(ToolLine)
	drag(s, pt(0, 0), pt(5, 2), Modifiers{Shift: true})
	els := s.Elements()
	if len(els) != 1 {
		t.Fatalf("elements = %d", len(els))
	}
	l := els[0].Shape.(*scene.Line)
	if l.Y2 != 0 {
		t.Fatalf("y2 = %v, want 0", l.Y2)
	}
	if math.Abs(l.X2-math.Hypot(5, 2)) > 1e-9 {
		t.Fatalf("x2 = %v, want the original length", l.X2)
	}
	if els[0].Fill.Kind != scene.FillNone {
		t.Fatalf("line fill = %v", els[0].Fill.Kind)
	}
}

func TestDegenerateShapesAreDropped(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("c", 800, 600)
	_, base := s.HistoryIndex()
	s.SelectTool(ToolRect)
	drag(s, pt(10, 10), pt(11.5, 80), Modifiers{})
	s.SelectTool(ToolEllipse)
	drag(s, pt(10, 10), pt(13, 80), Modifiers{})
	s.SelectTool(ToolLine)
	drag(s, pt(10, 10), pt(11, 11), Modifiers{})
	if n := len(s.Elements()); n != 0 {
		t.Fatalf("degenerate shapes committed: %d", n)
	}
	if _, n := s.HistoryIndex(); n != base {
		t.Fatalf("rejected shapes recorded history")
	}
}

func TestEllipseShiftMakesCircle(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("c", 800, 600)
	s.SelectTool(ToolEllipse)
	drag(s, pt(100, 100), pt(140, 120), Modifiers{Shift: true})
	e := s.Elements()[0].Shape.(*scene.Ellipse)
	if *e != (scene.Ellipse{CX: 120, CY: 110, RX: 20, RY: 20}) {
		t.Fatalf("ellipse = %+v", *e)
	}
}

func TestDrawingOutsideCanvasIsRejected(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("c", 800, 600)
	s.SelectTool(ToolRect)
	drag(s, pt(-5, 10), pt(100, 100), Modifiers{})
	drag(s, pt(10, 601), pt(100, 100), Modifiers{})
	if n := len(s.Elements()); n != 0 {
		t.Fatalf("drawing started outside the canvas: %d elements", n)
	}
	if s.Mode() != ModeIdle {
		t.Fatalf("mode = %v", s.Mode())
	}
}

func TestNoCanvasIgnoresInput(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(ToolRect)
	drag(s, pt(10, 10), pt(100, 100), Modifiers{})
	if s.Canvas() != nil || len(s.Elements()) != 0 {
		t.Fatalf("input without a canvas changed state")
	}
}

func TestHistoryCapAndRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("c", 800, 600)
	for i := 0; i < 60; i++ {
		s.RotateCanvas()
	}
	idx, n := s.HistoryIndex()
	if n != 50 || idx != 49 {
		t.Fatalf("history len=%d index=%d", n, idx)
	}
	s.SelectTool(ToolRect)
	drag(s, pt(10, 10), pt(60, 60), Modifiers{})
	s.SetBackground("#112233")
	before, bg, rot := s.Elements(), s.Background(), s.Rotation()
	s.Undo()
	s.Redo()
	if !reflect.DeepEqual(before, s.Elements()) || bg != s.Background() || rot != s.Rotation() {
		t.Fatalf("undo/redo round trip changed state")
	}
	if s.Selection() != "" {
		t.Fatalf("redo restored selection")
	}
}

func TestHistoryLimitCannotExceedCap(t *testing.T) {
	o := OptionsFrom(config.EditorConfig{ViewportWidth: 1200, ViewportHeight: 800, HistoryLimit: 200})
	if o.HistoryLimit != 50 {
		t.Fatalf("OptionsFrom HistoryLimit = %d, want 50", o.HistoryLimit)
	}
	for _, limit := range []int{200, 10} {
		opts := DefaultOptions()
		opts.Measurer = textlayout.BasicMeasurer{}
		opts.HistoryLimit = limit
		s := NewSession(opts)
		s.CreateCanvas("c", 800, 600)
		for i := 0; i < 80; i++ {
			s.RotateCanvas()
		}
		_, n := s.HistoryIndex()
		if want := min(limit, 50); n != want {
			t.Fatalf("limit %d: history len = %d, want %d", limit, n, want)
		}
	}
}

func TestSwitchCanvasKeepsEachScene(t *testing.T) {
	s := newTestSession(t)
	a := s.CreateCanvas("A", 800, 600)
	s.SelectTool(ToolRect)
	drag(s, pt(10, 10), pt(60, 60), Modifiers{})
	s.SetBackground("#ff0000")
	s.RotateCanvas()
	wantA := s.Elements()

	b := s.CreateCanvas("B", 400, 300)
	if len(s.Elements()) != 0 || s.Background() != scene.DefaultBackground {
		t.Fatalf("new canvas is not blank")
	}
	s.SelectTool(ToolEllipse)
	drag(s, pt(100, 100), pt(140, 120), Modifiers{})
	wantB := s.Elements()

	if !s.SwitchCanvas(a.ID) {
		t.Fatalf("switch to A failed")
	}
	if !reflect.DeepEqual(s.Elements(), wantA) || s.Background() != "#ff0000" || s.Rotation() != 90 {
		t.Fatalf("canvas A not restored: %+v bg=%s rot=%d", s.Elements(), s.Background(), s.Rotation())
	}
	if s.CanUndo() {
		t.Fatalf("history should restart on switch")
	}
	s.SwitchCanvas(b.ID)
	if !reflect.DeepEqual(s.Elements(), wantB) {
		t.Fatalf("canvas B not restored")
	}
	if s.SwitchCanvas("missing") {
		t.Fatalf("switch to unknown canvas succeeded")
	}
	if got := len(s.Canvases()); got != 2 {
		t.Fatalf("workspace has %d canvases", got)
	}
}

func TestCanvasesCarryLiveState(t *testing.T) {
	s := desktopWithRect(t)
	cs := s.Canvases()
	if len(cs) != 1 || len(cs[0].Elements) != 1 {
		t.Fatalf("canvases = %+v", cs)
	}
	cs[0].Elements = nil
	if len(s.Elements()) != 1 || len(s.Canvases()[0].Elements) != 1 {
		t.Fatalf("Canvases() leaked live state")
	}

	s.CreateCanvas("second", 400, 300)
	s.SelectTool(ToolEllipse)
	drag(s, pt(10, 10), pt(50, 40), Modifiers{})
	cs = s.Canvases()
	if len(cs) != 2 || len(cs[0].Elements) != 1 || len(cs[1].Elements) != 1 {
		t.Fatalf("canvas elements = %d, %d", len(cs[0].Elements), len(cs[1].Elements))
	}
	if cs[1].Elements[0].Kind() != scene.KindEllipse {
		t.Fatalf("second canvas holds %s", cs[1].Elements[0].Kind())
	}
}

func TestCanvasSnapshotIsACopy(t *testing.T) {
	s := desktopWithRect(t)
	c := s.Canvas()
	c.Elements[0].Shape.(*scene.Rect).X = 999
	if rectOf(t, s.Elements()[0]).X != 100 {
		t.Fatalf("Canvas() leaked live state")
	}
	if c.Name != "Desktop Canvas" || c.Width != 1920 {
		t.Fatalf("canvas = %s %dx%d", c.Name, c.Width, c.Height)
	}
}

func TestCrashSummaryCarriesCounts(t *testing.T) {
	s := newTestSession(t)
	s.CreateCanvas("Poster", 400, 300)
	s.SelectTool(ToolRect)
	drag(s, pt(10, 10), pt(60, 60), Modifiers{})
	got := s.CrashSummary()
	for _, want := range []string{"canvases=1", `active="Poster"`, "elements=1", "tool=rect"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q lacks %q", got, want)
		}
	}
}
