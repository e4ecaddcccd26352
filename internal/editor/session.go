/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the direct-manipulation engine of the canvas editor.
//
// A Session owns all mutable editor state: the workspace of canvases, the
// live element sequence of the active canvas, style defaults, selection,
// viewport and the undo history. The shell feeds it pointer and keyboard
// events (pointer positions in canvas coordinates, see Viewport.ToCanvas)
// and renders what it exposes. Every committed user action records exactly
// one history snapshot; gestures in flight record none.
//
// A Session is not safe for concurrent use. Shells call it from their event
// thread only; asynchronous work (bitmap decoding) reaches it through a
// bitmap.Future that the session polls.
package editor

import (
	"fmt"
	"log/slog"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/config"
	applog "minicanvas/internal/log"
	"minicanvas/internal/scene"
	"minicanvas/internal/textlayout"
	"minicanvas/internal/undo"
	"minicanvas/internal/vector"
)

// Mode is the interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModePathDrawing
	ModeDragging
	ModeResizing
	ModePanning
	ModeTextEditing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrawing:
		return "drawing"
	case ModePathDrawing:
		return "path-drawing"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModePanning:
		return "panning"
	case ModeTextEditing:
		return "text-editing"
	}
	return "unknown"
}

// gesture reports whether m is a pointer gesture that ends on pointer-up.
func (m Mode) gesture() bool { return m == ModeDrawing || m == ModeDragging || m == ModeResizing }

// Modifiers are the keys held during an input event.
type Modifiers struct {
	Shift bool
	Ctrl  bool // Ctrl, or Cmd on macOS
}

// Effect asks the shell for something the core cannot do itself.
type Effect int

const (
	EffectNone Effect = iota
	EffectOpenFilePicker
	EffectOpenTextEditor
)

// MinShapeSize is the smallest extent a drawn shape may be committed with.
const MinShapeSize = 2

// Options configure a Session.
type Options struct {
	ViewportWidth  float64
	ViewportHeight float64
	FitPadding     float64
	HistoryLimit   int // at most undo.DefaultMaxEntries
	ShowGrid       bool
	SmartGuides    bool
	Measurer       textlayout.Measurer
	Logger         *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		ViewportWidth:  1200,
		ViewportHeight: 800,
		FitPadding:     100,
		HistoryLimit:   undo.DefaultMaxEntries,
		ShowGrid:       true,
	}
}

// OptionsFrom maps the editor section of the app config.
func OptionsFrom(cfg config.EditorConfig) Options {
	o := DefaultOptions()
	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		o.ViewportWidth, o.ViewportHeight = float64(cfg.ViewportWidth), float64(cfg.ViewportHeight)
	}
	if cfg.FitPadding >= 0 {
		o.FitPadding = float64(cfg.FitPadding)
	}
	if cfg.HistoryLimit > 0 {
		o.HistoryLimit = min(cfg.HistoryLimit, undo.DefaultMaxEntries)
	}
	o.ShowGrid = cfg.ShowGrid
	o.SmartGuides = cfg.SmartGuides
	return o
}

// Session is one editor window's state.
type Session struct {
	opts    Options
	log     *slog.Logger
	measure textlayout.Measurer

	ws      *Workspace
	history *undo.Manager

	// Live state of the active canvas; flushed to its record on switch.
	elements        []scene.Element
	background      string
	backgroundImage string
	rotation        scene.Rotation

	// Defaults for new shapes, mirrored onto the selection.
	style     scene.Style
	animation scene.Animation
	selection string

	tool      Tool
	mode      Mode
	vp        Viewport
	showGrid  bool
	propsOpen bool
	codeOpen  bool

	// Gesture state, cleared by resetGesture.
	pointerDown bool
	resumeMode  Mode // restored when Space is released
	panPrimed   bool
	lastScreen  vector.Pt
	handle      vector.Handle
	dragOffset  vector.Pt
	anchor      vector.Pt
	changed     bool // the dragged/resized element moved
	draft       *scene.Element
	draftAspect float64
	pathPoints  []vector.Pt
	guides      []vector.Guide
	editing     string // text element open in the editor

	upload *bitmap.Future
}

func NewSession(opts Options) *Session {
	if opts.ViewportWidth <= 0 || opts.ViewportHeight <= 0 {
		d := DefaultOptions()
		opts.ViewportWidth, opts.ViewportHeight = d.ViewportWidth, d.ViewportHeight
	}
	// The history may be shortened, never lengthened.
	if opts.HistoryLimit <= 0 || opts.HistoryLimit > undo.DefaultMaxEntries {
		opts.HistoryLimit = undo.DefaultMaxEntries
	}
	if opts.Measurer == nil {
		opts.Measurer = textlayout.Default()
	}
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("editor")
	}
	return &Session{
		opts:       opts,
		log:        l,
		measure:    opts.Measurer,
		ws:         NewWorkspace(),
		history:    undo.NewManager(undo.Config{MaxEntries: opts.HistoryLimit}),
		elements:   []scene.Element{},
		background: scene.DefaultBackground,
		style:      scene.DefaultStyle(),
		animation:  scene.Animation{Duration: 1},
		tool:       ToolSelect,
		vp:         NewViewport(opts.ViewportWidth, opts.ViewportHeight),
		showGrid:   opts.ShowGrid,
		propsOpen:  true,
		codeOpen:   true,
	}
}

// Accessors used by renderers and shells.

func (s *Session) Workspace() *Workspace      { return s.ws }
func (s *Session) Mode() Mode                 { return s.mode }
func (s *Session) Tool() Tool                 { return s.tool }
func (s *Session) Style() scene.Style         { return s.style }
func (s *Session) Animation() scene.Animation { return s.animation }
func (s *Session) Selection() string          { return s.selection }
func (s *Session) Viewport() Viewport         { return s.vp }
func (s *Session) ShowGrid() bool             { return s.showGrid }
func (s *Session) PropertiesOpen() bool       { return s.propsOpen }
func (s *Session) CodeOpen() bool             { return s.codeOpen }
func (s *Session) Background() string         { return s.background }
func (s *Session) BackgroundImage() string    { return s.backgroundImage }
func (s *Session) Rotation() scene.Rotation   { return s.rotation }
func (s *Session) Guides() []vector.Guide     { return s.guides }
func (s *Session) Measurer() textlayout.Measurer {
	return s.measure
}

// Elements returns a copy of the live element sequence in z-order.
func (s *Session) Elements() []scene.Element { return scene.CloneAll(s.elements) }

// Selected returns a copy of the selected element.
func (s *Session) Selected() (scene.Element, bool) {
	i := s.selectedIndex()
	if i < 0 {
		return scene.Element{}, false
	}
	return s.elements[i].Clone(), true
}

// Draft returns the shape being dragged into existence, if any.
func (s *Session) Draft() (scene.Element, bool) {
	if s.draft == nil {
		return scene.Element{}, false
	}
	return s.draft.Clone(), true
}

// PathPoints returns the points of the path being accumulated.
func (s *Session) PathPoints() []vector.Pt {
	return append([]vector.Pt(nil), s.pathPoints...)
}

// EditingText returns the text element open in the editor.
func (s *Session) EditingText() (scene.Element, bool) {
	if s.editing == "" {
		return scene.Element{}, false
	}
	i := scene.IndexOf(s.elements, s.editing)
	if i < 0 {
		return scene.Element{}, false
	}
	return s.elements[i].Clone(), true
}

// Canvas returns the active canvas with the live state merged in, or nil
// before the first canvas exists. The result is a copy.
func (s *Session) Canvas() *scene.Canvas {
	rec := s.ws.Active()
	if rec == nil {
		return nil
	}
	c := *rec
	c.Elements = scene.CloneAll(s.elements)
	c.Background = s.background
	c.BackgroundImage = s.backgroundImage
	c.Rotation = s.rotation
	return &c
}

// Canvases returns every canvas in creation order as copies, the active one
// carrying its live state.
func (s *Session) Canvases() []*scene.Canvas {
	recs := s.ws.records()
	active := s.ws.Active()
	out := make([]*scene.Canvas, len(recs))
	for i, rec := range recs {
		if rec == active {
			out[i] = s.Canvas()
			continue
		}
		c := *rec
		c.Elements = scene.CloneAll(rec.Elements)
		out[i] = &c
	}
	return out
}

// CrashSummary describes the session for a crash report without scene content.
func (s *Session) CrashSummary() string {
	name := ""
	if c := s.ws.Active(); c != nil {
		name = c.Name
	}
	return fmt.Sprintf("canvases=%d active=%q elements=%d mode=%s tool=%s history=%d/%d",
		s.ws.Len(), name, len(s.elements), s.mode, s.tool, s.history.Index(), s.history.Len())
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// HistoryIndex returns the history cursor and length.
func (s *Session) HistoryIndex() (index, length int) { return s.history.Index(), s.history.Len() }

// Undo restores the previous snapshot. Selection is cleared, never restored.
func (s *Session) Undo() bool {
	if s.mode == ModeTextEditing {
		return false
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	return s.restore(snap, "undo")
}

// Redo re-applies the next snapshot.
func (s *Session) Redo() bool {
	if s.mode == ModeTextEditing {
		return false
	}
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	return s.restore(snap, "redo")
}

// snapshot records the live scene as one history entry.
func (s *Session) state() ([]byte, error) {
	return scene.Snapshot{
		Elements:        s.elements,
		Background:      s.background,
		BackgroundImage: s.backgroundImage,
		Rotation:        s.rotation,
	}.Encode()
}

func (s *Session) snapshot(action string) {
	blob, err := s.state()
	if err != nil {
		s.log.Error("snapshot failed", slog.String("action", action), slog.Any("err", err))
		return
	}
	s.history.Push(undo.Snapshot{Blob: blob, Label: action})
	s.log.Debug("snapshot", slog.String("action", action), slog.Int("index", s.history.Index()))
}

func (s *Session) restore(u undo.Snapshot, op string) bool {
	snap, err := scene.DecodeSnapshot(u.Blob)
	if err != nil {
		s.log.Error("restore snapshot", slog.String("op", op), slog.Any("err", err))
		return false
	}
	s.resetGesture()
	s.elements = snap.Elements
	s.background = snap.Background
	s.backgroundImage = snap.BackgroundImage
	s.rotation = snap.Rotation
	s.selection = ""
	s.log.Debug(op, slog.String("action", u.Label), slog.Int("index", s.history.Index()))
	return true
}

// reject logs a refused mutation and returns false.
func (s *Session) reject(action, reason string, attrs ...any) bool {
	s.log.Debug("rejected", append([]any{slog.String("action", action), slog.String("reason", reason)}, attrs...)...)
	return false
}

func (s *Session) selectedIndex() int {
	if s.selection == "" {
		return -1
	}
	return scene.IndexOf(s.elements, s.selection)
}

func (s *Session) bbox(e scene.Element) vector.Rect { return scene.BoundingBoxWith(e, s.measure) }

// resetGesture drops every transient pointer field. Mode returns to idle
// unless the text editor is open.
func (s *Session) resetGesture() {
	s.pointerDown = false
	s.panPrimed = false
	s.handle = vector.HandleNone
	s.dragOffset = vector.Pt{}
	s.changed = false
	s.draft = nil
	s.draftAspect = 0
	s.pathPoints = nil
	s.guides = nil
	s.resumeMode = ModeIdle
	if s.mode != ModeTextEditing {
		s.mode = ModeIdle
	}
}
