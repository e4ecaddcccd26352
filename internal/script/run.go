/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"minicanvas/internal/bitmap"
	"minicanvas/internal/editor"
	applog "minicanvas/internal/log"
	"minicanvas/internal/scene"
	"minicanvas/internal/vector"
)

// Report summarizes a replay.
type Report struct {
	Steps   int // steps executed
	Refused int // steps the editor rejected or ignored
}

// Run replays sc against s. Image paths resolve against baseDir. A step
// the editor refuses is counted, not fatal; I/O failures and cancellation
// stop the run.
func Run(ctx context.Context, s *editor.Session, sc Script, baseDir string) (Report, error) {
	l := applog.WithComponent("script")
	var rep Report
	if sc.Canvas != nil {
		if !createCanvas(s, *sc.Canvas) {
			return rep, fmt.Errorf("script canvas: invalid canvas %+v", *sc.Canvas)
		}
	}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		ok, err := runStep(ctx, s, st, baseDir)
		if err != nil {
			return rep, fmt.Errorf("step %d (line %d): %w", i+1, st.Line, err)
		}
		rep.Steps++
		if !ok {
			rep.Refused++
			l.Debug("step refused", slog.Int("step", i+1), slog.Int("line", st.Line))
		}
	}
	l.Info("script done", slog.Int("steps", rep.Steps), slog.Int("refused", rep.Refused))
	return rep, nil
}

func createCanvas(s *editor.Session, c CanvasSpec) bool {
	if c.Preset != "" {
		_, ok := s.CreateFromPreset(c.Preset)
		return ok
	}
	name := c.Name
	if name == "" {
		name = "Untitled"
	}
	return s.CreateCanvas(name, c.Width, c.Height) != nil
}

func pt(v []float64) vector.Pt { return vector.Pt{X: v[0], Y: v[1]} }

// elementID maps a z-order index to an element id.
func elementID(s *editor.Session, i int) (string, bool) {
	els := s.Elements()
	if i < 0 || i >= len(els) {
		return "", false
	}
	return els[i].ID, true
}

func runStep(ctx context.Context, s *editor.Session, st Step, baseDir string) (bool, error) {
	resolve := func(p string) string {
		if filepath.IsAbs(p) || baseDir == "" {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	switch {
	case st.Canvas != nil:
		return createCanvas(s, *st.Canvas), nil
	case st.Switch != nil:
		cs := s.Canvases()
		if *st.Switch < 0 || *st.Switch >= len(cs) {
			return false, nil
		}
		return s.SwitchCanvas(cs[*st.Switch].ID), nil
	case st.Tool != "":
		t := editor.Tool(st.Tool)
		eff := s.SelectTool(t)
		return eff == editor.EffectNone && s.Tool() == t, nil
	case st.Style != nil:
		s.SetStyle(applyStyle(s.Style(), *st.Style))
		if s.Selection() != "" {
			s.CommitProperties()
		}
		return true, nil
	case st.Drag != nil:
		mods := editor.Modifiers{Shift: st.Drag.Shift}
		eff := s.PointerDown(pt(st.Drag.From), mods)
		s.PointerMove(pt(st.Drag.To), mods)
		s.PointerUp(pt(st.Drag.To), mods)
		return eff == editor.EffectNone, nil
	case st.Click != nil:
		eff := s.PointerDown(pt(st.Click), editor.Modifiers{})
		s.PointerUp(pt(st.Click), editor.Modifiers{})
		return eff == editor.EffectNone || eff == editor.EffectOpenTextEditor, nil
	case st.DblClick != nil:
		s.DoubleClick(pt(st.DblClick))
		return true, nil
	case st.Text != nil:
		return s.SaveText(*st.Text), nil
	case st.Key != "":
		k, mods, err := ParseKey(st.Key)
		if err != nil {
			return false, err
		}
		eff := s.KeyDown(k, mods)
		s.KeyUp(k)
		return eff != editor.EffectOpenFilePicker, nil
	case st.Select != nil:
		id, ok := elementID(s, *st.Select)
		return ok && s.SelectElement(id), nil
	case st.Forward != nil:
		id, ok := elementID(s, *st.Forward)
		return ok && s.BringForward(id), nil
	case st.Backward != nil:
		id, ok := elementID(s, *st.Backward)
		return ok && s.SendBackward(id), nil
	case st.Delete:
		return s.DeleteSelected(), nil
	case st.Clear:
		return s.ClearCanvas(), nil
	case st.Undo > 0:
		return repeat(st.Undo, s.Undo), nil
	case st.Redo > 0:
		return repeat(st.Redo, s.Redo), nil
	case st.Animate != nil:
		s.SetAnimation(scene.Animation{
			Type:     scene.AnimationType(st.Animate.Type),
			Duration: st.Animate.Duration,
			Delay:    st.Animate.Delay,
		})
		return s.ApplyAnimation(), nil
	case st.Property != nil:
		if !s.SetProperty(editor.Property(st.Property.Name), st.Property.Value) {
			return false, nil
		}
		return s.CommitProperties(), nil
	case st.Background != "":
		return s.SetBackground(st.Background), nil
	case st.BgImage != "":
		bm, err := bitmap.ReadFile(resolve(st.BgImage))
		if err != nil {
			return false, err
		}
		return s.SetBackgroundImage(bm.Ref), nil
	case st.RemoveBg:
		return s.RemoveBackgroundImage(), nil
	case st.Resize != nil:
		ok := true
		if w := st.Resize.Width; w != nil {
			ok = s.ResizeCanvas(editor.DimWidth, *w) && ok
		}
		if h := st.Resize.Height; h != nil {
			ok = s.ResizeCanvas(editor.DimHeight, *h) && ok
		}
		s.CommitCanvasChanges()
		return ok, nil
	case st.Rotate:
		return s.RotateCanvas(), nil
	case st.Image != "":
		f := bitmap.Load(ctx, resolve(st.Image))
		if _, err := f.Wait(ctx); err != nil {
			return false, err
		}
		s.ArmImage(f)
		return s.ImageArmed(), nil
	case st.FillImage != "":
		bm, err := bitmap.ReadFile(resolve(st.FillImage))
		if err != nil {
			return false, err
		}
		s.SetFillImage(bm.Ref)
		if s.Selection() != "" {
			s.CommitProperties()
		}
		return true, nil
	}
	return false, nil
}

// repeat calls fn n times and reports whether every call succeeded.
func repeat(n int, fn func() bool) bool {
	ok := true
	for i := 0; i < n; i++ {
		ok = fn() && ok
	}
	return ok
}

// applyStyle overlays the fields a style step sets onto st.
func applyStyle(st scene.Style, in StyleStep) scene.Style {
	switch {
	case in.Gradient != nil:
		g := *in.Gradient
		st.FillKind = scene.FillGradient
		st.Gradient.Start, st.Gradient.End = g[0], g[1]
	case strings.EqualFold(in.Fill, "none"):
		st.FillKind = scene.FillNone
	case in.Fill != "":
		st.FillKind = scene.FillSolid
		st.FillColor = in.Fill
	}
	if in.Angle != nil {
		st.Gradient.Angle = *in.Angle
	}
	if in.Stroke != "" {
		st.Stroke = in.Stroke
	}
	if in.StrokeWidth != nil {
		st.StrokeWidth = *in.StrokeWidth
	}
	if in.Opacity != nil {
		st.Opacity = *in.Opacity
	}
	if in.FontSize != nil {
		st.FontSize = *in.FontSize
	}
	if in.Bold != nil {
		st.Bold = *in.Bold
	}
	if in.Italic != nil {
		st.Italic = *in.Italic
	}
	if in.Underline != nil {
		st.Underline = *in.Underline
	}
	return st
}
