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
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"minicanvas/internal/editor"
	"minicanvas/internal/export"
	applog "minicanvas/internal/log"
	"minicanvas/internal/render"
	"minicanvas/internal/scene"
	"minicanvas/internal/telemetry"
	"minicanvas/internal/version"
)

// Run opens the editor window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	s := opts.Session
	if s == nil {
		s = editor.NewSession(editor.OptionsFrom(opts.Config.Editor))
	}
	r := opts.Renderer
	if r == nil {
		var err error
		if r, err = render.Default(); err != nil {
			return err
		}
	}
	l.Info("starting UI", slog.String("version", version.String()))

	a := app.NewWithID("minicanvas")
	title := "minicanvas"
	if opts.Principal != "" {
		title += " · " + opts.Principal
	}
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(float32(opts.Config.Editor.ViewportWidth)+320, float32(opts.Config.Editor.ViewportHeight)+200))

	stage := NewStage(s, r)
	status := widget.NewLabel(statusText(s))

	// code panel
	codeViews := map[export.Part]*widget.Entry{}
	var tabs []*container.TabItem
	for _, p := range export.Parts {
		e := widget.NewMultiLineEntry()
		e.TextStyle = fyne.TextStyle{Monospace: true}
		codeViews[p] = e
		tabs = append(tabs, container.NewTabItem(string(p), e))
	}
	codeTabs := container.NewAppTabs(tabs...)
	copyBtn := widget.NewButton("Copy", func() {
		p := export.Parts[codeTabs.SelectedIndex()]
		if err := export.CopyToClipboard(s.Canvas(), p); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("copied " + p.FileName())
	})
	codePanel := container.NewBorder(nil, container.NewHBox(copyBtn), nil, nil, codeTabs)

	// layers
	layers := widget.NewList(
		func() int { return len(s.Elements()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			els := s.Elements()
			if i < len(els) {
				o.(*widget.Label).SetText(fmt.Sprintf("%s %s", els[i].Kind(), els[i].ID))
			}
		},
	)

	// properties
	syncing := false
	fillEntry := widget.NewEntry()
	strokeEntry := widget.NewEntry()
	widthEntry := widget.NewEntry()
	opacity := widget.NewSlider(0, 1)
	opacity.Step = 0.05
	fontEntry := widget.NewEntry()
	bold := widget.NewCheck("Bold", nil)
	italic := widget.NewCheck("Italic", nil)
	underline := widget.NewCheck("Underline", nil)
	animTypes := make([]string, len(scene.AnimationTypes))
	for i, t := range scene.AnimationTypes {
		animTypes[i] = string(t)
	}
	animSelect := widget.NewSelect(animTypes, nil)
	durEntry := widget.NewEntry()
	delayEntry := widget.NewEntry()
	var propNames []string
	for _, p := range []editor.Property{
		editor.PropX, editor.PropY, editor.PropW, editor.PropH, editor.PropRadius,
		editor.PropCX, editor.PropCY, editor.PropRX, editor.PropRY,
		editor.PropX1, editor.PropY1, editor.PropX2, editor.PropY2, editor.PropFontSize,
	} {
		propNames = append(propNames, string(p))
	}
	propSelect := widget.NewSelect(propNames, nil)
	propEntry := widget.NewEntry()
	bgEntry := widget.NewEntry()
	canvasW := widget.NewEntry()
	canvasH := widget.NewEntry()

	var refresh func()
	loadStyle := func() {
		syncing = true
		defer func() { syncing = false }()
		st := s.Style()
		fillEntry.SetText(st.FillColor)
		strokeEntry.SetText(st.Stroke)
		widthEntry.SetText(strconv.FormatFloat(st.StrokeWidth, 'f', -1, 64))
		opacity.SetValue(st.Opacity)
		fontEntry.SetText(strconv.FormatFloat(st.FontSize, 'f', -1, 64))
		bold.SetChecked(st.Bold)
		italic.SetChecked(st.Italic)
		underline.SetChecked(st.Underline)
		bgEntry.SetText(s.Background())
		if c := s.Canvas(); c != nil {
			canvasW.SetText(strconv.Itoa(c.Width))
			canvasH.SetText(strconv.Itoa(c.Height))
		}
	}
	applyStyle := func() {
		if syncing {
			return
		}
		st := s.Style()
		if c := fillEntry.Text; c == "none" {
			st.FillKind = scene.FillNone
		} else if _, ok := scene.ParseColor(c); ok {
			st.FillKind, st.FillColor = scene.FillSolid, c
		}
		if _, ok := scene.ParseColor(strokeEntry.Text); ok {
			st.Stroke = strokeEntry.Text
		}
		if v, err := strconv.ParseFloat(widthEntry.Text, 64); err == nil {
			st.StrokeWidth = v
		}
		if v, err := strconv.ParseFloat(fontEntry.Text, 64); err == nil {
			st.FontSize = v
		}
		st.Opacity = opacity.Value
		st.Bold, st.Italic, st.Underline = bold.Checked, italic.Checked, underline.Checked
		s.SetStyle(st)
		stage.Refresh()
	}
	commit := func() {
		if s.CommitProperties() {
			refresh()
		}
	}
	for _, e := range []*widget.Entry{fillEntry, strokeEntry, widthEntry, fontEntry} {
		e.OnChanged = func(string) { applyStyle() }
		e.OnSubmitted = func(string) { commit() }
	}
	opacity.OnChanged = func(float64) { applyStyle() }
	opacity.OnChangeEnded = func(float64) { commit() }
	for _, c := range []*widget.Check{bold, italic, underline} {
		c.OnChanged = func(bool) { applyStyle(); commit() }
	}
	bgEntry.OnSubmitted = func(v string) {
		if s.SetBackground(v) {
			refresh()
		}
	}
	for _, side := range []struct {
		e *widget.Entry
		d editor.Dimension
	}{{canvasW, editor.DimWidth}, {canvasH, editor.DimHeight}} {
		side.e.OnChanged = func(v string) {
			if syncing {
				return
			}
			if n, err := strconv.Atoi(v); err == nil && s.ResizeCanvas(side.d, n) {
				stage.Refresh()
			}
		}
		side.e.OnSubmitted = func(string) {
			s.CommitCanvasChanges()
			refresh()
		}
	}
	removeBg := widget.NewButton("Remove background image", func() {
		if s.RemoveBackgroundImage() {
			refresh()
		}
	})
	applyAnim := widget.NewButton("Apply animation", func() {
		d, _ := strconv.ParseFloat(durEntry.Text, 64)
		dl, _ := strconv.ParseFloat(delayEntry.Text, 64)
		s.SetAnimation(scene.Animation{Type: scene.AnimationType(animSelect.Selected), Duration: d, Delay: dl})
		if s.ApplyAnimation() {
			refresh()
		}
	})
	setProp := widget.NewButton("Set", func() {
		v, err := strconv.ParseFloat(propEntry.Text, 64)
		if err != nil || propSelect.Selected == "" {
			return
		}
		if s.SetProperty(editor.Property(propSelect.Selected), v) {
			s.CommitProperties()
			refresh()
		}
	})
	props := container.NewVBox(
		widget.NewLabel("Style"),
		widget.NewForm(
			widget.NewFormItem("Fill", fillEntry),
			widget.NewFormItem("Stroke", strokeEntry),
			widget.NewFormItem("Stroke width", widthEntry),
			widget.NewFormItem("Opacity", opacity),
			widget.NewFormItem("Font size", fontEntry),
		),
		container.NewHBox(bold, italic, underline),
		widget.NewSeparator(),
		widget.NewLabel("Geometry"),
		container.NewBorder(nil, nil, propSelect, setProp, propEntry),
		widget.NewSeparator(),
		widget.NewLabel("Animation"),
		animSelect,
		widget.NewForm(widget.NewFormItem("Duration", durEntry), widget.NewFormItem("Delay", delayEntry)),
		applyAnim,
		widget.NewSeparator(),
		widget.NewLabel("Canvas"),
		widget.NewForm(
			widget.NewFormItem("Width", canvasW),
			widget.NewFormItem("Height", canvasH),
			widget.NewFormItem("Background", bgEntry),
		),
		removeBg,
	)
	durEntry.SetText("1")
	delayEntry.SetText("0")

	layerButtons := container.NewHBox(
		widget.NewButton("Forward", func() {
			if s.BringForward(s.Selection()) {
				refresh()
			}
		}),
		widget.NewButton("Backward", func() {
			if s.SendBackward(s.Selection()) {
				refresh()
			}
		}),
		widget.NewButton("Delete", func() {
			if s.DeleteSelected() {
				refresh()
			}
		}),
	)
	right := container.NewBorder(nil, nil, nil, nil, container.NewVScroll(container.NewVBox(
		props, widget.NewSeparator(), widget.NewLabel("Layers"), layerButtons,
	)))
	layersPanel := container.NewBorder(nil, nil, nil, nil, layers)
	layers.OnSelected = func(id widget.ListItemID) {
		if els := s.Elements(); id < len(els) && s.Selection() != els[id].ID {
			s.SelectElement(els[id].ID)
			loadStyle()
			stage.Refresh()
		}
	}

	// toolbar
	var toolButtons []fyne.CanvasObject
	for _, info := range editor.Tools {
		t := info.Tool
		toolButtons = append(toolButtons, widget.NewButton(info.Label, func() {
			stage.changed(s.SelectTool(t))
		}))
	}
	presets := widget.NewSelect(presetLabels(), func(label string) {
		for _, p := range scene.Presets {
			if p.Label == label {
				if c, ok := s.CreateFromPreset(p.ID); ok {
					telemetry.Track(telemetry.CanvasCreated, map[string]any{"preset": p.ID, "w": c.Width, "h": c.Height})
				}
			}
		}
		loadStyle()
		refresh()
	})
	presets.PlaceHolder = "New canvas…"
	toolbar := container.NewHBox(append(toolButtons,
		widget.NewSeparator(),
		widget.NewButton("Undo", func() { s.Undo(); refresh() }),
		widget.NewButton("Redo", func() { s.Redo(); refresh() }),
		widget.NewButton("−", func() { s.ZoomOut(); refresh() }),
		widget.NewButton("+", func() { s.ZoomIn(); refresh() }),
		widget.NewButton("Fit", func() { s.FitView(); refresh() }),
		widget.NewButton("Grid", func() { s.ToggleGrid(); refresh() }),
		widget.NewButton("Rotate", func() { s.RotateCanvas(); refresh() }),
		widget.NewButton("PNG", func() {
			path, err := export.WriteRaster(r, s.Canvas(), opts.Config.Export.Dir, opts.Config.Export.RasterScale)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Track(telemetry.ExportWritten, map[string]any{"format": "png"})
			status.SetText("wrote " + path)
		}),
		widget.NewButton("Bundle", func() {
			if _, err := export.WriteBundle(s.Canvas(), opts.Config.Export.Dir); err != nil {
				dialog.ShowError(err, w)
				return
			}
			telemetry.Track(telemetry.ExportWritten, map[string]any{"format": "html"})
			status.SetText("wrote bundle to " + opts.Config.Export.Dir)
		}),
		presets,
	)...)

	center := container.NewBorder(nil, nil, nil, nil, stage)
	body := container.NewBorder(toolbar, status, layersPanel, right, center)
	root := container.NewBorder(nil, codePanel, nil, nil, body)

	refresh = func() {
		stage.Refresh()
		layers.Refresh()
		status.SetText(statusText(s))
		if s.PropertiesOpen() {
			right.Show()
		} else {
			right.Hide()
		}
		if s.CodeOpen() {
			c := s.Canvas()
			for _, p := range export.Parts {
				src, _ := export.Code(c, p)
				codeViews[p].SetText(src)
			}
			codePanel.Show()
		} else {
			codePanel.Hide()
		}
	}

	stage.OnChange = func() {
		status.SetText(statusText(s))
		if s.Mode() == editor.ModeIdle {
			refresh()
			loadStyle()
		}
	}
	stage.OnEffect = func(eff editor.Effect) {
		switch eff {
		case editor.EffectOpenFilePicker:
			dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				if rc == nil {
					return
				}
				armFrom(s, rc, refresh)
			}, w)
		case editor.EffectOpenTextEditor:
			el, ok := s.EditingText()
			if !ok {
				return
			}
			entry := widget.NewMultiLineEntry()
			if t, ok := el.Shape.(*scene.Text); ok {
				entry.SetText(t.Content)
			}
			dialog.ShowForm("Edit text", "Save", "Cancel", []*widget.FormItem{widget.NewFormItem("Text", entry)}, func(save bool) {
				if save {
					s.SaveText(entry.Text)
				} else {
					s.CancelText()
				}
				refresh()
			}, w)
		}
	}

	w.SetContent(root)
	loadStyle()
	refresh()
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}
