/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"minicanvas/internal/editor"
	"minicanvas/internal/scene"
)

var reLine = regexp.MustCompile(`line (\d+)`)

// Parse decodes a YAML scene script and validates every step. Unknown
// fields are errors. A step must carry exactly one action.
//
//	canvas: {preset: desktop}
//	steps:
//	  - tool: rect
//	  - drag: {from: [100, 100], to: [300, 200]}
//	  - animate: {type: fadeIn, duration: 1}
func Parse(data []byte) (Script, []Error) {
	var sc Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, []Error{{Line: 1, Column: 1, Message: "empty script"}}
		}
		return Script{}, yamlErrors(err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err == nil {
		for i, n := range stepNodes(&root) {
			if i < len(sc.Steps) {
				sc.Steps[i].Line, sc.Steps[i].Column = n.Line, n.Column
			}
		}
	}

	var errs []Error
	if sc.Canvas != nil {
		if msg := checkCanvas(*sc.Canvas); msg != "" {
			errs = append(errs, Error{Line: 1, Column: 1, Message: msg})
		}
	}
	for _, st := range sc.Steps {
		if msg := checkStep(st); msg != "" {
			errs = append(errs, Error{Line: st.Line, Column: st.Column, Message: msg})
		}
	}
	return sc, errs
}

// yamlErrors converts decoder errors, keeping their line numbers.
func yamlErrors(err error) []Error {
	var msgs []string
	var te *yaml.TypeError
	if errors.As(err, &te) {
		msgs = te.Errors
	} else {
		msgs = []string{err.Error()}
	}
	out := make([]Error, 0, len(msgs))
	for _, m := range msgs {
		line := 1
		if sm := reLine.FindStringSubmatch(m); sm != nil {
			line, _ = strconv.Atoi(sm[1])
		}
		out = append(out, Error{Line: line, Column: 1, Message: strings.TrimPrefix(m, "yaml: ")})
	}
	return out
}

// stepNodes returns the sequence items under the top-level "steps" key.
func stepNodes(root *yaml.Node) []*yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == "steps" && m.Content[i+1].Kind == yaml.SequenceNode {
			return m.Content[i+1].Content
		}
	}
	return nil
}

func checkCanvas(c CanvasSpec) string {
	if c.Preset != "" {
		if _, ok := scene.PresetByID(c.Preset); !ok {
			return fmt.Sprintf("unknown preset %q", c.Preset)
		}
		return ""
	}
	if c.Width <= 0 || c.Height <= 0 {
		return "canvas needs a preset or a positive width and height"
	}
	return ""
}

func checkStep(st Step) string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("canvas", st.Canvas != nil)
	add("switch", st.Switch != nil)
	add("tool", st.Tool != "")
	add("style", st.Style != nil)
	add("drag", st.Drag != nil)
	add("click", st.Click != nil)
	add("dblclick", st.DblClick != nil)
	add("text", st.Text != nil)
	add("key", st.Key != "")
	add("select", st.Select != nil)
	add("forward", st.Forward != nil)
	add("backward", st.Backward != nil)
	add("delete", st.Delete)
	add("clear", st.Clear)
	add("undo", st.Undo > 0)
	add("redo", st.Redo > 0)
	add("animate", st.Animate != nil)
	add("property", st.Property != nil)
	add("background", st.Background != "")
	add("backgroundImage", st.BgImage != "")
	add("removeBackgroundImage", st.RemoveBg)
	add("resize", st.Resize != nil)
	add("rotate", st.Rotate)
	add("image", st.Image != "")
	add("fillImage", st.FillImage != "")
	if len(set) != 1 {
		return fmt.Sprintf("step has %d actions %v, want exactly one", len(set), set)
	}

	switch {
	case st.Canvas != nil:
		return checkCanvas(*st.Canvas)
	case st.Tool != "" && !editor.Tool(st.Tool).Valid():
		return fmt.Sprintf("unknown tool %q", st.Tool)
	case st.Drag != nil && (len(st.Drag.From) != 2 || len(st.Drag.To) != 2):
		return "drag needs from: [x, y] and to: [x, y]"
	case st.Click != nil && len(st.Click) != 2, st.DblClick != nil && len(st.DblClick) != 2:
		return "point needs [x, y]"
	case st.Animate != nil && !scene.AnimationType(st.Animate.Type).Valid():
		return fmt.Sprintf("unknown animation %q", st.Animate.Type)
	case st.Property != nil && st.Property.Name == "":
		return "property needs a name"
	case st.Resize != nil && st.Resize.Width == nil && st.Resize.Height == nil:
		return "resize needs width or height"
	case st.Style != nil && st.Style.Gradient != nil && len(*st.Style.Gradient) != 2:
		return "gradient needs [start, end]"
	case st.Key != "":
		if _, _, err := ParseKey(st.Key); err != nil {
			return err.Error()
		}
	}
	return ""
}

// ParseKey reads a shortcut such as "ctrl+shift+z", "delete" or "j".
func ParseKey(spec string) (editor.Key, editor.Modifiers, error) {
	var mods editor.Modifiers
	s := strings.TrimSpace(spec)
	var key string
	switch {
	case s == "+":
		key, s = "+", ""
	case strings.HasSuffix(s, "++"):
		key, s = "+", strings.TrimSuffix(s, "++")
	default:
		i := strings.LastIndex(s, "+")
		key, s = s[i+1:], s[:max(i, 0)]
	}
	var parts []string
	if s != "" {
		parts = strings.Split(s, "+")
	}
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "cmd", "meta":
			mods.Ctrl = true
		case "shift":
			mods.Shift = true
		default:
			return "", mods, fmt.Errorf("unknown modifier %q in %q", p, spec)
		}
	}
	switch strings.ToLower(key) {
	case "space":
		return editor.KeySpace, mods, nil
	case "delete", "del":
		return editor.KeyDelete, mods, nil
	case "backspace":
		return editor.KeyBackspace, mods, nil
	case "escape", "esc":
		return editor.KeyEscape, mods, nil
	}
	if len([]rune(key)) != 1 {
		return "", mods, fmt.Errorf("unknown key %q", spec)
	}
	return editor.Key(key), mods, nil
}
