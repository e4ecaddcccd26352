/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"encoding/json"
	"fmt"
)

type elementJSON struct {
	ID          string          `json:"id"`
	Type        Kind            `json:"type"`
	Shape       json.RawMessage `json:"shape"`
	Fill        Fill            `json:"fill"`
	Stroke      string          `json:"stroke"`
	StrokeWidth float64         `json:"strokeWidth"`
	Opacity     float64         `json:"opacity"`
	Animation   *Animation      `json:"animation,omitempty"`
}

// MarshalJSON writes the element with a "type" discriminator and its geometry under "shape".
func (e Element) MarshalJSON() ([]byte, error) {
	if e.Shape == nil {
		return nil, fmt.Errorf("element %q has no shape", e.ID)
	}
	shape, err := json.Marshal(e.Shape)
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementJSON{
		ID:          e.ID,
		Type:        e.Shape.Kind(),
		Shape:       shape,
		Fill:        e.Fill,
		Stroke:      e.Stroke,
		StrokeWidth: e.StrokeWidth,
		Opacity:     e.Opacity,
		Animation:   e.Animation,
	})
}

// UnmarshalJSON reads the format written by MarshalJSON.
func (e *Element) UnmarshalJSON(b []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var shape Shape
	switch raw.Type {
	case KindRect:
		shape = &Rect{}
	case KindEllipse:
		shape = &Ellipse{}
	case KindLine:
		shape = &Line{}
	case KindText:
		shape = &Text{}
	case KindPath:
		shape = &Path{}
	default:
		return fmt.Errorf("element %q: unknown type %q", raw.ID, raw.Type)
	}
	if len(raw.Shape) > 0 {
		if err := json.Unmarshal(raw.Shape, shape); err != nil {
			return fmt.Errorf("element %q: shape: %w", raw.ID, err)
		}
	}
	*e = Element{
		ID:          raw.ID,
		Shape:       shape,
		Fill:        raw.Fill,
		Stroke:      raw.Stroke,
		StrokeWidth: raw.StrokeWidth,
		Opacity:     raw.Opacity,
		Animation:   raw.Animation,
	}
	if !e.Filled() {
		e.Fill = NoFill()
	}
	return nil
}

// Snapshot is the scene state the history records: the element sequence
// plus the canvas background and rotation. Selection is deliberately absent.
type Snapshot struct {
	Elements        []Element `json:"elements"`
	Background      string    `json:"background"`
	BackgroundImage string    `json:"backgroundImage,omitempty"`
	Rotation        Rotation  `json:"rotation"`
}

// Encode serializes s. The result shares nothing with s.
func (s Snapshot) Encode() ([]byte, error) {
	if s.Elements == nil {
		s.Elements = []Element{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a blob written by Encode.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Elements == nil {
		s.Elements = []Element{}
	}
	return s, nil
}

// Document is the on-disk form of a single canvas, used for imports.
type Document struct {
	Version int     `json:"version"`
	Canvas  *Canvas `json:"canvas"`
}

// DocumentVersion is the current document format version.
const DocumentVersion = 1

// EncodeDocument writes c as an indented document.
func EncodeDocument(c *Canvas) ([]byte, error) {
	b, err := json.MarshalIndent(Document{Version: DocumentVersion, Canvas: c}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// DecodeDocument validates b against the document schema and parses it.
func DecodeDocument(b []byte) (*Canvas, error) {
	if err := ValidateDocument(b); err != nil {
		return nil, err
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if d.Canvas.Elements == nil {
		d.Canvas.Elements = []Element{}
	}
	if d.Canvas.Background == "" {
		d.Canvas.Background = DefaultBackground
	}
	if dup := duplicateID(d.Canvas.Elements); dup != "" {
		return nil, fmt.Errorf("decode document: duplicate element id %q", dup)
	}
	return d.Canvas, nil
}

func duplicateID(els []Element) string {
	seen := make(map[string]struct{}, len(els))
	for _, e := range els {
		if _, ok := seen[e.ID]; ok {
			return e.ID
		}
		seen[e.ID] = struct{}{}
	}
	return ""
}
