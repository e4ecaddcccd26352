/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshotRoundTripPreservesVariants(t *testing.T) {
	els := sampleElements()
	els[0].Fill = Linear(Gradient{Start: "#5e81f7", End: "#a855f7", Angle: 45})
	els[0].Animation = &Animation{Type: AnimFadeIn, Duration: 1}
	snap := Snapshot{Elements: els, Background: "#fafafa", BackgroundImage: "data:x", Rotation: 270}

	b, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"elements":[{"id":"a","type":"star","shape":{}}]}`))
	if err == nil || !strings.Contains(err.Error(), "star") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestUnfilledVariantsDropFill(t *testing.T) {
	var e Element
	if err := e.UnmarshalJSON([]byte(`{"id":"l","type":"line","shape":{"x1":0,"y1":0,"x2":5,"y2":5},"fill":{"kind":"solid","color":"#fff"}}`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Fill.Kind != FillNone {
		t.Fatalf("line fill should be none, got %+v", e.Fill)
	}
}

func TestDocumentValidation(t *testing.T) {
	c := NewCanvas("Square Canvas", 800, 800)
	c.Elements = sampleElements()
	b, err := EncodeDocument(c)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	got, err := DecodeDocument(b)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if got.Name != "Square Canvas" || len(got.Elements) != 5 {
		t.Fatalf("unexpected canvas: %+v", got)
	}

	bad := []string{
		`{"version":1}`,
		`{"version":1,"canvas":{"name":"x","width":0,"height":10,"elements":[]}}`,
		`{"version":1,"canvas":{"name":"x","width":10,"height":10,"elements":[{"id":"a","type":"rect","shape":{"x":1}}]}}`,
		`{"version":1,"canvas":{"name":"x","width":10,"height":10,"elements":[{"id":"a","type":"rect","shape":{"x":1,"y":1,"w":1,"h":1},"opacity":3}]}}`,
		`{"version":1,"canvas":{"name":"x","width":10,"height":10,"rotation":45,"elements":[]}}`,
	}
	for _, doc := range bad {
		if _, err := DecodeDocument([]byte(doc)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument for %s, got %v", doc, err)
		}
	}
}

func TestDocumentRejectsDuplicateIDs(t *testing.T) {
	doc := `{"version":1,"canvas":{"name":"x","width":10,"height":10,"elements":[
		{"id":"a","type":"rect","shape":{"x":1,"y":1,"w":1,"h":1}},
		{"id":"a","type":"ellipse","shape":{"cx":1,"cy":1,"rx":1,"ry":1}}]}}`
	if _, err := DecodeDocument([]byte(doc)); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	p, ok := PresetByID("desktop")
	if !ok || p.Width != 1920 || p.Height != 1080 || p.CanvasName() != "Desktop Canvas" {
		t.Fatalf("desktop preset: %+v", p)
	}
	if _, ok := PresetByID("poster"); ok {
		t.Fatalf("unknown preset found")
	}
	if len(Presets) != 7 {
		t.Fatalf("expected 7 presets, got %d", len(Presets))
	}
	if len(AnimationTypes) != 13 || !AnimFlip.Valid() || AnimationType("spin").Valid() {
		t.Fatalf("animation catalog wrong")
	}
}

func TestRotationCycle(t *testing.T) {
	r := Rotation(0)
	seen := []Rotation{}
	for i := 0; i < 4; i++ {
		r = r.Next()
		seen = append(seen, r)
	}
	if !reflect.DeepEqual(seen, []Rotation{90, 180, 270, 0}) {
		t.Fatalf("rotation cycle %v", seen)
	}
	if !Rotation(90).Swapped() || Rotation(180).Swapped() {
		t.Fatalf("Swapped wrong")
	}
}
