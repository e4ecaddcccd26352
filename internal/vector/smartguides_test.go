/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestSmartGuidesSnapToEdges(t *testing.T) {
	other := R(0, 0, 200, 100)
	moving := R(3, 4, 80, 40)
	snapped, guides := SmartGuides(moving, []Rect{other}, SnapOptions{Threshold: 6, SnapToEdges: true})
	if snapped.X != 0 || snapped.Y != 0 {
		t.Fatalf("expected snap to 0,0, got %+v", snapped)
	}
	var v, h bool
	for _, g := range guides {
		if g.Vertical && g.Pos == 0 {
			v = true
		}
		if !g.Vertical && g.Pos == 0 {
			h = true
		}
	}
	if !v || !h {
		t.Fatalf("expected guides at x=0 and y=0: %+v", guides)
	}
}

func TestSmartGuidesSnapToCenters(t *testing.T) {
	other := R(0, 0, 200, 100)
	moving := R(48, 17, 100, 60)
	snapped, guides := SmartGuides(moving, []Rect{other}, SnapOptions{Threshold: 5, SnapToCenters: true})
	if snapped.X != 50 || snapped.Y != 20 {
		t.Fatalf("expected centered box at 50,20, got %+v", snapped)
	}
	for _, g := range guides {
		if g.Kind != "center" {
			t.Fatalf("unexpected guide kind %q", g.Kind)
		}
	}
	if len(guides) != 2 {
		t.Fatalf("expected two guides, got %d", len(guides))
	}
}

func TestSmartGuidesThreshold(t *testing.T) {
	moving := R(10, 10, 50, 20)
	snapped, guides := SmartGuides(moving, []Rect{R(0, 0, 200, 100)}, SnapOptions{Threshold: 5, SnapToEdges: true})
	if snapped != moving || len(guides) != 0 {
		t.Fatalf("expected no snapping, got %+v %+v", snapped, guides)
	}
}
