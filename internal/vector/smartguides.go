/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// SnapOptions controls drag snapping against other boxes.
type SnapOptions struct {
	Threshold     float64 // canvas units; defaults to 6
	SnapToEdges   bool
	SnapToCenters bool
}

// Guide is an alignment line shown while a snapped drag is in flight.
type Guide struct {
	Vertical bool    // true: x = Pos, false: y = Pos
	Kind     string  // "edge" or "center"
	Pos      float64
	From, To Pt
}

type snapCandidate struct {
	delta float64
	guide Guide
	found bool
}

func (c *snapCandidate) consider(delta, threshold float64, g Guide) {
	d := math.Abs(delta)
	if d > threshold {
		return
	}
	if !c.found || d < math.Abs(c.delta) {
		*c = snapCandidate{delta: delta, guide: g, found: true}
	}
}

// SmartGuides moves the box being dragged onto nearby edges or centers of
// anchors. X and Y snap independently; each returned guide spans both boxes.
func SmartGuides(moving Rect, anchors []Rect, opts SnapOptions) (Rect, []Guide) {
	if opts.Threshold <= 0 {
		opts.Threshold = 6
	}
	var bx, by snapCandidate
	mx := [3]float64{moving.X, moving.X + moving.W/2, moving.X + moving.W}
	my := [3]float64{moving.Y, moving.Y + moving.H/2, moving.Y + moving.H}

	for _, a := range anchors {
		ax := [3]float64{a.X, a.X + a.W/2, a.X + a.W}
		ay := [3]float64{a.Y, a.Y + a.H/2, a.Y + a.H}
		for i := range mx {
			for j := range ax {
				center := i == 1 && j == 1
				edge := i != 1 && j != 1
				if (center && opts.SnapToCenters) || (edge && opts.SnapToEdges) {
					bx.consider(mx[i]-ax[j], opts.Threshold, vguide(ax[j], moving, a, kind(center)))
					by.consider(my[i]-ay[j], opts.Threshold, hguide(ay[j], moving, a, kind(center)))
				}
			}
		}
	}

	out := moving
	var guides []Guide
	if bx.found {
		out.X = Round(moving.X-bx.delta, 3)
		guides = append(guides, bx.guide)
	}
	if by.found {
		out.Y = Round(moving.Y-by.delta, 3)
		guides = append(guides, by.guide)
	}
	return out, guides
}

func kind(center bool) string {
	if center {
		return "center"
	}
	return "edge"
}

func vguide(x float64, a, b Rect, k string) Guide {
	x = Round(x, 3)
	y0 := math.Min(a.Y, b.Y)
	y1 := math.Max(a.Y+a.H, b.Y+b.H)
	return Guide{Vertical: true, Kind: k, Pos: x, From: Pt{x, y0}, To: Pt{x, y1}}
}

func hguide(y float64, a, b Rect, k string) Guide {
	y = Round(y, 3)
	x0 := math.Min(a.X, b.X)
	x1 := math.Max(a.X+a.W, b.X+b.W)
	return Guide{Kind: k, Pos: y, From: Pt{x0, y}, To: Pt{x1, y}}
}
