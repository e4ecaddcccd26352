/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// DragBox returns the normalized box spanned by anchor and p.
// With square set, both sides take the larger extent. A positive aspect
// (width/height) locks the box to that ratio instead, growing whichever
// side is too short.
func DragBox(anchor, p Pt, square bool, aspect float64) Rect {
	w, h := p.X-anchor.X, p.Y-anchor.Y
	switch {
	case square && aspect > 0:
		sw, sh := sign(w), sign(h)
		aw, ah := math.Abs(w), math.Abs(h)
		if aw/aspect > ah {
			h = aw / aspect * sh
		} else {
			w = ah * aspect * sw
		}
	case square:
		size := math.Max(math.Abs(w), math.Abs(h))
		w, h = size*sign0(w), size*sign0(h)
	}
	r := Rect{X: anchor.X, Y: anchor.Y, W: math.Abs(w), H: math.Abs(h)}
	if w < 0 {
		r.X = anchor.X + w
	}
	if h < 0 {
		r.Y = anchor.Y + h
	}
	return r
}

// SnapAngle rotates p around origin onto the nearest multiple of 45°,
// keeping its distance.
func SnapAngle(origin, p Pt) Pt {
	dx, dy := p.X-origin.X, p.Y-origin.Y
	step := math.Pi / 4
	a := math.Round(math.Atan2(dy, dx)/step) * step
	d := math.Hypot(dx, dy)
	return Pt{X: origin.X + d*math.Cos(a), Y: origin.Y + d*math.Sin(a)}
}

// sign returns -1 or 1; zero counts as positive.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// sign0 is like sign but keeps zero at zero.
func sign0(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
