/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Handle names one of the eight resize grips on a selection box.
type Handle string

const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleNE   Handle = "ne"
	HandleSW   Handle = "sw"
	HandleSE   Handle = "se"
	HandleN    Handle = "n"
	HandleE    Handle = "e"
	HandleS    Handle = "s"
	HandleW    Handle = "w"
)

// Handles lists the grips in hit-test priority order: corners before edges.
var Handles = []Handle{HandleNW, HandleNE, HandleSW, HandleSE, HandleN, HandleE, HandleS, HandleW}

// HandleScreenSize is the grip edge length in screen pixels.
const HandleScreenSize = 10

// Point returns the grip position on box.
func (h Handle) Point(box Rect) Pt {
	cx, cy := box.X+box.W/2, box.Y+box.H/2
	x1, y1 := box.X+box.W, box.Y+box.H
	switch h {
	case HandleNW:
		return Pt{box.X, box.Y}
	case HandleNE:
		return Pt{x1, box.Y}
	case HandleSW:
		return Pt{box.X, y1}
	case HandleSE:
		return Pt{x1, y1}
	case HandleN:
		return Pt{cx, box.Y}
	case HandleE:
		return Pt{x1, cy}
	case HandleS:
		return Pt{cx, y1}
	case HandleW:
		return Pt{box.X, cy}
	}
	return Pt{cx, cy}
}

// Vertical reports whether the grip moves the top or bottom edge.
func (h Handle) Vertical() bool { return h != HandleE && h != HandleW && h != HandleNone }

// Horizontal reports whether the grip moves the left or right edge.
func (h Handle) Horizontal() bool { return h != HandleN && h != HandleS && h != HandleNone }

// HandleAt returns the grip of box under p. The grip keeps a constant screen
// size, so its canvas-space extent is HandleScreenSize/zoom.
func HandleAt(box Rect, p Pt, zoom float64) Handle {
	if zoom <= 0 {
		zoom = 1
	}
	half := HandleScreenSize / zoom / 2
	for _, h := range Handles {
		hp := h.Point(box)
		if math.Abs(p.X-hp.X) < half && math.Abs(p.Y-hp.Y) < half {
			return h
		}
	}
	return HandleNone
}

// ResizeBox drags grip h of box to p while the opposite edges stay put.
// It refuses (ok=false) any result whose moved dimension would be ≤1.
func ResizeBox(box Rect, h Handle, p Pt) (Rect, bool) {
	out := box
	right, bottom := box.X+box.W, box.Y+box.H
	switch h {
	case HandleNW, HandleSW, HandleW:
		out.X, out.W = p.X, right-p.X
	case HandleNE, HandleSE, HandleE:
		out.W = p.X - box.X
	}
	switch h {
	case HandleNW, HandleNE, HandleN:
		out.Y, out.H = p.Y, bottom-p.Y
	case HandleSW, HandleSE, HandleS:
		out.H = p.Y - box.Y
	}
	if h == HandleNone {
		return box, false
	}
	if (h.Horizontal() && out.W <= 1) || (h.Vertical() && out.H <= 1) {
		return box, false
	}
	return out, true
}
