/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "minicanvas/internal/scene"

// Workspace holds every canvas of a session in creation order. The active
// canvas's stored record goes stale while it is edited; the Session flushes
// its live state back on switch. Session.Canvases is the up-to-date view.
type Workspace struct {
	canvases []*scene.Canvas
	active   int
}

func NewWorkspace() *Workspace { return &Workspace{active: -1} }

func (w *Workspace) records() []*scene.Canvas {
	out := make([]*scene.Canvas, len(w.canvases))
	copy(out, w.canvases)
	return out
}

func (w *Workspace) Len() int { return len(w.canvases) }

// Active returns the active record, or nil before the first canvas exists.
func (w *Workspace) Active() *scene.Canvas {
	if w.active < 0 {
		return nil
	}
	return w.canvases[w.active]
}

// Find returns the canvas with id, or nil.
func (w *Workspace) Find(id string) *scene.Canvas {
	if i := w.index(id); i >= 0 {
		return w.canvases[i]
	}
	return nil
}

func (w *Workspace) add(c *scene.Canvas) {
	w.canvases = append(w.canvases, c)
	w.active = len(w.canvases) - 1
}

func (w *Workspace) activate(id string) bool {
	i := w.index(id)
	if i < 0 {
		return false
	}
	w.active = i
	return true
}

func (w *Workspace) index(id string) int {
	for i, c := range w.canvases {
		if c.ID == id {
			return i
		}
	}
	return -1
}
