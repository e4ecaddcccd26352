/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo keeps the editor history: a linear list of scene snapshots
// with a cursor. Entries before the cursor can be undone, entries after it
// redone; pushing discards the redo tail.
package undo

import (
	"sync"
	"time"
)

// DefaultMaxEntries caps the history when Config leaves it unset.
const DefaultMaxEntries = 50

// Snapshot is one recorded state. Blob is opaque to the manager.
type Snapshot struct {
	Blob  []byte
	Label string // the action that produced the state, for diagnostics
	TS    time.Time
}

// Config bounds the history.
type Config struct {
	// MaxEntries is the list length cap; the oldest entries are evicted first.
	MaxEntries int
	// MaxBytes is a soft memory cap over all blobs (0 disables it). The
	// current entry is never evicted to satisfy it.
	MaxBytes int
}

// Manager is the history list. Index is -1 until the first Push.
// It is safe for concurrent use.
type Manager struct {
	cfg     Config
	mu      sync.Mutex
	entries []Snapshot
	index   int
	bytes   int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	return &Manager{cfg: cfg, index: -1}
}

// Push appends s after the cursor, dropping any redo entries, and moves the cursor onto it.
func (m *Manager) Push(s Snapshot) {
	if s.TS.IsZero() {
		s.TS = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, dropped := range m.entries[m.index+1:] {
		m.bytes -= len(dropped.Blob)
	}
	m.entries = append(m.entries[:m.index+1], s)
	m.bytes += len(s.Blob)
	m.index = len(m.entries) - 1
	m.enforceCapsLocked()
}

// Undo moves the cursor back one entry and returns the snapshot now current.
// It is a no-op at index 0 and below.
func (m *Manager) Undo() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index <= 0 {
		return Snapshot{}, false
	}
	m.index--
	return m.entries[m.index], true
}

// Redo moves the cursor forward one entry, if there is one.
func (m *Manager) Redo() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index >= len(m.entries)-1 {
		return Snapshot{}, false
	}
	m.index++
	return m.entries[m.index], true
}

// Current returns the snapshot at the cursor.
func (m *Manager) Current() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index < 0 {
		return Snapshot{}, false
	}
	return m.entries[m.index], true
}

// Reset empties the history; Index returns -1 afterwards.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.index = -1
	m.bytes = 0
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index < len(m.entries)-1
}

// Index returns the cursor position in [-1, Len()-1].
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns the entry count and blob bytes held, for diagnostics.
func (m *Manager) Stats() (entries, bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries), m.bytes
}

func (m *Manager) enforceCapsLocked() {
	drop := len(m.entries) - m.cfg.MaxEntries
	if drop < 0 {
		drop = 0
	}
	if m.cfg.MaxBytes > 0 {
		over := m.bytes
		for i := 0; i < drop; i++ {
			over -= len(m.entries[i].Blob)
		}
		for drop < m.index && over > m.cfg.MaxBytes {
			over -= len(m.entries[drop].Blob)
			drop++
		}
	}
	if drop == 0 {
		return
	}
	for _, s := range m.entries[:drop] {
		m.bytes -= len(s.Blob)
	}
	m.entries = append([]Snapshot(nil), m.entries[drop:]...)
	m.index -= drop
	if m.index < 0 {
		m.index = 0
	}
}
