/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package codeview is the terminal code panel: the generated HTML, CSS and
// JS of one canvas in tabs, scrollable, with copy to clipboard.
package codeview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"minicanvas/internal/export"
	"minicanvas/internal/scene"
)

var (
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3b82f6")).Padding(0, 2)
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Padding(0, 2)
	gutter      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	statusLine  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ec4899"))
	helpLine    = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the panel.
type Model struct {
	canvas *scene.Canvas
	tab    int
	lines  [][]string // per part
	scroll int
	width  int
	height int
	status string

	// Copy puts a part on the clipboard.
	Copy func(*scene.Canvas, export.Part) error
}

// New generates the three parts of c once; the panel shows a snapshot.
func New(c *scene.Canvas) Model {
	m := Model{canvas: c, width: 80, height: 24, Copy: export.CopyToClipboard}
	for _, p := range export.Parts {
		src, _ := export.Code(c, p)
		m.lines = append(m.lines, strings.Split(strings.TrimRight(src, "\n"), "\n"))
	}
	return m
}

// Part returns the visible tab.
func (m Model) Part() export.Part { return export.Parts[m.tab] }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd { return nil }

// body is the number of code rows that fit under the tab bar and above
// the status and help lines.
func (m Model) body() int {
	if h := m.height - 4; h > 1 {
		return h
	}
	return 1
}

func (m Model) maxScroll() int {
	if n := len(m.lines[m.tab]) - m.body(); n > 0 {
		return n
	}
	return 0
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll = min(m.scroll, m.maxScroll())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchTab((m.tab + 1) % len(export.Parts))
		case "shift+tab", "left", "h":
			m.switchTab((m.tab + len(export.Parts) - 1) % len(export.Parts))
		case "1", "2", "3":
			m.switchTab(int(msg.String()[0] - '1'))
		case "down", "j":
			m.scroll = min(m.scroll+1, m.maxScroll())
		case "up", "k":
			m.scroll = max(m.scroll-1, 0)
		case "pgdown", " ":
			m.scroll = min(m.scroll+m.body(), m.maxScroll())
		case "pgup":
			m.scroll = max(m.scroll-m.body(), 0)
		case "g", "home":
			m.scroll = 0
		case "G", "end":
			m.scroll = m.maxScroll()
		case "c", "y":
			m.copyPart()
		}
	}
	return m, nil
}

func (m *Model) switchTab(i int) {
	if i == m.tab {
		return
	}
	m.tab = i
	m.scroll = 0
	m.status = ""
}

func (m *Model) copyPart() {
	p := m.Part()
	if m.Copy == nil {
		m.status = "clipboard unavailable"
		return
	}
	if err := m.Copy(m.canvas, p); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %s to clipboard", p.FileName())
}

func (m Model) View() string {
	var tabs []string
	for i, p := range export.Parts {
		label := strings.ToUpper(string(p))
		if i == m.tab {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	title := ""
	if m.canvas != nil {
		title = "  " + m.canvas.Name
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString(helpLine.Render(title))
	b.WriteString("\n\n")

	lines := m.lines[m.tab]
	width := len(fmt.Sprint(len(lines)))
	end := min(m.scroll+m.body(), len(lines))
	for i := m.scroll; i < end; i++ {
		b.WriteString(gutter.Render(fmt.Sprintf("%*d ", width, i+1)))
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	if m.status != "" {
		b.WriteString(statusLine.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(helpLine.Render("tab/1-3 switch  j/k scroll  c copy  q quit"))
	return b.String()
}

// Run shows the panel full screen until the user quits.
func Run(c *scene.Canvas) error {
	_, err := tea.NewProgram(New(c), tea.WithAltScreen()).Run()
	return err
}
