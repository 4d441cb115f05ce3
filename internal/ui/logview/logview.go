// Package logview shows recent log entries in an overlay without leaving
// the TUI. Entries arrive through the log package's pubsub republish; the
// app routes each log event here as it lands.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"careport/internal/log"
	"careport/internal/ui/overlay"
	"careport/internal/ui/styles"
)

const (
	// maxEntries caps the in-memory buffer; older entries roll off.
	maxEntries = 500

	maxContentWidth  = 120
	minContentWidth  = 40
	maxContentHeight = 20
	minContentHeight = 5
)

// Model is the log overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	viewport viewport.Model
	width    int
	height   int
}

func New() Model {
	return Model{
		minLevel: log.LevelDebug,
		viewport: viewport.New(minContentWidth, minContentHeight),
	}
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle flips visibility, jumping to the newest entries on open.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// SetSize adjusts the overlay to the terminal dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.contentHeight()
	return m.refresh()
}

// Append records one log entry. A visible overlay follows the tail.
func (m Model) Append(entry string) Model {
	entry = strings.TrimRight(entry, "\n")
	if entry == "" {
		return m
	}
	m.entries = append(m.entries, entry)
	if len(m.entries) > maxEntries {
		m.entries = append([]string(nil), m.entries[len(m.entries)-maxEntries:]...)
	}
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// Update handles keys while the overlay is visible: level filters, viewport
// scrolling, clearing the buffer, and closing.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "d":
			m.minLevel = log.LevelDebug
			m = m.refresh()
		case "i":
			m.minLevel = log.LevelInfo
			m = m.refresh()
		case "w":
			m.minLevel = log.LevelWarn
			m = m.refresh()
		case "e":
			m.minLevel = log.LevelError
			m = m.refresh()
		case "c":
			m.entries = nil
			m = m.refresh()
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "esc":
			m.visible = false
		}
	}
	return m, nil
}

// Overlay draws the log box centered over the given background when
// visible; otherwise the background passes through untouched.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}

	divider := styles.Blurred.Render(strings.Repeat("─", m.contentWidth()))
	content := strings.Join([]string{
		styles.Title.Render("Logs") + " " + styles.Hint.Render("("+m.minLevel.String()+"+)"),
		divider,
		m.viewport.View(),
		divider,
		styles.Hint.Render("d/i/w/e filter · j/k scroll · g/G ends · c clear · esc close"),
	}, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.SubtleColor).
		Padding(0, 1).
		Render(content)

	return overlay.Place(overlay.Config{
		Width:  m.width,
		Height: m.height,
		Anchor: overlay.Center,
	}, box, bg)
}

func (m Model) refresh() Model {
	filtered := m.filtered()
	if len(filtered) == 0 {
		m.viewport.SetContent(styles.Hint.Render("No log entries."))
		return m
	}
	m.viewport.SetContent(strings.Join(filtered, "\n"))
	return m
}

func (m Model) filtered() []string {
	var out []string
	for _, entry := range m.entries {
		if m.matchesLevel(entry) {
			out = append(out, entry)
		}
	}
	return out
}

// matchesLevel keys off the bracketed level tag each entry carries.
func (m Model) matchesLevel(entry string) bool {
	for level := m.minLevel; level <= log.LevelError; level++ {
		if strings.Contains(entry, "["+level.String()+"]") {
			return true
		}
	}
	return false
}

func (m Model) contentWidth() int {
	w := m.width - 8
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

func (m Model) contentHeight() int {
	h := m.height - 8
	if h > maxContentHeight {
		h = maxContentHeight
	}
	if h < minContentHeight {
		h = minContentHeight
	}
	return h
}
