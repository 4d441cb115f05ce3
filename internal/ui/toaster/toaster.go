// Package toaster shows transient notifications over the active view.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"careport/internal/ui/overlay"
	"careport/internal/ui/styles"
)

// Style selects the toast's severity treatment.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up unless dismissed earlier.
const DefaultDuration = 4 * time.Second

// maxTextWidth caps the toast body; longer messages word-wrap.
const maxTextWidth = 60

// DismissMsg hides the toast it was scheduled for. Seq ties the timer to a
// specific Show call so an old timer cannot hide a newer toast.
type DismissMsg struct {
	Seq int
}

// Model holds the toast state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
	width   int
	height  int
}

func New() Model {
	return Model{}
}

// Show displays message and schedules its dismissal.
func (m Model) Show(message string, style Style, after time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++

	seq := m.seq
	return m, tea.Tick(after, func(time.Time) tea.Msg {
		return DismissMsg{Seq: seq}
	})
}

// Update handles dismissal. Stale timers are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if dismiss, ok := msg.(DismissMsg); ok && dismiss.Seq == m.seq {
		m.visible = false
		m.message = ""
	}
	return m
}

// Hide dismisses the toast immediately.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

func (m Model) Visible() bool {
	return m.visible
}

// SetSize records the viewport for overlay placement.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var icon string
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.ErrorColor)
		icon = "✗ "
	case StyleInfo:
		box = box.BorderForeground(styles.InfoColor)
		icon = "· "
	case StyleWarn:
		box = box.BorderForeground(styles.WarnColor)
		icon = "! "
	default:
		box = box.BorderForeground(styles.SuccessColor)
		icon = "✓ "
	}

	width := maxTextWidth
	if m.width > 0 && m.width-6 < width {
		width = m.width - 6
	}
	return box.Render(wordwrap.String(icon+m.message, width))
}

// Overlay draws the toast bottom-centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:  m.width,
		Height: m.height,
		Anchor: overlay.Bottom,
		PadY:   1,
	}, m.View(), bg)
}
