// Package picker is a list selector used for the taxonomy dropdowns and
// select-type attributes. The owner supplies message factories so the picker
// stays decoupled from what a choice means.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"careport/internal/ui/overlay"
	"careport/internal/ui/styles"
)

// Option is one selectable entry.
type Option struct {
	Label string
	Value string
	// Detail is an optional second line shown muted under the label.
	Detail string
}

// Config wires the picker to its owner.
type Config struct {
	Title   string
	Options []Option
	// OnSelect produces the message sent when an option is chosen.
	OnSelect func(Option) tea.Msg
	// OnCancel produces the message sent on escape. Nil disables cancel.
	OnCancel func() tea.Msg
}

// Model holds the picker state.
type Model struct {
	cfg      Config
	cursor   int
	boxWidth int
	width    int
	height   int
}

func New(cfg Config) Model {
	return Model{cfg: cfg, boxWidth: defaultBoxWidth(cfg)}
}

func defaultBoxWidth(cfg Config) int {
	width := lipgloss.Width(cfg.Title)
	for _, opt := range cfg.Options {
		if w := lipgloss.Width(opt.Label) + 2; w > width {
			width = w
		}
		if opt.Detail != "" {
			if w := lipgloss.Width(opt.Detail) + 4; w > width {
				width = w
			}
		}
	}
	if width < 24 {
		width = 24
	}
	return width
}

// SetSize records the viewport for overlay placement.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Preselect moves the cursor to the option with the given value.
func (m Model) Preselect(value string) Model {
	for i, opt := range m.cfg.Options {
		if opt.Value == value {
			m.cursor = i
			break
		}
	}
	return m
}

// Cursor returns the option under the cursor.
func (m Model) Cursor() Option {
	if m.cursor >= 0 && m.cursor < len(m.cfg.Options) {
		return m.cfg.Options[m.cursor]
	}
	return Option{}
}

// Update handles navigation, selection, and cancel keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down", "ctrl+n":
		if m.cursor < len(m.cfg.Options)-1 {
			m.cursor++
		}
	case "k", "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cfg.OnSelect != nil && len(m.cfg.Options) > 0 {
			selected := m.Cursor()
			return m, func() tea.Msg { return m.cfg.OnSelect(selected) }
		}
	case "esc":
		if m.cfg.OnCancel != nil {
			return m, func() tea.Msg { return m.cfg.OnCancel() }
		}
	}
	return m, nil
}

// View renders the picker box.
func (m Model) View() string {
	var rows strings.Builder
	for i, opt := range m.cfg.Options {
		if i > 0 {
			rows.WriteString("\n")
		}
		if i == m.cursor {
			rows.WriteString(styles.Focused.Render("> " + opt.Label))
		} else {
			rows.WriteString("  " + opt.Label)
		}
		if opt.Detail != "" {
			rows.WriteString("\n " + styles.Hint.Render("  "+opt.Detail))
		}
	}
	if len(m.cfg.Options) == 0 {
		rows.WriteString(styles.Hint.Render("no options available"))
	}

	divider := styles.Blurred.Render(strings.Repeat("─", m.boxWidth))
	content := styles.Title.Render(m.cfg.Title) + "\n" + divider + "\n" + rows.String()

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.HighlightColor).
		Padding(0, 1).
		Width(m.boxWidth).
		Render(content)
}

// Overlay renders the picker centered over bg.
func (m Model) Overlay(bg string) string {
	if bg == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.View())
	}
	return overlay.Place(overlay.Config{
		Width:  m.width,
		Height: m.height,
		Anchor: overlay.Center,
	}, m.View(), bg)
}
