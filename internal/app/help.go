package app

import (
	"github.com/charmbracelet/lipgloss"

	"careport/internal/ui/markdown"
	"careport/internal/ui/overlay"
	"careport/internal/ui/styles"
)

const helpText = `# Registration wizard

Pick a **category**, then a **role**. Single-role categories skip straight
ahead. Roles may offer a sub-role and a specialization; both are optional.

The detail fields and any role-specific fields follow. Fields marked with
` + "`*`" + ` are required.

## Keys

| Key | Action |
| --- | --- |
| enter | select / continue |
| esc | back / close |
| tab, shift+tab | move between fields |
| ctrl+s | continue / submit |
| ctrl+b | previous step |
| ctrl+r | refresh taxonomy |
| ctrl+h | toggle this help |
| ctrl+l | toggle the debug log view |
| ctrl+c | quit |
`

const helpWidth = 64

// helpOverlay renders the keybinding help over the wizard.
type helpOverlay struct {
	visible  bool
	rendered string
	width    int
	height   int
}

func newHelpOverlay() helpOverlay {
	h := helpOverlay{}
	if r, err := markdown.New(helpWidth); err == nil {
		if out, err := r.Render(helpText); err == nil {
			h.rendered = out
		}
	}
	if h.rendered == "" {
		// Markdown rendering is cosmetic; fall back to the raw text.
		h.rendered = helpText
	}
	return h
}

func (h helpOverlay) toggle() helpOverlay {
	h.visible = !h.visible
	return h
}

func (h helpOverlay) setSize(width, height int) helpOverlay {
	h.width = width
	h.height = height
	return h
}

func (h helpOverlay) overlay(bg string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.HighlightColor).
		Padding(0, 1).
		Render(h.rendered)

	return overlay.Place(overlay.Config{
		Width:  h.width,
		Height: h.height,
		Anchor: overlay.Center,
	}, box, bg)
}
