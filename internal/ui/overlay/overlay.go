// Package overlay composites floating content over a rendered view without
// clearing the screen, preserving ANSI styling on both layers.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor selects where the floating content sits in the viewport.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
)

// Config describes the viewport and placement.
type Config struct {
	Width  int
	Height int
	Anchor Anchor
	// PadY is the distance from the anchored edge, ignored for Center.
	PadY int
}

// Place draws fg over bg at the configured anchor. Both strings may carry
// ANSI escapes; background cells under the foreground are replaced, cells
// beside it keep their styling.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := anchorOrigin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceLine(bgLines[row], fgLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces the cells of bg starting at column x with fg,
// keeping whatever background extends past the foreground's right edge.
func spliceLine(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	right := ""
	end := x + ansi.StringWidth(fg)
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func anchorOrigin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Anchor {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
