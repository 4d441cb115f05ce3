// Package markdown renders the in-app help text with terminal styling.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// compactStyle removes document margins so rendered help sits flush inside
// its bordered box. Colors still come from auto light/dark detection.
const compactStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer turns markdown into styled terminal output at a fixed width.
type Renderer struct {
	term  *glamour.TermRenderer
	width int
}

func New(width int) (*Renderer, error) {
	term, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(compactStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{term: term, width: width}, nil
}

func (r *Renderer) Width() int {
	return r.width
}

func (r *Renderer) Render(text string) (string, error) {
	return r.term.Render(text)
}
