package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chosenMsg struct{ value string }
type cancelledMsg struct{}

func testPicker() Model {
	return New(Config{
		Title: "Category",
		Options: []Option{
			{Label: "Medical Staff", Value: "medical"},
			{Label: "Facilities", Value: "facilities"},
			{Label: "Support", Value: "support"},
		},
		OnSelect: func(opt Option) tea.Msg { return chosenMsg{value: opt.Value} },
		OnCancel: func() tea.Msg { return cancelledMsg{} },
	})
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationClamps(t *testing.T) {
	m := testPicker()
	m, _ = m.Update(key("k"))
	assert.Equal(t, "medical", m.Cursor().Value, "cursor stays at the top")

	for i := 0; i < 5; i++ {
		m, _ = m.Update(key("j"))
	}
	assert.Equal(t, "support", m.Cursor().Value, "cursor stays at the bottom")
}

func TestEnterEmitsSelection(t *testing.T) {
	m := testPicker()
	m, _ = m.Update(key("j"))
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, chosenMsg{value: "facilities"}, cmd())
}

func TestEscEmitsCancel(t *testing.T) {
	m := testPicker()
	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, cancelledMsg{}, cmd())
}

func TestPreselect(t *testing.T) {
	m := testPicker().Preselect("support")
	assert.Equal(t, "support", m.Cursor().Value)

	m = m.Preselect("unknown")
	assert.Equal(t, "support", m.Cursor().Value, "unknown values leave the cursor in place")
}

func TestEmptyPicker(t *testing.T) {
	m := New(Config{Title: "Empty", OnSelect: func(Option) tea.Msg { return chosenMsg{} }})
	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd, "enter on an empty picker emits nothing")
	assert.Contains(t, m.View(), "no options available")
}
