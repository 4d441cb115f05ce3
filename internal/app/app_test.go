package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careport/internal/config"
	"careport/internal/log"
	"careport/internal/mode"
	"careport/internal/pubsub"
	"careport/internal/session"
	"careport/internal/taxonomy"
	"careport/internal/ui/toaster"
)

type stubFetcher struct{}

func (stubFetcher) Categories(context.Context) ([]string, error) {
	return []string{"Medical Staff"}, nil
}
func (stubFetcher) PlayerTypes(context.Context, string) ([]taxonomy.PlayerType, error) {
	return []taxonomy.PlayerType{
		{ID: "doc", Name: "Doctor", Category: "Medical Staff"},
		{ID: "nurse", Name: "Nurse", Category: "Medical Staff"},
	}, nil
}
func (stubFetcher) PlayerType(context.Context, taxonomy.ID) (*taxonomy.PlayerType, error) {
	return nil, nil
}
func (stubFetcher) Children(context.Context, taxonomy.ID) ([]taxonomy.PlayerType, error) {
	return nil, nil
}
func (stubFetcher) Specializations(context.Context, taxonomy.ID) ([]taxonomy.Specialization, error) {
	return nil, nil
}
func (stubFetcher) Attributes(context.Context, taxonomy.ID) ([]taxonomy.Attribute, error) {
	return nil, nil
}

func testModel() Model {
	cfg := config.Defaults()
	return New(mode.Services{Taxonomy: stubFetcher{}, Config: &cfg}, "")
}

func TestToastRouting(t *testing.T) {
	m := testModel()

	next, cmd := m.Update(mode.ShowToastMsg{Message: "saved", Style: toaster.StyleSuccess})
	require.NotNil(t, cmd)
	m = next.(Model)
	assert.True(t, m.toaster.Visible())

	next, _ = m.Update(toaster.DismissMsg{Seq: 1})
	assert.False(t, next.(Model).toaster.Visible())
}

func TestSessionClearedShowsWarning(t *testing.T) {
	m := testModel()

	next, _ := m.Update(pubsub.Event[session.Event]{
		Type:    pubsub.DeletedEvent,
		Payload: session.Event{Type: session.TokenCleared},
	})
	m = next.(Model)
	assert.True(t, m.toaster.Visible())
	assert.Contains(t, m.toaster.View(), "Session ended")
}

func TestLogOverlayToggleShowsEntries(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	next, _ = m.Update(log.LogEvent{Payload: "2026-08-31T10:00:00 [INFO] [mode] wizard started\n"})
	m = next.(Model)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	assert.True(t, m.logs.Visible())
	assert.Contains(t, m.View(), "wizard started")

	// Keys route to the overlay while it is open.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, next.(Model).logs.Visible())
}

func TestHelpToggle(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = next.(Model)
	assert.True(t, m.help.visible)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, next.(Model).help.visible)
}

func TestQuitKey(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFullStartupRendersCategoryPicker(t *testing.T) {
	tm := teatest.NewTestModel(t, testModel(), teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Select a category"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
