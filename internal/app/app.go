// Package app contains the root application model: it owns the active mode,
// the shared toaster, the help overlay, and the session-token watcher that
// tears the app down when the login elsewhere ends.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"careport/internal/keys"
	"careport/internal/log"
	"careport/internal/mode"
	"careport/internal/mode/register"
	"careport/internal/pubsub"
	"careport/internal/session"
	"careport/internal/ui/logview"
	"careport/internal/ui/toaster"
)

// Model is the root application state.
type Model struct {
	register mode.Controller
	services mode.Services
	keymap   keys.KeyMap

	// Centralized toaster, owned here so notifications outlive mode resets.
	toaster toaster.Model

	help helpOverlay

	// Debug log overlay, fed from the log package's pubsub republish.
	// Entries only flow while debug logging is enabled.
	logs        logview.Model
	logListener *pubsub.ContinuousListener[string]

	// Token file watcher. Another process logging out clears the token
	// file; the watcher turns that into a session-ended notice here.
	watcher         *session.Watcher
	watcherListener *pubsub.ContinuousListener[session.Event]

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// New creates the application model. tokenPath is the persisted bearer
// token file to watch; an empty path disables the watcher.
func New(services mode.Services, tokenPath string) Model {
	m := Model{
		register: register.New(services),
		services: services,
		keymap:   keys.DefaultKeyMap(),
		toaster:  toaster.New(),
		help:     newHelpOverlay(),
		logs:     logview.New(),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	// Nil when debug logging is off; the overlay then just stays empty.
	m.logListener = log.NewListener(m.ctx)

	if tokenPath != "" {
		w, err := session.NewWatcher(session.DefaultWatcherConfig(tokenPath))
		if err == nil && w.Start() == nil {
			m.watcher = w
			m.watcherListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
		} else if err != nil {
			// The app works without the watcher; sessions just won't
			// auto-notify on external logout.
			log.Warn(log.CatSession, "token watcher unavailable", "error", err.Error())
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.register.Init()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Close releases the listeners and the watcher. Call after the program
// exits.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.register = m.register.SetSize(msg.Width, msg.Height)
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.help = m.help.setSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case log.LogEvent:
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keymap.Logs) {
			m.logs = m.logs.Toggle()
			return m, nil
		}
		if m.logs.Visible() {
			m.logs, _ = m.logs.Update(msg)
			return m, nil
		}
		if key.Matches(msg, m.keymap.Help) {
			m.help = m.help.toggle()
			return m, nil
		}
		if m.help.visible {
			if key.Matches(msg, m.keymap.Escape) {
				m.help = m.help.toggle()
			}
			return m, nil
		}

	case mode.ShowToastMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Message, msg.Style, toaster.DefaultDuration)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case pubsub.Event[session.Event]:
		return m.handleSessionEvent(msg)
	}

	var cmd tea.Cmd
	m.register, cmd = m.register.Update(msg)
	return m, cmd
}

func (m Model) handleSessionEvent(msg pubsub.Event[session.Event]) (tea.Model, tea.Cmd) {
	listen := func() tea.Cmd {
		if m.watcherListener != nil {
			return m.watcherListener.Listen()
		}
		return nil
	}

	switch msg.Payload.Type {
	case session.TokenCleared:
		log.Info(log.CatSession, "token cleared externally")
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Session ended. Please log in again.", toaster.StyleWarn, toaster.DefaultDuration)
		return m, tea.Batch(cmd, listen())

	case session.TokenChanged:
		log.Info(log.CatSession, "token updated externally")
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Session refreshed.", toaster.StyleInfo, toaster.DefaultDuration)
		return m, tea.Batch(cmd, listen())

	case session.WatcherError:
		log.Warn(log.CatSession, "watcher error", "error", msg.Payload.Error)
	}
	return m, listen()
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.register.View()
	if m.help.visible {
		view = m.help.overlay(view)
	}
	view = m.logs.Overlay(view)
	return m.toaster.Overlay(view)
}
