// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"careport/internal/api"
	"careport/internal/config"
	"careport/internal/entities"
	"careport/internal/taxonomy"
	"careport/internal/ui/toaster"
)

// Controller defines the interface all modes implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns the updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Client     *api.Client
	Taxonomy   taxonomy.Fetcher
	Entities   *entities.Registry
	Config     *config.Config
	ConfigPath string
}

// ShowToastMsg asks the app shell to display a toast. Modes emit it instead
// of owning their own toaster so notifications survive mode switches.
type ShowToastMsg struct {
	Message string
	Style   toaster.Style
}

// Toast is a convenience command constructor for ShowToastMsg.
func Toast(message string, style toaster.Style) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Message: message, Style: style}
	}
}
