// Package config provides configuration types and defaults for careport.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// APIConfig holds backend connectivity options.
type APIConfig struct {
	// BaseURL is the marketplace backend root, e.g. "http://localhost:8000/api".
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds each request. Zero means the default (10s).
	Timeout time.Duration `mapstructure:"timeout"`

	// TokenPath is where the bearer token is persisted.
	// Default: ~/.config/careport/token
	TokenPath string `mapstructure:"token_path"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowHints       bool `mapstructure:"show_hints"`        // Keybinding hints below the wizard
	ShowGroupTitles bool `mapstructure:"show_group_titles"` // Attribute group headers in the form
}

// ThemeConfig holds color customization options.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"` // Selection / focus color
	Subtle    string `mapstructure:"subtle"`    // Hints and secondary text
	Error     string `mapstructure:"error"`     // Error toasts and field errors
	Success   string `mapstructure:"success"`   // Success toasts
}

// EntitiesConfig controls the peripheral entity services.
type EntitiesConfig struct {
	// DemoFallback serves the bundled fallback dataset when a CRUD call fails.
	DemoFallback bool `mapstructure:"demo_fallback"`
}

// Config holds all configuration options for careport.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	UI       UIConfig       `mapstructure:"ui"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Entities EntitiesConfig `mapstructure:"entities"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000/api",
			Timeout:   10 * time.Second,
			TokenPath: defaultTokenPath(),
		},
		UI: UIConfig{
			ShowHints:       true,
			ShowGroupTitles: true,
		},
		Theme: ThemeConfig{
			Highlight: "#AD58B4",
			Subtle:    "#5C5C5C",
			Error:     "#E95678",
			Success:   "#73F59F",
		},
		Entities: EntitiesConfig{
			DemoFallback: true,
		},
	}
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "token"
	}
	return filepath.Join(home, ".config", "careport", "token")
}

// Validate checks the configuration for errors.
// Empty values are valid (defaults apply); present values must parse.
func Validate(cfg Config) error {
	if cfg.API.BaseURL != "" {
		u, err := url.Parse(cfg.API.BaseURL)
		if err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("api.base_url must be http or https, got %q", cfg.API.BaseURL)
		}
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", cfg.API.Timeout)
	}
	return nil
}
