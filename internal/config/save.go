package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"careport/internal/log"
)

// defaultConfigTemplate is written on first run. Comments document every key
// so users can discover options without leaving the file.
const defaultConfigTemplate = `# careport configuration
#
# api:
#   base_url: backend root, e.g. http://localhost:8000/api
#   timeout: per-request timeout (Go duration, e.g. 10s)
#   token_path: where the bearer token is stored
api:
  base_url: %s
  timeout: 10s

# ui:
#   show_hints: show keybinding hints below the wizard
#   show_group_titles: show attribute group headers in the dynamic form
ui:
  show_hints: true
  show_group_titles: true

# theme colors are hex values
theme:
  highlight: "#AD58B4"
  subtle: "#5C5C5C"
  error: "#E95678"
  success: "#73F59F"

# entities:
#   demo_fallback: serve bundled demo data when a CRUD call fails
entities:
  demo_fallback: true
`

// WriteDefaultConfig creates the default config file at the given path.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	content := fmt.Sprintf(defaultConfigTemplate, Defaults().API.BaseURL)
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// Save marshals the full configuration back to the given path.
// Used by commands that persist changed settings (e.g. a new base URL).
func Save(configPath string, cfg Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out := map[string]any{
		"api": map[string]any{
			"base_url":   cfg.API.BaseURL,
			"timeout":    cfg.API.Timeout.String(),
			"token_path": cfg.API.TokenPath,
		},
		"ui": map[string]any{
			"show_hints":        cfg.UI.ShowHints,
			"show_group_titles": cfg.UI.ShowGroupTitles,
		},
		"theme": map[string]any{
			"highlight": cfg.Theme.Highlight,
			"subtle":    cfg.Theme.Subtle,
			"error":     cfg.Theme.Error,
			"success":   cfg.Theme.Success,
		},
		"entities": map[string]any{
			"demo_fallback": cfg.Entities.DemoFallback,
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Saved config", "path", configPath)
	return nil
}
