package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"careport/internal/config"
)

// withConfig swaps the package-level config for a test and restores it.
func withConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestBuildServices_WiresServiceGraph(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	services, err := buildServices()
	require.NoError(t, err)
	require.NotNil(t, services.Client)
	require.NotNil(t, services.Taxonomy)
	require.NotNil(t, services.Entities)
	require.NotNil(t, services.Config)
	require.NotEmpty(t, services.ConfigPath)
}

func TestBuildServices_RejectsInvalidBaseURL(t *testing.T) {
	c := config.Defaults()
	c.API.BaseURL = "ftp://somewhere"
	withConfig(t, c)

	_, err := buildServices()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestTokenSet_PersistsToken(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	err := tokenSetCmd.RunE(tokenSetCmd, []string{"  abc123  "})
	require.NoError(t, err)

	data, err := os.ReadFile(c.API.TokenPath)
	require.NoError(t, err)
	require.Equal(t, "abc123\n", string(data))
}

func TestTokenSet_RejectsEmptyToken(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	err := tokenSetCmd.RunE(tokenSetCmd, []string{"   "})
	require.Error(t, err)
}

func TestTokenClear_RemovesTokenFile(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	require.NoError(t, tokenSetCmd.RunE(tokenSetCmd, []string{"abc123"}))
	require.NoError(t, tokenClearCmd.RunE(tokenClearCmd, nil))

	_, err := os.Stat(c.API.TokenPath)
	require.True(t, os.IsNotExist(err))
}

func TestTokenClear_MissingFileIsNotAnError(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	require.NoError(t, tokenClearCmd.RunE(tokenClearCmd, nil))
}

func TestEntityListers_CoverEveryCollection(t *testing.T) {
	c := config.Defaults()
	c.API.TokenPath = filepath.Join(t.TempDir(), "token")
	withConfig(t, c)

	services, err := buildServices()
	require.NoError(t, err)

	listers := entityListers(services.Entities)
	for _, name := range []string{
		"providers", "patients", "administrators", "commissions",
		"payments", "services", "reviews", "communications", "notifications",
	} {
		require.Contains(t, listers, name)
	}
}
