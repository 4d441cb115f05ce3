package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"careport/internal/api"
	"careport/internal/app"
	"careport/internal/config"
	"careport/internal/entities"
	"careport/internal/log"
	"careport/internal/mode"
	"careport/internal/session"
	"careport/internal/taxonomy"
	"careport/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "careport",
	Short:   "A terminal ui for the care marketplace admin portal",
	Long:    `A terminal user interface for registering patients on the care marketplace, with role taxonomy browsing and profile attribute forms.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/careport/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to careport.log")
	rootCmd.Flags().String("base-url", "",
		"backend API root, e.g. http://localhost:8000/api")
	rootCmd.Flags().Bool("no-demo", false,
		"disable the in-memory demo fallback when the backend is unreachable")

	_ = viper.BindPFlag("api.base_url", rootCmd.Flags().Lookup("base-url"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.token_path", defaults.API.TokenPath)
	viper.SetDefault("ui.show_hints", defaults.UI.ShowHints)
	viper.SetDefault("ui.show_group_titles", defaults.UI.ShowGroupTitles)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)
	viper.SetDefault("entities.demo_fallback", defaults.Entities.DemoFallback)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .careport/config.yaml (current directory)
		// 2. ~/.config/careport/config.yaml (user config)
		if _, err := os.Stat(".careport/config.yaml"); err == nil {
			viper.SetConfigFile(".careport/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "careport"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .careport/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".careport/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// buildServices constructs the shared service graph from the loaded config.
// Subcommands reuse it so they hit the same backend the TUI would.
func buildServices() (mode.Services, error) {
	if err := config.Validate(cfg); err != nil {
		return mode.Services{}, fmt.Errorf("invalid configuration: %w", err)
	}

	tokens := session.NewTokenStore(cfg.API.TokenPath)
	client, err := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
	})
	if err != nil {
		return mode.Services{}, fmt.Errorf("creating API client: %w", err)
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".careport/config.yaml"
	}

	return mode.Services{
		Client:     client,
		Taxonomy:   taxonomy.NewService(client),
		Entities:   entities.NewRegistry(client, cfg.Entities.DemoFallback),
		Config:     &cfg,
		ConfigPath: configFilePath,
	}, nil
}

func initLogging() (func(), error) {
	if !debug && os.Getenv("CAREPORT_DEBUG") == "" {
		return func() {}, nil
	}
	cleanup, err := log.Init("careport.log")
	if err != nil {
		return nil, fmt.Errorf("initializing debug log: %w", err)
	}
	log.SetEnabled(true)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	// Handle --no-demo flag (negated logic)
	if noDemo, _ := cmd.Flags().GetBool("no-demo"); noDemo {
		cfg.Entities.DemoFallback = false
	}

	styles.Apply(cfg.Theme)

	services, err := buildServices()
	if err != nil {
		return err
	}

	model := app.New(services, cfg.API.TokenPath)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Stop the token watcher goroutine
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
