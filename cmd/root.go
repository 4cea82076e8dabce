package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/portfolio/internal/app"
	"github.com/nhle/portfolio/internal/logging"
	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/store"
)

var version = "dev"

var (
	configPath string
	apiURL     string
	cfg        *model.AppConfig
	st         store.Store
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:     "portfolio",
	Short:   "Manage portfolio projects from the terminal",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; values already in the environment win.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		var err error
		cfg, err = model.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		closeLog()
		logCloser, err = logging.Init(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return err
		}

		st = store.NewAPIStore(cfg.API.BaseURL, cfg.Timeout())
		slog.Debug("starting", "command", cmd.CommandPath(), "api", cfg.API.BaseURL)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := querycache.New()
		defer cache.Close()

		m := app.New(app.Options{
			Store:         st,
			Cache:         cache,
			Server:        cfg.API.BaseURL,
			ToastDuration: cfg.ToastDuration(),
		})

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running terminal UI: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config)")
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeLog()
	return rootCmd.Execute()
}
