package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/zams/internal/config"
	"github.com/jask/zams/internal/logging"
	"github.com/jask/zams/internal/repository"
	"github.com/jask/zams/internal/secrets"
	"github.com/jask/zams/internal/seed"
	"github.com/jask/zams/internal/tui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "zams",
	Short:         "Zams admin console",
	Long:          "Zams is a terminal console for chatting with an assistant and managing models, datasources and workflows.",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $HOME/.config/zams/config.toml)")

	rootCmd.AddCommand(datasourcesCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(chatCmd)
}

// env is what every command needs: config, logger and seeded repos.
type env struct {
	cfg     config.Config
	log     *slog.Logger
	closer  io.Closer
	secrets *secrets.Store
	fx      seed.Fixtures
	opts    repository.Options
	repos   seed.Repos
}

func (e *env) Close() error { return e.closer.Close() }

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	fx, err := seed.LoadFile(cfg.Fixtures)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	store := secrets.NewStore(secrets.DefaultDir())
	if cfg.API.Key == "" {
		key, err := store.Get(secrets.APIKey)
		switch {
		case err == nil:
			cfg.API.Key = key
		case !errors.Is(err, secrets.ErrNotFound):
			logger.Warn("api key unreadable", "path", store.Path(), "err", err)
		}
	}
	opts := optionsFromConfig(cfg.Catalog)
	logger.Debug("environment loaded",
		"datasources", len(fx.Datasources),
		"models", len(fx.Models),
		"fixtures", cfg.Fixtures)
	return &env{
		cfg:     cfg,
		secrets: store,
		log:     logger,
		closer:  closer,
		fx:      fx,
		opts:    opts,
		repos:   seed.Seed(fx, opts, cfg.User.Name, nil),
	}, nil
}

// optionsFromConfig falls back to the shipped option sets for any list the
// config leaves empty.
func optionsFromConfig(c config.CatalogConfig) repository.Options {
	opts := repository.DefaultOptions()
	if len(c.Types) > 0 {
		opts.Types = c.Types
	}
	if len(c.Statuses) > 0 {
		opts.Statuses = c.Statuses
	}
	if len(c.ModelTypes) > 0 {
		opts.ModelTypes = c.ModelTypes
	}
	if len(c.BaseModels) > 0 {
		opts.BaseModels = c.BaseModels
	}
	return opts
}

func runTUI(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	ctx := cmd.Context()
	app := tui.New(ctx, e.cfg, e.repos, tui.Deps{
		Workflows:  e.fx.Workflows,
		Logger:     e.log,
		ConfigPath: configPath,
		Secrets:    e.secrets,
	})
	e.log.Info("starting tui")
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		e.log.Error("tui exited", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
