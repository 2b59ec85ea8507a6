// Package main provides the terminal roguelike binary.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/engine"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/lifecycle"
	"github.com/cory-johannsen/dungeon/internal/observability"
	"github.com/cory-johannsen/dungeon/internal/storage"
	"github.com/cory-johannsen/dungeon/internal/ui"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "dungeon",
	Short:         "Dungeon of Wandering Shadows, a turn-based roguelike",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "show the viewport guides and turn counter")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if debug {
		cfg.Game.Debug = true
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	content, err := engine.LoadConfiguredContent(cfg.Content)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	store, err := storage.Open(cmd.Context(), cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	defer store.Close()

	logger.Info("starting dungeon",
		zap.String("storage", cfg.Storage.Backend),
		zap.Uint64("seed", cfg.Game.Seed),
		zap.Bool("debug", cfg.Game.Debug),
	)

	lc := lifecycle.New(logger)
	lc.Add("ui", ui.NewService(ui.Deps{
		Config:    &cfg,
		Content:   content,
		Store:     store,
		Logger:    logger,
		NewSource: func() dice.Source { return engine.NewSource(cfg.Game, logger) },
	}))
	err = lc.Run(cmd.Context())
	if errors.Is(err, gameerr.ErrQuitWithoutSaving) {
		logger.Info("quit without saving")
		return nil
	}
	return err
}
