// Package main generates a run of dungeon floors and prints what each one
// holds, for tuning the spawn tables.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/engine"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/cory-johannsen/dungeon/internal/observability"
)

var (
	configPath string
	floors     int
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:          "dungeonsim",
	Short:        "Generate dungeon floors and report their contents",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	rootCmd.Flags().IntVar(&floors, "floors", 10, "number of floors to generate")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = configured seed)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// floorStats summarizes one generated floor.
type floorStats struct {
	Floor, Width, Height int
	Walkable             int
	Monsters, Items      int
}

func measure(floor int, m *world.GameMap, player string) floorStats {
	s := floorStats{Floor: floor, Width: m.Width, Height: m.Height, Items: len(m.Items.Items)}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Walkable(x, y) {
				s.Walkable++
			}
		}
	}
	for _, a := range m.LivingActors() {
		if a.ID != player {
			s.Monsters++
		}
	}
	return s
}

func run(cmd *cobra.Command, _ []string) error {
	if floors < 1 {
		return fmt.Errorf("--floors must be at least 1, got %d", floors)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Game.Seed = seed
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
	eng, err := engine.NewGame(&cfg, content, engine.NewSource(cfg.Game, logger), logger)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	defer eng.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FLOOR\tSIZE\tWALKABLE\tMONSTERS\tITEMS")
	for {
		s := measure(eng.Floor(), eng.Map(), eng.Player().ID)
		logger.Info("floor measured",
			zap.Int("floor", s.Floor),
			zap.Int("walkable", s.Walkable),
			zap.Int("monsters", s.Monsters),
			zap.Int("items", s.Items),
		)
		fmt.Fprintf(w, "%d\t%dx%d\t%d\t%d\t%d\n", s.Floor, s.Width, s.Height, s.Walkable, s.Monsters, s.Items)
		if eng.Floor() >= floors {
			break
		}
		if err := eng.Descend(); err != nil {
			return fmt.Errorf("generating floor %d: %w", eng.Floor()+1, err)
		}
	}
	return w.Flush()
}
