package npc

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
)

// StepOption raises one attribute by one point with the given chance.
// A zero Chance always applies.
type StepOption struct {
	Stat   stats.Name `yaml:"stat"`
	Chance float64    `yaml:"chance"`
}

// WeightedGrowth spreads AmountPerFloor random increments per floor of depth
// across the attributes named in Increments.
type WeightedGrowth struct {
	AmountPerFloor int                `yaml:"amount_per_floor"`
	Increments     map[stats.Name]int `yaml:"increments"`
}

// Growth describes how an enemy strengthens when spawned below its base floor.
// Exactly one of Steps or Weighted is set.
type Growth struct {
	StartLevel int             `yaml:"start_level"`
	Steps      [][]StepOption  `yaml:"steps"`
	Weighted   *WeightedGrowth `yaml:"weighted"`
}

// Validate checks the growth pattern.
func (g *Growth) Validate() error {
	var errs []error
	if len(g.Steps) > 0 && g.Weighted != nil {
		errs = append(errs, errors.New("growth: steps and weighted are mutually exclusive"))
	}
	for i, step := range g.Steps {
		if len(step) == 0 {
			errs = append(errs, fmt.Errorf("growth: step %d is empty", i))
		}
		for _, opt := range step {
			if _, err := stats.ParseName(string(opt.Stat)); err != nil {
				errs = append(errs, fmt.Errorf("growth: step %d: %w", i, err))
			}
			if opt.Chance < 0 || opt.Chance > 1 {
				errs = append(errs, fmt.Errorf("growth: step %d: chance %v outside [0, 1]", i, opt.Chance))
			}
		}
	}
	if g.Weighted != nil {
		if g.Weighted.AmountPerFloor < 1 {
			errs = append(errs, errors.New("growth: weighted.amount_per_floor must be >= 1"))
		}
		for n, v := range g.Weighted.Increments {
			if _, err := stats.ParseName(string(n)); err != nil {
				errs = append(errs, fmt.Errorf("growth: weighted: %w", err))
			}
			if v < 0 {
				errs = append(errs, fmt.Errorf("growth: weighted: increment for %s must be >= 0", n))
			}
		}
	}
	return errors.Join(errs...)
}

// Apply grows a for floor. Every step grows the kill reward by 5%.
//
// Precondition: floor > base.
// Postcondition: no attribute of a decreases and a's defense stays valid;
// increases that would break it are skipped.
func (g *Growth) Apply(a *entity.Actor, floor, base int, src dice.Source) {
	if g.Weighted != nil {
		a.AutoLevelUp(src, (floor-base)*g.Weighted.AmountPerFloor, g.Weighted.Increments)
		return
	}
	if len(g.Steps) == 0 {
		return
	}
	end := floor + (floor+9)/10
	for level := g.StartLevel; level < end; level++ {
		idx := (level + dice.RandInt(src, -1, 1)) % len(g.Steps)
		if idx < 0 {
			idx += len(g.Steps)
		}
		for _, opt := range g.Steps[idx] {
			if (opt.Chance == 0 || dice.Chance(src, opt.Chance)) && a.CanIncrease(opt.Stat, 1) {
				a.Stats.Increase(opt.Stat)
			}
		}
		a.Level.GrowXPGiven()
	}
}
