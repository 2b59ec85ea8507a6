package npc

import (
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"gopkg.in/yaml.v3"
)

// StartingItem is an item the player begins with.
type StartingItem struct {
	Item  string `yaml:"item"`
	Equip bool   `yaml:"equip"`
}

// PlayerTemplate describes the player character at the start of a game.
type PlayerTemplate struct {
	Name          string           `yaml:"name"`
	Char          string           `yaml:"char"`
	Color         string           `yaml:"color"`
	Stats         stats.ActorStats `yaml:"stats"`
	Power         dice.Range       `yaml:"power"`
	Capacity      int              `yaml:"capacity"`
	LevelUpBase   int              `yaml:"level_up_base"`
	LevelUpFactor int              `yaml:"level_up_factor"`
	StartingItems []StartingItem   `yaml:"starting_items"`
}

// Validate checks the player template.
func (p *PlayerTemplate) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if utf8.RuneCountInString(p.Char) != 1 {
		errs = append(errs, fmt.Errorf("char must be a single glyph; got %q", p.Char))
	}
	if p.Capacity < len(p.StartingItems) {
		errs = append(errs, fmt.Errorf("capacity %d cannot hold %d starting items", p.Capacity, len(p.StartingItems)))
	}
	if p.LevelUpBase < 0 || p.LevelUpFactor < 0 {
		errs = append(errs, errors.New("level_up_base and level_up_factor must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("player template validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Construct builds the player on floor 1, stocks the starting items from
// items and silently equips the ones flagged equip.
//
// Postcondition: the player is at full resources.
func (p *PlayerTemplate) Construct(ctx sim.Context, items *inventory.Registry) (*entity.Actor, error) {
	r, _ := utf8.DecodeRuneInString(p.Char)
	a := entity.NewActor(p.Name, r, p.Color, p.Stats, p.Capacity, entity.PlayerBehavior())
	a.Player = true
	a.DungeonLevel = 1
	a.Fighter.BonusPower = p.Power
	a.Level.Base = p.LevelUpBase
	if p.LevelUpFactor > 0 {
		a.Level.Factor = p.LevelUpFactor
	}
	for _, si := range p.StartingItems {
		it, err := items.Construct(si.Item, 1, ctx.Rand())
		if err != nil {
			return nil, fmt.Errorf("player: starting item: %w", err)
		}
		if err := a.Backpack.Add(it); err != nil {
			return nil, fmt.Errorf("player: starting item %q: %w", si.Item, err)
		}
		if si.Equip {
			if err := a.Equipment.Toggle(ctx, a.Backpack, it, false); err != nil {
				return nil, fmt.Errorf("player: equipping %q: %w", si.Item, err)
			}
		}
	}
	a.Refill()
	return a, nil
}

// LoadPlayerFS reads and validates the player template name in fsys.
func LoadPlayerFS(fsys fs.FS, name string) (*PlayerTemplate, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("LoadPlayer: cannot read %q: %w", name, err)
	}
	p := PlayerTemplate{Stats: stats.Default()}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("LoadPlayer: cannot parse %q: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
