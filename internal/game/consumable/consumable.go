// Package consumable selects the targets of a consumable item and applies
// its effects.
package consumable

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// SelectTargetText prompts the player for a location.
const SelectTargetText = "Select a target location."

type selector func(m *world.GameMap, consumer *entity.Actor, rng, radius int, at *world.Point, src dice.Source) ([]*entity.Actor, error)

var selectors map[inventory.TargetType]selector

func init() {
	selectors = map[inventory.TargetType]selector{
		inventory.TargetSelf:     selectSelf,
		inventory.TargetRandom:   selectRandom,
		inventory.TargetNearest:  selectNearest,
		inventory.TargetAll:      selectAll,
		inventory.TargetSelected: selectSelected,
		inventory.TargetRanged:   selectRanged,
	}
}

// Targets resolves the actors c would affect when used by consumer. at is the
// chosen location for Selected and Ranged consumables and ignored otherwise.
func Targets(m *world.GameMap, consumer *entity.Actor, c *inventory.Consumable, at *world.Point, src dice.Source) ([]*entity.Actor, error) {
	t, rng, radius := c.Targeting()
	sel, ok := selectors[t]
	if !ok {
		return nil, fmt.Errorf("consumable: no selector for target type %s", t)
	}
	return sel(m, consumer, rng, radius, at, src)
}

func selectSelf(_ *world.GameMap, consumer *entity.Actor, _, _ int, _ *world.Point, _ dice.Source) ([]*entity.Actor, error) {
	return []*entity.Actor{consumer}, nil
}

// visibleOthers lists the living actors in view other than consumer.
func visibleOthers(m *world.GameMap, consumer *entity.Actor) []*entity.Actor {
	var out []*entity.Actor
	for _, a := range m.LivingActors() {
		if a != consumer && m.IsVisible(a.X, a.Y) {
			out = append(out, a)
		}
	}
	return out
}

func selectRandom(m *world.GameMap, consumer *entity.Actor, rng, _ int, _ *world.Point, src dice.Source) ([]*entity.Actor, error) {
	var candidates []*entity.Actor
	for _, a := range visibleOthers(m, consumer) {
		if consumer.Distance(a.X, a.Y) < float64(rng) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return []*entity.Actor{candidates[dice.Choice(src, len(candidates))]}, nil
}

func selectNearest(m *world.GameMap, consumer *entity.Actor, rng, _ int, _ *world.Point, _ dice.Source) ([]*entity.Actor, error) {
	var best *entity.Actor
	closest := float64(rng) + 1
	for _, a := range visibleOthers(m, consumer) {
		if d := consumer.Distance(a.X, a.Y); d < closest {
			best, closest = a, d
		}
	}
	if best == nil {
		return nil, nil
	}
	return []*entity.Actor{best}, nil
}

func selectAll(m *world.GameMap, consumer *entity.Actor, _, _ int, _ *world.Point, _ dice.Source) ([]*entity.Actor, error) {
	return visibleOthers(m, consumer), nil
}

func selectSelected(m *world.GameMap, _ *entity.Actor, _, _ int, at *world.Point, _ dice.Source) ([]*entity.Actor, error) {
	if at == nil {
		return nil, gameerr.New(SelectTargetText)
	}
	if !m.IsVisible(at.X, at.Y) {
		return nil, gameerr.New("You cannot target an area that you cannot see.")
	}
	if a, ok := m.ActorAt(at.X, at.Y); ok {
		return []*entity.Actor{a}, nil
	}
	return nil, nil
}

// selectRanged hits every living actor within radius of at, the consumer included.
func selectRanged(m *world.GameMap, _ *entity.Actor, _, radius int, at *world.Point, _ dice.Source) ([]*entity.Actor, error) {
	if at == nil {
		return nil, gameerr.New(SelectTargetText)
	}
	var out []*entity.Actor
	for _, a := range m.LivingActors() {
		if a.Distance(at.X, at.Y) <= float64(radius) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Activate uses it on behalf of consumer.
//
// Precondition: it is held by consumer and it.Consumable is non-nil.
// Postcondition: on success an ordinary consumable leaves the backpack and a
// book spends its mana cost instead; on failure an *gameerr.Impossible is
// returned and neither happens.
func Activate(ctx sim.Context, m *world.GameMap, consumer *entity.Actor, it *inventory.Item, at *world.Point) error {
	c := it.Consumable
	if c == nil {
		return gameerr.Newf("You cannot use the %s.", it.Name)
	}
	if c.IsBook() {
		if consumer.Fighter.MP < float64(c.ManaCost) {
			return gameerr.Newf("Not enough mana to use this book, you need %d MP", c.ManaCost)
		}
		ctx.Log(fmt.Sprintf("You use %d MP and cast %s spell", c.ManaCost, c.Spell), message.ManaUse)
	}
	targets, err := Targets(m, consumer, c, at, ctx.Rand())
	if err != nil {
		return err
	}

	if len(c.Parts) > 0 {
		affected := false
		for _, p := range c.Parts {
			if applyAll(ctx, p, targets) {
				affected = true
			}
		}
		if !affected {
			return gameerr.New("No target or no effects")
		}
	} else if !applyAll(ctx, c, targets) {
		return gameerr.Newf("%s does not affect", it.Name)
	}

	if c.IsBook() {
		consumer.UseMana(ctx, c.ManaCost)
		return nil
	}
	consumer.Backpack.Remove(it.ID)
	return nil
}

// applyAll applies the effects of c to every target and reports whether any
// target was affected.
func applyAll(ctx sim.Context, c *inventory.Consumable, targets []*entity.Actor) bool {
	affected := false
	for _, e := range c.Effects() {
		for _, t := range targets {
			if e.Apply(ctx, t, true) {
				affected = true
			}
		}
	}
	return affected
}

// NeedsTarget reports whether using it requires the player to choose a location.
func NeedsTarget(it *inventory.Item) bool {
	return it.Consumable != nil && it.Consumable.NeedsTarget()
}

// TargetRadius returns the area radius to preview while choosing a location.
func TargetRadius(it *inventory.Item) int {
	if it.Consumable == nil {
		return 0
	}
	t, _, radius := it.Consumable.Targeting()
	if t != inventory.TargetRanged {
		return 0
	}
	return radius
}
