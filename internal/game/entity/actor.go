// Package entity implements the actors living in the dungeon: their fighter
// state, experience, attached effects and AI behaviour data.
package entity

import (
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/effect"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/google/uuid"
)

// RenderOrder controls draw layering; higher values draw on top.
type RenderOrder int

const (
	RenderCorpse RenderOrder = iota
	RenderItem
	RenderActor
)

var _ effect.Target = (*Actor)(nil)

// Actor is a living (or dead) creature on the map, the player included.
//
// Invariant: IsAlive() iff AI != nil.
type Actor struct {
	ID             string
	TemplateID     string
	Name           string
	Char           rune
	Color          string
	X, Y           int
	BlocksMovement bool
	RenderOrder    RenderOrder
	DungeonLevel   int
	Player         bool

	Stats     stats.ActorStats
	Fighter   Fighter
	Level     Level
	Equipment *inventory.Equipment
	Backpack  *inventory.Backpack
	Effects   []*effect.Effect
	AI        *Behavior
}

// NewActor builds a living actor at full health with an empty backpack.
func NewActor(name string, char rune, color string, s stats.ActorStats, capacity int, ai *Behavior) *Actor {
	a := &Actor{
		ID:             uuid.New().String(),
		Name:           name,
		Char:           char,
		Color:          color,
		BlocksMovement: true,
		RenderOrder:    RenderActor,
		Stats:          s,
		Level:          DefaultLevel(),
		Equipment:      inventory.NewEquipment(),
		Backpack:       inventory.NewBackpack(capacity),
		AI:             ai,
	}
	a.Refill()
	return a
}

// Refill restores hp, mp and ep to their maxima.
func (a *Actor) Refill() {
	a.Fighter.HP = float64(a.MaxHP())
	a.Fighter.MP = float64(a.MaxMP())
	a.Fighter.EP = float64(a.MaxEP())
}

// EntityID returns the actor's unique ID.
func (a *Actor) EntityID() string { return a.ID }

// DisplayName returns the actor's current name.
func (a *Actor) DisplayName() string { return a.Name }

// IsAlive reports whether the actor still acts.
func (a *Actor) IsAlive() bool { return a.AI != nil }

// IsPlayer reports whether the actor is the player character.
func (a *Actor) IsPlayer() bool { return a.Player }

// Position returns the actor's tile.
func (a *Actor) Position() (int, int) { return a.X, a.Y }

// MoveBy shifts the actor by (dx, dy).
func (a *Actor) MoveBy(dx, dy int) {
	a.X += dx
	a.Y += dy
}

// Distance returns the Euclidean distance to (x, y).
func (a *Actor) Distance(x, y int) float64 {
	return math.Hypot(float64(x-a.X), float64(y-a.Y))
}

// Attach adds a durable effect to the actor.
func (a *Actor) Attach(e *effect.Effect) {
	a.Effects = append(a.Effects, e)
}

// Confuse wraps the current behaviour in a confused one, or extends an
// existing confusion.
func (a *Actor) Confuse(turns int) {
	if a.AI == nil {
		return
	}
	if a.AI.Kind == BehaviorConfused {
		a.AI.TurnsRemaining += turns
		return
	}
	a.AI = &Behavior{Kind: BehaviorConfused, TurnsRemaining: turns, Previous: a.AI}
}

// ApplyEffects runs every attached effect once, prunes the expired ones and
// regenerates mana and energy when their regen interval has elapsed since
// they last decreased.
//
// Postcondition: returns false for a dead actor; otherwise whether any
// effect was attached at the start of the sweep.
func (a *Actor) ApplyEffects(ctx sim.Context) bool {
	if !a.IsAlive() {
		return false
	}
	had := len(a.Effects) > 0
	for _, e := range append([]*effect.Effect(nil), a.Effects...) {
		e.Apply(ctx, a, false)
	}
	kept := a.Effects[:0]
	for _, e := range a.Effects {
		if !e.Expired {
			kept = append(kept, e)
		}
	}
	a.Effects = kept

	if !a.IsAlive() {
		return had
	}
	p := a.Stats.Params()
	turn := ctx.Turn()
	if turn-a.Fighter.MPDecreaseTurn > p.ManaRegenTurns {
		a.RestoreMana(round2(float64(a.MaxMP()) * p.ManaRegenPercent / 100))
	}
	if turn-a.Fighter.EPDecreaseTurn > p.EnergyRegenTurns {
		a.RestoreEnergy(round2(float64(a.MaxEP()) * p.EnergyRegenPercent / 100))
	}
	return had
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CanIncrease reports whether raising attribute n by amount keeps the
// actor's defense, equipment included, valid.
//
// Postcondition: a is not modified; unknown attributes report false.
func (a *Actor) CanIncrease(n stats.Name, amount int) bool {
	next := a.Stats
	if !next.IncreaseBy(n, amount) {
		return false
	}
	def := next.Params().Defense
	if a.Equipment != nil && a.Backpack != nil {
		def = def.Add(a.Equipment.DefenseBonus(a.Backpack))
	}
	return def.Validate() == nil
}

// IncreaseStat spends one level-up point on attribute n.
//
// Postcondition: returns false and changes nothing when no point remains, n
// is unknown or the increase would invalidate the actor's defense.
func (a *Actor) IncreaseStat(n stats.Name) bool {
	if a.Stats.Remains <= 0 || !a.CanIncrease(n, 1) {
		return false
	}
	if !a.Stats.Increase(n) {
		return false
	}
	a.Stats.Remains--
	a.Stats.Used++
	return true
}
