// Package effect implements the composable effect tree applied by
// consumables and by durable effects attached to actors.
package effect

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
)

// Kind selects the variant of an Effect.
type Kind string

const (
	KindHeal         Kind = "heal"
	KindRestoreMana  Kind = "restore_mana"
	KindDamage       Kind = "damage"
	KindAddConfusion Kind = "confusion"
	KindCombine      Kind = "combine"
	KindDurable      Kind = "durable"
	KindAddEffect    Kind = "add"
)

// Permanent is the Turns value of a durable effect that never expires.
const Permanent = -1

// Owner names whatever an effect is attributed to in messages: an item name
// before consumption, an actor once attached.
type Owner struct {
	Name    string
	ActorID string
}

// IsActor reports whether the owner is an actor rather than an item.
func (o Owner) IsActor() bool { return o.ActorID != "" }

// Effect is one node of an effect tree. Only the fields relevant to Kind
// are meaningful.
type Effect struct {
	Kind     Kind          `yaml:"kind"`
	Amount   int           `yaml:"amount,omitempty"`
	Damage   combat.Damage `yaml:"damage,omitempty"`
	Turns    int           `yaml:"turns,omitempty"`
	Children []*Effect     `yaml:"children,omitempty"`
	Inner    *Effect       `yaml:"inner,omitempty"`

	Owner Owner `yaml:"-"`
	// Expired is set by a durable effect that has run out; the holder prunes it.
	Expired bool `yaml:"-"`
}

// Target is anything an effect can be applied to.
type Target interface {
	EntityID() string
	DisplayName() string
	IsAlive() bool
	IsPlayer() bool
	Heal(ctx sim.Context, amount int) int
	RestoreMana(amount float64) float64
	TakeDamage(ctx sim.Context, amount int) int
	Defense() combat.Defense
	Confuse(turns int)
	Attach(e *Effect)
}

func Heal(amount int) *Effect { return &Effect{Kind: KindHeal, Amount: amount} }

func RestoreMana(amount int) *Effect { return &Effect{Kind: KindRestoreMana, Amount: amount} }

func Damage(d combat.Damage) *Effect { return &Effect{Kind: KindDamage, Damage: d} }

func AddConfusion(turns int) *Effect { return &Effect{Kind: KindAddConfusion, Turns: turns} }

func Combine(children ...*Effect) *Effect {
	return &Effect{Kind: KindCombine, Children: children}
}

// Durable wraps inner so it reapplies once per turn for turns turns.
// Pass Permanent for an effect that never expires.
func Durable(turns int, inner *Effect) *Effect {
	return &Effect{Kind: KindDurable, Turns: turns, Inner: inner}
}

// Add attaches a copy of inner to the target when applied.
func Add(inner *Effect) *Effect { return &Effect{Kind: KindAddEffect, Inner: inner} }

// SetOwner sets the owner on e and every nested effect.
func (e *Effect) SetOwner(o Owner) {
	if e == nil {
		return
	}
	e.Owner = o
	for _, c := range e.Children {
		c.SetOwner(o)
	}
	e.Inner.SetOwner(o)
}

// Clone returns a deep copy of e.
func (e *Effect) Clone() *Effect {
	if e == nil {
		return nil
	}
	out := *e
	if e.Children != nil {
		out.Children = make([]*Effect, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.Clone()
		}
	}
	out.Inner = e.Inner.Clone()
	return &out
}

// Apply applies e to target and reports whether it had an effect.
// consume marks a first-time use from an item, which controls messages.
//
// Precondition: ctx and target must be non-nil.
func (e *Effect) Apply(ctx sim.Context, target Target, consume bool) bool {
	fn, ok := appliers[e.Kind]
	if !ok {
		return false
	}
	return fn(e, ctx, target, consume)
}

// Describe returns the human-readable lines for e.
func (e *Effect) Describe() []string {
	fn, ok := describers[e.Kind]
	if !ok {
		return nil
	}
	return fn(e)
}

// ErrInvalidEffect is wrapped by every Validate failure.
var ErrInvalidEffect = errors.New("invalid effect")

// Validate checks that the fields required by each Kind are present.
//
// Postcondition: returns nil iff the whole tree is well formed.
func (e *Effect) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil effect", ErrInvalidEffect)
	}
	var errs []error
	switch e.Kind {
	case KindHeal, KindRestoreMana:
		if e.Amount <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s amount must be > 0", ErrInvalidEffect, e.Kind))
		}
	case KindDamage:
		if e.Damage.Type == 0 {
			errs = append(errs, fmt.Errorf("%w: damage type is required", ErrInvalidEffect))
		}
		if e.Damage.Value.Hi <= 0 {
			errs = append(errs, fmt.Errorf("%w: damage value must be positive", ErrInvalidEffect))
		}
	case KindAddConfusion:
		if e.Turns <= 0 {
			errs = append(errs, fmt.Errorf("%w: confusion turns must be > 0", ErrInvalidEffect))
		}
	case KindCombine:
		if len(e.Children) == 0 {
			errs = append(errs, fmt.Errorf("%w: combine needs children", ErrInvalidEffect))
		}
		for _, c := range e.Children {
			if err := c.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	case KindDurable, KindAddEffect:
		if e.Kind == KindDurable && e.Turns == 0 {
			errs = append(errs, fmt.Errorf("%w: durable turns must be non-zero", ErrInvalidEffect))
		}
		if err := e.Inner.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: unknown kind %q", ErrInvalidEffect, e.Kind))
	}
	return errors.Join(errs...)
}
