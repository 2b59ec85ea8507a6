package inventory

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/effect"
	"gopkg.in/yaml.v3"
)

// TargetType selects who a consumable affects. Values are ordered; a
// combined consumable targets with the greatest of its parts.
type TargetType int

const (
	TargetSelf TargetType = 1 << iota
	TargetRandom
	TargetNearest
	TargetAll
	TargetSelected
	TargetRanged
)

var targetTypeNames = map[TargetType]string{
	TargetSelf:     "self",
	TargetRandom:   "random",
	TargetNearest:  "nearest",
	TargetAll:      "all",
	TargetSelected: "selected",
	TargetRanged:   "ranged",
}

func (t TargetType) String() string {
	if s, ok := targetTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TargetType(%d)", int(t))
}

// UnmarshalYAML reads a target type name.
func (t *TargetType) UnmarshalYAML(value *yaml.Node) error {
	for k, name := range targetTypeNames {
		if strings.EqualFold(name, value.Value) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("inventory: unknown target type %q at line %d", value.Value, value.Line)
}

// ConsumableType groups consumables for the quick lists.
type ConsumableType int

const (
	TypeNone ConsumableType = iota
	TypePotion
	TypeScroll
	TypeBook
)

var consumableTypeNames = map[ConsumableType]string{
	TypeNone:   "none",
	TypePotion: "potion",
	TypeScroll: "scroll",
	TypeBook:   "book",
}

func (t ConsumableType) String() string { return consumableTypeNames[t] }

// UnmarshalYAML reads a consumable type name.
func (t *ConsumableType) UnmarshalYAML(value *yaml.Node) error {
	for k, name := range consumableTypeNames {
		if strings.EqualFold(name, value.Value) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("inventory: unknown consumable type %q at line %d", value.Value, value.Line)
}

// Consumable is the use-payload of an item. A consumable with Parts is a
// combination whose parts share one target set; a positive ManaCost makes it
// a magic book that spends mana instead of being used up.
type Consumable struct {
	Type     ConsumableType `yaml:"type"`
	Target   TargetType     `yaml:"target"`
	Range    int            `yaml:"range"`
	Radius   int            `yaml:"radius"`
	Effect   *effect.Effect `yaml:"effect"`
	ManaCost int            `yaml:"mana_cost"`
	Spell    string         `yaml:"spell"`
	Parts    []*Consumable  `yaml:"parts"`
}

// IsBook reports whether using c costs mana rather than the item.
func (c *Consumable) IsBook() bool { return c.ManaCost > 0 }

// Targeting returns the effective target type with its range and radius.
// For a combination the part with the greatest target type wins.
func (c *Consumable) Targeting() (TargetType, int, int) {
	if len(c.Parts) == 0 {
		t := c.Target
		if t == 0 {
			t = TargetSelf
		}
		return t, c.Range, c.Radius
	}
	best, rng, radius := TargetType(0), 0, 0
	for _, p := range c.Parts {
		t, r, rad := p.Targeting()
		if t > best {
			best, rng, radius = t, r, rad
		}
	}
	return best, rng, radius
}

// NeedsTarget reports whether the player must pick a location first.
func (c *Consumable) NeedsTarget() bool {
	t, _, _ := c.Targeting()
	return t == TargetSelected || t == TargetRanged
}

// SetOwner attributes every effect in c to an item name.
func (c *Consumable) SetOwner(name string) {
	if c.Effect != nil {
		c.Effect.SetOwner(effect.Owner{Name: name})
	}
	for _, p := range c.Parts {
		p.SetOwner(name)
	}
}

// Clone returns a deep copy of c.
func (c *Consumable) Clone() *Consumable {
	if c == nil {
		return nil
	}
	out := *c
	out.Effect = c.Effect.Clone()
	if c.Parts != nil {
		out.Parts = make([]*Consumable, len(c.Parts))
		for i, p := range c.Parts {
			out.Parts[i] = p.Clone()
		}
	}
	return &out
}

// Effects returns the effect of c or of each of its parts.
func (c *Consumable) Effects() []*effect.Effect {
	if len(c.Parts) == 0 {
		if c.Effect == nil {
			return nil
		}
		return []*effect.Effect{c.Effect}
	}
	var out []*effect.Effect
	for _, p := range c.Parts {
		out = append(out, p.Effects()...)
	}
	return out
}

// Validate checks the payload tree.
func (c *Consumable) Validate() error {
	if len(c.Parts) > 0 {
		for i, p := range c.Parts {
			if err := p.Validate(); err != nil {
				return fmt.Errorf("part %d: %w", i, err)
			}
		}
		return nil
	}
	if c.Effect == nil {
		return fmt.Errorf("inventory: consumable effect is required")
	}
	if err := c.Effect.Validate(); err != nil {
		return err
	}
	t, rng, radius := c.Targeting()
	switch t {
	case TargetRandom, TargetNearest, TargetSelected:
		if rng <= 0 {
			return fmt.Errorf("inventory: %s consumable needs a positive range", t)
		}
	case TargetRanged:
		if radius <= 0 {
			return fmt.Errorf("inventory: ranged consumable needs a positive radius")
		}
	}
	return nil
}

// Describe renders mana cost (for books) followed by the effect lines.
func (c *Consumable) Describe() []string {
	var lines []string
	if c.IsBook() {
		lines = append(lines, fmt.Sprintf("Mana usage: %d", c.ManaCost))
	}
	if len(c.Parts) > 0 {
		for _, p := range c.Parts {
			lines = append(lines, p.Describe()...)
		}
		return lines
	}
	if c.Effect != nil {
		lines = append(lines, c.Effect.Describe()...)
	}
	return lines
}
