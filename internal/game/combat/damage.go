// Package combat implements damage types, mitigation and melee damage for
// the dungeon.
package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"gopkg.in/yaml.v3"
)

// DamageType is a bit flag naming a kind of damage.
type DamageType int

const (
	Physical  DamageType = 1 << iota // 1
	Magic                            // 2
	Fire                             // 4
	Lightning                        // 8
	Poison                           // 16
)

// Default is the damage type used when none is given.
const Default = Physical

// AllDamageTypes lists every damage type in bit order.
var AllDamageTypes = []DamageType{Physical, Magic, Fire, Lightning, Poison}

var damageTypeNames = map[DamageType]string{
	Physical:  "Physical",
	Magic:     "Magic",
	Fire:      "Fire",
	Lightning: "Lightning",
	Poison:    "Poison",
}

// String returns the title-case name, e.g. "Fire".
func (t DamageType) String() string {
	if name, ok := damageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DamageType(%d)", int(t))
}

// ParseDamageType parses a damage type name case-insensitively.
func ParseDamageType(s string) (DamageType, error) {
	for t, name := range damageTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("combat: unknown damage type %q", s)
}

// UnmarshalYAML reads a damage type name.
func (t *DamageType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDamageType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML writes the damage type name.
func (t DamageType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// Damage is a typed damage range.
type Damage struct {
	Value dice.Range `yaml:"value"`
	Type  DamageType `yaml:"type"`
}

// NewDamage builds a Damage, substituting Default for a zero type.
func NewDamage(value dice.Range, t DamageType) Damage {
	if t == 0 {
		t = Default
	}
	return Damage{Value: value, Type: t}
}

// Attack samples the damage value and mitigates it through def.
//
// Postcondition: result is the net damage; values <= 0 mean no damage.
func (d Damage) Attack(def Defense, src dice.Source) int {
	return def.Decrease(d.Value.Sample(src), d.Type, src)
}

// Describe renders "Fire: 10-15".
func (d Damage) Describe() string {
	return fmt.Sprintf("%s: %s", d.Type, d.Value)
}
