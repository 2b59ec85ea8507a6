package inventory

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"gopkg.in/yaml.v3"
)

// EquipmentType is the body slot an equippable occupies.
type EquipmentType int

const (
	Weapon EquipmentType = 1 << iota
	Armor
	Helmet
	Shield
	Necklace
)

// EquipmentTypes lists every slot in display order.
var EquipmentTypes = []EquipmentType{Weapon, Armor, Helmet, Shield, Necklace}

var equipmentTypeNames = map[EquipmentType]string{
	Weapon:   "weapon",
	Armor:    "armor",
	Helmet:   "helmet",
	Shield:   "shield",
	Necklace: "necklace",
}

func (t EquipmentType) String() string {
	if s, ok := equipmentTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EquipmentType(%d)", int(t))
}

// SlotDisplayName returns the human-readable label for a slot.
func SlotDisplayName(t EquipmentType) string {
	s := t.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UnmarshalYAML reads a slot name.
func (t *EquipmentType) UnmarshalYAML(value *yaml.Node) error {
	for k, name := range equipmentTypeNames {
		if strings.EqualFold(name, value.Value) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("inventory: unknown equipment type %q at line %d", value.Value, value.Line)
}

// Equippable is the bonus payload of a wearable or wieldable item.
type Equippable struct {
	Type    EquipmentType  `yaml:"type"`
	Power   dice.Range     `yaml:"power"`
	Defense combat.Defense `yaml:"defense"`
}

// Validate rejects a defense bonus that could not be mitigated safely.
func (e *Equippable) Validate() error {
	if e.Type == 0 {
		return fmt.Errorf("inventory: equippable type is required")
	}
	if err := e.Defense.Validate(); err != nil {
		return fmt.Errorf("inventory: equippable defense: %w", err)
	}
	return nil
}

// Describe renders the non-zero bonuses.
func (e *Equippable) Describe() []string {
	var lines []string
	if !e.Power.IsZero() {
		lines = append(lines, "Power bonus: "+e.Power.String())
	}
	if !e.Defense.IsZero() {
		lines = append(lines, "Defense bonus: "+strings.Join(e.Defense.Describe(), ", "))
	}
	return lines
}
