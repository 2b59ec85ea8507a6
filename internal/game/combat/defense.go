package combat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"gopkg.in/yaml.v3"
)

// Mitigation is the percent and flat reduction applied to one damage type.
type Mitigation struct {
	Percent dice.Range `yaml:"percent"`
	Flat    dice.Range `yaml:"flat"`
}

// Add returns the component-wise sum of m and o.
func (m Mitigation) Add(o Mitigation) Mitigation {
	return Mitigation{Percent: m.Percent.Add(o.Percent), Flat: m.Flat.Add(o.Flat)}
}

// Defense maps damage types to mitigation. A missing entry means no
// mitigation for that type.
//
// Invariant: Defense values are never mutated by composition; Add* return new values.
type Defense struct {
	Entries map[DamageType]Mitigation `yaml:"entries"`
}

// NewDefense builds a Defense with a single entry.
func NewDefense(t DamageType, percent, flat dice.Range) Defense {
	return Defense{Entries: map[DamageType]Mitigation{t: {Percent: percent, Flat: flat}}}
}

// FlatDefense builds a Defense with only a Default flat reduction.
func FlatDefense(flat dice.Range) Defense {
	return NewDefense(Default, dice.Range{}, flat)
}

// Get returns the mitigation for t, zero when absent.
func (d Defense) Get(t DamageType) Mitigation {
	return d.Entries[t]
}

// IsZero reports whether d mitigates nothing.
func (d Defense) IsZero() bool {
	for _, m := range d.Entries {
		if !m.Percent.IsZero() || !m.Flat.IsZero() {
			return false
		}
	}
	return true
}

func (d Defense) clone() Defense {
	out := Defense{Entries: make(map[DamageType]Mitigation, len(d.Entries))}
	for t, m := range d.Entries {
		out.Entries[t] = m
	}
	return out
}

// Add merges o into a copy of d, summing entries per damage type.
//
// Postcondition: neither d nor o is modified.
func (d Defense) Add(o Defense) Defense {
	out := d.clone()
	for t, m := range o.Entries {
		out.Entries[t] = out.Entries[t].Add(m)
	}
	return out
}

// AddFlat adds flat to the Default entry.
func (d Defense) AddFlat(flat dice.Range) Defense {
	return d.AddMitigation(dice.Range{}, flat)
}

// AddMitigation adds percent and flat to the Default entry.
func (d Defense) AddMitigation(percent, flat dice.Range) Defense {
	out := d.clone()
	out.Entries[Default] = out.Entries[Default].Add(Mitigation{Percent: percent, Flat: flat})
	return out
}

// Decrease samples the mitigation for t and applies it to amount:
// ceil(amount*100/(100-percent) - flat).
//
// Precondition: d passed Validate. A sampled percent of 100 or more panics.
// Postcondition: a result <= 0 means no damage.
func (d Defense) Decrease(amount int, t DamageType, src dice.Source) int {
	m, ok := d.Entries[t]
	if !ok {
		return amount
	}
	percent := m.Percent.Sample(src)
	flat := m.Flat.Sample(src)
	if percent >= 100 {
		panic(fmt.Sprintf("combat: Decrease with %s percent %d; defense was not validated", t, percent))
	}
	return int(math.Ceil(float64(amount)*100/float64(100-percent) - float64(flat)))
}

// ErrInvalidDefense is returned by Validate when an entry cannot be applied.
var ErrInvalidDefense = errors.New("invalid defense")

// Validate rejects entries whose percent could reach 100 or fall below zero.
//
// Postcondition: returns nil iff every entry is safe to Decrease.
func (d Defense) Validate() error {
	var errs []error
	for _, t := range d.types() {
		m := d.Entries[t]
		if m.Percent.Hi >= 100 {
			errs = append(errs, fmt.Errorf("%w: %s percent %s must stay below 100", ErrInvalidDefense, t, m.Percent))
		}
		if m.Percent.Lo < 0 {
			errs = append(errs, fmt.Errorf("%w: %s percent %s must not be negative", ErrInvalidDefense, t, m.Percent))
		}
	}
	return errors.Join(errs...)
}

func (d Defense) types() []DamageType {
	types := make([]DamageType, 0, len(d.Entries))
	for t := range d.Entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Describe renders one "Type: p%, f" line per entry in damage type order.
func (d Defense) Describe() []string {
	lines := make([]string, 0, len(d.Entries))
	for _, t := range d.types() {
		m := d.Entries[t]
		lines = append(lines, fmt.Sprintf("%s: %s%%, %s", t, m.Percent, m.Flat))
	}
	return lines
}

// defenseEntryYAML is the on-disk shape of one mitigation entry.
type defenseEntryYAML struct {
	Type    DamageType `yaml:"type"`
	Percent dice.Range `yaml:"percent"`
	Flat    dice.Range `yaml:"flat"`
}

// UnmarshalYAML reads either a bare flat range (applied to Default) or a list
// of {type, percent, flat} entries.
func (d *Defense) UnmarshalYAML(value *yaml.Node) error {
	out := Defense{Entries: map[DamageType]Mitigation{}}
	switch value.Kind {
	case yaml.ScalarNode:
		var flat dice.Range
		if err := value.Decode(&flat); err != nil {
			return err
		}
		out = out.AddFlat(flat)
	case yaml.SequenceNode:
		var entries []defenseEntryYAML
		if err := value.Decode(&entries); err != nil {
			return err
		}
		for _, e := range entries {
			if e.Type == 0 {
				e.Type = Default
			}
			out = out.Add(NewDefense(e.Type, e.Percent, e.Flat))
		}
	default:
		return fmt.Errorf("combat: defense must be a range or a list at line %d", value.Line)
	}
	*d = out
	return nil
}
