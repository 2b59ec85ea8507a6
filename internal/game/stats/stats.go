// Package stats holds the attribute block shared by the player and enemies
// and derives fighter parameters from it.
package stats

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Name identifies one of the six allocatable attributes.
type Name string

const (
	Strength      Name = "strength"
	Dexterity     Name = "dexterity"
	Constitution  Name = "constitution"
	Intelligence  Name = "intelligence"
	Concentration Name = "concentration"
	Vitality      Name = "vitality"
)

// Names lists the attributes in display order.
var Names = []Name{Strength, Dexterity, Constitution, Intelligence, Concentration, Vitality}

// Title returns the display form, e.g. "Strength".
func (n Name) Title() string {
	if n == "" {
		return ""
	}
	return string(n[0]-'a'+'A') + string(n[1:])
}

// ActorStats is the attribute block of an actor.
type ActorStats struct {
	Strength      int `yaml:"strength"`
	Dexterity     int `yaml:"dexterity"`
	Constitution  int `yaml:"constitution"`
	Intelligence  int `yaml:"intelligence"`
	Concentration int `yaml:"concentration"`
	Vitality      int `yaml:"vitality"`

	// Remains is the number of unspent level-up points; Used counts spent ones.
	Remains int `yaml:"remains"`
	Used    int `yaml:"used"`

	HPMult int `yaml:"hp_mult"`
	MPMult int `yaml:"mp_mult"`
	EPMult int `yaml:"ep_mult"`
	HPBase int `yaml:"hp_base"`
	MPBase int `yaml:"mp_base"`
	EPBase int `yaml:"ep_base"`
}

// Default returns the baseline block: every attribute 1, multipliers 20.
func Default() ActorStats {
	return ActorStats{
		Strength:      1,
		Dexterity:     1,
		Constitution:  1,
		Intelligence:  1,
		Concentration: 1,
		Vitality:      1,
		HPMult:        20,
		MPMult:        20,
		EPMult:        20,
	}
}

// FighterParams are the combat parameters derived from ActorStats.
type FighterParams struct {
	Power   dice.Range
	Defense combat.Defense
	MaxHP   int
	MaxMP   int
	MaxEP   int

	ManaRegenPercent   float64
	EnergyRegenPercent float64
	ManaRegenTurns     int
	EnergyRegenTurns   int

	ForcedMoveEnergy   int
	ForcedAttackEnergy int
	ForcedAttackMult   float64
}

const (
	manaRegenTurns     = 10
	energyRegenTurns   = 10
	forcedMoveEnergy   = 15
	forcedAttackEnergy = 15
	forcedAttackMult   = 1.5
)

// Params derives fighter parameters. It is pure and recomputed on every call.
func (s ActorStats) Params() FighterParams {
	return FighterParams{
		Power: dice.NewRange(s.Strength, int(float64(s.Strength)*1.1)),
		Defense: combat.NewDefense(combat.Physical,
			dice.Fixed(s.Dexterity),
			dice.Fixed(s.Concentration+int(math.Floor(float64(s.Constitution)/5))),
		),
		MaxHP:              s.HPMult*s.Constitution + s.HPBase,
		MaxMP:              s.MPMult*s.Intelligence + s.MPBase,
		MaxEP:              s.EPMult*s.Vitality + s.EPBase,
		ManaRegenPercent:   float64(s.Intelligence)/2 + float64(s.Vitality/5),
		EnergyRegenPercent: float64(s.Vitality) / 2,
		ManaRegenTurns:     manaRegenTurns,
		EnergyRegenTurns:   energyRegenTurns,
		ForcedMoveEnergy:   forcedMoveEnergy,
		ForcedAttackEnergy: forcedAttackEnergy,
		ForcedAttackMult:   forcedAttackMult,
	}
}

func (s *ActorStats) field(n Name) *int {
	switch n {
	case Strength:
		return &s.Strength
	case Dexterity:
		return &s.Dexterity
	case Constitution:
		return &s.Constitution
	case Intelligence:
		return &s.Intelligence
	case Concentration:
		return &s.Concentration
	case Vitality:
		return &s.Vitality
	}
	return nil
}

// Get returns the value of attribute n and whether n is a known attribute.
func (s ActorStats) Get(n Name) (int, bool) {
	p := s.field(n)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Increase adds one to attribute n.
//
// Postcondition: returns false and changes nothing when n is not one of Names.
func (s *ActorStats) Increase(n Name) bool {
	return s.IncreaseBy(n, 1)
}

// IncreaseBy adds amount to attribute n.
func (s *ActorStats) IncreaseBy(n Name, amount int) bool {
	p := s.field(n)
	if p == nil {
		return false
	}
	*p += amount
	return true
}

// ParseName validates an attribute name.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if (&ActorStats{}).field(n) == nil {
		return "", fmt.Errorf("stats: unknown attribute %q", s)
	}
	return n, nil
}

// Describe renders one "Strength: n" line per attribute.
func (s ActorStats) Describe() []string {
	lines := make([]string, 0, len(Names))
	for _, n := range Names {
		v, _ := s.Get(n)
		lines = append(lines, fmt.Sprintf("%s: %d", n.Title(), v))
	}
	return lines
}
