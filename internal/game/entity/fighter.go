package entity

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
)

// CorpseChar is the glyph of a dead actor.
const CorpseChar = '%'

// CorpseColor is the colour tag of a dead actor.
const CorpseColor = "corpse"

// Fighter is the mutable combat state of an actor. Maxima are derived from
// the actor's stats on every read.
//
// Invariant: 0 <= HP <= MaxHP, 0 <= MP <= MaxMP, 0 <= EP <= MaxEP.
type Fighter struct {
	HP float64
	MP float64
	EP float64

	// Turn stamps of the last decrease, used to gate regeneration.
	HPDecreaseTurn int
	MPDecreaseTurn int
	EPDecreaseTurn int

	BonusPower dice.Range
	BonusHP    int
	BonusMP    int
	BonusEP    int
}

// MaxHP is the derived maximum plus the fixed hit point bonus.
func (a *Actor) MaxHP() int { return a.Stats.Params().MaxHP + a.Fighter.BonusHP }

// MaxMP is the derived maximum plus the fixed mana bonus.
func (a *Actor) MaxMP() int { return a.Stats.Params().MaxMP + a.Fighter.BonusMP }

// MaxEP is the derived maximum plus the fixed energy bonus.
func (a *Actor) MaxEP() int { return a.Stats.Params().MaxEP + a.Fighter.BonusEP }

// HP returns current hit points rounded up for display.
func (a *Actor) HP() int { return int(math.Ceil(a.Fighter.HP)) }

// MP returns current mana rounded up for display.
func (a *Actor) MP() int { return int(math.Ceil(a.Fighter.MP)) }

// EP returns current energy rounded up for display.
func (a *Actor) EP() int { return int(math.Ceil(a.Fighter.EP)) }

// Power is the derived power plus the fixed and equipment bonuses.
func (a *Actor) Power() dice.Range {
	p := a.Stats.Params().Power.Add(a.Fighter.BonusPower)
	if a.Equipment != nil && a.Backpack != nil {
		p = p.Add(a.Equipment.PowerBonus(a.Backpack))
	}
	return p
}

// Defense is the derived defense merged with the equipment bonus.
func (a *Actor) Defense() combat.Defense {
	d := a.Stats.Params().Defense
	if a.Equipment != nil && a.Backpack != nil {
		d = d.Add(a.Equipment.DefenseBonus(a.Backpack))
	}
	return d
}

// setHP clamps v to [0, MaxHP] and kills the actor when it reaches zero.
func (a *Actor) setHP(ctx sim.Context, v float64) {
	a.Fighter.HP = math.Max(0, math.Min(v, float64(a.MaxHP())))
	if a.Fighter.HP == 0 && a.AI != nil {
		a.die(ctx)
	}
}

// Heal restores up to amount hit points.
//
// Postcondition: returns the hp actually recovered; 0 for a dead actor.
func (a *Actor) Heal(ctx sim.Context, amount int) int {
	if !a.IsAlive() || a.Fighter.HP <= 0 {
		return 0
	}
	before := a.Fighter.HP
	a.setHP(ctx, before+float64(amount))
	return int(math.Round(a.Fighter.HP - before))
}

// TakeDamage removes amount hit points from a living actor.
//
// Postcondition: returns the hp actually lost; the actor dies exactly once on reaching 0.
func (a *Actor) TakeDamage(ctx sim.Context, amount int) int {
	if !a.IsAlive() || amount <= 0 {
		return 0
	}
	before := a.Fighter.HP
	a.Fighter.HPDecreaseTurn = ctx.Turn()
	a.setHP(ctx, before-float64(amount))
	return int(math.Round(before - a.Fighter.HP))
}

// UseMana spends amount mana, all or nothing.
//
// Postcondition: returns amount on success and 0 when mana is insufficient.
func (a *Actor) UseMana(ctx sim.Context, amount int) int {
	if float64(amount) > a.Fighter.MP {
		return 0
	}
	a.Fighter.MP -= float64(amount)
	a.Fighter.MPDecreaseTurn = ctx.Turn()
	return amount
}

// UseEnergy spends amount energy, all or nothing.
func (a *Actor) UseEnergy(ctx sim.Context, amount int) bool {
	if float64(amount) > a.Fighter.EP {
		return false
	}
	a.Fighter.EP -= float64(amount)
	a.Fighter.EPDecreaseTurn = ctx.Turn()
	return true
}

// RestoreMana adds up to amount mana and returns the delta.
func (a *Actor) RestoreMana(amount float64) float64 {
	before := a.Fighter.MP
	a.Fighter.MP = math.Max(0, math.Min(before+amount, float64(a.MaxMP())))
	return a.Fighter.MP - before
}

// RestoreEnergy adds up to amount energy and returns the delta.
func (a *Actor) RestoreEnergy(amount float64) float64 {
	before := a.Fighter.EP
	a.Fighter.EP = math.Max(0, math.Min(before+amount, float64(a.MaxEP())))
	return a.Fighter.EP - before
}

// die turns the actor into a corpse and credits the player for kills.
func (a *Actor) die(ctx sim.Context) {
	if a.Player {
		ctx.Log("You died!", message.PlayerDie)
	} else {
		ctx.Log(fmt.Sprintf("%s is dead!", a.Name), message.EnemyDie)
		ctx.AwardXP(a.Level.XPGiven)
	}
	a.Char = CorpseChar
	a.Color = CorpseColor
	a.BlocksMovement = false
	a.AI = nil
	a.RenderOrder = RenderCorpse
	a.Name = "remains of " + a.Name
}

// FighterLines renders the HP, MP, EP, power and defense lines.
func (a *Actor) FighterLines() []string {
	lines := []string{
		fmt.Sprintf("HP: %d/%d", a.HP(), a.MaxHP()),
		fmt.Sprintf("MP: %d/%d", a.MP(), a.MaxMP()),
		fmt.Sprintf("EP: %d/%d", a.EP(), a.MaxEP()),
		"Power: " + a.Power().String(),
	}
	for _, d := range a.Defense().Describe() {
		lines = append(lines, "Defense: "+d)
	}
	return lines
}
