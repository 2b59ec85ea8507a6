package entity

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
)

// Level tracks experience. A zero Base disables leveling.
type Level struct {
	Current int
	XP      int
	Base    int
	Factor  int
	XPGiven int
}

// DefaultLevel returns level 1 with leveling disabled.
func DefaultLevel() Level {
	return Level{Current: 1, Factor: 150}
}

// XPToNext returns the total experience needed to leave the current level.
func (l Level) XPToNext() int {
	return l.Current * (2*l.Base + (l.Current+1)*l.Factor) / 2
}

// RequiresLevelUp reports whether enough experience has accumulated.
func (l Level) RequiresLevelUp() bool {
	return l.Base > 0 && l.XP >= l.XPToNext()
}

// AddXP credits xp and announces it.
//
// Postcondition: no-op when xp == 0 or leveling is disabled.
func (l *Level) AddXP(ctx sim.Context, xp int) {
	if xp == 0 || l.Base == 0 {
		return
	}
	l.XP += xp
	ctx.Log(fmt.Sprintf("You gain %d experience points.", xp), message.White)
	if l.RequiresLevelUp() {
		ctx.Log(fmt.Sprintf("You advance to level %d!", l.Current+1), message.White)
	}
}

// GrowXPGiven raises the kill reward by 5%.
func (l *Level) GrowXPGiven() {
	l.XPGiven += l.XPGiven * 5 / 100
}

// AutoLevelUp applies amount random stat increments chosen among the
// attributes with a positive increment, growing the kill reward each time.
// It neither logs nor consults experience. An attribute whose increment would
// invalidate the defense drops out of the candidates; growth stops when none
// remain.
func (a *Actor) AutoLevelUp(src dice.Source, amount int, increments map[stats.Name]int) {
	var candidates []stats.Name
	for _, n := range stats.Names {
		if increments[n] > 0 {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return
	}
	for i := 0; i < amount && len(candidates) > 0; {
		k := dice.Choice(src, len(candidates))
		n := candidates[k]
		if !a.CanIncrease(n, increments[n]) {
			candidates = append(candidates[:k:k], candidates[k+1:]...)
			continue
		}
		a.Stats.IncreaseBy(n, increments[n])
		a.Level.GrowXPGiven()
		i++
	}
}
