// Package sim defines the simulation context handle threaded through every
// rule that logs, draws randomness or reads the turn counter.
package sim

import (
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/message"
)

// Context is the explicit handle replacing global game state.
type Context interface {
	// Log appends a player-facing message.
	Log(text string, color message.Color)
	// Turn returns the current turn counter.
	Turn() int
	// Rand returns the randomness source.
	Rand() dice.Source
	// AwardXP credits the player with xp for a kill.
	AwardXP(xp int)
}

// Basic is a standalone Context backed by a message log. The engine has its
// own implementation; Basic serves tools and tests.
type Basic struct {
	Messages  *message.Log
	Src       dice.Source
	TurnCount int
	Awarded   int
	OnAward   func(xp int)
}

// NewBasic returns a Basic context drawing from src.
func NewBasic(src dice.Source) *Basic {
	return &Basic{Messages: message.NewLog(), Src: src}
}

func (b *Basic) Log(text string, color message.Color) { b.Messages.Add(text, color) }

func (b *Basic) Turn() int { return b.TurnCount }

func (b *Basic) Rand() dice.Source { return b.Src }

// AwardXP records the award and forwards it to OnAward when set.
func (b *Basic) AwardXP(xp int) {
	b.Awarded += xp
	if b.OnAward != nil {
		b.OnAward(xp)
	}
}

// Texts returns the text of every logged message, for assertions.
func (b *Basic) Texts() []string {
	out := make([]string, 0, b.Messages.Len())
	for _, m := range b.Messages.Messages {
		out = append(out, m.Text)
	}
	return out
}
