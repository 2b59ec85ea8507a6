package action

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/message"
)

func performTakeStairs(ctx Context, actor *entity.Actor, _ Action) error {
	m := ctx.Map()
	if actor.X != m.Downstairs.X || actor.Y != m.Downstairs.Y {
		return gameerr.New("There are no stairs here.")
	}
	if err := ctx.Descend(); err != nil {
		return fmt.Errorf("action: descend: %w", err)
	}
	ctx.Log("You descend the staircase.", message.Descend)
	return nil
}

func performPlaceTorch(ctx Context, actor *entity.Actor, _ Action) error {
	m := ctx.Map()
	if _, ok := m.TorchAt(actor.X, actor.Y); ok {
		return gameerr.New("There is already a torch here.")
	}
	m.AddTorch(entity.NewTorch(actor.X, actor.Y, ctx.FOVRadius()))
	ctx.UpdateFOV()
	ctx.Log("You place a torch.", message.White)
	return nil
}
