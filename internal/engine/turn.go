package engine

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/ai"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/message"
)

// Outcome reports what one player action did to the game.
type Outcome struct {
	// Performed is set when the action resolved without being rejected.
	Performed bool
	// TurnConsumed is set when the screen should refresh: the action
	// resolved, committed partial state, or the player's effects ticked.
	TurnConsumed bool
	// GameOver is set once the player is dead.
	GameOver bool
	// LevelUp is set when the player gained a level and must allocate a point.
	LevelUp bool
}

// HandleAction resolves one player intent followed, when it took time, by a
// full sweep of enemy turns.
//
// Postcondition: rejected actions are logged in the impossible colour;
// unexpected errors and panics are logged and reported in the message log
// without aborting the game.
func (e *Engine) HandleAction(a action.Action) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.unexpected(fmt.Errorf("panic: %v", r), zap.String("stack", string(debug.Stack())))
			out.GameOver = e.player != nil && !e.player.IsAlive()
		}
	}()
	if !e.player.IsAlive() {
		return Outcome{GameOver: true}
	}

	affected := e.player.ApplyEffects(e)
	if !e.player.IsAlive() {
		return Outcome{TurnConsumed: true, GameOver: true}
	}
	a = e.confusedIntent(a)

	err := action.Perform(e, e.player, a)
	if err != nil {
		imp, ok := gameerr.AsImpossible(err)
		if !ok {
			e.unexpected(err)
			return out
		}
		e.Log(imp.Message, message.Impossible)
		out.TurnConsumed = affected || imp.Committed
		if !imp.Committed {
			return out
		}
	} else {
		out.Performed = true
		out.TurnConsumed = true
	}

	e.HandleEnemyTurns()
	e.UpdateFOV()

	if !e.player.IsAlive() {
		out.GameOver = true
		return out
	}
	if e.player.Level.RequiresLevelUp() {
		e.player.Stats.Remains++
		e.player.Level.Current++
		out.LevelUp = true
	}
	return out
}

// confusedIntent ticks the player's confusion and replaces any movement with
// a stumble in a random direction while it lasts.
func (e *Engine) confusedIntent(a action.Action) action.Action {
	b := e.player.AI
	if b == nil || b.Kind != entity.BehaviorConfused {
		return a
	}
	if b.TurnsRemaining <= 0 {
		e.player.AI = b.Restore()
		e.Log("You are no longer confused.", message.White)
		return a
	}
	b.TurnsRemaining--
	switch a.Kind {
	case action.KindMove, action.KindMelee, action.KindBump, action.KindDirected:
		dx, dy := ai.RandomDirection(e.src)
		return action.Bump(dx, dy)
	}
	return a
}

// HandleEnemyTurns lets every other living actor apply its effects and act
// once, in map order, then advances the turn counter.
func (e *Engine) HandleEnemyTurns() {
	for _, actor := range e.gameMap.LivingActors() {
		if actor == e.player || !actor.IsAlive() {
			continue
		}
		actor.ApplyEffects(e)
		if err := e.runner.TakeTurn(e, actor); err != nil {
			e.unexpected(err, zap.String("actor", actor.Name))
		}
	}
	e.turn++
}

func (e *Engine) unexpected(err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err), zap.Int("turn", e.turn), zap.Int("floor", e.world.CurrentFloor))
	e.logger.Error("unexpected error", fields...)
	e.Log(fmt.Sprintf("Unexpected error: %v", err), message.Error)
}
