package ai

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// DefaultDomain is planned for hostile enemies whose domain is not registered.
const DefaultDomain = "hostile"

// Runner takes the turns of non-player actors.
type Runner struct {
	planners *Registry
	logger   *zap.Logger
}

// NewRunner returns a Runner planning with planners.
//
// Precondition: planners and logger must not be nil.
func NewRunner(planners *Registry, logger *zap.Logger) *Runner {
	return &Runner{planners: planners, logger: logger}
}

// TakeTurn performs one turn for actor according to its behaviour. Rejected
// actions are swallowed; any other error is unexpected.
func (r *Runner) TakeTurn(ctx action.Context, actor *entity.Actor) error {
	if !actor.IsAlive() {
		return nil
	}
	var err error
	switch actor.AI.Kind {
	case entity.BehaviorConfused:
		err = r.confused(ctx, actor)
	case entity.BehaviorHostile:
		err = r.hostile(ctx, actor)
	default:
		return nil
	}
	if gameerr.IsImpossible(err) {
		return nil
	}
	return err
}

// confused stumbles in a random direction until the confusion runs out,
// then restores the wrapped behaviour.
func (r *Runner) confused(ctx action.Context, actor *entity.Actor) error {
	if actor.AI.TurnsRemaining <= 0 {
		actor.AI = actor.AI.Restore()
		ctx.Log(fmt.Sprintf("The %s is no longer confused.", actor.Name), message.White)
		return nil
	}
	actor.AI.TurnsRemaining--
	dx, dy := RandomDirection(ctx.Rand())
	return action.Perform(ctx, actor, action.Bump(dx, dy))
}

func (r *Runner) hostile(ctx action.Context, actor *entity.Actor) error {
	ws := BuildWorldState(ctx.Map(), actor, ctx.Player())
	plan, err := r.plan(actor.AI.Domain, ws)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		return nil
	}
	r.logger.Debug("enemy plan",
		zap.String("actor", actor.Name),
		zap.String("domain", actor.AI.Domain),
		zap.String("action", plan[0].Action),
		zap.Int("length", len(plan)),
	)
	return r.execute(ctx, actor, plan[0])
}

func (r *Runner) plan(domain string, ws *WorldState) ([]PlannedAction, error) {
	p, ok := r.planners.PlannerFor(domain)
	if !ok {
		p, ok = r.planners.PlannerFor(DefaultDomain)
	}
	if ok {
		return p.Plan(ws)
	}
	switch {
	case builtins[CondPlayerAdjacent](ws):
		return []PlannedAction{{Action: OpAttack, Target: ws.ResolveTarget("player")}}, nil
	case builtins[CondPlayerVisible](ws):
		return []PlannedAction{{Action: OpApproach, Target: ws.ResolveTarget("player")}}, nil
	default:
		return []PlannedAction{{Action: OpWait}}, nil
	}
}

func (r *Runner) execute(ctx action.Context, actor *entity.Actor, pa PlannedAction) error {
	if pa.Action == OpWait {
		return nil
	}
	target, ok := ctx.Map().ActorByID(pa.Target)
	if !ok || !target.IsAlive() {
		return nil
	}
	dx, dy := target.X-actor.X, target.Y-actor.Y
	switch pa.Action {
	case OpAttack:
		if max(abs(dx), abs(dy)) == 1 {
			return action.Perform(ctx, actor, action.Melee(dx, dy))
		}
		return r.approach(ctx, actor, target)
	case OpApproach:
		return r.approach(ctx, actor, target)
	case OpRetreat:
		return retreat(ctx, actor, target)
	}
	return fmt.Errorf("ai: unknown operator action %q", pa.Action)
}

func (r *Runner) approach(ctx action.Context, actor, target *entity.Actor) error {
	path := PathTo(ctx.Map(),
		world.Point{X: actor.X, Y: actor.Y},
		world.Point{X: target.X, Y: target.Y})
	if len(path) == 0 {
		return nil
	}
	step := path[0]
	if step.X == target.X && step.Y == target.Y {
		return action.Perform(ctx, actor, action.Melee(step.X-actor.X, step.Y-actor.Y))
	}
	return action.Perform(ctx, actor, action.Move(step.X-actor.X, step.Y-actor.Y))
}

// retreat steps to the free neighbouring tile farthest from target. The
// actor holds its ground when no step gains distance.
func retreat(ctx action.Context, actor, target *entity.Actor) error {
	m := ctx.Map()
	best := actor.Distance(target.X, target.Y)
	var move *world.Point
	for _, d := range world.Directions {
		dx, dy := d.Delta()
		x, y := actor.X+dx, actor.Y+dy
		if !m.InBounds(x, y) || !m.Walkable(x, y) {
			continue
		}
		if _, blocked := m.BlockingActorAt(x, y); blocked {
			continue
		}
		if dist := target.Distance(x, y); dist > best {
			best = dist
			move = &world.Point{X: dx, Y: dy}
		}
	}
	if move == nil {
		return nil
	}
	return action.Perform(ctx, actor, action.Move(move.X, move.Y))
}

// RandomDirection picks one of the eight directions, used to scramble the
// intent of a confused player.
func RandomDirection(src dice.Source) (int, int) {
	return world.Directions[src.Intn(len(world.Directions))].Delta()
}
