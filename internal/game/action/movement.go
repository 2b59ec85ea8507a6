package action

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/message"
)

func performMove(ctx Context, actor *entity.Actor, a Action) error {
	x, y := actor.X+a.Dx, actor.Y+a.Dy
	m := ctx.Map()
	if !m.InBounds(x, y) || !m.Walkable(x, y) {
		return gameerr.New("That way is blocked.")
	}
	if _, blocked := m.BlockingActorAt(x, y); blocked {
		return gameerr.New("That way is blocked.")
	}
	actor.MoveBy(a.Dx, a.Dy)
	return nil
}

func performMelee(ctx Context, actor *entity.Actor, a Action) error {
	target, ok := ctx.Map().ActorAt(actor.X+a.Dx, actor.Y+a.Dy)
	if !ok || target == actor {
		return gameerr.New("Nothing to attack.")
	}
	mult := a.Mult
	if mult < 1 {
		mult = 1
	}
	damage := combat.MeleeDamage(actor.Power(), mult, target.Defense(), ctx.Rand())

	color := message.EnemyAttack
	if actor.IsPlayer() {
		color = message.PlayerAttack
	}
	desc := fmt.Sprintf("%s attacks %s", capitalize(actor.Name), target.Name)
	if damage <= 0 {
		ctx.Log(desc+" but does no damage.", color)
		return nil
	}
	ctx.Log(fmt.Sprintf("%s for %d hit points.", desc, damage), color)
	target.TakeDamage(ctx, damage)
	return nil
}

func performBump(ctx Context, actor *entity.Actor, a Action) error {
	if _, ok := ctx.Map().ActorAt(actor.X+a.Dx, actor.Y+a.Dy); ok {
		return performMelee(ctx, actor, a)
	}
	return performMove(ctx, actor, a)
}

// performDirected is the directed-action dispatcher. Energy spent on a
// forced action stays spent whatever the outcome.
func performDirected(ctx Context, actor *entity.Actor, a Action) error {
	params := actor.Stats.Params()
	switch a.Modifier {
	case ModForcedMove:
		if actor.Fighter.EP < float64(params.ForcedMoveEnergy) {
			break
		}
		actor.UseEnergy(ctx, params.ForcedMoveEnergy)
		if err := forcedMove(ctx, actor, a); err != nil {
			return gameerr.Commit(err)
		}
		return nil
	case ModForcedAttack:
		if actor.Fighter.EP < float64(params.ForcedAttackEnergy) {
			break
		}
		actor.UseEnergy(ctx, params.ForcedAttackEnergy)
		a.Mult = params.ForcedAttackMult
		if err := performMelee(ctx, actor, a); err != nil {
			return gameerr.Commit(err)
		}
		return nil
	}
	return performBump(ctx, actor, a)
}

// forcedMove covers two tiles when both are free and otherwise bumps once.
func forcedMove(ctx Context, actor *entity.Actor, a Action) error {
	m := ctx.Map()
	free := func(x, y int) bool {
		if !m.InBounds(x, y) || !m.Walkable(x, y) {
			return false
		}
		_, blocked := m.BlockingActorAt(x, y)
		return !blocked
	}
	x1, y1 := actor.X+a.Dx, actor.Y+a.Dy
	x2, y2 := x1+a.Dx, y1+a.Dy
	if free(x1, y1) && free(x2, y2) {
		actor.MoveBy(2*a.Dx, 2*a.Dy)
		return nil
	}
	return performBump(ctx, actor, a)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
