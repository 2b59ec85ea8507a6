package effect

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
)

type applier func(e *Effect, ctx sim.Context, target Target, consume bool) bool

var appliers map[Kind]applier

func init() {
	appliers = map[Kind]applier{
		KindHeal:         applyHeal,
		KindRestoreMana:  applyRestoreMana,
		KindDamage:       applyDamage,
		KindAddConfusion: applyConfusion,
		KindCombine:      applyCombine,
		KindDurable:      applyDurable,
		KindAddEffect:    applyAddEffect,
	}
}

func applyHeal(e *Effect, ctx sim.Context, target Target, consume bool) bool {
	recovered := target.Heal(ctx, e.Amount)
	if consume && target.IsPlayer() {
		ctx.Log(fmt.Sprintf("You consume the %s, and recover %d HP!", e.Owner.Name, recovered), message.HealthRecovered)
	}
	return recovered != 0
}

func applyRestoreMana(e *Effect, ctx sim.Context, target Target, consume bool) bool {
	recovered := target.RestoreMana(float64(e.Amount))
	if consume && target.IsPlayer() {
		ctx.Log(fmt.Sprintf("You consume the %s, and recover %d MP!", e.Owner.Name, int(recovered)), message.HealthRecovered)
	}
	return recovered != 0
}

func applyDamage(e *Effect, ctx sim.Context, target Target, _ bool) bool {
	value := e.Damage.Attack(target.Defense(), ctx.Rand())
	if value <= 0 {
		ctx.Log(fmt.Sprintf("No damage for %s", target.DisplayName()), message.White)
		return false
	}
	kind := strings.ToLower(e.Damage.Type.String())
	color := message.PlayerAttack
	if target.IsPlayer() {
		color = message.EnemyAttack
	}
	if e.Owner.ActorID == target.EntityID() {
		ctx.Log(fmt.Sprintf("%s takes %s damage %d", e.Owner.Name, kind, value), color)
	} else {
		ctx.Log(fmt.Sprintf("%s strike %s with %s damage %d", e.Owner.Name, target.DisplayName(), kind, value), color)
	}
	return target.TakeDamage(ctx, value) > 0
}

func applyConfusion(e *Effect, ctx sim.Context, target Target, _ bool) bool {
	if !target.IsAlive() {
		return false
	}
	target.Confuse(e.Turns)
	ctx.Log(fmt.Sprintf("The eyes of the %s look vacant, as it starts to stumble around!", target.DisplayName()), message.StatusEffect)
	return true
}

func applyCombine(e *Effect, ctx sim.Context, target Target, consume bool) bool {
	affected := false
	for _, c := range e.Children {
		if c.Apply(ctx, target, consume) {
			affected = true
		}
	}
	return affected
}

func applyDurable(e *Effect, ctx sim.Context, target Target, consume bool) bool {
	if !e.Owner.IsActor() {
		return false
	}
	if e.Turns == 0 {
		e.Expired = true
		return false
	}
	if e.Turns > 0 {
		e.Turns--
	}
	e.Inner.Apply(ctx, target, consume)
	return true
}

func applyAddEffect(e *Effect, ctx sim.Context, target Target, consume bool) bool {
	if !target.IsAlive() {
		return false
	}
	attached := e.Inner.Clone()
	attached.SetOwner(Owner{Name: target.DisplayName(), ActorID: target.EntityID()})
	target.Attach(attached)
	if consume {
		ctx.Log(fmt.Sprintf("You consume the %s, effect: %s", e.Owner.Name, strings.Join(e.Inner.Describe(), " ")), message.StatusEffect)
	}
	return true
}
