package action

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/consumable"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/message"
)

func heldItem(actor *entity.Actor, id string) (*inventory.Item, error) {
	it, ok := actor.Backpack.Get(id)
	if !ok {
		return nil, gameerr.New("You do not have that item.")
	}
	return it, nil
}

func performPickup(ctx Context, actor *entity.Actor, _ Action) error {
	m := ctx.Map()
	here := m.ItemsAt(actor.X, actor.Y)
	if len(here) == 0 {
		return gameerr.New("There is nothing here to pick up.")
	}
	it, err := inventory.TransferToBackpack(m.Items, actor.Backpack, here[0].ID)
	if errors.Is(err, inventory.ErrBackpackFull) {
		return gameerr.New("Your inventory is full.")
	}
	if err != nil {
		return fmt.Errorf("action: pickup: %w", err)
	}
	ctx.Log(fmt.Sprintf("You picked up the %s!", it.Name), message.White)
	return nil
}

func performDrop(ctx Context, actor *entity.Actor, a Action) error {
	it, err := heldItem(actor, a.ItemID)
	if err != nil {
		return err
	}
	if actor.Equipment.IsEquipped(it.ID) {
		actor.Equipment.Unequip(ctx, actor.Backpack, it.ID, true)
	}
	if _, err := inventory.TransferToFloor(actor.Backpack, ctx.Map().Items, it.ID, actor.X, actor.Y); err != nil {
		return fmt.Errorf("action: drop: %w", err)
	}
	ctx.Log(fmt.Sprintf("You dropped the %s.", it.Name), message.White)
	return nil
}

func performUseItem(ctx Context, actor *entity.Actor, a Action) error {
	it, err := heldItem(actor, a.ItemID)
	if err != nil {
		return err
	}
	switch {
	case it.Consumable != nil:
		return consumable.Activate(ctx, ctx.Map(), actor, it, a.Target)
	case it.Equippable != nil:
		return performEquipToggle(ctx, actor, a)
	default:
		return gameerr.Newf("You cannot use the %s.", it.Name)
	}
}

func performEquipToggle(ctx Context, actor *entity.Actor, a Action) error {
	it, err := heldItem(actor, a.ItemID)
	if err != nil {
		return err
	}
	if it.Equippable == nil {
		return gameerr.Newf("You cannot equip the %s.", it.Name)
	}
	if !actor.Equipment.IsEquipped(it.ID) && !lawful(actor, it) {
		return gameerr.Newf("You cannot equip the %s, it would break the laws of nature.", it.Name)
	}
	if err := actor.Equipment.Toggle(ctx, actor.Backpack, it, true); err != nil {
		return fmt.Errorf("action: equip: %w", err)
	}
	return nil
}

// lawful reports whether equipping it keeps every mitigation percent of the
// actor below 100.
func lawful(actor *entity.Actor, it *inventory.Item) bool {
	d := actor.Stats.Params().Defense
	for _, t := range inventory.EquipmentTypes {
		if t == it.Equippable.Type {
			continue
		}
		if other, ok := actor.Equipment.Equipped(actor.Backpack, t); ok {
			d = d.Add(other.Equippable.Defense)
		}
	}
	d = d.Add(it.Equippable.Defense)
	return !errors.Is(d.Validate(), combat.ErrInvalidDefense)
}
