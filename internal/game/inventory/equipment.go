package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
)

// ErrNotEquippable is returned when toggling an item with no Equippable.
var ErrNotEquippable = errors.New("item is not equippable")

// Equipment maps each slot to the ID of an item held in the owner's backpack.
//
// Invariant: every equipped ID is held by the owner's backpack and occupies
// the slot matching its Equippable.Type.
type Equipment struct {
	Slots map[EquipmentType]string
}

// NewEquipment returns an empty Equipment.
func NewEquipment() *Equipment {
	return &Equipment{Slots: make(map[EquipmentType]string)}
}

// IsEquipped reports whether the item id occupies any slot.
func (e *Equipment) IsEquipped(id string) bool {
	for _, v := range e.Slots {
		if v == id {
			return true
		}
	}
	return false
}

// Equipped returns the item in slot t.
func (e *Equipment) Equipped(b *Backpack, t EquipmentType) (*Item, bool) {
	id, ok := e.Slots[t]
	if !ok || id == "" {
		return nil, false
	}
	return b.Get(id)
}

// Toggle equips it, or unequips it when already equipped. Equipping into an
// occupied slot removes the current item first. When announce is set the
// change is logged.
//
// Precondition: it is held by b.
// Postcondition: returns ErrNotEquippable and changes nothing for items
// without an Equippable.
func (e *Equipment) Toggle(ctx sim.Context, b *Backpack, it *Item, announce bool) error {
	if it.Equippable == nil {
		return ErrNotEquippable
	}
	if !b.Contains(it.ID) {
		return fmt.Errorf("equipment: toggle %q: %w", it.Name, ErrItemNotFound)
	}
	if e.IsEquipped(it.ID) {
		e.unequip(ctx, it, announce)
		return nil
	}
	if current, ok := e.Equipped(b, it.Equippable.Type); ok {
		e.unequip(ctx, current, announce)
	}
	e.Slots[it.Equippable.Type] = it.ID
	if announce {
		ctx.Log(fmt.Sprintf("You equip the %s.", it.Name), message.White)
	}
	return nil
}

func (e *Equipment) unequip(ctx sim.Context, it *Item, announce bool) {
	delete(e.Slots, it.Equippable.Type)
	if announce {
		ctx.Log(fmt.Sprintf("You remove the %s.", it.Name), message.White)
	}
}

// Unequip clears whichever slot holds id.
func (e *Equipment) Unequip(ctx sim.Context, b *Backpack, id string, announce bool) {
	it, ok := b.Get(id)
	if !ok || it.Equippable == nil || !e.IsEquipped(id) {
		return
	}
	e.unequip(ctx, it, announce)
}

// PowerBonus sums the power bonuses of every equipped item.
func (e *Equipment) PowerBonus(b *Backpack) dice.Range {
	var sum dice.Range
	for _, t := range EquipmentTypes {
		if it, ok := e.Equipped(b, t); ok {
			sum = sum.Add(it.Equippable.Power)
		}
	}
	return sum
}

// DefenseBonus merges the defense bonuses of every equipped item.
func (e *Equipment) DefenseBonus(b *Backpack) combat.Defense {
	sum := combat.Defense{}
	for _, t := range EquipmentTypes {
		if it, ok := e.Equipped(b, t); ok {
			sum = sum.Add(it.Equippable.Defense)
		}
	}
	return sum
}
