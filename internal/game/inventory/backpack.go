package inventory

import (
	"errors"
	"fmt"
)

// QuickSlotCount is the number of numbered quick-use slots.
const QuickSlotCount = 9

// ErrBackpackFull is returned by Add when the backpack is at capacity.
var ErrBackpackFull = errors.New("backpack is full")

// ErrItemNotFound is returned when an item ID is not held by a container.
var ErrItemNotFound = errors.New("item not found")

// Backpack is an actor's carried items with a fixed capacity.
//
// Invariant: len(Items) <= Capacity; every non-empty quick slot names a held item.
type Backpack struct {
	Capacity   int
	Items      []*Item
	QuickSlots [QuickSlotCount]string
}

// NewBackpack creates an empty Backpack.
//
// Precondition: capacity >= 0.
func NewBackpack(capacity int) *Backpack {
	return &Backpack{Capacity: capacity}
}

// Full reports whether no further item fits.
func (b *Backpack) Full() bool {
	return len(b.Items) >= b.Capacity
}

// Len returns the number of held items.
func (b *Backpack) Len() int {
	return len(b.Items)
}

// Add places it into the backpack. It is atomic: on error nothing changes.
//
// Postcondition: on success Get(it.ID) returns it.
func (b *Backpack) Add(it *Item) error {
	if b.Full() {
		return ErrBackpackFull
	}
	if _, ok := b.Get(it.ID); ok {
		return fmt.Errorf("backpack: item %q already held", it.ID)
	}
	b.Items = append(b.Items, it)
	return nil
}

// Remove takes the item with id out of the backpack and clears any quick
// slot naming it.
//
// Postcondition: returns false and changes nothing when id is not held.
func (b *Backpack) Remove(id string) (*Item, bool) {
	for i, it := range b.Items {
		if it.ID != id {
			continue
		}
		b.Items = append(b.Items[:i:i], b.Items[i+1:]...)
		for s := range b.QuickSlots {
			if b.QuickSlots[s] == id {
				b.QuickSlots[s] = ""
			}
		}
		return it, true
	}
	return nil, false
}

// Get returns the held item with id.
func (b *Backpack) Get(id string) (*Item, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Contains reports whether id is held.
func (b *Backpack) Contains(id string) bool {
	_, ok := b.Get(id)
	return ok
}

// Filter returns the held items accepted by keep, in pickup order.
func (b *Backpack) Filter(keep func(*Item) bool) []*Item {
	var out []*Item
	for _, it := range b.Items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// AssignSlot binds quick slot n (1-based) to a held item.
func (b *Backpack) AssignSlot(n int, id string) error {
	if n < 1 || n > QuickSlotCount {
		return fmt.Errorf("backpack: quick slot %d out of range", n)
	}
	if !b.Contains(id) {
		return fmt.Errorf("backpack: assign slot %d: %w", n, ErrItemNotFound)
	}
	b.QuickSlots[n-1] = id
	return nil
}

// ToggleSlot binds quick slot n to id, or clears it when it already holds id.
//
// Postcondition: id occupies at most one quick slot.
func (b *Backpack) ToggleSlot(n int, id string) error {
	if n < 1 || n > QuickSlotCount {
		return fmt.Errorf("backpack: quick slot %d out of range", n)
	}
	if b.QuickSlots[n-1] == id {
		b.QuickSlots[n-1] = ""
		return nil
	}
	for i, v := range b.QuickSlots {
		if v == id {
			b.QuickSlots[i] = ""
		}
	}
	return b.AssignSlot(n, id)
}

// SlotItem returns the item bound to quick slot n (1-based).
func (b *Backpack) SlotItem(n int) (*Item, bool) {
	if n < 1 || n > QuickSlotCount || b.QuickSlots[n-1] == "" {
		return nil, false
	}
	return b.Get(b.QuickSlots[n-1])
}

// IsConsumableOf returns a filter for consumables of type t.
func IsConsumableOf(t ConsumableType) func(*Item) bool {
	return func(it *Item) bool {
		return it.Consumable != nil && it.Consumable.Type == t
	}
}

// IsMagic accepts scrolls and books.
func IsMagic(it *Item) bool {
	return it.Consumable != nil && (it.Consumable.Type == TypeScroll || it.Consumable.Type == TypeBook)
}

// IsEquippable accepts wearable or wieldable items.
func IsEquippable(it *Item) bool {
	return it.Equippable != nil
}
