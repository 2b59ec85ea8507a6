// Package inventory implements items, their consumable and equippable
// payloads, actor backpacks and equipment, the per-floor item store and the
// YAML item templates the dungeon spawns from.
package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// Item is a concrete item instance, on the floor or in a backpack.
type Item struct {
	ID           string
	TemplateID   string
	Name         string
	Char         rune
	Color        string
	X, Y         int
	DungeonLevel int

	Consumable *Consumable
	Equippable *Equippable
}

// NewItem creates an item with a fresh unique ID.
func NewItem(templateID, name string, char rune, color string) *Item {
	return &Item{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Name:       name,
		Char:       char,
		Color:      color,
	}
}

// Describe returns the item's description block.
func (it *Item) Describe() []string {
	lines := []string{
		"Name: " + it.Name,
		fmt.Sprintf("Dungeon level: %d", it.DungeonLevel),
	}
	if it.Equippable != nil {
		lines = append(lines, it.Equippable.Describe()...)
	}
	if it.Consumable != nil {
		lines = append(lines, it.Consumable.Describe()...)
	}
	return lines
}
