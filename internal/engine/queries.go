package engine

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
)

// HUD is the status shown beside the map.
type HUD struct {
	HP, MaxHP    int
	MP, MaxMP    int
	EP, MaxEP    int
	XP, XPToNext int
	Level        int
	Floor        int
	Turn         int
	Remains      int
}

// HUD returns the player's current status.
func (e *Engine) HUD() HUD {
	p := e.player
	return HUD{
		HP: p.HP(), MaxHP: p.MaxHP(),
		MP: p.MP(), MaxMP: p.MaxMP(),
		EP: p.EP(), MaxEP: p.MaxEP(),
		XP: p.Level.XP, XPToNext: p.Level.XPToNext(),
		Level:   p.Level.Current,
		Floor:   e.world.CurrentFloor,
		Turn:    e.turn,
		Remains: p.Stats.Remains,
	}
}

// AllocateStat spends one level-up point on the named attribute.
//
// Postcondition: returns an Impossible and changes nothing when no point
// remains, name is not an attribute or the point would push a defense
// percent to 100.
func (e *Engine) AllocateStat(name stats.Name) error {
	if e.player.Stats.Remains <= 0 {
		return gameerr.New("You have no points to spend.")
	}
	if _, ok := e.player.Stats.Get(name); ok && !e.player.CanIncrease(name, 1) {
		return gameerr.New(fmt.Sprintf("You cannot increase %s, it would break the laws of nature.", name.Title()))
	}
	if !e.player.IncreaseStat(name) {
		return gameerr.New("Invalid entry.")
	}
	return nil
}

// Describe returns one description block per visible thing at (x, y):
// actors first, then items and a torch.
//
// Postcondition: returns nil for tiles outside the player's view.
func (e *Engine) Describe(x, y int) [][]string {
	m := e.gameMap
	if !m.InBounds(x, y) || !m.IsVisible(x, y) {
		return nil
	}
	var blocks [][]string
	for _, a := range m.Actors {
		if a.X == x && a.Y == y {
			blocks = append(blocks, a.Describe())
		}
	}
	for _, it := range m.ItemsAt(x, y) {
		blocks = append(blocks, it.Describe())
	}
	if t, ok := m.TorchAt(x, y); ok {
		blocks = append(blocks, t.Describe())
	}
	return blocks
}

// CharacterSheet returns the lines of the character screen.
func (e *Engine) CharacterSheet() []string {
	p := e.player
	lines := []string{
		fmt.Sprintf("Level: %d", p.Level.Current),
		fmt.Sprintf("XP: %d", p.Level.XP),
		fmt.Sprintf("XP for next Level: %d", p.Level.XPToNext()),
		"",
		fmt.Sprintf("Attack: %s", p.Power()),
		"",
		"Defense:",
	}
	lines = append(lines, p.Defense().Describe()...)
	lines = append(lines,
		"",
		fmt.Sprintf("Inventory: %d/%d", p.Backpack.Len(), p.Backpack.Capacity),
		"",
		"Base characteristics:",
	)
	lines = append(lines, p.Stats.Describe()...)
	if p.Stats.Remains != 0 {
		lines = append(lines, "", fmt.Sprintf("Points remain: %d", p.Stats.Remains))
	}
	if len(p.Effects) > 0 {
		lines = append(lines, "", "Effects:")
		for _, eff := range p.Effects {
			lines = append(lines, eff.Describe()...)
		}
	}
	return lines
}
