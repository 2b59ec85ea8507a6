package world

import (
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// GameMap is one dungeon floor: terrain, visibility and the entities on it.
//
// Invariant: len(Tiles) == len(Visible) == len(Explored) == Width*Height.
type GameMap struct {
	Width, Height int
	Tiles         []Tile
	Visible       []bool
	Explored      []bool

	Actors  []*entity.Actor
	Items   *inventory.Floor
	Torches []*entity.Torch

	// Rooms are the accepted rooms in generation order; Rooms[0] held the
	// player when the floor was generated.
	Rooms      []Rect
	Downstairs Point
}

// NewGameMap returns a map of solid wall.
func NewGameMap(width, height int) *GameMap {
	n := width * height
	return &GameMap{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, n),
		Visible:  make([]bool, n),
		Explored: make([]bool, n),
		Items:    inventory.NewFloor(),
	}
}

func (m *GameMap) idx(x, y int) int { return y*m.Width + x }

// InBounds reports whether (x, y) lies inside the map.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile returns the terrain at (x, y); Wall outside the map.
func (m *GameMap) Tile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return Wall
	}
	return m.Tiles[m.idx(x, y)]
}

// SetTile changes the terrain at (x, y).
//
// Precondition: InBounds(x, y).
func (m *GameMap) SetTile(x, y int, t Tile) {
	m.Tiles[m.idx(x, y)] = t
}

// Walkable reports whether (x, y) is in bounds and walkable terrain.
func (m *GameMap) Walkable(x, y int) bool {
	return m.InBounds(x, y) && m.Tile(x, y).Walkable()
}

// IsVisible reports whether (x, y) is in the current field of view.
func (m *GameMap) IsVisible(x, y int) bool {
	return m.InBounds(x, y) && m.Visible[m.idx(x, y)]
}

// IsExplored reports whether (x, y) has ever been seen.
func (m *GameMap) IsExplored(x, y int) bool {
	return m.InBounds(x, y) && m.Explored[m.idx(x, y)]
}

// AddActor places a on the map at (x, y).
func (m *GameMap) AddActor(a *entity.Actor, x, y int) {
	a.X, a.Y = x, y
	for _, existing := range m.Actors {
		if existing == a {
			return
		}
	}
	m.Actors = append(m.Actors, a)
}

// RemoveActor takes a off the map.
func (m *GameMap) RemoveActor(a *entity.Actor) {
	for i, existing := range m.Actors {
		if existing == a {
			m.Actors = append(m.Actors[:i:i], m.Actors[i+1:]...)
			return
		}
	}
}

// ActorByID finds an actor on the map.
func (m *GameMap) ActorByID(id string) (*entity.Actor, bool) {
	for _, a := range m.Actors {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// BlockingActorAt returns the movement-blocking actor at (x, y).
func (m *GameMap) BlockingActorAt(x, y int) (*entity.Actor, bool) {
	for _, a := range m.Actors {
		if a.BlocksMovement && a.X == x && a.Y == y {
			return a, true
		}
	}
	return nil, false
}

// ActorAt returns the living actor at (x, y).
func (m *GameMap) ActorAt(x, y int) (*entity.Actor, bool) {
	for _, a := range m.Actors {
		if a.IsAlive() && a.X == x && a.Y == y {
			return a, true
		}
	}
	return nil, false
}

// LivingActors returns every living actor in map order.
func (m *GameMap) LivingActors() []*entity.Actor {
	var out []*entity.Actor
	for _, a := range m.Actors {
		if a.IsAlive() {
			out = append(out, a)
		}
	}
	return out
}

// ItemsAt returns the items lying at (x, y).
func (m *GameMap) ItemsAt(x, y int) []*inventory.Item {
	return m.Items.At(x, y)
}

// TorchAt returns the torch placed at (x, y).
func (m *GameMap) TorchAt(x, y int) (*entity.Torch, bool) {
	for _, t := range m.Torches {
		if t.X == x && t.Y == y {
			return t, true
		}
	}
	return nil, false
}

// AddTorch places t on the map.
func (m *GameMap) AddTorch(t *entity.Torch) {
	m.Torches = append(m.Torches, t)
}

// Occupied reports whether any actor or item lies at (x, y).
func (m *GameMap) Occupied(x, y int) bool {
	for _, a := range m.Actors {
		if a.X == x && a.Y == y {
			return true
		}
	}
	return len(m.Items.At(x, y)) > 0
}

// Glyph is one drawable entity for the renderer.
type Glyph struct {
	X, Y  int
	Char  rune
	Color string
	Order entity.RenderOrder
}

// Glyphs returns every visible entity sorted by render order.
func (m *GameMap) Glyphs() []Glyph {
	var out []Glyph
	for _, t := range m.Torches {
		if m.IsExplored(t.X, t.Y) {
			out = append(out, Glyph{X: t.X, Y: t.Y, Char: entity.TorchChar, Color: "torch", Order: entity.RenderItem})
		}
	}
	for _, it := range m.Items.Items {
		if m.IsVisible(it.X, it.Y) {
			out = append(out, Glyph{X: it.X, Y: it.Y, Char: it.Char, Color: it.Color, Order: entity.RenderItem})
		}
	}
	for _, a := range m.Actors {
		if m.IsVisible(a.X, a.Y) {
			out = append(out, Glyph{X: a.X, Y: a.Y, Char: a.Char, Color: a.Color, Order: a.RenderOrder})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
