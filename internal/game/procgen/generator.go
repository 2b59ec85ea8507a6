package procgen

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"go.uber.org/zap"
)

// Factory builds the entities named by the spawn tables.
type Factory interface {
	SpawnEnemy(id string, floor int, src dice.Source) (*entity.Actor, error)
	SpawnItem(id string, floor int, src dice.Source) (*inventory.Item, error)
}

// Generator builds floors from spawn tables and an entity factory.
type Generator struct {
	tables  *SpawnTables
	factory Factory
	logger  *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: tables, factory and logger must be non-nil.
func NewGenerator(tables *SpawnTables, factory Factory, logger *zap.Logger) *Generator {
	return &Generator{tables: tables, factory: factory, logger: logger}
}

// ErrNoRooms is returned when no room could be placed.
var ErrNoRooms = errors.New("procgen: no room could be placed")

// Generate carves a new floor, places player at the centre of the first
// room, populates every room and puts the stairs in the room farthest from
// the player.
//
// Precondition: params.Validate() == nil.
// Postcondition: the player is on the returned map and the downstairs tile is walkable.
func (g *Generator) Generate(params world.MapParams, player *entity.Actor, floor int, src dice.Source) (*world.GameMap, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("procgen: %w", err)
	}
	m := world.NewGameMap(params.Width, params.Height)
	var rooms []world.Rect
	for attempt := 0; attempt < params.MaxRooms; attempt++ {
		w := dice.RandInt(src, params.RoomMinSize, params.RoomMaxSize)
		h := dice.RandInt(src, params.RoomMinSize, params.RoomMaxSize)
		x := dice.RandInt(src, 0, params.Width-w-1)
		y := dice.RandInt(src, 0, params.Height-h-1)
		room := world.NewRect(x, y, w, h)

		overlaps := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		for _, p := range room.Inner() {
			m.SetTile(p.X, p.Y, world.Floor)
		}
		if len(rooms) == 0 {
			c := room.Center()
			m.AddActor(player, c.X, c.Y)
		} else {
			for _, p := range world.Tunnel(rooms[len(rooms)-1].Center(), room.Center(), src) {
				m.SetTile(p.X, p.Y, world.Floor)
			}
		}
		rooms = append(rooms, room)
	}
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	m.Rooms = rooms

	monsters, items := 0, 0
	for _, room := range rooms {
		nm, ni, err := g.populate(m, room, floor, src)
		if err != nil {
			return nil, err
		}
		monsters += nm
		items += ni
	}

	m.Downstairs = farthestCenter(rooms, player)
	m.SetTile(m.Downstairs.X, m.Downstairs.Y, world.DownStairs)

	g.logger.Debug("floor generated",
		zap.Int("floor", floor),
		zap.Int("width", params.Width),
		zap.Int("height", params.Height),
		zap.Int("rooms", len(rooms)),
		zap.Int("monsters", monsters),
		zap.Int("items", items),
	)
	return m, nil
}

func (g *Generator) populate(m *world.GameMap, room world.Rect, floor int, src dice.Source) (int, int, error) {
	nMonsters := dice.RandInt(src, 0, MaxValueForFloor(g.tables.MaxMonsters, floor))
	nItems := dice.RandInt(src, 0, MaxValueForFloor(g.tables.MaxItems, floor))
	placed := 0
	for _, id := range ChooseEntities(g.tables.EnemyChances, nMonsters, floor, src) {
		x, y := randomInner(room, src)
		if m.Occupied(x, y) {
			continue
		}
		a, err := g.factory.SpawnEnemy(id, floor, src)
		if err != nil {
			return 0, 0, fmt.Errorf("procgen: spawning %q: %w", id, err)
		}
		m.AddActor(a, x, y)
		placed++
	}
	dropped := 0
	for _, id := range ChooseEntities(g.tables.ItemChances, nItems, floor, src) {
		x, y := randomInner(room, src)
		if m.Occupied(x, y) {
			continue
		}
		it, err := g.factory.SpawnItem(id, floor, src)
		if err != nil {
			return 0, 0, fmt.Errorf("procgen: spawning %q: %w", id, err)
		}
		m.Items.Drop(it, x, y)
		dropped++
	}
	return placed, dropped, nil
}

func randomInner(room world.Rect, src dice.Source) (int, int) {
	return dice.RandInt(src, room.X1+1, room.X2-1), dice.RandInt(src, room.Y1+1, room.Y2-1)
}

// farthestCenter returns the room centre Euclidean-farthest from the player.
func farthestCenter(rooms []world.Rect, player *entity.Actor) world.Point {
	best := world.Point{X: player.X, Y: player.Y}
	bestDist := 0.0
	for _, r := range rooms {
		c := r.Center()
		if d := player.Distance(c.X, c.Y); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
