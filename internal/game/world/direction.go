// Package world provides the dungeon map model: tiles, rooms, lines of
// sight, entity placement and the floor counter.
package world

// Direction is one of the eight compass directions.
type Direction string

const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
)

// Directions contains the eight compass directions.
var Directions = []Direction{
	North, South, East, West,
	Northeast, Northwest, Southeast, Southwest,
}

var deltas = map[Direction][2]int{
	North:     {0, -1},
	South:     {0, 1},
	East:      {1, 0},
	West:      {-1, 0},
	Northeast: {1, -1},
	Northwest: {-1, -1},
	Southeast: {1, 1},
	Southwest: {-1, 1},
}

// Delta returns the (dx, dy) step of d; (0, 0) for an unknown direction.
func (d Direction) Delta() (int, int) {
	v := deltas[d]
	return v[0], v[1]
}

// Opposite returns the opposite direction.
//
// Precondition: d is one of Directions for a meaningful result.
func (d Direction) Opposite() Direction {
	dx, dy := d.Delta()
	return FromDelta(-dx, -dy)
}

// FromDelta returns the direction of a unit step, or "" for (0, 0).
func FromDelta(dx, dy int) Direction {
	for d, v := range deltas {
		if v[0] == dx && v[1] == dy {
			return d
		}
	}
	return ""
}
