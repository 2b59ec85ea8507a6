package world

import "github.com/cory-johannsen/dungeon/internal/game/dice"

// Line returns the Bresenham line from a to b, both endpoints included.
func Line(a, b Point) []Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	pts := []Point{{X: x, Y: y}}
	for x != b.X || y != b.Y {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// Tunnel returns an L-shaped path from a to b. The corner is (b.X, a.Y) or
// (a.X, b.Y) with equal probability.
func Tunnel(a, b Point, src dice.Source) []Point {
	corner := Point{X: a.X, Y: b.Y}
	if dice.Chance(src, 0.5) {
		corner = Point{X: b.X, Y: a.Y}
	}
	pts := Line(a, corner)
	return append(pts, Line(corner, b)...)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
