package world

// Point is a map coordinate.
type Point struct {
	X, Y int
}

// Rect is a rectangular room. X2 and Y2 are the outer wall coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a room at (x, y) with width w and height h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the integer midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Inner returns the carved floor area: X1+1..X2-1 by Y1+1..Y2-1, exclusive of X2 and Y2.
func (r Rect) Inner() []Point {
	var pts []Point
	for y := r.Y1 + 1; y < r.Y2; y++ {
		for x := r.X1 + 1; x < r.X2; x++ {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Intersects reports whether r overlaps o, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}
