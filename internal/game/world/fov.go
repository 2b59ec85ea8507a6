package world

// ComputeFOV returns the cells visible from (ox, oy) within radius, cast as
// Bresenham rays to the edge of the bounding square. A radius <= 0 means
// unlimited. Opaque cells are visible but stop the ray.
func (m *GameMap) ComputeFOV(ox, oy, radius int) []bool {
	visible := make([]bool, m.Width*m.Height)
	if !m.InBounds(ox, oy) {
		return visible
	}
	r := radius
	if r <= 0 {
		r = max(m.Width, m.Height)
	}
	visible[m.idx(ox, oy)] = true
	origin := Point{X: ox, Y: oy}
	cast := func(tx, ty int) {
		for _, p := range Line(origin, Point{X: tx, Y: ty})[1:] {
			if !m.InBounds(p.X, p.Y) {
				return
			}
			if radius > 0 {
				dx, dy := p.X-ox, p.Y-oy
				if dx*dx+dy*dy > radius*radius {
					return
				}
			}
			visible[m.idx(p.X, p.Y)] = true
			if !m.Tile(p.X, p.Y).Transparent() {
				return
			}
		}
	}
	for d := -r; d <= r; d++ {
		cast(ox+d, oy-r)
		cast(ox+d, oy+r)
		cast(ox-r, oy+d)
		cast(ox+r, oy+d)
	}
	return visible
}

// UpdateFOV recomputes Visible for a viewer at (x, y) with the given radius.
// Tiles lit by a torch are also visible when the viewer has a clear line of
// sight to them. Every visible tile becomes explored.
func (m *GameMap) UpdateFOV(x, y, radius int) {
	own := m.ComputeFOV(x, y, radius)
	var sight []bool
	if len(m.Torches) > 0 {
		sight = m.ComputeFOV(x, y, 0)
	}
	for i := range m.Visible {
		m.Visible[i] = own[i]
	}
	for _, t := range m.Torches {
		lit := m.ComputeFOV(t.X, t.Y, t.Radius)
		for i, on := range lit {
			if on && sight[i] {
				m.Visible[i] = true
			}
		}
	}
	for i, v := range m.Visible {
		if v {
			m.Explored[i] = true
		}
	}
}
