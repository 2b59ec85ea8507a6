package ai

import (
	"container/heap"

	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// Path costs. A blocking actor does not wall a tile off; it makes routing
// around it preferable.
const (
	CardinalCost      = 2
	DiagonalCost      = 3
	BlockedActorCost  = 10
	MaxPathExpansions = 4000
)

type node struct {
	p     world.Point
	g, f  int
	index int
}

type openSet []*node

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].g > o[j].g
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}

func heuristic(a, b world.Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	lo, hi := min(dx, dy), max(dx, dy)
	return CardinalCost*(hi-lo) + DiagonalCost*lo
}

// PathTo finds a route from one tile to another over walkable tiles with
// 8-way movement.
//
// Postcondition: the result excludes from and ends at to; nil when to is
// unreachable, not walkable, or the search exceeds MaxPathExpansions.
func PathTo(m *world.GameMap, from, to world.Point) []world.Point {
	if from == to || !m.InBounds(to.X, to.Y) || !m.Walkable(to.X, to.Y) {
		return nil
	}
	start := &node{p: from, f: heuristic(from, to)}
	open := &openSet{start}
	best := map[world.Point]int{from: 0}
	parent := map[world.Point]world.Point{}
	closed := map[world.Point]bool{}

	for expansions := 0; open.Len() > 0 && expansions < MaxPathExpansions; expansions++ {
		cur := heap.Pop(open).(*node)
		if cur.p == to {
			return walkBack(parent, from, to)
		}
		if closed[cur.p] {
			continue
		}
		closed[cur.p] = true

		for _, d := range world.Directions {
			dx, dy := d.Delta()
			next := world.Point{X: cur.p.X + dx, Y: cur.p.Y + dy}
			if !m.InBounds(next.X, next.Y) || !m.Walkable(next.X, next.Y) || closed[next] {
				continue
			}
			step := CardinalCost
			if dx != 0 && dy != 0 {
				step = DiagonalCost
			}
			if next != to {
				if _, blocked := m.BlockingActorAt(next.X, next.Y); blocked {
					step += BlockedActorCost
				}
			}
			g := cur.g + step
			if old, seen := best[next]; seen && old <= g {
				continue
			}
			best[next] = g
			parent[next] = cur.p
			heap.Push(open, &node{p: next, g: g, f: g + heuristic(next, to)})
		}
	}
	return nil
}

func walkBack(parent map[world.Point]world.Point, from, to world.Point) []world.Point {
	var rev []world.Point
	for p := to; p != from; p = parent[p] {
		rev = append(rev, p)
	}
	out := make([]world.Point, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
