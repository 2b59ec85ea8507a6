package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/dungeon/internal/engine"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

type cell struct {
	ch rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// camera returns the map coordinate of the top-left corner of a w×h window
// centred on (cx, cy) and clamped to the map.
func camera(mapW, mapH, w, h, cx, cy int) (int, int) {
	clamp := func(v, hi int) int {
		if v > hi {
			v = hi
		}
		if v < 0 {
			v = 0
		}
		return v
	}
	return clamp(cx-w/2, mapW-w), clamp(cy-h/2, mapH-h)
}

// mapView is one rendering of the floor around a focus point.
type mapView struct {
	m      *world.GameMap
	w, h   int
	focus  world.Point
	debug  bool
	cursor *world.Point
	// radius > 0 highlights the square of that radius around cursor.
	radius int
}

func (v mapView) cells() [][]cell {
	x0, y0 := camera(v.m.Width, v.m.Height, v.w, v.h, v.focus.X, v.focus.Y)
	glyphs := make(map[world.Point]world.Glyph)
	for _, g := range v.m.Glyphs() {
		glyphs[world.Point{X: g.X, Y: g.Y}] = g
	}

	grid := make([][]cell, v.h)
	for sy := range grid {
		row := make([]cell, v.w)
		for sx := range row {
			x, y := x0+sx, y0+sy
			row[sx] = v.cellAt(x, y, glyphs)
			if v.debug && row[sx].ch == ' ' && (isGuide(sx, v.w) || isGuide(sy, v.h)) {
				row[sx] = cell{ch: '·', fg: guideColor}
			}
			if v.cursor != nil {
				dx, dy := x-v.cursor.X, y-v.cursor.Y
				if v.radius > 0 && abs(dx) <= v.radius && abs(dy) <= v.radius {
					row[sx].bg = targetColor
				}
			}
		}
		grid[sy] = row
	}
	return grid
}

func isGuide(i, n int) bool {
	return n >= 4 && (i == n/4 || i == n/2 || i == 3*n/4)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (v mapView) cellAt(x, y int, glyphs map[world.Point]world.Glyph) cell {
	m := v.m
	if !m.InBounds(x, y) || !m.IsExplored(x, y) {
		return cell{ch: ' '}
	}
	t := m.Tile(x, y)
	visible := m.IsVisible(x, y)
	c := cell{ch: t.Glyph()}
	switch {
	case t == world.DownStairs:
		c.fg = stairsColor
	case t == world.Wall && visible:
		c.fg = litWall
	case t == world.Wall:
		c.fg = darkWall
	case visible:
		c.fg = litFloor
	default:
		c.fg = darkFloor
	}
	if g, ok := glyphs[world.Point{X: x, Y: y}]; ok {
		c.ch, c.fg = g.Char, glyphColor(g.Color)
	}
	return c
}

// render draws the view, collapsing runs of equal style into one span.
func (v mapView) render() string {
	grid := v.cells()
	x0, y0 := camera(v.m.Width, v.m.Height, v.w, v.h, v.focus.X, v.focus.Y)
	var b strings.Builder
	for sy, row := range grid {
		if sy > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(cur.fg)
			if cur.bg != "" {
				style = style.Background(cur.bg)
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for sx, c := range row {
			if v.cursor != nil && x0+sx == v.cursor.X && y0+sy == v.cursor.Y {
				flush()
				b.WriteString(cursorStyle.Render(string(c.ch)))
				continue
			}
			if c.fg != cur.fg || c.bg != cur.bg {
				flush()
				cur = c
			}
			run.WriteRune(c.ch)
		}
		flush()
	}
	return b.String()
}

// renderSidebar draws the resource bars and the floor counter.
func renderSidebar(h engine.HUD, width int, debug bool) string {
	barW := width - 2
	lines := []string{
		bar("HP", h.HP, h.MaxHP, barW, lipgloss.Color("#006000")),
		bar("MP", h.MP, h.MaxMP, barW, lipgloss.Color("#000080")),
		bar("EP", h.EP, h.MaxEP, barW, lipgloss.Color("#806000")),
		bar("XP", h.XP, h.XPToNext, barW, lipgloss.Color("#600060")),
		"",
		fmt.Sprintf("Dungeon level: %d", h.Floor),
		fmt.Sprintf("Character level: %d", h.Level),
	}
	if h.Remains > 0 {
		lines = append(lines, fmt.Sprintf("Points remain: %d (x)", h.Remains))
	}
	if debug {
		lines = append(lines, "", dimStyle.Render(fmt.Sprintf("Turn: %d", h.Turn)))
	}
	lines = append(lines, "", dimStyle.Render("s: controls"))
	return strings.Join(lines, "\n")
}

// renderMessages draws the newest messages that fit in height lines of width.
func renderMessages(msgs []message.Message, width, height int) string {
	var lines []string
	for i := len(msgs) - 1; i >= 0 && len(lines) < height; i-- {
		style := lipgloss.NewStyle().Foreground(messageColor(msgs[i].Color))
		wrapped := message.Wrap(msgs[i].FullText(), width)
		for j := len(wrapped) - 1; j >= 0 && len(lines) < height; j-- {
			lines = append(lines, style.Render(wrapped[j]))
		}
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// renderHistory renders every message for the history viewer.
func renderHistory(msgs []message.Message, width int) string {
	var lines []string
	for _, m := range msgs {
		style := lipgloss.NewStyle().Foreground(messageColor(m.Color))
		for _, l := range message.Wrap(m.FullText(), width) {
			lines = append(lines, style.Render(l))
		}
	}
	return strings.Join(lines, "\n")
}
