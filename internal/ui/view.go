package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/dungeon/internal/game/consumable"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

const (
	sidebarWidth = 26
	logHeight    = 7
)

func (g *gameModel) layout() (mapW, mapH int) {
	mapW = g.width - sidebarWidth - 1
	if mapW < 20 {
		mapW = 20
	}
	mapH = g.height - logHeight - 1
	if mapH < 10 {
		mapH = 10
	}
	return mapW, mapH
}

func (g *gameModel) view() string {
	mapW, mapH := g.layout()
	area := lipgloss.NewStyle().Width(mapW).Height(mapH).MaxHeight(mapH)

	var main string
	switch g.mode {
	case modeList:
		main = area.Render(g.listView(mapW))
	case modeText:
		main = area.Render(panel(g.textTitle, g.text, mapW))
	case modeLevelUp:
		main = area.Render(g.levelUpView(mapW))
	case modeHistory:
		main = area.Render(panel("Message history", []string{g.history.View()}, mapW))
	default:
		main = area.Render(g.mapView(mapW, mapH).render())
	}

	side := renderSidebar(g.eng.HUD(), sidebarWidth, g.debug)
	if g.mode == modeGameOver {
		side += "\n\n" + titleStyle.Render("You died!") + "\n" + dimStyle.Render("Press esc to quit.")
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, main, " ", side)
	return lipgloss.JoinVertical(lipgloss.Left, top, renderMessages(g.eng.Messages().Messages, g.width, logHeight))
}

func (g *gameModel) mapView(w, h int) mapView {
	p := g.eng.Player()
	v := mapView{m: g.eng.Map(), w: w, h: h, focus: world.Point{X: p.X, Y: p.Y}, debug: g.debug}
	if g.mode == modeTarget || g.mode == modeLook {
		cursor := g.cursor
		v.cursor = &cursor
		v.focus = cursor
		if g.mode == modeTarget && g.target != nil {
			v.radius = consumable.TargetRadius(g.target)
		}
	}
	return v
}

func (g *gameModel) listView(width int) string {
	items := g.listItems()
	b := g.eng.Player().Backpack
	eq := g.eng.Player().Equipment
	lines := []string{fmt.Sprintf("Page: %d/%d", g.page+1, pages(len(items)))}
	onPage := g.pageItems()
	if len(onPage) == 0 {
		lines = append(lines, "(Empty)")
	}
	for i, it := range onPage {
		line := fmt.Sprintf("%c) %s", 'a'+i, it.Name)
		if eq.IsEquipped(it.ID) {
			line += " (E)"
		}
		for n, id := range b.QuickSlots {
			if id == it.ID {
				line += " [" + strconv.Itoa(n+1) + "]"
			}
		}
		if i == g.line {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return panel(g.listTitle, lines, width)
}

func (g *gameModel) levelUpView(width int) string {
	s := g.eng.Player().Stats
	lines := []string{
		"Congratulations! You level up!",
		"Select an attribute to increase.",
		fmt.Sprintf("Points remain: %d", s.Remains),
		"",
	}
	for i, n := range stats.Names {
		v, _ := s.Get(n)
		lines = append(lines, fmt.Sprintf("%c) %s (from %d)", 'a'+i, n.Title(), v))
	}
	return panel("Level Up", lines, width)
}
