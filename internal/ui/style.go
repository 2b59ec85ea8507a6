package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/dungeon/internal/game/message"
)

var messageColors = map[message.Color]lipgloss.Color{
	message.White:           "#ffffff",
	message.PlayerAttack:    "#e0e0e0",
	message.EnemyAttack:     "#ffc0c0",
	message.NeedsTarget:     "#3fffff",
	message.StatusEffect:    "#3fff3f",
	message.Descend:         "#9f3fff",
	message.PlayerDie:       "#ff3030",
	message.EnemyDie:        "#ffa030",
	message.Invalid:         "#ffff00",
	message.Impossible:      "#808080",
	message.Error:           "#ff4040",
	message.Welcome:         "#20a0ff",
	message.HealthRecovered: "#00ff00",
	message.ManaUse:         "#3f3fff",
}

// Terrain colours, lit and remembered.
const (
	litWall     = lipgloss.Color("#826e32")
	litFloor    = lipgloss.Color("#c8b432")
	darkWall    = lipgloss.Color("#3c3c8c")
	darkFloor   = lipgloss.Color("#323264")
	stairsColor = lipgloss.Color("#ffffff")
	torchColor  = lipgloss.Color("#ffa500")
	guideColor  = lipgloss.Color("#303030")
	targetColor = lipgloss.Color("#8b0000")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffff3f"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
)

// messageColor maps a log colour tag to a terminal colour.
func messageColor(c message.Color) lipgloss.Color {
	if col, ok := messageColors[c]; ok {
		return col
	}
	return messageColors[message.White]
}

// glyphColor maps an entity colour, a hex string or a tag, to a terminal colour.
func glyphColor(c string) lipgloss.Color {
	switch {
	case c == "torch":
		return torchColor
	case strings.HasPrefix(c, "#"):
		return lipgloss.Color(c)
	}
	return messageColors[message.White]
}

// panel draws lines inside a titled border.
func panel(title string, lines []string, width int) string {
	body := titleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	if width > 4 {
		return panelStyle.Width(width - 2).Render(body)
	}
	return panelStyle.Render(body)
}

// bar renders a labelled resource bar of the given width.
func bar(label string, cur, total, width int, fill lipgloss.Color) string {
	text := label + ": " + strconv.Itoa(cur) + "/" + strconv.Itoa(total)
	if width < len(text) {
		width = len(text)
	}
	filled := 0
	if total > 0 && cur > 0 {
		filled = cur * width / total
		if filled > width {
			filled = width
		}
	}
	padded := text + strings.Repeat(" ", width-len(text))
	on := lipgloss.NewStyle().Background(fill).Foreground(lipgloss.Color("#ffffff"))
	off := lipgloss.NewStyle().Background(lipgloss.Color("#202020")).Foreground(lipgloss.Color("#ffffff"))
	return on.Render(padded[:filled]) + off.Render(padded[filled:])
}
