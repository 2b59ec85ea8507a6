package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/engine"
	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/command"
	"github.com/cory-johannsen/dungeon/internal/game/consumable"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/cory-johannsen/dungeon/internal/storage"
)

type mode int

const (
	modeMain mode = iota
	modeList
	modeTarget
	modeLook
	modeText
	modeLevelUp
	modeHistory
	modeGameOver
)

type listKind int

const (
	listUse listKind = iota
	listDrop
	listExplore
)

// exit tells the App what the game screen asked for.
type exit int

const (
	stay exit = iota
	exitMenu
	exitQuit
	exitDead
)

const pageSize = 26

// gameModel drives one running game.
type gameModel struct {
	eng    *engine.Engine
	store  storage.Store
	keys   *command.Registry
	logger *zap.Logger
	debug  bool

	mode          mode
	width, height int

	listTitle  string
	listKind   listKind
	listFilter func(*inventory.Item) bool
	page       int
	line       int // -1 when no line is highlighted

	cursor world.Point
	target *inventory.Item

	textTitle string
	text      []string
	back      mode

	history viewport.Model

	// saveErr is set when leaving the game failed to save it.
	saveErr error
}

func newGameModel(eng *engine.Engine, store storage.Store, logger *zap.Logger, width, height int) *gameModel {
	return &gameModel{
		eng:    eng,
		store:  store,
		keys:   command.DefaultRegistry(),
		logger: logger,
		debug:  eng.Config().Game.Debug,
		width:  width,
		height: height,
		line:   -1,
	}
}

func (g *gameModel) log(text string, c message.Color) { g.eng.Log(text, c) }

// update handles one key press.
func (g *gameModel) update(msg tea.KeyMsg) exit {
	key := msg.String()
	if key == "ctrl+c" {
		if g.mode != modeGameOver {
			g.save()
		}
		return exitQuit
	}
	switch g.mode {
	case modeMain:
		return g.updateMain(key)
	case modeList:
		g.updateList(key)
	case modeTarget, modeLook:
		g.updateCursor(key)
	case modeText:
		g.mode = g.back
	case modeLevelUp:
		g.updateLevelUp(key)
	case modeHistory:
		g.updateHistory(msg)
	case modeGameOver:
		if key == "esc" {
			if err := g.eng.DeleteSave(context.Background(), g.store); err != nil {
				g.logger.Error("deleting save", zap.Error(err))
			}
			return exitDead
		}
	}
	return stay
}

func (g *gameModel) save() {
	g.saveErr = g.eng.Save(context.Background(), g.store)
	if g.saveErr != nil {
		g.logger.Error("saving game", zap.Error(g.saveErr))
	}
}

// perform runs a through the engine and moves to the screen its outcome needs.
func (g *gameModel) perform(a action.Action) {
	out := g.eng.HandleAction(a)
	switch {
	case out.GameOver:
		g.mode = modeGameOver
	case out.LevelUp:
		g.mode = modeLevelUp
	default:
		g.mode = modeMain
	}
}

func (g *gameModel) updateMain(key string) exit {
	cmd, mod, ok := g.keys.Resolve(key)
	if !ok {
		return stay
	}
	switch cmd.Handler {
	case command.HandlerMove:
		dx, dy := cmd.Direction.Delta()
		switch mod {
		case command.ModShift:
			g.perform(action.Directed(dx, dy, action.ModForcedMove))
		case command.ModAlt:
			g.perform(action.Directed(dx, dy, action.ModForcedAttack))
		default:
			g.perform(action.Bump(dx, dy))
		}
	case command.HandlerWait:
		g.perform(action.Wait())
	case command.HandlerStairs:
		g.perform(action.TakeStairs())
	case command.HandlerPickup:
		g.perform(action.Pickup())
	case command.HandlerTorch:
		g.perform(action.PlaceTorch())
	case command.HandlerQuickSlot:
		it, ok := g.eng.Player().Backpack.SlotItem(cmd.Slot)
		if !ok {
			g.log("No item selected", message.Impossible)
			return stay
		}
		g.use(it)
	case command.HandlerInventory:
		g.openList("Select an item to use", listUse, nil)
	case command.HandlerDrop:
		g.openList("Select an item to drop", listDrop, nil)
	case command.HandlerExplore:
		g.openList("Select item to explore", listExplore, nil)
	case command.HandlerPotions:
		g.openList("Potion list", listUse, inventory.IsConsumableOf(inventory.TypePotion))
	case command.HandlerMagic:
		g.openList("Magic items list", listUse, inventory.IsMagic)
	case command.HandlerEquipment:
		g.openList("Equipment items list", listUse, inventory.IsEquippable)
	case command.HandlerCharacter:
		g.showText("Character Information", g.eng.CharacterSheet(), modeMain)
	case command.HandlerLevelUp:
		if g.eng.Player().Stats.Remains <= 0 {
			g.log("No points to use.", message.Invalid)
			return stay
		}
		g.mode = modeLevelUp
	case command.HandlerHistory:
		g.openHistory()
	case command.HandlerLook:
		g.cursor = world.Point{X: g.eng.Player().X, Y: g.eng.Player().Y}
		g.mode = modeLook
	case command.HandlerControls:
		g.showText("Controls", controlsText(g.keys), modeMain)
	case command.HandlerSaveAndQuit:
		g.save()
		return exitMenu
	}
	return stay
}

// use activates it, asking for a location first when it needs one.
func (g *gameModel) use(it *inventory.Item) {
	if consumable.NeedsTarget(it) {
		g.log("Select a target location.", message.NeedsTarget)
		g.target = it
		g.cursor = world.Point{X: g.eng.Player().X, Y: g.eng.Player().Y}
		g.mode = modeTarget
		return
	}
	g.perform(action.UseItem(it.ID, nil))
}

func (g *gameModel) showText(title string, lines []string, back mode) {
	g.textTitle, g.text, g.back = title, lines, back
	g.mode = modeText
}

func (g *gameModel) openList(title string, kind listKind, filter func(*inventory.Item) bool) {
	if filter == nil {
		filter = func(*inventory.Item) bool { return true }
	}
	g.listTitle, g.listKind, g.listFilter = title, kind, filter
	g.page, g.line = 0, -1
	g.mode = modeList
}

func (g *gameModel) listItems() []*inventory.Item {
	return g.eng.Player().Backpack.Filter(g.listFilter)
}

func pages(n int) int {
	if n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

func (g *gameModel) pageItems() []*inventory.Item {
	items := g.listItems()
	lo := g.page * pageSize
	if lo >= len(items) {
		return nil
	}
	hi := lo + pageSize
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}

func (g *gameModel) updateList(key string) {
	items := g.listItems()
	onPage := g.pageItems()
	switch {
	case key == "left":
		if g.page > 0 {
			g.page--
		}
		g.line = -1
	case key == "right":
		if g.page < pages(len(items))-1 {
			g.page++
		}
		g.line = -1
	case key == "down":
		if g.line < len(onPage)-1 {
			g.line++
		}
	case key == "up":
		if g.line < 0 {
			g.line = len(onPage)
		}
		if g.line > 0 {
			g.line--
		}
	case key == "enter":
		if g.line < 0 || g.line >= len(onPage) {
			g.log("Invalid entry.", message.Invalid)
			return
		}
		g.selectItem(onPage[g.line])
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		if g.line < 0 || g.line >= len(onPage) {
			return
		}
		if err := g.eng.Player().Backpack.ToggleSlot(int(key[0]-'0'), onPage[g.line].ID); err != nil {
			g.log(err.Error(), message.Error)
		}
	case len(key) == 1 && key[0] >= 'a' && key[0] <= 'z':
		i := int(key[0] - 'a')
		if i >= len(onPage) {
			g.log("Invalid entry.", message.Invalid)
			return
		}
		g.selectItem(onPage[i])
	default:
		g.mode = modeMain
	}
}

func (g *gameModel) selectItem(it *inventory.Item) {
	switch g.listKind {
	case listDrop:
		g.perform(action.Drop(it.ID))
	case listExplore:
		g.showText(it.Name, it.Describe(), modeList)
	default:
		g.use(it)
	}
}

func (g *gameModel) updateCursor(key string) {
	if key == "enter" {
		if g.mode == modeTarget {
			at := g.cursor
			g.perform(action.UseItem(g.target.ID, &at))
			g.target = nil
			return
		}
		if d := g.eng.Describe(g.cursor.X, g.cursor.Y); len(d) > 0 {
			g.showText("Entity characters", d[0], modeLook)
			return
		}
		g.mode = modeMain
		return
	}
	cmd, mod, ok := g.keys.Resolve(key)
	if !ok || cmd.Handler != command.HandlerMove {
		g.target = nil
		g.mode = modeMain
		return
	}
	step := 1
	switch mod {
	case command.ModShift:
		step = 5
	case command.ModAlt:
		step = 20
	}
	dx, dy := cmd.Direction.Delta()
	m := g.eng.Map()
	g.cursor.X = clampInt(g.cursor.X+dx*step, 0, m.Width-1)
	g.cursor.Y = clampInt(g.cursor.Y+dy*step, 0, m.Height-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *gameModel) updateLevelUp(key string) {
	if key == "esc" {
		g.mode = modeMain
		return
	}
	if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(stats.Names) {
		if err := g.eng.AllocateStat(stats.Names[key[0]-'a']); err != nil {
			g.log(err.Error(), message.Impossible)
			return
		}
		if g.eng.Player().Stats.Remains <= 0 {
			g.mode = modeMain
		}
		return
	}
	g.log("Invalid entry.", message.Invalid)
}

func (g *gameModel) openHistory() {
	w, h := g.width-4, g.height-4
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	g.history = viewport.New(w, h)
	g.history.SetContent(renderHistory(g.eng.Messages().Messages, w))
	g.history.GotoBottom()
	g.mode = modeHistory
}

func (g *gameModel) updateHistory(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "down", "pgup", "pgdown":
		g.history, _ = g.history.Update(msg)
	case "home":
		g.history.GotoTop()
	case "end":
		g.history.GotoBottom()
	default:
		g.mode = modeMain
	}
}

var categoryOrder = []string{
	command.CategoryMovement,
	command.CategoryActions,
	command.CategoryItems,
	command.CategoryScreens,
	command.CategorySystem,
}

func controlsText(r *command.Registry) []string {
	byCat := r.CommandsByCategory()
	var lines []string
	for _, cat := range categoryOrder {
		lines = append(lines, "["+cat+"]")
		for _, c := range byCat[cat] {
			lines = append(lines, fmt.Sprintf("  %-14s %s", strings.Join(c.Keys, ", "), c.Help))
		}
	}
	lines = append(lines, "", "shift+direction: move without attacking", "alt+direction: attack without moving")
	return lines
}
