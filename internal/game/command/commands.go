// Package command maps key presses to game commands and groups them for the
// controls screen.
package command

import "github.com/cory-johannsen/dungeon/internal/game/world"

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryActions  = "actions"
	CategoryItems    = "items"
	CategoryScreens  = "screens"
	CategorySystem   = "system"
)

// Handler identifiers the front end dispatches on.
const (
	HandlerMove        = "move"
	HandlerWait        = "wait"
	HandlerStairs      = "stairs"
	HandlerPickup      = "pickup"
	HandlerTorch       = "torch"
	HandlerQuickSlot   = "quick_slot"
	HandlerInventory   = "inventory"
	HandlerDrop        = "drop"
	HandlerExplore     = "explore"
	HandlerPotions     = "potions"
	HandlerMagic       = "magic"
	HandlerEquipment   = "equipment"
	HandlerCharacter   = "character"
	HandlerLevelUp     = "level_up"
	HandlerHistory     = "history"
	HandlerLook        = "look"
	HandlerControls    = "controls"
	HandlerSaveAndQuit = "save_quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Keys are the key names that trigger the command, as the terminal
	// reports them ("up", "k", "alt+k").
	Keys []string
	// Help is the short help text shown on the controls screen.
	Help string
	// Category groups the command on the controls screen.
	Category string
	// Handler selects the front-end behaviour.
	Handler string
	// Direction is the step of a movement command.
	Direction world.Direction
	// Slot is the 1-based quick slot of a quick-slot command.
	Slot int
}

func move(d world.Direction, keys ...string) Command {
	return Command{
		Name:      string(d),
		Keys:      keys,
		Help:      "Move or attack " + string(d),
		Category:  CategoryMovement,
		Handler:   HandlerMove,
		Direction: d,
	}
}

func quickSlot(n int) Command {
	key := string(rune('0' + n))
	return Command{
		Name:     "slot" + key,
		Keys:     []string{key},
		Help:     "Use the item in quick slot " + key,
		Category: CategoryItems,
		Handler:  HandlerQuickSlot,
		Slot:     n,
	}
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	cmds := []Command{
		move(world.North, "up", "k"),
		move(world.South, "down", "j"),
		move(world.West, "left", "h"),
		move(world.East, "right", "l"),
		move(world.Northwest, "home", "y"),
		move(world.Southwest, "end", "b"),
		move(world.Northeast, "pgup", "u"),
		move(world.Southeast, "pgdown", "n"),

		{Name: "wait", Keys: []string{".", "z"}, Help: "Wait a turn", Category: CategoryActions, Handler: HandlerWait},
		{Name: "descend", Keys: []string{">"}, Help: "Take the stairs down", Category: CategoryActions, Handler: HandlerStairs},
		{Name: "pickup", Keys: []string{"g"}, Help: "Pick up an item", Category: CategoryActions, Handler: HandlerPickup},
		{Name: "torch", Keys: []string{"t"}, Help: "Place a torch", Category: CategoryActions, Handler: HandlerTorch},

		{Name: "inventory", Keys: []string{"i"}, Help: "Use inventory items", Category: CategoryItems, Handler: HandlerInventory},
		{Name: "drop", Keys: []string{"d"}, Help: "Drop inventory items", Category: CategoryItems, Handler: HandlerDrop},
		{Name: "explore", Keys: []string{"e"}, Help: "Explore inventory items", Category: CategoryItems, Handler: HandlerExplore},
		{Name: "potions", Keys: []string{"p"}, Help: "See only potions", Category: CategoryItems, Handler: HandlerPotions},
		{Name: "magic", Keys: []string{"m"}, Help: "See only magic items", Category: CategoryItems, Handler: HandlerMagic},
		{Name: "equipment", Keys: []string{"q"}, Help: "See only equipment", Category: CategoryItems, Handler: HandlerEquipment},

		{Name: "character", Keys: []string{"c"}, Help: "Show the character screen", Category: CategoryScreens, Handler: HandlerCharacter},
		{Name: "levelup", Keys: []string{"x"}, Help: "Use stat points", Category: CategoryScreens, Handler: HandlerLevelUp},
		{Name: "history", Keys: []string{"v"}, Help: "Show the message history", Category: CategoryScreens, Handler: HandlerHistory},
		{Name: "look", Keys: []string{"/"}, Help: "Look around the map", Category: CategoryScreens, Handler: HandlerLook},
		{Name: "controls", Keys: []string{"s"}, Help: "Show these controls", Category: CategoryScreens, Handler: HandlerControls},

		{Name: "quit", Keys: []string{"esc"}, Help: "Save and return to the menu", Category: CategorySystem, Handler: HandlerSaveAndQuit},
	}
	for n := 1; n <= 9; n++ {
		cmds = append(cmds, quickSlot(n))
	}
	return cmds
}

// IsMovementCommand reports whether name is one of the eight movement commands.
func IsMovementCommand(name string) bool {
	for _, d := range world.Directions {
		if string(d) == name {
			return true
		}
	}
	return false
}
