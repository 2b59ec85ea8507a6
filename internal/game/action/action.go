// Package action resolves the one-shot intents of the player and of enemy
// behaviours against the current map.
package action

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// Kind identifies an action variant.
type Kind string

const (
	KindWait        Kind = "wait"
	KindMove        Kind = "move"
	KindMelee       Kind = "melee"
	KindBump        Kind = "bump"
	KindDirected    Kind = "directed"
	KindPickup      Kind = "pickup"
	KindUseItem     Kind = "use_item"
	KindEquipToggle Kind = "equip_toggle"
	KindDrop        Kind = "drop"
	KindTakeStairs  Kind = "take_stairs"
	KindPlaceTorch  Kind = "place_torch"
)

// Modifier alters a directed action.
type Modifier int

const (
	ModNone Modifier = iota
	ModForcedMove
	ModForcedAttack
)

// Action is a tagged union over every action variant. Only the fields the
// Kind uses are meaningful.
type Action struct {
	Kind     Kind
	Dx, Dy   int
	Modifier Modifier
	ItemID   string
	Target   *world.Point
	// Mult scales melee damage; zero means 1.
	Mult float64
}

func Wait() Action { return Action{Kind: KindWait} }
func Move(dx, dy int) Action { return Action{Kind: KindMove, Dx: dx, Dy: dy} }
func Melee(dx, dy int) Action { return Action{Kind: KindMelee, Dx: dx, Dy: dy} }
func Bump(dx, dy int) Action { return Action{Kind: KindBump, Dx: dx, Dy: dy} }
func Pickup() Action { return Action{Kind: KindPickup} }
func EquipToggle(itemID string) Action { return Action{Kind: KindEquipToggle, ItemID: itemID} }
func Drop(itemID string) Action { return Action{Kind: KindDrop, ItemID: itemID} }
func TakeStairs() Action { return Action{Kind: KindTakeStairs} }
func PlaceTorch() Action { return Action{Kind: KindPlaceTorch} }
func Directed(dx, dy int, m Modifier) Action { return Action{Kind: KindDirected, Dx: dx, Dy: dy, Modifier: m} }

// UseItem activates the held item itemID, aimed at target when it needs one.
func UseItem(itemID string, target *world.Point) Action {
	return Action{Kind: KindUseItem, ItemID: itemID, Target: target}
}

// Context is the game state an action resolves against.
type Context interface {
	sim.Context
	Map() *world.GameMap
	Player() *entity.Actor
	// Descend generates the next floor and moves the player onto it.
	Descend() error
	FOVRadius() int
	UpdateFOV()
}

type handler func(ctx Context, actor *entity.Actor, a Action) error

var handlers map[Kind]handler

func init() {
	handlers = map[Kind]handler{
		KindWait:        performWait,
		KindMove:        performMove,
		KindMelee:       performMelee,
		KindBump:        performBump,
		KindDirected:    performDirected,
		KindPickup:      performPickup,
		KindUseItem:     performUseItem,
		KindEquipToggle: performEquipToggle,
		KindDrop:        performDrop,
		KindTakeStairs:  performTakeStairs,
		KindPlaceTorch:  performPlaceTorch,
	}
}

// Perform resolves a for actor.
//
// Postcondition: a *gameerr.Impossible means the action was rejected;
// any other error is unexpected.
func Perform(ctx Context, actor *entity.Actor, a Action) error {
	h, ok := handlers[a.Kind]
	if !ok {
		return fmt.Errorf("action: unknown kind %q", a.Kind)
	}
	return h(ctx, actor, a)
}

func performWait(Context, *entity.Actor, Action) error { return nil }
