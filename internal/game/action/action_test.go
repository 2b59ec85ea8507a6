package action_test

import (
	"errors"
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/effect"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/gameerr"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCtx struct {
	*sim.Basic
	m          *world.GameMap
	player     *entity.Actor
	descended  int
	descendErr error
}

var _ action.Context = (*testCtx)(nil)

func (c *testCtx) Map() *world.GameMap { return c.m }
func (c *testCtx) Player() *entity.Actor { return c.player }
func (c *testCtx) FOVRadius() int { return 8 }
func (c *testCtx) UpdateFOV() { c.m.UpdateFOV(c.player.X, c.player.Y, 8) }
func (c *testCtx) Descend() error {
	c.descended++
	return c.descendErr
}

// newCtx builds a 20x20 room with the player at (5, 5) and a wall column at x == 8.
func newCtx(t *testing.T) *testCtx {
	t.Helper()
	m := world.NewGameMap(20, 20)
	for _, p := range world.NewRect(0, 0, 19, 19).Inner() {
		m.SetTile(p.X, p.Y, world.Floor)
	}
	for y := 0; y < 20; y++ {
		m.SetTile(8, y, world.Wall)
	}
	p := entity.NewActor("Player", '@', "#ffffff", stats.Default(), 3, entity.PlayerBehavior())
	p.Player = true
	m.AddActor(p, 5, 5)
	return &testCtx{Basic: sim.NewBasic(dice.NewSeededSource(11)), m: m, player: p}
}

func (c *testCtx) orc(x, y int) *entity.Actor {
	a := entity.NewActor("Orc", 'o', "#3f7f3f", stats.Default(), 0, entity.Hostile("hostile"))
	c.m.AddActor(a, x, y)
	return a
}

func weapon(name string) *inventory.Item {
	it := inventory.NewItem(name, name, '/', "#00bfff")
	it.Equippable = &inventory.Equippable{Type: inventory.Weapon, Power: dice.Fixed(2)}
	return it
}

func impossible(t *testing.T, err error) *gameerr.Impossible {
	t.Helper()
	imp, ok := gameerr.AsImpossible(err)
	require.True(t, ok, "expected Impossible, got %v", err)
	return imp
}

func TestMove(t *testing.T) {
	c := newCtx(t)
	require.NoError(t, action.Perform(c, c.player, action.Move(1, 0)))
	assert.Equal(t, 6, c.player.X)

	c.player.X = 7
	err := action.Perform(c, c.player, action.Move(1, 0))
	assert.Equal(t, "That way is blocked.", impossible(t, err).Message)
	assert.Equal(t, 7, c.player.X)

	c.orc(7, 6)
	err = action.Perform(c, c.player, action.Move(0, 1))
	assert.Equal(t, "That way is blocked.", impossible(t, err).Message)
}

func TestMelee(t *testing.T) {
	c := newCtx(t)
	err := action.Perform(c, c.player, action.Melee(1, 0))
	assert.Equal(t, "Nothing to attack.", impossible(t, err).Message)

	orc := c.orc(6, 5)
	c.player.Stats.Strength = 50
	require.NoError(t, action.Perform(c, c.player, action.Melee(1, 0)))
	require.NotEmpty(t, c.Texts())
	assert.Contains(t, c.Texts()[0], "Player attacks Orc for ")
	assert.False(t, orc.IsAlive())
	assert.Contains(t, c.Texts(), "Orc is dead!")
}

func TestMelee_NoDamage(t *testing.T) {
	c := newCtx(t)
	orc := c.orc(6, 5)
	orc.Stats.Concentration = 100
	require.NoError(t, action.Perform(c, c.player, action.Melee(1, 0)))
	assert.Equal(t, []string{"Player attacks Orc but does no damage."}, c.Texts())
	assert.Equal(t, orc.MaxHP(), orc.HP())
}

func TestBump(t *testing.T) {
	c := newCtx(t)
	require.NoError(t, action.Perform(c, c.player, action.Bump(0, 1)))
	assert.Equal(t, 6, c.player.Y)

	c.orc(5, 7)
	require.NoError(t, action.Perform(c, c.player, action.Bump(0, 1)))
	assert.Equal(t, 6, c.player.Y, "bumping an enemy attacks instead of moving")
	assert.Contains(t, c.Texts()[0], "Player attacks Orc")
}

func TestDirected_ForcedMove(t *testing.T) {
	c := newCtx(t)
	require.NoError(t, action.Perform(c, c.player, action.Directed(0, 1, action.ModForcedMove)))
	assert.Equal(t, 7, c.player.Y)
	assert.Equal(t, 5, c.player.EP(), "20 - 15")

	// without energy the modifier degrades to a single step
	require.NoError(t, action.Perform(c, c.player, action.Directed(0, 1, action.ModForcedMove)))
	assert.Equal(t, 8, c.player.Y)
	assert.Equal(t, 5, c.player.EP())
}

func TestDirected_ForcedMoveSecondTileBlocked(t *testing.T) {
	c := newCtx(t)
	c.orc(5, 7)
	require.NoError(t, action.Perform(c, c.player, action.Directed(0, 1, action.ModForcedMove)))
	assert.Equal(t, 6, c.player.Y)
	assert.Equal(t, 5, c.player.EP())
}

func TestDirected_ForcedMoveIntoWallCommits(t *testing.T) {
	c := newCtx(t)
	c.player.X = 7
	err := action.Perform(c, c.player, action.Directed(1, 0, action.ModForcedMove))
	imp := impossible(t, err)
	assert.Equal(t, "That way is blocked.", imp.Message)
	assert.True(t, imp.Committed)
	assert.Equal(t, 5, c.player.EP())
}

func TestDirected_ForcedAttack(t *testing.T) {
	c := newCtx(t)
	err := action.Perform(c, c.player, action.Directed(1, 0, action.ModForcedAttack))
	imp := impossible(t, err)
	assert.Equal(t, "Nothing to attack.", imp.Message)
	assert.True(t, imp.Committed, "energy stays spent on a miss")
	assert.Equal(t, 5, c.player.EP())

	c.orc(6, 5)
	err = action.Perform(c, c.player, action.Directed(1, 0, action.ModForcedAttack))
	require.NoError(t, err, "without energy the modifier falls back to bump")
	assert.Equal(t, 5, c.player.X)
}

func TestPickupAndDrop(t *testing.T) {
	c := newCtx(t)
	err := action.Perform(c, c.player, action.Pickup())
	assert.Equal(t, "There is nothing here to pick up.", impossible(t, err).Message)

	sword := weapon("Sword")
	c.m.Items.Drop(sword, 5, 5)
	require.NoError(t, action.Perform(c, c.player, action.Pickup()))
	assert.True(t, c.player.Backpack.Contains(sword.ID))
	assert.Empty(t, c.m.ItemsAt(5, 5))

	require.NoError(t, action.Perform(c, c.player, action.EquipToggle(sword.ID)))
	require.NoError(t, action.Perform(c, c.player, action.Drop(sword.ID)))
	assert.False(t, c.player.Equipment.IsEquipped(sword.ID))
	assert.Len(t, c.m.ItemsAt(5, 5), 1)
	assert.Equal(t, []string{
		"You picked up the Sword!",
		"You equip the Sword.",
		"You remove the Sword.",
		"You dropped the Sword.",
	}, c.Texts())
}

func TestPickup_Full(t *testing.T) {
	c := newCtx(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.player.Backpack.Add(weapon("Stick")))
	}
	floorItem := weapon("Sword")
	c.m.Items.Drop(floorItem, 5, 5)
	err := action.Perform(c, c.player, action.Pickup())
	assert.Equal(t, "Your inventory is full.", impossible(t, err).Message)
	assert.Len(t, c.m.ItemsAt(5, 5), 1)
}

func TestUseItem(t *testing.T) {
	c := newCtx(t)
	err := action.Perform(c, c.player, action.UseItem("missing", nil))
	assert.Equal(t, "You do not have that item.", impossible(t, err).Message)

	sword := weapon("Sword")
	require.NoError(t, c.player.Backpack.Add(sword))
	require.NoError(t, action.Perform(c, c.player, action.UseItem(sword.ID, nil)))
	assert.True(t, c.player.Equipment.IsEquipped(sword.ID))

	rock := inventory.NewItem("rock", "Rock", '*', "#808080")
	require.NoError(t, c.player.Backpack.Add(rock))
	err = action.Perform(c, c.player, action.UseItem(rock.ID, nil))
	assert.Equal(t, "You cannot use the Rock.", impossible(t, err).Message)

	potion := inventory.NewItem("health_potion", "Health Potion", '&', "#7f00ff")
	potion.Consumable = &inventory.Consumable{Type: inventory.TypePotion, Target: inventory.TargetSelf, Effect: effect.Heal(40)}
	potion.Consumable.SetOwner(potion.Name)
	require.NoError(t, c.player.Backpack.Add(potion))
	c.player.Fighter.HP = 1
	require.NoError(t, action.Perform(c, c.player, action.UseItem(potion.ID, nil)))
	assert.Equal(t, c.player.MaxHP(), c.player.HP())
	assert.False(t, c.player.Backpack.Contains(potion.ID))
}

func TestEquipToggle_LawsOfNature(t *testing.T) {
	c := newCtx(t)
	amulet := inventory.NewItem("amulet", "Amulet", '"', "#ffd700")
	amulet.Equippable = &inventory.Equippable{
		Type:    inventory.Necklace,
		Defense: combat.NewDefense(combat.Physical, dice.Fixed(99), dice.Fixed(0)),
	}
	require.NoError(t, c.player.Backpack.Add(amulet))
	err := action.Perform(c, c.player, action.EquipToggle(amulet.ID))
	assert.Equal(t, "You cannot equip the Amulet, it would break the laws of nature.", impossible(t, err).Message)
	assert.False(t, c.player.Equipment.IsEquipped(amulet.ID))
}

func TestTakeStairs(t *testing.T) {
	c := newCtx(t)
	c.m.Downstairs = world.Point{X: 3, Y: 3}
	err := action.Perform(c, c.player, action.TakeStairs())
	assert.Equal(t, "There are no stairs here.", impossible(t, err).Message)
	assert.Zero(t, c.descended)

	c.player.X, c.player.Y = 3, 3
	require.NoError(t, action.Perform(c, c.player, action.TakeStairs()))
	assert.Equal(t, 1, c.descended)
	assert.Equal(t, []string{"You descend the staircase."}, c.Texts())

	c.descendErr = errors.New("no floor")
	err = action.Perform(c, c.player, action.TakeStairs())
	require.Error(t, err)
	assert.False(t, gameerr.IsImpossible(err))
}

func TestPlaceTorch(t *testing.T) {
	c := newCtx(t)
	require.NoError(t, action.Perform(c, c.player, action.PlaceTorch()))
	torch, ok := c.m.TorchAt(5, 5)
	require.True(t, ok)
	assert.Equal(t, 8, torch.Radius)
	assert.True(t, c.m.IsVisible(5, 5))

	err := action.Perform(c, c.player, action.PlaceTorch())
	assert.Equal(t, "There is already a torch here.", impossible(t, err).Message)
}

func TestPerform_UnknownKind(t *testing.T) {
	c := newCtx(t)
	err := action.Perform(c, c.player, action.Action{Kind: "dance"})
	require.Error(t, err)
	assert.False(t, gameerr.IsImpossible(err))
}

func TestWait(t *testing.T) {
	c := newCtx(t)
	assert.NoError(t, action.Perform(c, c.player, action.Wait()))
	assert.Empty(t, c.Texts())
}
