package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/world"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Greater(t, len(r.Commands()), 0)
}

func TestLookup_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Lookup("north")
	assert.True(t, ok)
	assert.Equal(t, HandlerMove, cmd.Handler)
	assert.Equal(t, world.North, cmd.Direction)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, _, ok := r.Resolve("f12")
	assert.False(t, ok)
}

func TestResolve_AllMovementKeys(t *testing.T) {
	r := DefaultRegistry()
	keys := []struct {
		arrow string
		vi    string
		dir   world.Direction
	}{
		{"up", "k", world.North},
		{"down", "j", world.South},
		{"left", "h", world.West},
		{"right", "l", world.East},
		{"home", "y", world.Northwest},
		{"end", "b", world.Southwest},
		{"pgup", "u", world.Northeast},
		{"pgdown", "n", world.Southeast},
	}

	for _, k := range keys {
		for _, key := range []string{k.arrow, k.vi} {
			cmd, mod, ok := r.Resolve(key)
			require.True(t, ok, "key %q not found", key)
			assert.Equal(t, k.dir, cmd.Direction)
			assert.Equal(t, ModNone, mod)
		}
	}
}

func TestResolve_Modifiers(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		key string
		dir world.Direction
		mod Modifier
	}{
		{"shift+up", world.North, ModShift},
		{"K", world.North, ModShift},
		{"alt+k", world.North, ModAlt},
		{"alt+pgdown", world.Southeast, ModAlt},
		{"L", world.East, ModShift},
	}
	for _, tt := range tests {
		cmd, mod, ok := r.Resolve(tt.key)
		require.True(t, ok, "key %q not found", tt.key)
		assert.Equal(t, tt.dir, cmd.Direction, tt.key)
		assert.Equal(t, tt.mod, mod, tt.key)
	}

	_, _, ok := r.Resolve("alt+i")
	assert.False(t, ok, "modifiers only apply to movement")
	_, _, ok = r.Resolve("I")
	assert.False(t, ok)
}

func TestResolve_ActionAndScreenKeys(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		key     string
		handler string
	}{
		{".", HandlerWait},
		{"z", HandlerWait},
		{">", HandlerStairs},
		{"g", HandlerPickup},
		{"t", HandlerTorch},
		{"i", HandlerInventory},
		{"d", HandlerDrop},
		{"e", HandlerExplore},
		{"p", HandlerPotions},
		{"m", HandlerMagic},
		{"q", HandlerEquipment},
		{"c", HandlerCharacter},
		{"x", HandlerLevelUp},
		{"v", HandlerHistory},
		{"/", HandlerLook},
		{"s", HandlerControls},
		{"esc", HandlerSaveAndQuit},
	}

	for _, tt := range tests {
		cmd, _, ok := r.Resolve(tt.key)
		require.True(t, ok, "key %q not found", tt.key)
		assert.Equal(t, tt.handler, cmd.Handler, "key %q wrong handler", tt.key)
	}
}

func TestResolve_QuickSlots(t *testing.T) {
	r := DefaultRegistry()
	for n := 1; n <= 9; n++ {
		cmd, _, ok := r.Resolve(string(rune('0' + n)))
		require.True(t, ok)
		assert.Equal(t, HandlerQuickSlot, cmd.Handler)
		assert.Equal(t, n, cmd.Slot)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateKey(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Keys: []string{"t"}, Handler: "a"},
		{Name: "test2", Keys: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	assert.Contains(t, cats, CategoryMovement)
	assert.Contains(t, cats, CategoryActions)
	assert.Contains(t, cats, CategoryItems)
	assert.Contains(t, cats, CategoryScreens)
	assert.Contains(t, cats, CategorySystem)
	assert.Len(t, cats[CategoryMovement], 8)
}

func TestPropertyAllKeysResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		for _, key := range cmd.Keys {
			resolved, mod, ok := r.Resolve(key)
			if !ok {
				t.Fatalf("key %q did not resolve", key)
			}
			if resolved.Name != cmd.Name || mod != ModNone {
				t.Fatalf("key %q resolved to %q (mod %d), expected %q", key, resolved.Name, mod, cmd.Name)
			}
		}
	})
}

func TestIsMovementCommand(t *testing.T) {
	assert.True(t, IsMovementCommand("north"))
	assert.True(t, IsMovementCommand("southwest"))
	assert.False(t, IsMovementCommand("up"))
	assert.False(t, IsMovementCommand("look"))
}
