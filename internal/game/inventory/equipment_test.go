package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func weapon(name string, power dice.Range) *inventory.Item {
	it := inventory.NewItem(name, name, '/', "blue")
	it.Equippable = &inventory.Equippable{Type: inventory.Weapon, Power: power}
	return it
}

func armor(name string, flat int) *inventory.Item {
	it := inventory.NewItem(name, name, '[', "brown")
	it.Equippable = &inventory.Equippable{Type: inventory.Armor, Defense: combat.FlatDefense(dice.Fixed(flat))}
	return it
}

func TestEquipment_ToggleMessages(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	b := inventory.NewBackpack(5)
	eq := inventory.NewEquipment()
	dagger := weapon("Dagger", dice.Fixed(1))
	require.NoError(t, b.Add(dagger))

	require.NoError(t, eq.Toggle(ctx, b, dagger, true))
	assert.True(t, eq.IsEquipped(dagger.ID))
	require.NoError(t, eq.Toggle(ctx, b, dagger, true))
	assert.False(t, eq.IsEquipped(dagger.ID))
	assert.Equal(t, []string{"You equip the Dagger.", "You remove the Dagger."}, ctx.Texts())
}

func TestEquipment_ReplacesOccupiedSlot(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	b := inventory.NewBackpack(5)
	eq := inventory.NewEquipment()
	dagger := weapon("Dagger", dice.Fixed(1))
	sword := weapon("Sword", dice.NewRange(2, 3))
	require.NoError(t, b.Add(dagger))
	require.NoError(t, b.Add(sword))

	require.NoError(t, eq.Toggle(ctx, b, dagger, false))
	require.NoError(t, eq.Toggle(ctx, b, sword, true))
	assert.False(t, eq.IsEquipped(dagger.ID))
	assert.True(t, eq.IsEquipped(sword.ID))
	assert.Equal(t, []string{"You remove the Dagger.", "You equip the Sword."}, ctx.Texts())
	assert.Equal(t, dice.NewRange(2, 3), eq.PowerBonus(b))
}

func TestEquipment_NotEquippable(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	b := inventory.NewBackpack(5)
	p := potion("a")
	require.NoError(t, b.Add(p))
	assert.ErrorIs(t, inventory.NewEquipment().Toggle(ctx, b, p, true), inventory.ErrNotEquippable)
	assert.Empty(t, ctx.Texts())
}

func TestEquipment_Bonuses(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	b := inventory.NewBackpack(5)
	eq := inventory.NewEquipment()
	chain := armor("Chain Mail", 4)
	chain.Equippable.Power = dice.Fixed(-1)
	helmet := inventory.NewItem("helmet", "Helmet", '^', "grey")
	helmet.Equippable = &inventory.Equippable{Type: inventory.Helmet, Defense: combat.FlatDefense(dice.Fixed(2))}
	for _, it := range []*inventory.Item{chain, helmet} {
		require.NoError(t, b.Add(it))
		require.NoError(t, eq.Toggle(ctx, b, it, false))
	}
	assert.Equal(t, dice.Fixed(-1), eq.PowerBonus(b))
	assert.Equal(t, dice.Fixed(6), eq.DefenseBonus(b).Get(combat.Physical).Flat)
}

func TestEquipment_ToggleTwiceRestoresBonus_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := sim.NewBasic(dice.NewSeededSource(1))
		b := inventory.NewBackpack(10)
		eq := inventory.NewEquipment()
		n := rapid.IntRange(1, 5).Draw(rt, "n")
		var items []*inventory.Item
		for i := 0; i < n; i++ {
			it := armor("A", rapid.IntRange(0, 9).Draw(rt, "flat"))
			it.Equippable.Type = inventory.EquipmentTypes[rapid.IntRange(0, 4).Draw(rt, "slot")]
			_ = b.Add(it)
			items = append(items, it)
		}
		for _, it := range items {
			_ = eq.Toggle(ctx, b, it, false)
		}
		before := eq.DefenseBonus(b).Get(combat.Physical)
		pick := items[rapid.IntRange(0, n-1).Draw(rt, "pick")]
		if eq.IsEquipped(pick.ID) {
			_ = eq.Toggle(ctx, b, pick, false)
			_ = eq.Toggle(ctx, b, pick, false)
			assert.Equal(rt, before, eq.DefenseBonus(b).Get(combat.Physical))
		}
	})
}
