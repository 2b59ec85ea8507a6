package entity_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLevel_XPToNext(t *testing.T) {
	l := entity.Level{Current: 1, Base: 200, Factor: 150}
	assert.Equal(t, 350, l.XPToNext())
	l.Current = 2
	assert.Equal(t, 850, l.XPToNext())
}

func TestLevel_AddXP(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	l := entity.Level{Current: 1, Base: 200, Factor: 150}
	l.AddXP(ctx, 0)
	assert.Empty(t, ctx.Texts())

	l.AddXP(ctx, 300)
	assert.False(t, l.RequiresLevelUp())
	l.AddXP(ctx, 60)
	assert.True(t, l.RequiresLevelUp())
	assert.Equal(t, []string{
		"You gain 300 experience points.",
		"You gain 60 experience points.",
		"You advance to level 2!",
	}, ctx.Texts())
}

func TestLevel_DisabledWhenBaseZero(t *testing.T) {
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	l := entity.DefaultLevel()
	l.AddXP(ctx, 1000)
	assert.Equal(t, 0, l.XP)
	assert.False(t, l.RequiresLevelUp())
	assert.Empty(t, ctx.Texts())
}

func TestIncreaseStat_SpendsPoints(t *testing.T) {
	p := newPlayer()
	assert.False(t, p.IncreaseStat(stats.Strength), "no points to spend")
	p.Stats.Remains = 1
	assert.False(t, p.IncreaseStat("luck"))
	assert.True(t, p.IncreaseStat(stats.Strength))
	assert.Equal(t, 2, p.Stats.Strength)
	assert.Equal(t, 0, p.Stats.Remains)
	assert.Equal(t, 1, p.Stats.Used)
}

func TestAutoLevelUp(t *testing.T) {
	orc := newOrc()
	orc.Level.XPGiven = 100
	orc.AutoLevelUp(dice.NewSeededSource(3), 4, map[stats.Name]int{stats.Strength: 2, stats.Vitality: 0})
	assert.Equal(t, 2+8, orc.Stats.Strength)
	assert.Equal(t, 1, orc.Stats.Vitality)
	// 100 -> 105 -> 110 -> 115 -> 120
	assert.Equal(t, 120, orc.Level.XPGiven)
}

func TestAutoLevelUp_TotalIncrease_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		orc := newOrc()
		amount := rapid.IntRange(0, 20).Draw(rt, "amount")
		inc := map[stats.Name]int{
			stats.Strength:     rapid.IntRange(0, 3).Draw(rt, "str"),
			stats.Constitution: rapid.IntRange(1, 3).Draw(rt, "con"),
		}
		before := orc.Stats.Strength + orc.Stats.Constitution
		orc.AutoLevelUp(dice.NewSeededSource(uint64(amount)), amount, inc)
		after := orc.Stats.Strength + orc.Stats.Constitution
		assert.GreaterOrEqual(rt, after-before, amount)
		assert.LessOrEqual(rt, after-before, 3*amount)
	})
}

func TestIncreaseStat_KeepsDefenseValid(t *testing.T) {
	p := newPlayer()
	p.Stats.Dexterity = 99
	p.Stats.Remains = 1

	assert.False(t, p.CanIncrease(stats.Dexterity, 1))
	assert.False(t, p.IncreaseStat(stats.Dexterity))
	assert.Equal(t, 99, p.Stats.Dexterity)
	assert.Equal(t, 1, p.Stats.Remains)

	assert.True(t, p.IncreaseStat(stats.Strength))
	assert.NoError(t, p.Defense().Validate())
}

func TestAutoLevelUp_StopsWhenOnlyDefenseBreakingIncrementsRemain(t *testing.T) {
	orc := newOrc()
	orc.Stats.Dexterity = 97
	orc.Level.XPGiven = 100
	orc.AutoLevelUp(dice.NewSeededSource(5), 5, map[stats.Name]int{stats.Dexterity: 1})
	assert.Equal(t, 99, orc.Stats.Dexterity)
	assert.Equal(t, 110, orc.Level.XPGiven, "only the two applied increments grow the reward")
	assert.NoError(t, orc.Defense().Validate())
}

func TestAutoLevelUp_SkipsDefenseBreakingCandidate(t *testing.T) {
	orc := newOrc()
	orc.Stats.Dexterity = 97
	orc.AutoLevelUp(dice.NewSeededSource(8), 10, map[stats.Name]int{stats.Dexterity: 1, stats.Strength: 1})
	assert.LessOrEqual(t, orc.Stats.Dexterity, 99)
	assert.Equal(t, 10, (orc.Stats.Dexterity-97)+(orc.Stats.Strength-2))
	assert.NoError(t, orc.Defense().Validate())
}
