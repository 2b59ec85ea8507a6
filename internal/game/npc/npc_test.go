package npc_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/content"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/procgen"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var _ procgen.Factory = (*npc.Factory)(nil)

func enemies(t testing.TB) *npc.Registry {
	tmpls, err := npc.LoadTemplatesFS(content.FS, content.EnemiesDir)
	require.NoError(t, err)
	reg := npc.NewRegistry()
	for _, tm := range tmpls {
		require.NoError(t, reg.Register(tm))
	}
	return reg
}

func items(t testing.TB) *inventory.Registry {
	tmpls, err := inventory.LoadTemplatesFS(content.FS, content.ItemsDir)
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	for _, tm := range tmpls {
		require.NoError(t, reg.Register(tm))
	}
	return reg
}

func TestLoadTemplates_Content(t *testing.T) {
	reg := enemies(t)
	var ids []string
	for _, tm := range reg.All() {
		ids = append(ids, tm.ID)
	}
	assert.Equal(t, []string{"goblin", "orc", "troll"}, ids)

	orc, ok := reg.Template("orc")
	require.True(t, ok)
	assert.Equal(t, 2, orc.Stats.Strength)
	assert.Equal(t, 1, orc.Stats.Dexterity, "absent stats keep defaults")
	assert.Equal(t, 0, orc.Stats.Concentration)
	assert.Equal(t, 20, orc.Stats.Params().MaxHP)
	assert.True(t, orc.FixLevel)
	assert.Equal(t, dice.NewRange(1, 2), orc.Power)
}

func TestLoadTemplateFromBytes_Invalid(t *testing.T) {
	_, err := npc.LoadTemplateFromBytes([]byte(`
id: blob
char: "bb"
growth:
  steps:
    - [{stat: charisma}]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be empty")
	assert.Contains(t, err.Error(), "char must be a single glyph")
	assert.Contains(t, err.Error(), "charisma")
}

func TestConstruct_AtBaseFloor(t *testing.T) {
	orc, _ := enemies(t).Template("orc")
	a := orc.Construct(1, dice.NewSeededSource(1))
	assert.Equal(t, "Orc", a.Name)
	assert.Equal(t, 'o', a.Char)
	assert.Equal(t, "orc", a.TemplateID)
	assert.Equal(t, 35, a.Level.XPGiven)
	assert.Equal(t, 1, a.Level.Current)
	assert.Equal(t, 2, a.Stats.Strength)
	assert.True(t, a.IsAlive())
	assert.False(t, a.IsPlayer())
	assert.Equal(t, entity.BehaviorHostile, a.AI.Kind)
	assert.Equal(t, "hostile", a.AI.Domain)
	assert.Equal(t, a.MaxHP(), a.HP())
	assert.Equal(t, 0, a.Backpack.Capacity)
}

func TestConstruct_StepGrowth(t *testing.T) {
	orc, _ := enemies(t).Template("orc")
	a := orc.Construct(10, dice.NewSeededSource(3))
	base := orc.Stats
	gained := (a.Stats.Strength - base.Strength) +
		(a.Stats.Concentration - base.Concentration) +
		(a.Stats.Constitution - base.Constitution)
	// levels 3..10 inclusive: eight steps of one or two points each
	assert.GreaterOrEqual(t, gained, 8)
	assert.LessOrEqual(t, gained, 16)
	assert.Greater(t, a.Level.XPGiven, 35)
	assert.Equal(t, 10, a.Level.Current)
	assert.Equal(t, a.MaxHP(), a.HP(), "refilled after growth")
}

func TestGrowth_NeverLowersStats_Property(t *testing.T) {
	reg := enemies(t)
	rapid.Check(t, func(rt *rapid.T) {
		id := rapid.SampledFrom([]string{"orc", "goblin", "troll"}).Draw(rt, "id")
		floor := rapid.IntRange(0, 40).Draw(rt, "floor")
		seed := rapid.Uint64().Draw(rt, "seed")
		tm, _ := reg.Template(id)
		a := tm.Construct(floor, dice.NewSeededSource(seed))
		for _, n := range stats.Names {
			got, _ := a.Stats.Get(n)
			want, _ := tm.Stats.Get(n)
			assert.GreaterOrEqual(rt, got, want, "%s of %s", n, id)
		}
		assert.GreaterOrEqual(rt, a.Level.XPGiven, tm.XP)
		assert.Equal(rt, floor, a.DungeonLevel)
	})
}

func TestGrowth_Weighted(t *testing.T) {
	tm, err := npc.LoadTemplateFromBytes([]byte(`
id: rat
name: Rat
char: r
color: "#808080"
xp: 100
base_floor: 2
growth:
  weighted:
    amount_per_floor: 2
    increments: {strength: 1, vitality: 0}
`))
	require.NoError(t, err)
	a := tm.Construct(5, dice.NewSeededSource(9))
	assert.Equal(t, 1+6, a.Stats.Strength, "(5-2)*2 increments all land on strength")
	assert.Equal(t, 1, a.Stats.Vitality)
	assert.Greater(t, a.Level.XPGiven, 100)
}

func TestGrowth_Validate(t *testing.T) {
	g := npc.Growth{
		Steps:    [][]npc.StepOption{{{Stat: stats.Strength, Chance: 2}}, {}},
		Weighted: &npc.WeightedGrowth{},
	}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
	assert.Contains(t, err.Error(), "outside [0, 1]")
	assert.Contains(t, err.Error(), "step 1 is empty")
	assert.Contains(t, err.Error(), "amount_per_floor")
}

func TestPlayer_Construct(t *testing.T) {
	pt, err := npc.LoadPlayerFS(content.FS, content.PlayerFile)
	require.NoError(t, err)
	ctx := sim.NewBasic(dice.NewSeededSource(1))
	p, err := pt.Construct(ctx, items(t))
	require.NoError(t, err)

	assert.True(t, p.IsPlayer())
	assert.Equal(t, entity.BehaviorPlayer, p.AI.Kind)
	assert.Equal(t, 100, p.MaxHP())
	assert.Equal(t, 100, p.MaxMP())
	assert.Equal(t, 100, p.HP())
	assert.Equal(t, 26, p.Backpack.Capacity)
	assert.Equal(t, 200, p.Level.Base)
	require.Equal(t, 3, p.Backpack.Len())

	weapon, ok := p.Equipment.Equipped(p.Backpack, inventory.Weapon)
	require.True(t, ok)
	assert.Equal(t, "Dagger", weapon.Name)
	armor, ok := p.Equipment.Equipped(p.Backpack, inventory.Armor)
	require.True(t, ok)
	assert.Equal(t, "Leather Armor", armor.Name)
	assert.Equal(t, dice.Fixed(3), p.Power(), "strength 1 + innate 1 + dagger 1")
	assert.Empty(t, ctx.Texts(), "starting equipment is silent")
}

func TestFactory(t *testing.T) {
	f := &npc.Factory{Enemies: enemies(t), Items: items(t)}
	src := dice.NewSeededSource(1)

	a, err := f.SpawnEnemy("troll", 4, src)
	require.NoError(t, err)
	assert.Equal(t, "Troll", a.Name)
	assert.Equal(t, 4, a.DungeonLevel)

	it, err := f.SpawnItem("sword", 6, src)
	require.NoError(t, err)
	assert.Equal(t, "Sword", it.Name)
	assert.Greater(t, it.Equippable.Power.Lo, 2, "sword grows below its base floor")

	_, err = f.SpawnEnemy("dragon", 1, src)
	assert.Error(t, err)
	_, err = f.SpawnItem("excalibur", 1, src)
	assert.Error(t, err)
}

func TestRegistry_DuplicateID(t *testing.T) {
	reg := npc.NewRegistry()
	tm := &npc.Template{ID: "orc"}
	require.NoError(t, reg.Register(tm))
	assert.Error(t, reg.Register(tm))
}

func TestGrowth_StepsSkipIncreasesThatBreakDefense(t *testing.T) {
	g := npc.Growth{Steps: [][]npc.StepOption{{{Stat: stats.Dexterity}}}}
	s := stats.Default()
	s.Dexterity = 98
	a := entity.NewActor("Wisp", 'w', "white", s, 0, entity.Hostile("hostile"))

	g.Apply(a, 10, 1, dice.NewSeededSource(4))
	assert.Equal(t, 99, a.Stats.Dexterity)
	assert.NoError(t, a.Defense().Validate())
}
