package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/content"
	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/ai"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/sim"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

type testCtx struct {
	*sim.Basic
	m      *world.GameMap
	player *entity.Actor
}

var _ action.Context = (*testCtx)(nil)

func (c *testCtx) Map() *world.GameMap { return c.m }
func (c *testCtx) Player() *entity.Actor { return c.player }
func (c *testCtx) Descend() error { return nil }
func (c *testCtx) FOVRadius() int { return 8 }
func (c *testCtx) UpdateFOV() { c.m.UpdateFOV(c.player.X, c.player.Y, 8) }

func newCtx(t *testing.T) *testCtx {
	t.Helper()
	m := openRoom(20, 20)
	p := entity.NewActor("Player", '@', "#ffffff", stats.Default(), 0, entity.PlayerBehavior())
	p.Player = true
	m.AddActor(p, 5, 5)
	c := &testCtx{Basic: sim.NewBasic(dice.NewSeededSource(5)), m: m, player: p}
	return c
}

func (c *testCtx) enemy(name, domain string, x, y int) *entity.Actor {
	a := entity.NewActor(name, 'o', "#3f7f3f", stats.Default(), 0, entity.Hostile(domain))
	c.m.AddActor(a, x, y)
	c.UpdateFOV()
	return a
}

// contentRunner loads the embedded AI domains and scripts and binds the Lua
// actor queries to c.
func contentRunner(t *testing.T, c *testCtx) *ai.Runner {
	t.Helper()
	mgr := scripting.NewManager(c.Src, zap.NewNop())
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.LoadGlobal(content.FS, content.ScriptsDir, 0))
	info := func(a *entity.Actor) *scripting.ActorInfo {
		return &scripting.ActorInfo{UID: a.ID, Name: a.Name, HP: a.HP(), MaxHP: a.MaxHP(), X: a.X, Y: a.Y, Player: a.Player}
	}
	mgr.GetActor = func(uid string) *scripting.ActorInfo {
		if a, ok := c.m.ActorByID(uid); ok {
			return info(a)
		}
		return nil
	}
	mgr.GetPlayer = func() *scripting.ActorInfo { return info(c.player) }
	mgr.CanSee = func(uid string) bool {
		a, ok := c.m.ActorByID(uid)
		return ok && c.m.IsVisible(a.X, a.Y)
	}

	domains, err := ai.LoadDomainsFS(content.FS, content.AIDir)
	require.NoError(t, err)
	reg := ai.NewRegistry()
	for _, d := range domains {
		require.NoError(t, reg.Register(d, mgr))
	}
	return ai.NewRunner(reg, zap.NewNop())
}

func lastText(c *testCtx) string {
	texts := c.Texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func TestRunner_HostileAttacksAdjacentPlayer(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 6, 5)
	require.NoError(t, contentRunner(t, c).TakeTurn(c, orc))
	assert.True(t, strings.HasPrefix(lastText(c), "Orc attacks Player"), "got %q", lastText(c))
	assert.Equal(t, 6, orc.X)
}

func TestRunner_HostileApproachesVisiblePlayer(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 12, 5)
	require.True(t, c.m.IsVisible(12, 5))
	require.NoError(t, contentRunner(t, c).TakeTurn(c, orc))
	assert.Equal(t, 11, orc.X)
	assert.Equal(t, 5, orc.Y)
}

func TestRunner_HostileWaitsWhenUnseen(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 17, 17)
	require.False(t, c.m.IsVisible(17, 17))
	require.NoError(t, contentRunner(t, c).TakeTurn(c, orc))
	assert.Equal(t, 17, orc.X)
	assert.Equal(t, 17, orc.Y)
	assert.Empty(t, c.Texts())
}

func TestRunner_UnknownDomainFallsBackToHostile(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "no_such_domain", 12, 5)
	require.NoError(t, contentRunner(t, c).TakeTurn(c, orc))
	assert.Equal(t, 11, orc.X)
}

func TestRunner_BuiltinFallbackWithoutDomains(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 6, 6)
	r := ai.NewRunner(ai.NewRegistry(), zap.NewNop())
	require.NoError(t, r.TakeTurn(c, orc))
	assert.True(t, strings.HasPrefix(lastText(c), "Orc attacks Player"), "got %q", lastText(c))
}

func TestRunner_SkirmisherRetreatsWhenOutmatched(t *testing.T) {
	c := newCtx(t)
	goblin := c.enemy("Goblin", "skirmisher", 6, 5)
	goblin.Fighter.HP = 1
	require.Less(t, goblin.HP()*3, goblin.MaxHP())

	require.NoError(t, contentRunner(t, c).TakeTurn(c, goblin))
	assert.Greater(t, goblin.Distance(c.player.X, c.player.Y), 1.5)
	assert.Empty(t, c.Texts(), "a retreating goblin does not attack")
}

func TestRunner_SkirmisherFightsWhenHealthy(t *testing.T) {
	c := newCtx(t)
	goblin := c.enemy("Goblin", "skirmisher", 6, 5)
	require.NoError(t, contentRunner(t, c).TakeTurn(c, goblin))
	assert.True(t, strings.HasPrefix(lastText(c), "Goblin attacks Player"), "got %q", lastText(c))
}

func TestRunner_ConfusedStumblesThenRecovers(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 15, 15)
	orc.Confuse(2)
	r := contentRunner(t, c)

	for i := 0; i < 2; i++ {
		require.NoError(t, r.TakeTurn(c, orc))
		assert.Equal(t, entity.BehaviorConfused, orc.AI.Kind)
	}
	assert.Equal(t, 0, orc.AI.TurnsRemaining)
	assert.NotContains(t, c.Texts(), "The Orc is no longer confused.")

	require.NoError(t, r.TakeTurn(c, orc))
	assert.Equal(t, entity.BehaviorHostile, orc.AI.Kind)
	assert.Equal(t, "hostile", orc.AI.Domain)
	assert.Equal(t, "The Orc is no longer confused.", lastText(c))
}

func TestRunner_ConfusedIntoWallIsSwallowed(t *testing.T) {
	c := newCtx(t)
	orc := c.enemy("Orc", "hostile", 1, 1)
	orc.Confuse(50)
	r := contentRunner(t, c)
	for i := 0; i < 50; i++ {
		require.NoError(t, r.TakeTurn(c, orc))
		assert.True(t, c.m.Walkable(orc.X, orc.Y))
	}
}

func TestRunner_IgnoresPlayerAndDead(t *testing.T) {
	c := newCtx(t)
	r := contentRunner(t, c)
	require.NoError(t, r.TakeTurn(c, c.player))
	assert.Equal(t, 5, c.player.X)

	orc := c.enemy("Orc", "hostile", 6, 5)
	orc.AI = nil
	require.NoError(t, r.TakeTurn(c, orc))
	assert.Empty(t, c.Texts())
}
