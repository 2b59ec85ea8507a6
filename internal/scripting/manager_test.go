package scripting_test

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	src := dice.NewLoggedSource(dice.NewSeededSource(7), logger)
	mgr := scripting.NewManager(src, logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func luaFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys["scripts/"+name] = &fstest.MapFile{Data: []byte(src)}
	}
	return fsys
}

func hasLevel(logs *observer.ObservedLogs, level zapcore.Level) bool {
	for _, e := range logs.All() {
		if e.Level == level {
			return true
		}
	}
	return false
}

func TestManager_LoadScope_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := luaFS(map[string]string{"hooks.lua": `
		function test_hook(a, b)
			return a + b
		end
	`})
	require.NoError(t, mgr.LoadScope("hostile", fsys, "scripts", 0))
	ret, err := mgr.CallHook("hostile", "test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_LoadScope_EmptyScopeRejected(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadScope("", luaFS(nil), ".", 0))
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadScope("hostile", luaFS(map[string]string{"empty.lua": `-- no functions`}), "scripts", 0))
	ret, err := mgr.CallHook("hostile", "nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_UnknownScope_LogsInfoReturnsNil(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret, err := mgr.CallHook("no_such_scope", "some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zapcore.InfoLevel), "expected Info log for missing scope")
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	fsys := luaFS(map[string]string{"bad.lua": `
		function bad_hook()
			error("intentional error")
		end
	`})
	require.NoError(t, mgr.LoadScope("hostile", fsys, "scripts", 0))
	ret, err := mgr.CallHook("hostile", "bad_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.True(t, hasLevel(logs, zapcore.WarnLevel), "expected Warn log for Lua runtime error")
}

func TestManager_CallHook_BudgetIsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := luaFS(map[string]string{"loop.lua": `
		function spin()
			while true do end
		end
		function cheap()
			return 1
		end
	`})
	require.NoError(t, mgr.LoadScope("hostile", fsys, "scripts", 200))

	ret, err := mgr.CallHook("hostile", "spin")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)

	for i := 0; i < 5; i++ {
		ret, err = mgr.CallHook("hostile", "cheap")
		require.NoError(t, err)
		assert.Equal(t, lua.LNumber(1), ret, "a runaway call must not starve later calls")
	}
}

func TestManager_LoadGlobal_CallHookFallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := luaFS(map[string]string{"global.lua": `
		function global_hook()
			return 42
		end
	`})
	require.NoError(t, mgr.LoadGlobal(fsys, "scripts", 0))
	ret, err := mgr.CallHook("unknown", "global_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(42), ret)
	assert.Equal(t, []string{scripting.GlobalScope}, mgr.Scopes())
}

func TestManager_LoadScope_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := fstest.MapFS{"scripts/readme.txt": &fstest.MapFile{Data: []byte("not lua")}}
	require.NoError(t, mgr.LoadScope("empty", fsys, "scripts", 0))
	ret, err := mgr.CallHook("empty", "anything")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_LoadScope_MissingDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadScope("missing", fstest.MapFS{}, "scripts", 0))
}

func TestManager_LoadScope_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	err := mgr.LoadScope("bad", luaFS(map[string]string{"bad.lua": `this is not valid lua @@@@`}), "scripts", 0)
	assert.Error(t, err)
}

func TestManager_LoadScope_MultipleFiles_OrderedByName(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := luaFS(map[string]string{
		"a.lua": `base_val = 10`,
		"b.lua": `function get_val() return base_val end`,
	})
	require.NoError(t, mgr.LoadScope("ordered", fsys, "scripts", 0))
	ret, err := mgr.CallHook("ordered", "get_val")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(10), ret)
}

func TestProperty_CallHookMissingScopeNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	rapid.Check(t, func(rt *rapid.T) {
		scope := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "scope")
		hook := rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "hook")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		for i := 0; i < count; i++ {
			mgr.CallHook(scope, hook) //nolint:errcheck
		}
	})
}

func TestManager_CallHookConcurrentSameScope_NoRace(t *testing.T) {
	mgr, _ := newTestManager(t)
	fsys := luaFS(map[string]string{"hooks.lua": `
		function concurrent_hook(a, b)
			return a + b
		end
	`})
	require.NoError(t, mgr.LoadScope("conc", fsys, "scripts", 0))

	const goroutines = 10
	const callsEach = 5
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				ret, err := mgr.CallHook("conc", "concurrent_hook", lua.LNumber(1), lua.LNumber(2))
				assert.NoError(t, err)
				assert.Equal(t, lua.LNumber(3), ret)
			}
		}()
	}
	wg.Wait()
}

func TestNewManager_PanicsOnNilSource(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, zap.NewNop())
	})
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(dice.NewSeededSource(1), nil)
	})
}

func TestManager_Close_ReleasesScopes(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadScope("closing", luaFS(map[string]string{"init.lua": `function get_x() return 1 end`}), "scripts", 0))
	mgr.Close()
	ret, err := mgr.CallHook("closing", "get_x")
	assert.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Empty(t, mgr.Scopes())
}
