package scripting

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// GlobalScope is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no scope VM is found.
const GlobalScope = "__global__"

// ActorInfo is a snapshot of an actor's state passed to Lua callbacks.
type ActorInfo struct {
	UID    string
	Name   string
	HP     int
	MaxHP  int
	X, Y   int
	Player bool
}

type vm struct {
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per scope (an AI domain ID) and exposes
// hook dispatch.
//
// Manager is safe for concurrent use; calls into Lua are serialized.
type Manager struct {
	mu     sync.Mutex
	states map[string]*vm
	src    dice.Source
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	GetActor  func(uid string) *ActorInfo
	GetPlayer func() *ActorInfo
	CanSee    func(uid string) bool
}

// NewManager creates a Manager.
//
// Precondition: src and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty scope map.
func NewManager(src dice.Source, logger *zap.Logger) *Manager {
	if src == nil {
		panic("scripting.NewManager: src must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states: make(map[string]*vm),
		src:    src,
		logger: logger,
	}
}

// LoadScope creates a sandboxed VM for scope, registers all engine.* modules,
// then executes every *.lua file in dir of fsys in lexicographic order.
// Reloading a scope replaces its VM.
//
// Precondition: scope must be non-empty; dir must be readable in fsys.
// Postcondition: Scope VM is registered; returns error on Lua load failure.
func (m *Manager) LoadScope(scope string, fsys fs.FS, dir string, instLimit int) error {
	if scope == "" {
		return fmt.Errorf("scripting: scope must not be empty")
	}
	return m.loadInto(scope, fsys, dir, instLimit)
}

// LoadGlobal creates the "__global__" VM whose hooks are reachable from any
// scope as a CallHook fallback.
func (m *Manager) LoadGlobal(fsys fs.FS, dir string, instLimit int) error {
	return m.loadInto(GlobalScope, fsys, dir, instLimit)
}

func (m *Manager) loadInto(key string, fsys fs.FS, dir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	cancel()
	L.RemoveContext()
	m.RegisterModules(L)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", dir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, p := range luaFiles {
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: reading %q for %q: %w", p, key, err)
		}
		release := withBudget(L, instLimit)
		err = L.DoString(string(src))
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", p, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.L.Close()
	}
	m.states[key] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	m.logger.Debug("scripting: scope loaded",
		zap.String("scope", key),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// CallHook calls the named Lua global function in scope's VM. If the scope
// has no VM, the __global__ VM is tried as a fallback. Returns (LNil, nil) if
// the hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.states[scope]
	if !ok {
		v = m.states[GlobalScope]
	}
	if v == nil {
		m.logger.Info("scripting: no VM for scope",
			zap.String("scope", scope),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	fn := v.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	release := withBudget(v.L, v.limit)
	defer release()
	if err := v.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("scope", scope),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	return ret, nil
}

// Scopes returns the loaded scope keys in sorted order.
func (m *Manager) Scopes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.states))
	for k := range m.states {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.states {
		v.L.Close()
		delete(m.states, k)
	}
}
