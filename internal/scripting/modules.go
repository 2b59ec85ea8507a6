package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug|info|warn|error(msg)
//	engine.dice.roll(lo, hi)
//	engine.actor.get(uid), engine.actor.player()
//	engine.actor.visible(uid), engine.actor.distance(uid_a, uid_b)
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "actor", m.actorModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		fn := fn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt(1)
		hi := L.CheckInt(2)
		if hi < lo {
			L.ArgError(2, "hi must not be below lo")
			return 0
		}
		L.Push(lua.LNumber(dice.RandInt(m.src, lo, hi)))
		return 1
	}))
	return mod
}

func (m *Manager) actorModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(func(L *lua.LState) int {
		L.Push(actorTable(L, m.lookup(L.CheckString(1))))
		return 1
	}))
	L.SetField(mod, "player", L.NewFunction(func(L *lua.LState) int {
		var info *ActorInfo
		if m.GetPlayer != nil {
			info = m.GetPlayer()
		}
		L.Push(actorTable(L, info))
		return 1
	}))
	L.SetField(mod, "visible", L.NewFunction(func(L *lua.LState) int {
		uid := L.CheckString(1)
		L.Push(lua.LBool(m.CanSee != nil && m.CanSee(uid)))
		return 1
	}))
	L.SetField(mod, "distance", L.NewFunction(func(L *lua.LState) int {
		a := m.lookup(L.CheckString(1))
		b := m.lookup(L.CheckString(2))
		if a == nil || b == nil {
			L.Push(lua.LNil)
			return 1
		}
		dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
		L.Push(lua.LNumber(math.Sqrt(dx*dx + dy*dy)))
		return 1
	}))
	return mod
}

func (m *Manager) lookup(uid string) *ActorInfo {
	if m.GetActor == nil {
		return nil
	}
	return m.GetActor(uid)
}

func actorTable(L *lua.LState, info *ActorInfo) lua.LValue {
	if info == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "uid", lua.LString(info.UID))
	L.SetField(t, "name", lua.LString(info.Name))
	L.SetField(t, "hp", lua.LNumber(info.HP))
	L.SetField(t, "max_hp", lua.LNumber(info.MaxHP))
	L.SetField(t, "x", lua.LNumber(info.X))
	L.SetField(t, "y", lua.LNumber(info.Y))
	L.SetField(t, "player", lua.LBool(info.Player))
	return t
}
