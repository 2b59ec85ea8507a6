// Package scripting runs AI precondition hooks in a restricted GopherLua VM.
// Game state reaches scripts only through the modules a Manager registers.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one call when
// content.instruction_limit is 0.
const DefaultInstructionLimit = 100_000

// unsafeGlobals are left behind by OpenBase and give scripts file or module access.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opBudget cancels itself once Done has been polled more than its budget
// allows. The VM polls Done before every opcode, so the budget is an exact
// opcode count and runaway hooks stop deterministically.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

func newOpBudget(ops int) (*opBudget, context.CancelFunc) {
	if ops <= 0 {
		ops = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(ops))
	return b, cancel
}

// NewSandboxedState opens a VM with only base, table, string and math, strips
// unsafeGlobals and installs an initial budget of instLimit opcodes (0 means
// DefaultInstructionLimit).
//
// Postcondition: the caller owns L and closes it; cancel releases the budget.
func NewSandboxedState(instLimit int) (L *lua.LState, cancel context.CancelFunc) {
	L = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	budget, cancel := newOpBudget(instLimit)
	L.SetContext(budget)
	return L, cancel
}

// withBudget gives L a fresh budget for one call and returns its release func.
func withBudget(L *lua.LState, instLimit int) func() {
	budget, cancel := newOpBudget(instLimit)
	L.SetContext(budget)
	return func() {
		cancel()
		L.RemoveContext()
	}
}
