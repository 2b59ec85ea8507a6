package ai

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// RootTask is the task every plan starts from.
const RootTask = "behave"

// ScriptCaller is the interface required by the Planner to evaluate Lua preconditions.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// Built-in precondition names.
const (
	CondAlways         = "always"
	CondPlayerAdjacent = "player_adjacent"
	CondPlayerVisible  = "player_visible"
)

var builtins = map[string]func(*WorldState) bool{
	CondAlways:         func(*WorldState) bool { return true },
	CondPlayerAdjacent: func(ws *WorldState) bool { return ws.PlayerVisible && ws.PlayerAdjacent() },
	CondPlayerVisible:  func(ws *WorldState) bool { return ws.PlayerVisible },
}

// Preconditions evaluates method preconditions: built-in map queries first,
// then Lua hooks in scope.
type Preconditions struct {
	caller ScriptCaller
	scope  string
}

// Evaluate reports whether the named precondition holds for state. An empty
// name always holds. A hook that errors or returns anything but true fails.
func (p Preconditions) Evaluate(name string, state *WorldState) bool {
	if name == "" {
		return true
	}
	if fn, ok := builtins[name]; ok {
		return fn(state)
	}
	val, err := p.caller.CallHook(p.scope, name, lua.LString(state.NPC.UID))
	return err == nil && val == lua.LTrue
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Action string // "attack", "approach", "retreat" or "wait"
	Target string // resolved target UID; empty for wait
}

// Planner evaluates an HTN domain for a single enemy and produces an ordered
// action plan for the current turn.
//
// Invariant: domain and caller must not be nil.
type Planner struct {
	domain *Domain
	conds  Preconditions
}

// NewPlanner constructs a Planner whose Lua hooks run in scope.
//
// Precondition: domain and caller must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller, scope string) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	if caller == nil {
		panic("ai.NewPlanner: caller must not be nil")
	}
	return &Planner{domain: domain, conds: Preconditions{caller: caller, scope: scope}}
}

// Domain returns the planner's domain.
func (p *Planner) Domain() *Domain { return p.domain }

// Plan evaluates the HTN domain against state and returns an ordered plan.
//
// Precondition: state and state.NPC must not be nil.
// Postcondition: returns non-nil slice (may be empty); never returns error for Lua failures
// (they are treated as precondition-false).
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.NPC == nil {
		return nil, fmt.Errorf("ai.Planner.Plan: state and state.NPC must not be nil")
	}

	taskQueue := []string{RootTask}
	result := []PlannedAction{}

	const maxDepth = 32 // guard against infinite loops
	steps := 0

	for len(taskQueue) > 0 && steps < maxDepth {
		steps++
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{Action: op.Action, Target: state.ResolveTarget(op.Target)})
			continue
		}

		method := p.findApplicableMethod(current, state)
		if method == nil {
			continue
		}

		// Prepend subtasks (preserves ordered decomposition).
		next := make([]string, 0, len(method.Subtasks)+len(taskQueue))
		next = append(next, method.Subtasks...)
		taskQueue = append(next, taskQueue...)
	}

	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose precondition passes,
// or nil if none applies.
//
// Methods are tried in declaration order.
func (p *Planner) findApplicableMethod(taskID string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if p.conds.Evaluate(m.Precondition, state) {
			return m
		}
	}
	return nil
}
