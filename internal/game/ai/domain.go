// Package ai implements enemy behaviour: the Hierarchical Task Network (HTN)
// planner for hostile enemies, confusion and path finding.
//
// HTN planning decomposes abstract tasks into primitive operators via ordered methods.
// Method preconditions are built-in map queries or Lua hooks; operators map to actions.
package ai

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// Operator actions understood by the Runner.
const (
	OpAttack   = "attack"
	OpApproach = "approach"
	OpRetreat  = "retreat"
	OpWait     = "wait"
)

var knownActions = map[string]bool{OpAttack: true, OpApproach: true, OpRetreat: true, OpWait: true}

// Task is an abstract goal that can be decomposed by methods.
//
// Precondition: ID must be non-empty.
type Task struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

// Method decomposes a task into an ordered list of subtasks or operator IDs.
//
// Precondition: TaskID, ID, and Subtasks must be non-empty.
// Precondition: Precondition is a built-in or Lua function name; empty means always applicable.
type Method struct {
	TaskID       string   `yaml:"task"`
	ID           string   `yaml:"id"`
	Precondition string   `yaml:"precondition"` // built-in or Lua function name; empty = always applicable
	Subtasks     []string `yaml:"subtasks"`
}

// Operator is a primitive action that maps directly to a game action.
//
// Precondition: ID and Action must be non-empty.
type Operator struct {
	ID     string `yaml:"id"`
	Action string `yaml:"action"` // "attack", "approach", "retreat", "wait"
	Target string `yaml:"target"` // "player", "self", or literal UID
}

// Domain holds the full HTN domain loaded from a YAML file.
//
// Invariant: all Task, Method, and Operator IDs are unique within their slice.
type Domain struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Tasks       []*Task     `yaml:"tasks"`
	Methods     []*Method   `yaml:"methods"`
	Operators   []*Operator `yaml:"operators"`
}

// Validate checks required fields, ID uniqueness and every cross-reference.
//
// Postcondition: returns every violation found, joined; nil guarantees that
// every method subtask names a task or an operator of d and that the root
// task has at least one method.
func (d *Domain) Validate() error {
	if d.ID == "" {
		return errors.New("ai.Domain: ID must not be empty")
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("ai.Domain %q: "+format, append([]any{d.ID}, args...)...))
	}
	if len(d.Tasks) == 0 {
		fail("must have at least one task")
	}

	tasks := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		switch {
		case t.ID == "":
			fail("task has empty ID")
		case tasks[t.ID]:
			fail("duplicate task ID %q", t.ID)
		}
		tasks[t.ID] = true
	}
	ops := make(map[string]bool, len(d.Operators))
	for _, op := range d.Operators {
		switch {
		case op.ID == "" || op.Action == "":
			fail("operator missing ID or Action")
		case !knownActions[op.Action]:
			fail("operator %q: unknown action %q", op.ID, op.Action)
		case ops[op.ID]:
			fail("duplicate operator ID %q", op.ID)
		}
		ops[op.ID] = true
	}
	methods := make(map[string]bool, len(d.Methods))
	for _, m := range d.Methods {
		switch {
		case m.TaskID == "" || m.ID == "":
			fail("method missing TaskID or ID")
			continue
		case methods[m.ID]:
			fail("duplicate method ID %q", m.ID)
		case !tasks[m.TaskID]:
			fail("method %q: TaskID %q references unknown task", m.ID, m.TaskID)
		case len(m.Subtasks) == 0:
			fail("method %q: subtasks must not be empty", m.ID)
		}
		methods[m.ID] = true
		for _, sub := range m.Subtasks {
			if !tasks[sub] && !ops[sub] {
				fail("method %q: subtask %q is neither a task nor an operator", m.ID, sub)
			}
		}
	}
	if len(d.MethodsForTask(RootTask)) == 0 {
		fail("no method decomposes the root task %q", RootTask)
	}
	return errors.Join(errs...)
}

// OperatorByID returns the operator with the given ID, or false if not found.
func (d *Domain) OperatorByID(id string) (*Operator, bool) {
	for _, op := range d.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

// MethodsForTask returns all methods that decompose taskID, in declaration order.
func (d *Domain) MethodsForTask(taskID string) []*Method {
	var out []*Method
	for _, m := range d.Methods {
		if m.TaskID == taskID {
			out = append(out, m)
		}
	}
	return out
}

// yamlDomainFile wraps the YAML top-level key.
type yamlDomainFile struct {
	Domain *Domain `yaml:"domain"`
}

// LoadDomainsFS parses and validates every *.yaml file in dir of fsys.
//
// Postcondition: domain IDs are unique across files; an empty dir yields
// (nil, nil).
func LoadDomainsFS(fsys fs.FS, dir string) ([]*Domain, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadDomains: reading %q: %w", dir, err)
	}
	var domains []*Domain
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: reading %s: %w", e.Name(), err)
		}
		var f yamlDomainFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: parsing %s: %w", e.Name(), err)
		}
		if f.Domain == nil {
			return nil, fmt.Errorf("ai.LoadDomains: %s missing top-level 'domain' key", e.Name())
		}
		if err := f.Domain.Validate(); err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: %s: %w", e.Name(), err)
		}
		if seen[f.Domain.ID] {
			return nil, fmt.Errorf("ai.LoadDomains: %s: duplicate domain ID %q", e.Name(), f.Domain.ID)
		}
		seen[f.Domain.ID] = true
		domains = append(domains, f.Domain)
	}
	return domains, nil
}
