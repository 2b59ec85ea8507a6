package command

import (
	"fmt"
	"strings"
	"unicode"
)

// Modifier is a key modifier that alters a movement command.
type Modifier int

const (
	ModNone Modifier = iota
	// ModShift is shift held with a movement key.
	ModShift
	// ModAlt is alt held with a movement key.
	ModAlt
)

// Registry maps command names and keys to Command definitions.
type Registry struct {
	ordered  []*Command
	commands map[string]*Command // canonical name → command
	keys     map[string]string   // key → canonical name
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or key.
// Postcondition: Returns a Registry or an error on name/key collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		keys:     make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.ordered = append(r.ordered, cmd)

		for _, key := range cmd.Keys {
			if existing, exists := r.keys[key]; exists {
				return nil, fmt.Errorf("duplicate key %q: used by %q and %q", key, existing, cmd.Name)
			}
			r.keys[key] = cmd.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Lookup returns the command with the canonical name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Resolve looks up the command bound to key. A movement key may carry a
// modifier: "alt+" for ModAlt, and "shift+" or an upper-case letter for
// ModShift.
//
// Postcondition: Returns (command, modifier, true) if found, or (nil, ModNone, false).
func (r *Registry) Resolve(key string) (*Command, Modifier, bool) {
	if name, ok := r.keys[key]; ok {
		return r.commands[name], ModNone, true
	}

	base, mod := key, ModNone
	switch {
	case strings.HasPrefix(key, "alt+"):
		base, mod = strings.TrimPrefix(key, "alt+"), ModAlt
	case strings.HasPrefix(key, "shift+"):
		base, mod = strings.TrimPrefix(key, "shift+"), ModShift
	case len(key) == 1 && unicode.IsUpper(rune(key[0])):
		base, mod = strings.ToLower(key), ModShift
	default:
		return nil, ModNone, false
	}
	name, ok := r.keys[base]
	if !ok || r.commands[name].Handler != HandlerMove {
		return nil, ModNone, false
	}
	return r.commands[name], mod, true
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.ordered...)
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.ordered {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
