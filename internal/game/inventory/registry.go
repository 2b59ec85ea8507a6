package inventory

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Registry holds all loaded item templates indexed by ID.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds t to the registry.
//
// Precondition: t must not be nil.
// Postcondition: Template(t.ID) returns (t, true); returns error if t.ID already registered.
func (r *Registry) Register(t *Template) error {
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("inventory: Registry.Register: item ID %q already registered", t.ID)
	}
	r.templates[t.ID] = t
	return nil
}

// Template returns the template for id and whether it was found.
func (r *Registry) Template(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// All returns every template sorted by ID.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Construct builds a new item from template id for floor.
func (r *Registry) Construct(id string, floor int, src dice.Source) (*Item, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("inventory: unknown item template %q", id)
	}
	return t.Construct(floor, src), nil
}
