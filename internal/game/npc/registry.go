package npc

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Registry holds all loaded enemy templates indexed by ID.
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
		return fmt.Errorf("npc: Registry.Register: enemy ID %q already registered", t.ID)
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

// Factory builds enemies and items by template ID for the floor generator.
type Factory struct {
	Enemies *Registry
	Items   *inventory.Registry
}

// SpawnEnemy constructs enemy id for floor.
func (f *Factory) SpawnEnemy(id string, floor int, src dice.Source) (*entity.Actor, error) {
	t, ok := f.Enemies.Template(id)
	if !ok {
		return nil, fmt.Errorf("npc: unknown enemy template %q", id)
	}
	return t.Construct(floor, src), nil
}

// SpawnItem constructs item id for floor.
func (f *Factory) SpawnItem(id string, floor int, src dice.Source) (*inventory.Item, error) {
	return f.Items.Construct(id, floor, src)
}
