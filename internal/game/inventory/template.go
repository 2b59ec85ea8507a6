package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"unicode/utf8"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/effect"
	"gopkg.in/yaml.v3"
)

// Growth names how an item strengthens when spawned deeper than its base floor.
type Growth string

const (
	GrowthNone    Growth = ""
	GrowthPotion  Growth = "potion"
	GrowthPower   Growth = "power"
	GrowthDefense Growth = "defense"
)

// Template defines an item kind loaded from YAML.
type Template struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Char       string      `yaml:"char"`
	Color      string      `yaml:"color"`
	BaseFloor  int         `yaml:"base_floor"`
	Growth     Growth      `yaml:"growth"`
	Consumable *Consumable `yaml:"consumable"`
	Equippable *Equippable `yaml:"equippable"`
}

// Validate checks that the Template satisfies its invariants.
//
// Precondition: t is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if utf8.RuneCountInString(t.Char) != 1 {
		errs = append(errs, fmt.Errorf("char must be a single glyph; got %q", t.Char))
	}
	if t.Consumable == nil && t.Equippable == nil {
		errs = append(errs, errors.New("one of consumable or equippable is required"))
	}
	if t.Consumable != nil {
		if err := t.Consumable.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.Equippable != nil {
		if err := t.Equippable.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	switch t.Growth {
	case GrowthNone, GrowthPotion, GrowthPower, GrowthDefense:
	default:
		errs = append(errs, fmt.Errorf("growth must be one of potion, power, defense; got %q", t.Growth))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item template %q validation failed: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// Construct builds a fresh item spawned on floor, applying growth when floor
// exceeds BaseFloor.
//
// Postcondition: the returned item shares no mutable state with t.
func (t *Template) Construct(floor int, src dice.Source) *Item {
	r, _ := utf8.DecodeRuneInString(t.Char)
	it := NewItem(t.ID, t.Name, r, t.Color)
	it.DungeonLevel = floor
	if t.Consumable != nil {
		it.Consumable = t.Consumable.Clone()
		it.Consumable.SetOwner(t.Name)
	}
	if t.Equippable != nil {
		eq := *t.Equippable
		eq.Defense = combat.Defense{}.Add(t.Equippable.Defense)
		it.Equippable = &eq
	}
	if floor > t.BaseFloor {
		t.grow(it, floor, src)
	}
	return it
}

func (t *Template) grow(it *Item, floor int, src dice.Source) {
	delta := floor - t.BaseFloor
	switch t.Growth {
	case GrowthPotion:
		if it.Consumable != nil {
			for _, e := range it.Consumable.Effects() {
				effect.LevelUp(e, floor, t.BaseFloor)
			}
		}
	case GrowthPower:
		if it.Equippable != nil {
			it.Equippable.Power = it.Equippable.Power.AddInt(dice.RandInt(src, 1, delta))
		}
	case GrowthDefense:
		limit := delta / 3
		if it.Equippable != nil && limit >= 1 {
			it.Equippable.Defense = it.Equippable.Defense.AddFlat(dice.Fixed(dice.RandInt(src, 1, limit)))
		}
	}
}

// LoadTemplateFromBytes parses and validates a single item template.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing item template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplates reads every *.yaml and *.yml file under dir.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid templates or the first encountered error.
func LoadTemplates(dir string) ([]*Template, error) {
	return LoadTemplatesFS(os.DirFS(dir), ".")
}

// LoadTemplatesFS reads every *.yaml and *.yml file in dir of fsys.
func LoadTemplatesFS(fsys fs.FS, dir string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("LoadTemplates: cannot read directory %q: %w", dir, err)
	}
	var out []*Template
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("LoadTemplates: cannot read file %q: %w", p, err)
		}
		t, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadTemplates: invalid item in %q: %w", p, err)
		}
		out = append(out, t)
	}
	return out, nil
}
