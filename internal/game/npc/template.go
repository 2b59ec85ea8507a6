// Package npc provides enemy and player templates and the factory that turns
// them into live actors.
package npc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"unicode/utf8"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/stats"
	"gopkg.in/yaml.v3"
)

// DefaultDomain is the HTN domain used when a template names none.
const DefaultDomain = "hostile"

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	Char      string           `yaml:"char"`
	Color     string           `yaml:"color"`
	Stats     stats.ActorStats `yaml:"stats"`
	Power     dice.Range       `yaml:"power"`
	XP        int              `yaml:"xp"`
	BaseFloor int              `yaml:"base_floor"`
	Growth    *Growth          `yaml:"growth"`
	AIDomain  string           `yaml:"ai_domain"` // HTN domain ID; empty = DefaultDomain
	// FixLevel pins the displayed level to the spawn floor. Defaults to true.
	FixLevel bool `yaml:"fix_level"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every field is valid; otherwise all
// violations are joined into one error.
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
	if t.XP < 0 {
		errs = append(errs, errors.New("xp must be >= 0"))
	}
	if t.BaseFloor < 0 {
		errs = append(errs, errors.New("base_floor must be >= 0"))
	}
	if t.Stats.Params().MaxHP < 1 {
		errs = append(errs, errors.New("stats must yield max hp >= 1"))
	}
	if t.Growth != nil {
		if err := t.Growth.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q validation failed: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// Construct builds a hostile actor spawned on floor.
//
// Postcondition: the actor is at full resources, carries XPGiven >= t.XP and
// has Level.Current == floor when FixLevel is set.
func (t *Template) Construct(floor int, src dice.Source) *entity.Actor {
	r, _ := utf8.DecodeRuneInString(t.Char)
	domain := t.AIDomain
	if domain == "" {
		domain = DefaultDomain
	}
	a := entity.NewActor(t.Name, r, t.Color, t.Stats, 0, entity.Hostile(domain))
	a.TemplateID = t.ID
	a.DungeonLevel = floor
	a.Fighter.BonusPower = t.Power
	a.Level.XPGiven = t.XP
	if t.Growth != nil && floor > t.BaseFloor {
		t.Growth.Apply(a, floor, t.BaseFloor, src)
		a.Refill()
	}
	if t.FixLevel {
		a.Level.Current = floor
	}
	return a
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error. Absent stats
// take their stats.Default values and fix_level defaults to true.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	tmpl := Template{Stats: stats.Default(), FixLevel: true}
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	return LoadTemplatesFS(os.DirFS(dir), ".")
}

// LoadTemplatesFS reads all *.yaml and *.yml files in dir of fsys.
func LoadTemplatesFS(fsys fs.FS, dir string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", p, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
