// Package procgen generates dungeon floors: rooms, tunnels, stairs and the
// floor-weighted population of monsters and items.
package procgen

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"gopkg.in/yaml.v3"
)

// FloorValue is a value that applies from Floor onward.
type FloorValue struct {
	Floor int `yaml:"floor"`
	Value int `yaml:"value"`
}

// FloorWeights are entity weights that apply from Floor onward. A later
// entry overrides the weight of the same entity.
type FloorWeights struct {
	Floor   int            `yaml:"floor"`
	Weights map[string]int `yaml:"weights"`
}

// SpawnTables drive how many and which entities populate each room.
type SpawnTables struct {
	MaxItems     []FloorValue   `yaml:"max_items_by_floor"`
	MaxMonsters  []FloorValue   `yaml:"max_monsters_by_floor"`
	ItemChances  []FloorWeights `yaml:"item_chances"`
	EnemyChances []FloorWeights `yaml:"enemy_chances"`
}

// Validate checks that the tables are non-empty and ordered by floor.
func (s *SpawnTables) Validate() error {
	var errs []error
	checkValues := func(name string, t []FloorValue) {
		if len(t) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
		for i := 1; i < len(t); i++ {
			if t[i].Floor <= t[i-1].Floor {
				errs = append(errs, fmt.Errorf("%s must be sorted by floor", name))
				break
			}
		}
	}
	checkWeights := func(name string, t []FloorWeights) {
		if len(t) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
		for i := 1; i < len(t); i++ {
			if t[i].Floor <= t[i-1].Floor {
				errs = append(errs, fmt.Errorf("%s must be sorted by floor", name))
				break
			}
		}
	}
	checkValues("max_items_by_floor", s.MaxItems)
	checkValues("max_monsters_by_floor", s.MaxMonsters)
	checkWeights("item_chances", s.ItemChances)
	checkWeights("enemy_chances", s.EnemyChances)
	if len(errs) > 0 {
		return fmt.Errorf("spawn tables validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// IDs returns every entity id named by a weights table.
func IDs(table []FloorWeights) []string {
	seen := map[string]bool{}
	var out []string
	for _, fw := range table {
		for id := range fw.Weights {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

// MaxValueForFloor returns the value of the last entry whose Floor <= floor,
// or 0 when none applies.
func MaxValueForFloor(table []FloorValue, floor int) int {
	current := 0
	for _, fv := range table {
		if fv.Floor > floor {
			break
		}
		current = fv.Value
	}
	return current
}

// Weights merges every entry whose Floor <= floor.
func Weights(table []FloorWeights, floor int) map[string]int {
	out := map[string]int{}
	for _, fw := range table {
		if fw.Floor > floor {
			continue
		}
		for id, w := range fw.Weights {
			out[id] = w
		}
	}
	return out
}

// ChooseEntities draws n entity ids with replacement, weighted by the
// entries applying on floor.
func ChooseEntities(table []FloorWeights, n, floor int, src dice.Source) []string {
	weights := Weights(table, floor)
	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	ws := make([]int, len(ids))
	for i, id := range ids {
		ws[i] = weights[id]
	}
	var out []string
	for i := 0; i < n; i++ {
		idx := dice.WeightedIndex(src, ws)
		if idx < 0 {
			break
		}
		out = append(out, ids[idx])
	}
	return out
}

// LoadSpawnTables reads and validates a spawn table file from fsys.
func LoadSpawnTables(fsys fs.FS, name string) (*SpawnTables, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("LoadSpawnTables: cannot read %q: %w", name, err)
	}
	var s SpawnTables
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("LoadSpawnTables: cannot parse %q: %w", name, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
