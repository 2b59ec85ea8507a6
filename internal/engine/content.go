package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cory-johannsen/dungeon/content"
	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/ai"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/procgen"
)

// Content is every template, table and script a game is built from.
type Content struct {
	Player  *npc.PlayerTemplate
	Factory *npc.Factory
	Spawn   *procgen.SpawnTables
	Domains []*ai.Domain

	// Scripts and ScriptDir locate the Lua precondition files.
	Scripts   fs.FS
	ScriptDir string
	// InstructionLimit caps each Lua call; zero uses the scripting default.
	InstructionLimit int
}

// LoadContent reads the content tree rooted at fsys, laid out like the
// embedded content, and cross-checks the references between its files.
//
// Postcondition: returns every violation found, joined.
func LoadContent(fsys fs.FS) (*Content, error) {
	items := inventory.NewRegistry()
	itemTemplates, err := inventory.LoadTemplatesFS(fsys, content.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	for _, t := range itemTemplates {
		if err := items.Register(t); err != nil {
			return nil, err
		}
	}

	enemies := npc.NewRegistry()
	enemyTemplates, err := npc.LoadTemplatesFS(fsys, content.EnemiesDir)
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	for _, t := range enemyTemplates {
		if err := enemies.Register(t); err != nil {
			return nil, err
		}
	}

	player, err := npc.LoadPlayerFS(fsys, content.PlayerFile)
	if err != nil {
		return nil, fmt.Errorf("loading player: %w", err)
	}
	spawn, err := procgen.LoadSpawnTables(fsys, content.SpawnFile)
	if err != nil {
		return nil, fmt.Errorf("loading spawn tables: %w", err)
	}
	domains, err := ai.LoadDomainsFS(fsys, content.AIDir)
	if err != nil {
		return nil, fmt.Errorf("loading ai domains: %w", err)
	}

	c := &Content{
		Player:    player,
		Factory:   &npc.Factory{Enemies: enemies, Items: items},
		Spawn:     spawn,
		Domains:   domains,
		Scripts:   fsys,
		ScriptDir: content.ScriptsDir,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every ID referenced across files resolves.
func (c *Content) Validate() error {
	var errs []error
	for _, id := range procgen.IDs(c.Spawn.EnemyChances) {
		if _, ok := c.Factory.Enemies.Template(id); !ok {
			errs = append(errs, fmt.Errorf("spawn table names unknown enemy %q", id))
		}
	}
	for _, id := range procgen.IDs(c.Spawn.ItemChances) {
		if _, ok := c.Factory.Items.Template(id); !ok {
			errs = append(errs, fmt.Errorf("spawn table names unknown item %q", id))
		}
	}
	for _, si := range c.Player.StartingItems {
		if _, ok := c.Factory.Items.Template(si.Item); !ok {
			errs = append(errs, fmt.Errorf("player starts with unknown item %q", si.Item))
		}
	}
	known := make(map[string]bool, len(c.Domains))
	for _, d := range c.Domains {
		known[d.ID] = true
	}
	for _, t := range c.Factory.Enemies.All() {
		domain := t.AIDomain
		if domain == "" {
			domain = npc.DefaultDomain
		}
		if !known[domain] {
			errs = append(errs, fmt.Errorf("enemy %q uses unknown ai domain %q", t.ID, domain))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfiguredContent loads the embedded content, or the directories cfg
// points at.
func LoadConfiguredContent(cfg config.ContentConfig) (*Content, error) {
	var fsys fs.FS = content.FS
	if cfg.Dir != "" {
		fsys = os.DirFS(cfg.Dir)
	}
	c, err := LoadContent(fsys)
	if err != nil {
		return nil, err
	}
	if cfg.ScriptDir != "" {
		c.Scripts, c.ScriptDir = os.DirFS(cfg.ScriptDir), "."
	}
	c.InstructionLimit = cfg.InstructionLimit
	return c, nil
}
