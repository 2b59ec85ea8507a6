// Package engine drives one game: it owns the current floor, the player and
// the turn counter, resolves the player's intents and runs every enemy turn.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/action"
	"github.com/cory-johannsen/dungeon/internal/game/ai"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/procgen"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/cory-johannsen/dungeon/internal/scripting"
)

// WelcomeText greets the player at the start of a new game.
const WelcomeText = "Hello and welcome, adventurer, to yet another dungeon!"

// Engine is the single owner of the game state. It is not safe for
// concurrent use; the turn loop is strictly sequential.
type Engine struct {
	cfg     *config.Config
	content *Content
	logger  *zap.Logger
	src     dice.Source

	world    world.GameWorld
	gameMap  *world.GameMap
	player   *entity.Actor
	turn     int
	messages *message.Log

	gen     *procgen.Generator
	scripts *scripting.Manager
	runner  *ai.Runner
}

var _ action.Context = (*Engine)(nil)

// NewSource returns the randomness source cfg asks for: seeded when a seed is
// set, logging every draw in debug mode.
func NewSource(cfg config.GameConfig, logger *zap.Logger) dice.Source {
	var src dice.Source
	if cfg.Seed != 0 {
		src = dice.NewSeededSource(cfg.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	if cfg.Debug {
		src = dice.NewLoggedSource(src, logger)
	}
	return src
}

// newEngine wires the generator, the Lua VM and the AI planners but builds no
// floor.
func newEngine(cfg *config.Config, c *Content, src dice.Source, logger *zap.Logger) (*Engine, error) {
	if cfg == nil || c == nil || src == nil || logger == nil {
		return nil, fmt.Errorf("engine: config, content, source and logger are required")
	}
	e := &Engine{
		cfg:     cfg,
		content: c,
		logger:  logger,
		src:     src,
		world: world.GameWorld{
			BigFloor: cfg.Game.BigFloor,
			Little:   cfg.Map.Little,
			Big:      cfg.Map.Big,
		},
		messages: message.NewLog(),
		gen:      procgen.NewGenerator(c.Spawn, c.Factory, logger),
	}

	e.scripts = scripting.NewManager(src, logger)
	if err := e.scripts.LoadGlobal(c.Scripts, c.ScriptDir, c.InstructionLimit); err != nil {
		e.scripts.Close()
		return nil, fmt.Errorf("engine: loading scripts: %w", err)
	}
	e.bindScripts()

	planners := ai.NewRegistry()
	for _, d := range c.Domains {
		if err := planners.Register(d, e.scripts); err != nil {
			e.scripts.Close()
			return nil, fmt.Errorf("engine: %w", err)
		}
	}
	e.runner = ai.NewRunner(planners, logger)
	return e, nil
}

// NewGame builds the player, generates the first floor and greets the player.
//
// Postcondition: the player stands on floor 1 with the starting equipment
// worn and the FOV computed.
func NewGame(cfg *config.Config, c *Content, src dice.Source, logger *zap.Logger) (*Engine, error) {
	e, err := newEngine(cfg, c, src, logger)
	if err != nil {
		return nil, err
	}
	player, err := c.Player.Construct(e, c.Factory.Items)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.player = player
	if err := e.generateFloor(); err != nil {
		e.Close()
		return nil, err
	}
	e.Log(WelcomeText, message.Welcome)
	logger.Info("new game started", zap.String("player", player.Name))
	return e, nil
}

func (e *Engine) bindScripts() {
	info := func(a *entity.Actor) *scripting.ActorInfo {
		return &scripting.ActorInfo{
			UID:    a.ID,
			Name:   a.Name,
			HP:     a.HP(),
			MaxHP:  a.MaxHP(),
			X:      a.X,
			Y:      a.Y,
			Player: a.Player,
		}
	}
	e.scripts.GetActor = func(uid string) *scripting.ActorInfo {
		if e.gameMap == nil {
			return nil
		}
		if a, ok := e.gameMap.ActorByID(uid); ok {
			return info(a)
		}
		return nil
	}
	e.scripts.GetPlayer = func() *scripting.ActorInfo {
		if e.player == nil || !e.player.IsAlive() {
			return nil
		}
		return info(e.player)
	}
	e.scripts.CanSee = func(uid string) bool {
		if e.gameMap == nil {
			return false
		}
		a, ok := e.gameMap.ActorByID(uid)
		return ok && e.gameMap.IsVisible(a.X, a.Y)
	}
}

// generateFloor advances the floor counter and replaces the map.
func (e *Engine) generateFloor() error {
	floor, params := e.world.Advance()
	m, err := e.gen.Generate(params, e.player, floor, e.src)
	if err != nil {
		e.world.CurrentFloor--
		return fmt.Errorf("engine: generating floor %d: %w", floor, err)
	}
	e.gameMap = m
	e.player.DungeonLevel = floor
	e.UpdateFOV()
	e.logger.Info("floor generated",
		zap.Int("floor", floor),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("actors", len(m.Actors)),
		zap.Int("items", len(m.Items.Items)),
	)
	return nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.scripts.Close()
}

// Log appends text to the message log.
func (e *Engine) Log(text string, color message.Color) { e.messages.Add(text, color) }

// Turn is the number of completed enemy phases.
func (e *Engine) Turn() int { return e.turn }

// Rand is the game's random source.
func (e *Engine) Rand() dice.Source { return e.src }

// AwardXP credits the player with a kill reward.
func (e *Engine) AwardXP(xp int) { e.player.Level.AddXP(e, xp) }

// Map is the current floor.
func (e *Engine) Map() *world.GameMap { return e.gameMap }

// Player is the player's actor.
func (e *Engine) Player() *entity.Actor { return e.player }

// Descend moves the player onto a newly generated floor.
func (e *Engine) Descend() error { return e.generateFloor() }

// FOVRadius is the configured sight radius.
func (e *Engine) FOVRadius() int { return e.cfg.Game.FOVRadius }

// UpdateFOV recomputes visibility around the player.
func (e *Engine) UpdateFOV() {
	e.gameMap.UpdateFOV(e.player.X, e.player.Y, e.FOVRadius())
}

// Messages returns the message log.
func (e *Engine) Messages() *message.Log { return e.messages }

// Floor returns the current floor number.
func (e *Engine) Floor() int { return e.world.CurrentFloor }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config { return e.cfg }
