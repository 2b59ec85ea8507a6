package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/cory-johannsen/dungeon/internal/game/world"
	"github.com/cory-johannsen/dungeon/internal/storage"
)

// State is the serialisable form of a game in progress. The player is one
// of Map.Actors and is found again by PlayerID.
type State struct {
	Floor    int
	Map      *world.GameMap
	PlayerID string
	Turn     int
	Messages []message.Message
}

// Snapshot captures the game. It shares memory with the engine and must be
// encoded before the next action.
func (e *Engine) Snapshot() *State {
	return &State{
		Floor:    e.world.CurrentFloor,
		Map:      e.gameMap,
		PlayerID: e.player.ID,
		Turn:     e.turn,
		Messages: append([]message.Message(nil), e.messages.Messages...),
	}
}

// Restore rebuilds an engine around a snapshot.
//
// Precondition: s was produced by Snapshot, possibly through a save round trip.
// Postcondition: the FOV is recomputed; effects, regen timers and
// confusion wrappers resume where they were.
func Restore(s *State, cfg *config.Config, c *Content, src dice.Source, logger *zap.Logger) (*Engine, error) {
	if s == nil || s.Map == nil {
		return nil, fmt.Errorf("engine: restore: empty state")
	}
	repair(s.Map)
	player, ok := s.Map.ActorByID(s.PlayerID)
	if !ok {
		return nil, fmt.Errorf("engine: restore: player %q is not on the map", s.PlayerID)
	}
	e, err := newEngine(cfg, c, src, logger)
	if err != nil {
		return nil, err
	}
	e.world.CurrentFloor = s.Floor
	e.gameMap = s.Map
	e.player = player
	e.turn = s.Turn
	e.messages.Messages = s.Messages
	e.UpdateFOV()
	return e, nil
}

// repair restores the empty containers gob leaves nil.
func repair(m *world.GameMap) {
	if m.Items == nil {
		m.Items = inventory.NewFloor()
	}
	n := m.Width * m.Height
	if len(m.Visible) != n {
		m.Visible = make([]bool, n)
	}
	if len(m.Explored) != n {
		m.Explored = make([]bool, n)
	}
	for _, a := range m.Actors {
		if a.Equipment == nil {
			a.Equipment = inventory.NewEquipment()
		}
		if a.Equipment.Slots == nil {
			a.Equipment.Slots = make(map[inventory.EquipmentType]string)
		}
		if a.Backpack == nil {
			a.Backpack = inventory.NewBackpack(0)
		}
	}
}

// Save encodes the game into the configured save slot.
func (e *Engine) Save(ctx context.Context, store storage.Store) error {
	blob, err := storage.Encode(e.Snapshot())
	if err != nil {
		return fmt.Errorf("engine: save: %w", err)
	}
	slot := e.cfg.Game.SaveName
	if err := store.Save(ctx, slot, blob); err != nil {
		return fmt.Errorf("engine: save: %w", err)
	}
	e.logger.Info("game saved", zap.String("slot", slot), zap.Int("bytes", len(blob)), zap.Int("turn", e.turn))
	return nil
}

// Load restores the game in the configured save slot.
//
// Postcondition: wraps storage.ErrSaveNotFound when the slot is empty.
func Load(ctx context.Context, store storage.Store, cfg *config.Config, c *Content, src dice.Source, logger *zap.Logger) (*Engine, error) {
	blob, err := store.Load(ctx, cfg.Game.SaveName)
	if err != nil {
		return nil, fmt.Errorf("engine: load: %w", err)
	}
	var s State
	if err := storage.Decode(blob, &s); err != nil {
		return nil, fmt.Errorf("engine: load: %w", err)
	}
	e, err := Restore(&s, cfg, c, src, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("game loaded", zap.String("slot", cfg.Game.SaveName), zap.Int("floor", s.Floor), zap.Int("turn", s.Turn))
	return e, nil
}

// DeleteSave removes the configured save slot; a dead character cannot be
// continued.
func (e *Engine) DeleteSave(ctx context.Context, store storage.Store) error {
	if err := store.Delete(ctx, e.cfg.Game.SaveName); err != nil {
		return fmt.Errorf("engine: delete save: %w", err)
	}
	return nil
}
