package ai

import (
	"github.com/cory-johannsen/dungeon/internal/game/entity"
	"github.com/cory-johannsen/dungeon/internal/game/world"
)

// BuildWorldState constructs a WorldState snapshot for actor on m.
//
// Precondition: m and actor must not be nil.
// Postcondition: ws.NPC.UID == actor.ID; ws.Player is nil when player is nil
// or dead.
func BuildWorldState(m *world.GameMap, actor, player *entity.Actor) *WorldState {
	ws := &WorldState{NPC: actorState(actor)}
	if player != nil && player.IsAlive() {
		ws.Player = actorState(player)
		ws.PlayerVisible = m.IsVisible(actor.X, actor.Y)
	}
	return ws
}

func actorState(a *entity.Actor) *ActorState {
	return &ActorState{
		UID:   a.ID,
		Name:  a.Name,
		X:     a.X,
		Y:     a.Y,
		HP:    a.HP(),
		MaxHP: a.MaxHP(),
	}
}
