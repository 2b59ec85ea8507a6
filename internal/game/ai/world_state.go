package ai

import "math"

// ActorState captures an actor's position and health at planning time.
type ActorState struct {
	UID   string
	Name  string
	X, Y  int
	HP    int
	MaxHP int
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (a *ActorState) HPPercent() float64 {
	if a.MaxHP <= 0 {
		return 0
	}
	return float64(a.HP) / float64(a.MaxHP) * 100
}

// WorldState is the snapshot passed to the HTN planner for one enemy.
//
// Invariant: NPC must not be nil. Player is nil when the player is dead or
// absent from the map.
type WorldState struct {
	NPC *ActorState
	// Player is the planning target.
	Player *ActorState
	// PlayerVisible is true when the enemy stands inside the player's field
	// of view. Sight is symmetric on this map.
	PlayerVisible bool
}

// Distance returns the Euclidean distance from the NPC to the player, or +Inf
// when there is no player.
func (ws *WorldState) Distance() float64 {
	if ws.Player == nil {
		return math.Inf(1)
	}
	dx := float64(ws.Player.X - ws.NPC.X)
	dy := float64(ws.Player.Y - ws.NPC.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PlayerAdjacent reports whether the player occupies one of the eight tiles
// around the NPC.
func (ws *WorldState) PlayerAdjacent() bool {
	if ws.Player == nil {
		return false
	}
	dx, dy := ws.Player.X-ws.NPC.X, ws.Player.Y-ws.NPC.Y
	return max(abs(dx), abs(dy)) == 1
}

// ResolveTarget maps a target token to an actor UID.
//
// Precondition: ws.NPC must not be nil.
// Postcondition: "player" and "self" are resolved to UIDs; unknown tokens are
// returned as-is; empty string returned if the player is absent.
func (ws *WorldState) ResolveTarget(token string) string {
	switch token {
	case "player":
		if ws.Player != nil {
			return ws.Player.UID
		}
		return ""
	case "self":
		return ws.NPC.UID
	default:
		return token
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
