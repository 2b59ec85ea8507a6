package entity

// BehaviorKind selects how an actor takes its turn.
type BehaviorKind string

const (
	BehaviorPlayer   BehaviorKind = "player"
	BehaviorHostile  BehaviorKind = "hostile"
	BehaviorConfused BehaviorKind = "confused"
)

// Behavior is the serialisable AI state of an actor. A confused behaviour
// wraps the one it temporarily replaces.
type Behavior struct {
	Kind           BehaviorKind
	Domain         string
	TurnsRemaining int
	Previous       *Behavior
}

// PlayerBehavior returns the behaviour marker of the player character.
func PlayerBehavior() *Behavior { return &Behavior{Kind: BehaviorPlayer} }

// Hostile returns a hostile behaviour planned with the named HTN domain.
func Hostile(domain string) *Behavior { return &Behavior{Kind: BehaviorHostile, Domain: domain} }

// Restore returns the behaviour a confusion wrapped.
func (b *Behavior) Restore() *Behavior {
	if b.Kind == BehaviorConfused && b.Previous != nil {
		return b.Previous
	}
	return b
}
