package combat

import "github.com/cory-johannsen/dungeon/internal/game/dice"

// MeleeDamage samples power, scales it by mult and mitigates the result as
// Physical damage.
//
// Precondition: mult >= 1.
// Postcondition: a result <= 0 means the blow did no damage.
func MeleeDamage(power dice.Range, mult float64, def Defense, src dice.Source) int {
	raw := int(float64(power.Sample(src)) * mult)
	return def.Decrease(raw, Physical, src)
}
