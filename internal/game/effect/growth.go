package effect

// LevelUp scales e in place for an item spawned on floor whose content
// starts at base. Heal and mana amounts grow by (floor-base)*amount/50;
// durable turns by (floor-base)/5*turns/10.
//
// Precondition: floor > base.
func LevelUp(e *Effect, floor, base int) {
	if e == nil {
		return
	}
	delta := floor - base
	switch e.Kind {
	case KindHeal, KindRestoreMana:
		e.Amount += delta * e.Amount / 5 / 10
	case KindDurable:
		if e.Turns > 0 {
			e.Turns += delta / 5 * e.Turns / 10
		}
		LevelUp(e.Inner, floor, base)
	case KindAddEffect:
		LevelUp(e.Inner, floor, base)
	case KindCombine:
		for _, c := range e.Children {
			LevelUp(c, floor, base)
		}
	}
}
