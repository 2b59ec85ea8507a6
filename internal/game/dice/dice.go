// Package dice provides the randomness abstraction and the closed integer
// interval type used for every stochastic quantity in the dungeon.
package dice

// Source is the randomness provider for every draw in the game.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RandInt returns a uniform integer in the closed interval [lo, hi].
//
// Precondition: lo <= hi; src must be non-nil.
// Postcondition: lo <= result <= hi.
func RandInt(src Source, lo, hi int) int {
	if hi < lo {
		panic("dice: RandInt called with hi < lo")
	}
	return lo + src.Intn(hi-lo+1)
}

// chanceResolution is the granularity used by Chance.
const chanceResolution = 1_000_000

// Chance reports true with probability p.
//
// Postcondition: p <= 0 always yields false; p >= 1 always yields true.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return float64(src.Intn(chanceResolution)) < p*chanceResolution
}

// WeightedIndex picks an index into weights with probability proportional to
// its weight. Non-positive weights are never chosen.
//
// Postcondition: returns -1 when no weight is positive.
func WeightedIndex(src Source, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	roll := src.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}

// Choice returns a uniformly chosen index in [0, n).
//
// Precondition: n > 0.
func Choice(src Source, n int) int {
	return src.Intn(n)
}
