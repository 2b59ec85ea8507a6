package dice

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed integer interval [Lo, Hi] sampled uniformly on demand.
//
// Invariant: Lo <= Hi for every Range built through NewRange or Fixed.
type Range struct {
	Lo int
	Hi int
}

// NewRange builds a Range, swapping inverted bounds.
//
// Postcondition: result.Lo <= result.Hi.
func NewRange(lo, hi int) Range {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Range{Lo: lo, Hi: hi}
}

// Fixed builds the degenerate Range [v, v].
func Fixed(v int) Range {
	return Range{Lo: v, Hi: v}
}

// Sample draws a uniform integer in [Lo, Hi]. Every call is a fresh draw.
//
// Precondition: src must be non-nil.
// Postcondition: Lo <= result <= Hi.
func (r Range) Sample(src Source) int {
	lo, hi := r.Lo, r.Hi
	if hi < lo {
		lo, hi = hi, lo
	}
	return RandInt(src, lo, hi)
}

// Add returns the component-wise sum of r and o.
func (r Range) Add(o Range) Range {
	return NewRange(r.Lo+o.Lo, r.Hi+o.Hi)
}

// AddInt shifts both bounds by n.
func (r Range) AddInt(n int) Range {
	return NewRange(r.Lo+n, r.Hi+n)
}

// Scale multiplies both bounds by f, truncating toward zero.
//
// Precondition: f >= 1.
func (r Range) Scale(f float64) Range {
	if f < 1 {
		panic("dice: Range.Scale called with factor < 1")
	}
	return NewRange(int(float64(r.Lo)*f), int(float64(r.Hi)*f))
}

// IsZero reports whether r is [0, 0].
func (r Range) IsZero() bool {
	return r.Lo == 0 && r.Hi == 0
}

// Equal compares bounds.
func (r Range) Equal(o Range) bool {
	return r.Lo == o.Lo && r.Hi == o.Hi
}

// Compare orders ranges by lower bound, then upper bound.
// Returns -1, 0 or +1.
func (r Range) Compare(o Range) int {
	switch {
	case r.Lo < o.Lo:
		return -1
	case r.Lo > o.Lo:
		return 1
	case r.Hi < o.Hi:
		return -1
	case r.Hi > o.Hi:
		return 1
	}
	return 0
}

// String renders "lo" for a degenerate range and "lo-hi" otherwise.
func (r Range) String() string {
	if r.Lo == r.Hi {
		return strconv.Itoa(r.Lo)
	}
	return fmt.Sprintf("%d-%d", r.Lo, r.Hi)
}

// ParseRange parses "n", "lo-hi" or a negative bound such as "-1".
//
// Postcondition: Returns a normalized Range or a descriptive error.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("dice: empty range")
	}
	// a leading minus belongs to the first bound
	sep := strings.Index(s[1:], "-")
	if sep < 0 {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Range{}, fmt.Errorf("dice: invalid range %q: %w", s, err)
		}
		return Fixed(v), nil
	}
	sep++
	lo, err := strconv.Atoi(strings.TrimSpace(s[:sep]))
	if err != nil {
		return Range{}, fmt.Errorf("dice: invalid lower bound in %q: %w", s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err != nil {
		return Range{}, fmt.Errorf("dice: invalid upper bound in %q: %w", s, err)
	}
	return NewRange(lo, hi), nil
}

// MustParseRange parses s and panics on error.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic("dice: MustParseRange failed for " + s + ": " + err.Error())
	}
	return r
}

// UnmarshalYAML accepts an integer scalar or a "lo-hi" string.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("dice: range must be a scalar at line %d", value.Line)
	}
	parsed, err := ParseRange(value.Value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML renders the String form.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}
