// Package gameerr defines the domain error taxonomy of the turn loop.
package gameerr

import (
	"errors"
	"fmt"
)

// ErrQuitWithoutSaving requests an exit that bypasses persistence.
var ErrQuitWithoutSaving = errors.New("quit without saving")

// Impossible reports an action that cannot be performed. It is recovered by
// the turn loop and shown in the message log.
//
// Invariant: Committed is set iff the failing action already changed state
// (e.g. spent energy) before giving up.
type Impossible struct {
	Message   string
	Committed bool
}

func (e *Impossible) Error() string { return e.Message }

// New returns an Impossible with no committed state.
func New(msg string) error { return &Impossible{Message: msg} }

// Newf formats an Impossible with no committed state.
func Newf(format string, args ...any) error {
	return &Impossible{Message: fmt.Sprintf(format, args...)}
}

// Commit marks err as having committed partial state. Non-Impossible errors
// are returned unchanged.
func Commit(err error) error {
	var imp *Impossible
	if errors.As(err, &imp) {
		return &Impossible{Message: imp.Message, Committed: true}
	}
	return err
}

// AsImpossible extracts an *Impossible from err.
func AsImpossible(err error) (*Impossible, bool) {
	var imp *Impossible
	if errors.As(err, &imp) {
		return imp, true
	}
	return nil, false
}

// IsImpossible reports whether err is or wraps an *Impossible.
func IsImpossible(err error) bool {
	_, ok := AsImpossible(err)
	return ok
}
