package tracker

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced across the engine boundary. Callers branch
// with errors.Is; everything the engine returns wraps exactly one of
// these sentinels.
var (
	// ErrValidation marks malformed input, e.g. an empty task name.
	ErrValidation = errors.New("invalid input")
	// ErrConflict marks an invariant collision, e.g. starting a
	// session while one is already active.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a reference to a task or session that does
	// not exist or belongs to another owner.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks a backing-store failure; fatal for the request.
	ErrStorage = errors.New("storage failure")
)

// WrapStorage tags a backing-store error with ErrStorage.
func WrapStorage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
