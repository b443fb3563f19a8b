package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWidgetType rejects add requests for types outside the catalog.
	ErrInvalidWidgetType = errors.New("dashboard: widget type is not in the catalog")
	// ErrInvalidWidgetSize rejects sizes outside {small, medium, large, full}.
	ErrInvalidWidgetSize = errors.New("dashboard: widget size is not recognized")
	// ErrLayoutNotFound is returned by LayoutStore implementations when no
	// layout has been persisted for the user.
	ErrLayoutNotFound = errors.New("dashboard: no layout stored for user")

	errMissingLayoutStore = errors.New("dashboard: layout store not configured")
	errMissingUserID      = errors.New("dashboard: user id is required")
)

// PersistenceError reports a failed write-through to the LayoutStore. The
// in-memory list has already been updated when this is returned; callers
// decide whether to retry or warn the user.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("dashboard: persist after %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistenceFailure reports whether err is a write-through failure, meaning
// the mutation itself was applied in memory.
func IsPersistenceFailure(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
