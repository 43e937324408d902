package status

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalStateChange is returned when the requested transition is not in the allowed graph.
	ErrIllegalStateChange = errors.New("illegal status change")
	// ErrIncompatibleParentStatus is returned when a document transition conflicts with its publication status.
	ErrIncompatibleParentStatus = errors.New("document status is incompatible with the publication status")
	// ErrParentNotFound is returned when the publication of a document cannot be resolved.
	ErrParentNotFound = errors.New("publication not found")
	// ErrConcurrentModification is returned when a transition raced a concurrent write of the same row.
	ErrConcurrentModification = errors.New("entity was modified concurrently, refetch and retry")
)

// TransitionError reports a rejected status transition with the source and
// the requested target, so callers can decide whether to fix the input,
// refetch, or retry.
type TransitionError struct {
	Err  error
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	from := string(e.From)
	if from == "" {
		from = "<new>"
	}
	return fmt.Sprintf("%s: %s -> %s", e.Err, from, e.To)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
