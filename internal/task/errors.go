package task

import "errors"

var (
	// ErrInvalidID marks a structurally malformed task id. A well-formed id
	// with no matching document is ErrNotFound, never ErrInvalidID.
	ErrInvalidID = errors.New("invalid task id")

	// ErrNotFound marks a missing document. Updates that match but modify
	// nothing report it too; the frontend treats both the same way.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidTimeRange marks a task whose end does not come after its
	// start.
	ErrInvalidTimeRange = errors.New("endDateTime must be after startDateTime")
)
