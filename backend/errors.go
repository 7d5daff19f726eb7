package backend

import "errors"

var (
	// ErrOutOfRange reports a coordinate outside the grid.
	// Only surfaced in strict mode; the default policy is a silent no-op
	ErrOutOfRange = errors.New("backend: coordinate out of range")

	// ErrUnsupported reports a capability the backend does not implement.
	// Always surfaced, it indicates a composition error in the caller
	ErrUnsupported = errors.New("backend: operation not supported")

	// ErrDuplicateAttachment reports a second buffer attached to a backend
	// that already holds one
	ErrDuplicateAttachment = errors.New("backend: buffer already attached")
)
