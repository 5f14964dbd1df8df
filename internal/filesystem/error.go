package filesystem

import "errors"

var (
	// ErrInvalidStats is an error that occurs when the operating system
	// reports impossible statistics for the backing store.
	ErrInvalidStats = errors.New("invalid stats")
)
