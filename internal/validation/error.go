package validation

import "errors"

var (
	// ErrRootNotSet is an error that occurs when no backing store root is
	// configured.
	ErrRootNotSet = errors.New("backing store root is not set")

	// ErrRootNotDir is an error that occurs when the backing store root exists,
	// but is not a directory.
	ErrRootNotDir = errors.New("backing store root is not a directory")

	// ErrInvalidIndexName is an error that occurs when the index file name is
	// not a bare file name, or is a name that collides with sector files.
	ErrInvalidIndexName = errors.New("invalid index file name")
)
