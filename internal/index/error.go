package index

import "errors"

var (
	// ErrVfsInitFailed is an error that occurs when the index file can neither
	// be opened nor created. The virtual file system is unusable without it.
	ErrVfsInitFailed = errors.New("vfs initialization failed")

	// ErrCannotOpenFile is an error that occurs when a required open of the
	// index file or a sector file has failed. It is usually wrapped together
	// with the path of the affected file.
	ErrCannotOpenFile = errors.New("cannot open file")

	// ErrMalformedIndex is an error that occurs when a non-blank line of the
	// index file does not contain the path/sector delimiter, or when the part
	// after the delimiter is not a sector id.
	ErrMalformedIndex = errors.New("malformed index line")
)
