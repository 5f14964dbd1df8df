package vfs

import (
	"errors"

	"github.com/desertwitch/sectorvfs/internal/index"
)

var (
	// ErrVfsInitFailed is an error that occurs when the index file can neither
	// be opened nor created.
	ErrVfsInitFailed = index.ErrVfsInitFailed

	// ErrCannotOpenFile is an error that occurs when a required open of the
	// index file or a sector file has failed. The path of the affected file
	// is part of the wrapping error message.
	ErrCannotOpenFile = index.ErrCannotOpenFile

	// ErrMalformedIndex is an error that occurs when the index file contains
	// a line that cannot be split into path and a valid sector id.
	ErrMalformedIndex = index.ErrMalformedIndex

	// ErrFileNotFound is an error that occurs when a virtual path is required
	// to exist in the index, but does not.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileAlreadyExists is an error that occurs when a virtual file is to
	// be created without overwriting, but the path already exists.
	ErrFileAlreadyExists = errors.New("file already exists")
)
