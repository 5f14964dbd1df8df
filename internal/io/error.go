package io

import "errors"

var (
	// ErrHashMismatch is an error that occurs when the contents read back from
	// a sector file do not match what was written, this usually means that
	// there are underlying hardware issues with the backing store.
	ErrHashMismatch = errors.New("hash mismatch")
)
