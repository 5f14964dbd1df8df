package main

import "errors"

var (
	// ErrUsage occurs when the command line cannot be interpreted.
	ErrUsage = errors.New("invalid usage")

	// ErrNotExists occurs when the exists command does not find the file. It
	// only changes the exit code and is not logged.
	ErrNotExists = errors.New("file does not exist")

	// ErrCheckFailed occurs when the integrity check found inconsistencies.
	ErrCheckFailed = errors.New("integrity check failed")
)
