// Package schema provides the principal schematics for all other packages. It
// defines the backing store layout and provides implementations for handling
// (Unix-based) operating system syscalls. The package serves as a foundational
// layer for all interactions with the backing store throughout the codebase.
package schema
