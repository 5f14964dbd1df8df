// Package index implements the index store of the virtual file system. The
// index is a flat text file mapping virtual paths to sector ids. It is never
// cached: every read parses the whole file and every mutation rewrites it.
package index

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	indexFilePerms = 0o644
)

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// Handler is the principal implementation of the index store.
type Handler struct {
	indexPath string
	osHandler osProvider
}

// NewHandler returns a pointer to a new index store [Handler] for the index
// file at indexPath.
func NewHandler(indexPath string, osHandler osProvider) *Handler {
	return &Handler{
		indexPath: indexPath,
		osHandler: osHandler,
	}
}

// Path returns the path of the index file.
func (h *Handler) Path() string {
	return h.indexPath
}

// Initialize ensures that the index file exists, creating it empty if it does
// not. It is safe to call on an existing index.
func (h *Handler) Initialize() error {
	f, err := h.osHandler.Open(h.indexPath)
	if err == nil {
		f.Close()

		return nil
	}

	slog.Debug("Index file not readable, creating it.",
		"path", h.indexPath,
		"err", err,
	)

	f, err = h.osHandler.OpenFile(h.indexPath, os.O_WRONLY|os.O_CREATE, indexFilePerms)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrVfsInitFailed, h.indexPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrVfsInitFailed, h.indexPath, err)
	}

	return nil
}

// Read opens and parses the whole index file into its entries, in file order.
func (h *Handler) Read() ([]Entry, error) {
	f, err := h.osHandler.Open(h.indexPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCannotOpenFile, h.indexPath, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("(index) %s: %w", h.indexPath, err)
	}

	return entries, nil
}

// Write truncates the index file and writes all given entries, preserving
// their order.
func (h *Handler) Write(entries []Entry) error {
	f, err := h.osHandler.OpenFile(h.indexPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, indexFilePerms)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCannotOpenFile, h.indexPath, err)
	}

	if err := WriteEntries(f, entries...); err != nil {
		f.Close()

		return fmt.Errorf("(index) %s: %w", h.indexPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("(index) failed to close %s: %w", h.indexPath, err)
	}

	return nil
}

// OpenAppend opens the index file in append mode. The caller is responsible
// for closing the returned file.
func (h *Handler) OpenAppend() (io.WriteCloser, error) {
	f, err := h.osHandler.OpenFile(h.indexPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, indexFilePerms)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCannotOpenFile, h.indexPath, err)
	}

	return f, nil
}

// Append adds a single [Entry] to the end of the index file, without
// rewriting the existing entries.
func (h *Handler) Append(entry Entry) error {
	f, err := h.OpenAppend()
	if err != nil {
		return err
	}

	if err := WriteEntries(f, entry); err != nil {
		f.Close()

		return fmt.Errorf("(index) %s: %w", h.indexPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("(index) failed to close %s: %w", h.indexPath, err)
	}

	return nil
}
