// Package vfs implements a minimal virtual file system on top of a flat,
// numbered-sector backing store. Virtual paths are mapped to sector files by
// an index file, which is re-read on every operation and fully rewritten on
// every mutation. A [Handler] serializes its own mutations, but offers no
// protection against other processes modifying the backing store.
package vfs

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/desertwitch/sectorvfs/internal/index"
	"github.com/desertwitch/sectorvfs/internal/schema"
)

const (
	sectorFilePerms = 0o644
)

type indexProvider interface {
	Initialize() error
	Read() ([]index.Entry, error)
	Write(entries []index.Entry) error
	OpenAppend() (io.WriteCloser, error)
}

type osProvider interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

// Handler is the principal implementation of the virtual file system.
type Handler struct {
	sync.RWMutex
	store        *schema.Store
	indexHandler indexProvider
	osHandler    osProvider
}

// NewHandler returns a pointer to a new virtual file system [Handler] for the
// given backing store.
func NewHandler(store *schema.Store, indexHandler indexProvider, osHandler osProvider) *Handler {
	return &Handler{
		store:        store,
		indexHandler: indexHandler,
		osHandler:    osHandler,
	}
}

// Initialize ensures the index file of the backing store exists. It returns
// [ErrVfsInitFailed] if the index file can neither be opened nor created.
func (v *Handler) Initialize() error {
	v.Lock()
	defer v.Unlock()

	if err := v.indexHandler.Initialize(); err != nil {
		return fmt.Errorf("(vfs-init) %w", err)
	}

	return nil
}

// Entries returns all entries of the index, in index order.
func (v *Handler) Entries() ([]index.Entry, error) {
	v.RLock()
	defer v.RUnlock()

	return v.indexHandler.Read()
}

// SectorPath returns the path of the backing store file for a sector id.
func (v *Handler) SectorPath(sector string) string {
	return v.store.GetSectorPath(sector)
}

// truncateSector opens a sector file for writing, creating or emptying it.
func (v *Handler) truncateSector(sector string) error {
	sectorPath := v.store.GetSectorPath(sector)

	f, err := v.osHandler.OpenFile(sectorPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sectorFilePerms)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCannotOpenFile, sectorPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCannotOpenFile, sectorPath, err)
	}

	return nil
}
