package schema

import (
	"path/filepath"
)

const (
	// DefaultRoot is the backing store root of the removable storage.
	DefaultRoot = "/usd"

	// DefaultIndexName is the file name of the index inside the root.
	DefaultIndexName = "index.txt"
)

// Store describes the physical layout of a backing store: one index file and
// any number of numerically named sector files, all inside one directory.
type Store struct {
	Root      string
	IndexName string
}

// NewStore returns a pointer to a new [Store]. Empty arguments are replaced
// with [DefaultRoot] and [DefaultIndexName] respectively.
func NewStore(root string, indexName string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	if indexName == "" {
		indexName = DefaultIndexName
	}

	return &Store{
		Root:      root,
		IndexName: indexName,
	}
}

// GetFSPath returns the root directory of the backing store.
func (s *Store) GetFSPath() string {
	return s.Root
}

// GetIndexPath returns the full path of the index file.
func (s *Store) GetIndexPath() string {
	return filepath.Join(s.Root, s.IndexName)
}

// GetSectorPath returns the full path of the sector file for a sector id.
func (s *Store) GetSectorPath(sector string) string {
	return filepath.Join(s.Root, sector)
}
