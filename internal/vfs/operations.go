package vfs

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/desertwitch/sectorvfs/internal/allocation"
	"github.com/desertwitch/sectorvfs/internal/index"
)

// FileExists reports whether a virtual path is present in the index.
func (v *Handler) FileExists(path string) (bool, error) {
	v.RLock()
	defer v.RUnlock()

	entries, err := v.indexHandler.Read()
	if err != nil {
		return false, fmt.Errorf("(vfs-exists) %w", err)
	}

	return findEntry(entries, NormalizePath(path)) >= 0, nil
}

// GetFileSector returns the sector id of a virtual path. An empty string is
// returned if the path is not present in the index, this is not an error.
func (v *Handler) GetFileSector(path string) (string, error) {
	v.RLock()
	defer v.RUnlock()

	entries, err := v.indexHandler.Read()
	if err != nil {
		return "", fmt.Errorf("(vfs-sector) %w", err)
	}

	if pos := findEntry(entries, NormalizePath(path)); pos >= 0 {
		return entries[pos].Sector, nil
	}

	return "", nil
}

// ListDirectory returns the names of all index entries below a directory,
// relative to it and in first-seen index order without duplicates.
//
// Without recursion, entries in subdirectories are collapsed into the name of
// the immediate subdirectory with a trailing slash. With recursion, the full
// relative path of every file is returned instead.
//
// Directories are matched as plain string prefixes of the entry paths, so
// "/a" also lists the file "/ab" (as "b"). Callers wanting strict directory
// semantics should pass the directory with a trailing slash.
func (v *Handler) ListDirectory(dir string, recursive bool) ([]string, error) {
	v.RLock()
	defer v.RUnlock()

	entries, err := v.indexHandler.Read()
	if err != nil {
		return nil, fmt.Errorf("(vfs-list) %w", err)
	}

	dir = NormalizePath(dir)

	names := []string{}
	seen := make(map[string]struct{})

	for _, e := range entries {
		name, ok := childName(e.Path, dir, recursive)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names, nil
}

// CreateFile creates a new virtual file and its empty sector file, returning
// the allocated sector id. The caller uses the sector id for any content I/O.
//
// An existing virtual file at the same path is deleted first if overwrite is
// set, otherwise [ErrFileAlreadyExists] is returned. The new sector is the
// lowest free one after that deletion.
//
// The index line is appended before the sector file is created. If the
// creation of the sector file fails, [ErrCannotOpenFile] is returned and the
// index keeps an entry pointing at a missing sector file, which is reported
// by [Handler.Check].
func (v *Handler) CreateFile(path string, overwrite bool) (string, error) {
	v.Lock()
	defer v.Unlock()

	path = NormalizePath(path)

	indexFile, err := v.indexHandler.OpenAppend()
	if err != nil {
		return "", fmt.Errorf("(vfs-create) %w", err)
	}
	defer indexFile.Close()

	entries, err := v.indexHandler.Read()
	if err != nil {
		return "", fmt.Errorf("(vfs-create) %w", err)
	}

	if findEntry(entries, path) >= 0 {
		if !overwrite {
			return "", fmt.Errorf("(vfs-create) %w: %s", ErrFileAlreadyExists, path)
		}

		slog.Debug("Overwriting existing virtual file.",
			"path", path,
		)

		if err := v.deleteFile(path); err != nil {
			return "", fmt.Errorf("(vfs-create) failed to overwrite: %w", err)
		}

		entries, err = v.indexHandler.Read()
		if err != nil {
			return "", fmt.Errorf("(vfs-create) %w", err)
		}
	}

	entry := index.Entry{
		Path:   path,
		Sector: allocation.NextFreeSector(entries),
	}

	if err := index.WriteEntries(indexFile, entry); err != nil {
		return "", fmt.Errorf("(vfs-create) %w", err)
	}

	if err := indexFile.Close(); err != nil {
		return "", fmt.Errorf("(vfs-create) failed to close index: %w", err)
	}

	if err := v.truncateSector(entry.Sector); err != nil {
		return "", fmt.Errorf("(vfs-create) %w", err)
	}

	slog.Debug("Created virtual file.",
		"path", entry.Path,
		"sector", entry.Sector,
	)

	return entry.Sector, nil
}

// DeleteFile removes a virtual file from the index and empties its sector
// file, which is left in place and becomes free for reuse. It returns
// [ErrFileNotFound] if the path is not present in the index.
func (v *Handler) DeleteFile(path string) error {
	v.Lock()
	defer v.Unlock()

	if err := v.deleteFile(NormalizePath(path)); err != nil {
		return fmt.Errorf("(vfs-delete) %w", err)
	}

	return nil
}

// deleteFile is the lock-free implementation of [Handler.DeleteFile] for an
// already normalized path.
func (v *Handler) deleteFile(path string) error {
	entries, err := v.indexHandler.Read()
	if err != nil {
		return err
	}

	pos := findEntry(entries, path)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	sector := entries[pos].Sector
	if err := v.truncateSector(sector); err != nil {
		return err
	}

	remaining := slices.DeleteFunc(entries, func(e index.Entry) bool {
		return e.Path == path
	})

	if err := v.indexHandler.Write(remaining); err != nil {
		return err
	}

	slog.Debug("Deleted virtual file.",
		"path", path,
		"sector", sector,
	)

	return nil
}
