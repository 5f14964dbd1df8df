package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/desertwitch/sectorvfs/internal/allocation"
	"github.com/desertwitch/sectorvfs/internal/index"
)

// CheckReport is the result of an integrity check of the backing store.
type CheckReport struct {
	// Entries is the amount of entries in the index.
	Entries int

	// Dangling are entries whose sector file does not exist, as left behind
	// by a [Handler.CreateFile] interrupted after updating the index.
	Dangling []index.Entry

	// DuplicatePaths are virtual paths present more than once in the index.
	DuplicatePaths []string

	// DuplicateSectors are sector ids referenced by more than one entry.
	DuplicateSectors []string

	// Unreferenced are sector files not referenced by the index. Deleted
	// files leave their emptied sector files behind, so these are expected.
	Unreferenced []string
}

// Healthy reports whether the check found no inconsistencies. Unreferenced
// sector files do not count as inconsistencies.
func (r *CheckReport) Healthy() bool {
	return len(r.Dangling) == 0 && len(r.DuplicatePaths) == 0 && len(r.DuplicateSectors) == 0
}

// Check verifies the consistency of the index with the backing store. It
// does not modify anything.
func (v *Handler) Check() (*CheckReport, error) {
	v.RLock()
	defer v.RUnlock()

	entries, err := v.indexHandler.Read()
	if err != nil {
		return nil, fmt.Errorf("(vfs-check) %w", err)
	}

	report := &CheckReport{
		Entries:          len(entries),
		Dangling:         []index.Entry{},
		DuplicatePaths:   []string{},
		DuplicateSectors: []string{},
		Unreferenced:     []string{},
	}

	paths := make(map[string]int)
	sectors := make(map[string]int)

	for _, e := range entries {
		paths[e.Path]++
		if paths[e.Path] == 2 { //nolint:mnd
			report.DuplicatePaths = append(report.DuplicatePaths, e.Path)
		}

		sectors[e.Sector]++
		if sectors[e.Sector] == 2 { //nolint:mnd
			report.DuplicateSectors = append(report.DuplicateSectors, e.Sector)
		}

		if _, err := v.osHandler.Stat(v.store.GetSectorPath(e.Sector)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Warn("Index entry points at a missing sector file.",
					"path", e.Path,
					"sector", e.Sector,
				)
				report.Dangling = append(report.Dangling, e)

				continue
			}

			return nil, fmt.Errorf("(vfs-check) failed to stat sector %s: %w", e.Sector, err)
		}
	}

	dirEntries, err := v.osHandler.ReadDir(v.store.GetFSPath())
	if err != nil {
		return nil, fmt.Errorf("(vfs-check) failed to readdir: %w", err)
	}

	used := allocation.UsedSectors(entries)
	for _, d := range dirEntries {
		if d.IsDir() || !index.IsSectorName(d.Name()) {
			continue
		}
		if _, ok := used[d.Name()]; !ok {
			report.Unreferenced = append(report.Unreferenced, d.Name())
		}
	}

	return report, nil
}
