// Package allocation implements the sector allocation of the virtual file
// system. Sectors are always allocated lowest-first, so that the sectors of
// deleted files are reused before the backing store grows.
package allocation

import (
	"strconv"

	"github.com/desertwitch/sectorvfs/internal/index"
)

// NextFreeSector returns the smallest non-negative sector id that is not used
// by any of the given entries, in its decimal textual form.
func NextFreeSector(entries []index.Entry) string {
	used := UsedSectors(entries)

	for candidate := 0; ; candidate++ {
		id := strconv.Itoa(candidate)
		if _, taken := used[id]; !taken {
			return id
		}
	}
}

// UsedSectors returns the set of sector ids referenced by the given entries.
func UsedSectors(entries []index.Entry) map[string]struct{} {
	used := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		used[e.Sector] = struct{}{}
	}

	return used
}
