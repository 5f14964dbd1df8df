package allocation

import (
	"testing"

	"github.com/desertwitch/sectorvfs/internal/index"
	"github.com/stretchr/testify/assert"
)

// TestNextFreeSector tests the lowest-free sector allocation.
func TestNextFreeSector(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		sectors []string
		want    string
	}{
		{"Success_EmptyIndex", nil, "0"},
		{"Success_Dense", []string{"0", "1", "2"}, "3"},
		{"Success_ReuseGap", []string{"0", "2"}, "1"},
		{"Success_ReuseZero", []string{"1", "2"}, "0"},
		{"Success_Unordered", []string{"3", "0", "2", "1", "5"}, "4"},
		{"Success_IgnoresNonCanonical", []string{"00", "x", "1"}, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries := make([]index.Entry, 0, len(tc.sectors))
			for _, s := range tc.sectors {
				entries = append(entries, index.Entry{Path: "/f" + s, Sector: s})
			}
			assert.Equal(t, tc.want, NextFreeSector(entries))
		})
	}
}
