package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNewStore tests the [Store] constructor and its path derivations.
func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("Success_Defaults", func(t *testing.T) {
		s := NewStore("", "")
		assert.Equal(t, "/usd", s.GetFSPath())
		assert.Equal(t, "/usd/index.txt", s.GetIndexPath())
		assert.Equal(t, "/usd/3", s.GetSectorPath("3"))
	})

	t.Run("Success_Custom", func(t *testing.T) {
		s := NewStore("/mnt/sd/", "map.txt")
		assert.Equal(t, "/mnt/sd/map.txt", s.GetIndexPath())
		assert.Equal(t, "/mnt/sd/12", s.GetSectorPath("12"))
	})
}
