package validation

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/sectorvfs/internal/configuration"
	"github.com/desertwitch/sectorvfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateConfiguration tests the configuration validation.
func TestValidateConfiguration(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	t.Run("Success_Valid", func(t *testing.T) {
		cfg := &configuration.AppConfiguration{Root: dir, IndexName: "index.txt"}
		require.NoError(t, ValidateConfiguration(cfg, &schema.OS{}))
	})

	t.Run("Fail_RootNotSet", func(t *testing.T) {
		cfg := &configuration.AppConfiguration{Root: " ", IndexName: "index.txt"}
		require.ErrorIs(t, ValidateConfiguration(cfg, &schema.OS{}), ErrRootNotSet)
	})

	t.Run("Fail_RootMissing", func(t *testing.T) {
		cfg := &configuration.AppConfiguration{Root: filepath.Join(dir, "nope"), IndexName: "index.txt"}
		require.ErrorIs(t, ValidateConfiguration(cfg, &schema.OS{}), fs.ErrNotExist)
	})

	t.Run("Fail_RootNotDir", func(t *testing.T) {
		cfg := &configuration.AppConfiguration{Root: file, IndexName: "index.txt"}
		err := ValidateConfiguration(cfg, &schema.OS{})
		require.ErrorIs(t, err, ErrRootNotDir)
		assert.Contains(t, err.Error(), file)
	})

	for _, name := range []string{"", "..", "sub/index.txt", "7"} {
		t.Run("Fail_IndexName_"+name, func(t *testing.T) {
			cfg := &configuration.AppConfiguration{Root: dir, IndexName: name}
			require.ErrorIs(t, ValidateConfiguration(cfg, &schema.OS{}), ErrInvalidIndexName)
		})
	}
}
