// Package validation implements validation of the application configuration
// before the backing store is touched.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/desertwitch/sectorvfs/internal/configuration"
	"github.com/desertwitch/sectorvfs/internal/index"
)

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
}

// ValidateConfiguration checks an [configuration.AppConfiguration] for
// consistency. The root directory must exist, the index name must be a bare
// file name that cannot be mistaken for a sector file.
func ValidateConfiguration(cfg *configuration.AppConfiguration, osHandler osProvider) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return ErrRootNotSet
	}

	if err := validateIndexName(cfg.IndexName); err != nil {
		return err
	}

	fi, err := osHandler.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("(validation) failed to stat root %s: %w", cfg.Root, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDir, cfg.Root)
	}

	return nil
}

func validateIndexName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidIndexName, name)

	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidIndexName, name)

	case index.IsSectorName(name):
		return fmt.Errorf("%w: %q collides with a sector file", ErrInvalidIndexName, name)
	}

	return nil
}
