// Package configuration implements reading of the application configuration
// from dotenv-style files.
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/desertwitch/sectorvfs/internal/schema"
)

const (
	KeyRoot      = "SECTORVFS_ROOT"
	KeyIndexName = "SECTORVFS_INDEX"
	KeyLogLevel  = "SECTORVFS_LOG_LEVEL"

	DefaultLogLevel = "info"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	Root      string
	IndexName string
	LogLevel  string
}

// Handler is the principal implementation of the configuration reader.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

// MapKeyToString returns the value of a key, or an empty string if the key is
// not present.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToStringDefault returns the (whitespace-trimmed) value of a key, or the
// given default if the key is not present or empty.
func (c *Handler) MapKeyToStringDefault(envMap map[string]string, key string, def string) string {
	if value := strings.TrimSpace(c.MapKeyToString(envMap, key)); value != "" {
		return value
	}

	return def
}

// Load reads an [AppConfiguration] from a configuration file. A configuration
// file that does not exist is not an error, the defaults are returned then.
func (c *Handler) Load(filename string) (*AppConfiguration, error) {
	envMap := map[string]string{}

	if filename != "" {
		data, err := c.ReadGeneric(filename)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("(config) failed to read %s: %w", filename, err)
			}

			slog.Debug("Configuration file not found, using defaults.",
				"path", filename,
			)
		} else {
			envMap = data
		}
	}

	return &AppConfiguration{
		Root:      c.MapKeyToStringDefault(envMap, KeyRoot, schema.DefaultRoot),
		IndexName: c.MapKeyToStringDefault(envMap, KeyIndexName, schema.DefaultIndexName),
		LogLevel:  strings.ToLower(c.MapKeyToStringDefault(envMap, KeyLogLevel, DefaultLogLevel)),
	}, nil
}

// SlogLevel returns the [slog.Level] of the configured log level. Unknown
// levels fall back to [slog.LevelInfo].
func (a *AppConfiguration) SlogLevel() slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(a.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}
