package vfs

import (
	"strings"

	"github.com/desertwitch/sectorvfs/internal/index"
)

// NormalizePath makes a virtual path absolute by prepending a slash, if it
// does not already start with one. No other cleaning takes place.
func NormalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}

	return "/" + p
}

// findEntry returns the position of the first [index.Entry] with the given
// (normalized) path, or -1 if there is none.
func findEntry(entries []index.Entry, path string) int {
	for i, e := range entries {
		if e.Path == path {
			return i
		}
	}

	return -1
}

// childName returns the name of an entry relative to a directory, as it is
// listed by [Handler.ListDirectory]. The match is a plain string prefix test
// without any path boundary check, so that directory "/a" also matches the
// file "/ab" (as "b"). The boolean is false if the entry is not listed.
func childName(entryPath string, dir string, recursive bool) (string, bool) {
	if !strings.HasPrefix(entryPath, dir) {
		return "", false
	}

	name := strings.TrimPrefix(entryPath[len(dir):], "/")
	if name == "" {
		return "", false
	}

	if !recursive {
		if pos := strings.Index(name, "/"); pos >= 0 {
			name = name[:pos+1]
		}
	}

	return name, true
}
