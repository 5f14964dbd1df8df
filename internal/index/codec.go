package index

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// Delimiter separates the virtual path from the sector id. The last
	// occurrence in a line is the delimiter, the path itself may contain it.
	Delimiter = "/"

	maxLineSize = 1 << 20
)

// Entry is a single mapping of a virtual path to a sector id.
type Entry struct {
	Path   string
	Sector string
}

// String returns the index line representation of an [Entry] (without the
// line terminator).
func (e Entry) String() string {
	return e.Path + Delimiter + e.Sector
}

// Parse reads an index from a reader, one [Entry] per line, in file order.
// Blank lines are skipped, any other line without a [Delimiter] results in
// [ErrMalformedIndex].
func Parse(r io.Reader) ([]Entry, error) {
	entries := []Entry{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("(index-parse) line %d: %w", lineNum, err)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("(index-parse) failed to scan: %w", err)
	}

	return entries, nil
}

// ParseLine splits a single index line at its last [Delimiter]. The part after
// it must be a sector id as recognized by [IsSectorName], anything else would
// resolve to a file other than a sector inside the backing store.
func ParseLine(line string) (Entry, error) {
	pos := strings.LastIndex(line, Delimiter)
	if pos < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedIndex, line)
	}

	entry := Entry{
		Path:   line[:pos],
		Sector: line[pos+1:],
	}

	if !IsSectorName(entry.Sector) {
		return Entry{}, fmt.Errorf("%w: invalid sector %q in %q", ErrMalformedIndex, entry.Sector, line)
	}

	return entry, nil
}

// IsSectorName reports whether name is the canonical decimal form of a
// non-negative integer, which is the only valid form of a sector id.
func IsSectorName(name string) bool {
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return false
	}

	return strconv.Itoa(n) == name
}

// WriteEntries writes the given entries to a writer, one terminated line per
// [Entry], preserving argument order.
func WriteEntries(w io.Writer, entries ...Entry) error {
	bw := bufio.NewWriter(w)

	for _, e := range entries {
		if _, err := bw.WriteString(e.String() + "\n"); err != nil {
			return fmt.Errorf("(index-write) failed to write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("(index-write) failed to flush: %w", err)
	}

	return nil
}
