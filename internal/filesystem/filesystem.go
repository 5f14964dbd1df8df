// Package filesystem implements inspection of the backing store: disk usage
// of the underlying filesystem and size and checksums of sector files.
package filesystem

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
}

// DiskStats are the usage statistics of the filesystem of a backing store.
type DiskStats struct {
	TotalSize uint64
	FreeSpace uint64
}

// UsedSpace returns the used space of the filesystem.
func (d DiskStats) UsedSpace() uint64 {
	if d.FreeSpace > d.TotalSize {
		return 0
	}

	return d.TotalSize - d.FreeSpace
}

// SectorInfo describes a single sector file.
type SectorInfo struct {
	Path     string
	Size     uint64
	Checksum string
}

// Handler is the principal implementation of the backing store inspection.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a pointer to a new inspection [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// GetDiskUsage returns the [DiskStats] of the filesystem containing path.
func (f *Handler) GetDiskUsage(path string) (DiskStats, error) {
	var stat unix.Statfs_t
	if err := f.unixHandler.Statfs(path, &stat); err != nil {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) failed to statfs: %w", err)
	}

	bsize := int64(stat.Bsize) //nolint:unconvert
	if bsize <= 0 {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) %w: block size %d", ErrInvalidStats, bsize)
	}

	return DiskStats{
		TotalSize: stat.Blocks * handleSize(bsize),
		FreeSpace: stat.Bavail * handleSize(bsize),
	}, nil
}

// GetSectorInfo returns size and BLAKE3 checksum of a sector file.
func (f *Handler) GetSectorInfo(path string) (SectorInfo, error) {
	fi, err := f.osHandler.Stat(path)
	if err != nil {
		return SectorInfo{}, fmt.Errorf("(fs-sectorinfo) failed to stat: %w", err)
	}

	sum, err := f.Checksum(path)
	if err != nil {
		return SectorInfo{}, err
	}

	return SectorInfo{
		Path:     path,
		Size:     handleSize(fi.Size()),
		Checksum: sum,
	}, nil
}

// Checksum returns the hex-encoded BLAKE3 checksum of a file's contents.
func (f *Handler) Checksum(path string) (string, error) {
	file, err := f.osHandler.Open(path)
	if err != nil {
		return "", fmt.Errorf("(fs-checksum) failed to open: %w", err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("(fs-checksum) failed to read: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
