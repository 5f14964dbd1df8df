// Package io implements reading and writing of sector file contents. The
// contents are opaque to the virtual file system, these are thin wrappers
// around the backing store with cancellation and write verification.
package io

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// Handler is the principal implementation of the sector content I/O.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new sector content I/O [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// ReadSector copies the contents of an existing sector file into w.
func (i *Handler) ReadSector(ctx context.Context, sectorPath string, w io.Writer) (int64, error) {
	f, err := i.osHandler.Open(sectorPath)
	if err != nil {
		return 0, fmt.Errorf("(io-read) failed to open sector file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, &contextReader{ctx: ctx, reader: f})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return n, fmt.Errorf("(io-read) read canceled: %w", err)
		}

		return n, fmt.Errorf("(io-read) failed to copy: %w", err)
	}

	return n, nil
}

// WriteSector replaces the contents of an existing sector file with those
// read from r. The sector file is read back after syncing and its checksum
// compared to the one of the written data.
func (i *Handler) WriteSector(ctx context.Context, sectorPath string, r io.Reader) (int64, error) {
	f, err := i.osHandler.OpenFile(sectorPath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return 0, fmt.Errorf("(io-write) failed to open sector file: %w", err)
	}
	defer f.Close()

	srcHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(r, srcHasher),
	}

	n, err := io.Copy(f, ctxReader)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return n, fmt.Errorf("(io-write) write canceled: %w", err)
		}

		return n, fmt.Errorf("(io-write) failed to copy: %w", err)
	}

	if err := f.Sync(); err != nil {
		return n, fmt.Errorf("(io-write) failed to sync sector file: %w", err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("(io-write) failed to close sector file: %w", err)
	}

	dstHasher := blake3.New()
	if _, err := i.ReadSector(ctx, sectorPath, dstHasher); err != nil {
		return n, fmt.Errorf("(io-write) failed to verify: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return n, fmt.Errorf("(io-write) %w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	return n, nil
}
