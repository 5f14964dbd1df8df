package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/desertwitch/sectorvfs/internal/filesystem"
	"github.com/desertwitch/sectorvfs/internal/index"
	sectorio "github.com/desertwitch/sectorvfs/internal/io"
	"github.com/desertwitch/sectorvfs/internal/schema"
	"github.com/desertwitch/sectorvfs/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	stdin  *bytes.Buffer
	stdout *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	osProvider := &schema.OS{}
	store := schema.NewStore(t.TempDir(), "")
	stdin := &bytes.Buffer{}
	stdout := &bytes.Buffer{}

	app := NewApp(
		store,
		vfs.NewHandler(store, index.NewHandler(store.GetIndexPath(), osProvider), osProvider),
		filesystem.NewHandler(osProvider, &schema.Unix{}),
		sectorio.NewHandler(osProvider),
		stdin,
		stdout,
	)

	return &testApp{App: app, stdin: stdin, stdout: stdout}
}

func (ta *testApp) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ta.stdout.Reset()
	err := ta.Run(context.Background(), func() {}, args)

	return ta.stdout.String(), err
}

// TestApp_Lifecycle tests the commands on a fresh backing store.
func TestApp_Lifecycle(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)

	_, err := ta.run(t, "init")
	require.NoError(t, err)

	out, err := ta.run(t, "create", "/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	ta.stdin.WriteString("hello world")
	_, err = ta.run(t, "put", "docs/b/c.txt")
	require.NoError(t, err)

	out, err = ta.run(t, "cat", "/docs/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	out, err = ta.run(t, "sector", "/docs/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = ta.run(t, "ls", "/docs")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb/\n", out)

	out, err = ta.run(t, "ls", "-r", "/docs")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb/c.txt\n", out)

	out, err = ta.run(t, "info", "/docs/b/c.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Sector:  1")
	assert.Contains(t, out, "11 bytes")

	_, err = ta.run(t, "exists", "/docs/a.txt")
	require.NoError(t, err)

	_, err = ta.run(t, "delete", "/docs/a.txt")
	require.NoError(t, err)

	_, err = ta.run(t, "exists", "/docs/a.txt")
	require.ErrorIs(t, err, ErrNotExists)

	out, err = ta.run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 1")
	assert.Contains(t, out, "Free sector files: 0")

	out, err = ta.run(t, "stat")
	require.NoError(t, err)
	assert.Contains(t, out, "Files: 1")
}

// TestApp_Failures tests the error propagation of the commands.
func TestApp_Failures(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	_, err := ta.run(t, "init")
	require.NoError(t, err)

	_, err = ta.run(t, "create", "/x")
	require.NoError(t, err)

	t.Run("Fail_NoOverwrite", func(t *testing.T) {
		_, err := ta.run(t, "create", "-no-overwrite", "/x")
		require.ErrorIs(t, err, vfs.ErrFileAlreadyExists)
	})

	t.Run("Fail_DeleteMissing", func(t *testing.T) {
		_, err := ta.run(t, "delete", "/missing")
		require.ErrorIs(t, err, vfs.ErrFileNotFound)
	})

	t.Run("Fail_SectorMissing", func(t *testing.T) {
		_, err := ta.run(t, "sector", "missing")
		require.ErrorIs(t, err, vfs.ErrFileNotFound)
		assert.Contains(t, err.Error(), "/missing")
	})

	t.Run("Fail_CatMissing", func(t *testing.T) {
		_, err := ta.run(t, "cat", "/missing")
		require.ErrorIs(t, err, vfs.ErrFileNotFound)
	})
}

// TestApp_Usage tests the rejection of invalid command lines.
func TestApp_Usage(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)

	for _, args := range [][]string{
		{},
		{"bogus"},
		{"create"},
		{"create", "/a", "/b"},
		{"ls", "-x"},
		{"check", "extra"},
	} {
		t.Run(strings.Join(append([]string{"Fail"}, args...), "_"), func(t *testing.T) {
			_, err := ta.run(t, args...)
			require.ErrorIs(t, err, ErrUsage)
		})
	}
}

// TestApp_CheckDangling tests that the check command fails on a dangling
// index entry.
func TestApp_CheckDangling(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)
	_, err := ta.run(t, "create", "/a")
	require.NoError(t, err)

	require.NoError(t, os.Remove(ta.store.GetSectorPath("0")))

	out, err := ta.run(t, "check")
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "dangling: /a (sector 0 missing)")
}
