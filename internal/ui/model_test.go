package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/sectorvfs/internal/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowser serves listings from a fixed map of directories.
type fakeBrowser struct {
	dirs    map[string][]string
	sectors map[string]string
}

func (b *fakeBrowser) ListDirectory(dir string, _ bool) ([]string, error) {
	names, ok := b.dirs[dir]
	if !ok {
		return nil, errors.New("no such directory")
	}

	return names, nil
}

func (b *fakeBrowser) GetFileSector(path string) (string, error) {
	return b.sectors[path], nil
}

func (b *fakeBrowser) SectorPath(sector string) string {
	return "/usd/" + sector
}

type fakeInspector struct{}

func (fakeInspector) GetSectorInfo(path string) (filesystem.SectorInfo, error) {
	return filesystem.SectorInfo{Path: path, Size: 2048, Checksum: "abc"}, nil
}

func newTestModel() TeaModel {
	browser := &fakeBrowser{
		dirs: map[string][]string{
			"/":     {"a/", "z.txt"},
			"/a/":   {"b.txt", "c/"},
			"/a/c/": {"d.txt"},
		},
		sectors: map[string]string{
			"/z.txt":     "1",
			"/a/b.txt":   "0",
			"/a/c/d.txt": "2",
		},
	}

	return NewTeaModel(browser, fakeInspector{}, "", func() {})
}

// update applies a message and then executes the resulting commands, feeding
// their messages back into the model until no further command is returned.
func update(t *testing.T, m TeaModel, msg tea.Msg) TeaModel {
	t.Helper()

	for range 10 {
		next, cmd := m.Update(msg)
		model, ok := next.(TeaModel)
		require.True(t, ok)
		m = model

		if cmd == nil {
			return m
		}
		if msg = cmd(); msg == nil {
			return m
		}
	}

	return m
}

// TestDirPaths tests the directory path helpers.
func TestDirPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", dirPath(""))
	assert.Equal(t, "/a/", dirPath("a"))
	assert.Equal(t, "/a/b/", dirPath("/a/b/"))

	assert.Equal(t, "/", parentDir("/"))
	assert.Equal(t, "/", parentDir("/a/"))
	assert.Equal(t, "/a/", parentDir("/a/c/"))
}

// TestTeaModel_Navigation tests browsing into and out of directories.
func TestTeaModel_Navigation(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m = update(t, m, m.Init()())

	assert.Equal(t, "/", m.dir)
	assert.Equal(t, []string{"a/", "z.txt"}, m.names)
	assert.Nil(t, m.details, "directories are not inspected")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/a/", m.dir)
	assert.Equal(t, []string{"b.txt", "c/"}, m.names)
	require.NotNil(t, m.details, "first file must be inspected")
	assert.Equal(t, "/a/b.txt", m.details.path)
	assert.Equal(t, "0", m.details.sector)
	assert.Equal(t, "/usd/0", m.details.info.Path)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)
	assert.Nil(t, m.details)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	assert.Equal(t, "/a/c/", m.dir)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "/a/", m.dir)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "/", m.dir)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, m.details)
	assert.Equal(t, "/z.txt", m.details.path)
}

// TestTeaModel_ListingError tests that a failed listing keeps the old state.
func TestTeaModel_ListingError(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m = update(t, m, m.Init()())

	m = update(t, m, listingMsg{dir: "/gone/", err: errors.New("no such directory")})
	require.Error(t, m.err)
	assert.Equal(t, "/", m.dir)
	assert.Equal(t, []string{"a/", "z.txt"}, m.names)
}

// TestTeaModel_View tests that the view renders once the size is known.
func TestTeaModel_View(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	assert.Equal(t, "Loading the GUI...", m.View())

	m = update(t, m, m.Init()())
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, logMsg("hello log\n"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	view := m.View()
	assert.Contains(t, view, "z.txt")
	assert.Contains(t, view, "2.0 kB")
	assert.Contains(t, view, "hello log")
}

// TestTeaModel_Quit tests that ctrl+c cancels the application context.
func TestTeaModel_Quit(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	m := NewTeaModel(&fakeBrowser{}, fakeInspector{}, "/", cancel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
