// Package ui implements an interactive command-line browser for the virtual
// file system using [tea].
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/sectorvfs/internal/filesystem"
)

type browserProvider interface {
	ListDirectory(dir string, recursive bool) ([]string, error)
	GetFileSector(path string) (string, error)
	SectorPath(sector string) string
}

type inspectProvider interface {
	GetSectorInfo(path string) (filesystem.SectorInfo, error)
}

// Handler is the principal implementation of the user interface [Handler].
type Handler struct {
	program *tea.Program

	LogWriter *TeaLogWriter
}

// NewHandler returns a pointer to a new user interface [Handler], which starts
// browsing at the directory startDir.
func NewHandler(ctx context.Context, cancel context.CancelFunc, browser browserProvider, inspector inspectProvider, startDir string) *Handler {
	handler := &Handler{}

	model := NewTeaModel(browser, inspector, startDir, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]) and
// blocks until it is exited.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
