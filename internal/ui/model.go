package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/sectorvfs/internal/filesystem"
	"github.com/dustin/go-humanize"
)

const (
	maxLogLines = 100
)

//nolint:gochecknoglobals
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	dirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// listingMsg carries the result of listing a directory.
type listingMsg struct {
	dir   string
	names []string
	err   error
}

// detailsMsg carries the result of inspecting a virtual file.
type detailsMsg struct {
	path   string
	sector string
	info   filesystem.SectorInfo
	err    error
}

// TeaModel is the [tea.Model] of the browser. Directories are always kept with
// a trailing slash, so that listings do not match sibling prefixes.
type TeaModel struct {
	width  int
	height int

	cancel context.CancelFunc

	browser   browserProvider
	inspector inspectProvider

	dir     string
	names   []string
	cursor  int
	details *detailsMsg
	err     error

	fullWidthWithBorders  int
	splitWidthWithBorders int

	logsViewport viewport.Model
	logs         []string

	ready bool
}

// NewTeaModel returns a new [TeaModel] browsing at startDir. The cancel
// function is called when the user quits with ctrl+c.
//
//nolint:mnd
func NewTeaModel(browser browserProvider, inspector inspectProvider, startDir string, cancel context.CancelFunc) TeaModel {
	return TeaModel{
		browser:      browser,
		inspector:    inspector,
		dir:          dirPath(startDir),
		names:        []string{},
		logsViewport: viewport.New(80, 10),
		logs:         make([]string, 0, maxLogLines),
		cancel:       cancel,
	}
}

// dirPath returns a directory in its absolute form with a trailing slash.
func dirPath(dir string) string {
	if !strings.HasPrefix(dir, "/") {
		dir = "/" + dir
	}
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir
}

// parentDir returns the parent of a directory in the form of [dirPath].
func parentDir(dir string) string {
	trimmed := strings.TrimSuffix(dirPath(dir), "/")
	if pos := strings.LastIndex(trimmed, "/"); pos >= 0 {
		return trimmed[:pos+1]
	}

	return "/"
}

func loadDirectory(browser browserProvider, dir string) tea.Cmd {
	return func() tea.Msg {
		names, err := browser.ListDirectory(dir, false)

		return listingMsg{dir: dir, names: names, err: err}
	}
}

func loadDetails(browser browserProvider, inspector inspectProvider, path string) tea.Cmd {
	return func() tea.Msg {
		sector, err := browser.GetFileSector(path)
		if err != nil {
			return detailsMsg{path: path, err: err}
		}
		if sector == "" {
			return detailsMsg{path: path, err: fmt.Errorf("%s is no longer in the index", path)}
		}

		info, err := inspector.GetSectorInfo(browser.SectorPath(sector))

		return detailsMsg{path: path, sector: sector, info: info, err: err}
	}
}

func (m TeaModel) Init() tea.Cmd {
	return loadDirectory(m.browser, m.dir)
}

func (m TeaModel) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.names) {
		return "", false
	}

	return m.names[m.cursor], true
}

// selectionCmd returns the command inspecting the selected entry, or nil if
// the selection is a directory or there is none.
func (m TeaModel) selectionCmd() tea.Cmd {
	name, ok := m.selected()
	if !ok || strings.HasSuffix(name, "/") {
		return nil
	}

	return loadDetails(m.browser, m.inspector, m.dir+name)
}

//nolint:ireturn
func (m TeaModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()

		return m, tea.Quit

	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.details = nil

		return m, m.selectionCmd()

	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
		m.details = nil

		return m, m.selectionCmd()

	case "enter", "right", "l":
		name, ok := m.selected()
		if !ok || !strings.HasSuffix(name, "/") {
			return m, m.selectionCmd()
		}

		return m, loadDirectory(m.browser, m.dir+name)

	case "backspace", "left", "h":
		if m.dir == "/" {
			return m, nil
		}

		return m, loadDirectory(m.browser, parentDir(m.dir))

	case "r":
		return m, loadDirectory(m.browser, m.dir)
	}

	var cmd tea.Cmd
	m.logsViewport, cmd = m.logsViewport.Update(msg)

	return m, cmd
}

//nolint:mnd,ireturn
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.splitWidthWithBorders = (m.width / 2) - 2

		// Logs take about a third of the height, minus borders and title.
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = max(m.height/3-3, 1)

		if len(m.logs) > 0 {
			m.logsViewport.SetContent(strings.Join(m.logs, ""))
		}

		m.ready = true

		return m, nil

	case listingMsg:
		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		m.err = nil
		m.dir = msg.dir
		m.names = msg.names
		m.cursor = 0
		m.details = nil

		return m, m.selectionCmd()

	case detailsMsg:
		if name, ok := m.selected(); ok && m.dir+name == msg.path {
			m.details = &msg
		}

		return m, nil

	case logMsg:
		if len(m.logs) >= maxLogLines {
			m.logs = m.logs[1:]
		}
		m.logs = append(m.logs, string(msg))

		m.logsViewport.SetContent(strings.Join(m.logs, ""))
		m.logsViewport.GotoBottom()

		return m, nil
	}

	var cmd tea.Cmd
	m.logsViewport, cmd = m.logsViewport.Update(msg)

	return m, cmd
}

func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	browserSection := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(m.splitWidthWithBorders).Render(m.listingView()),
		borderStyle.Width(m.splitWidthWithBorders).Render(m.detailsView()),
	)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Logs"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	helpSection := helpStyle.
		Width(m.fullWidthWithBorders).
		Render("↑/↓: select • enter: open • backspace: up • r: reload • q: quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		browserSection,
		logsSection,
		helpSection,
	)
}

func (m TeaModel) listingView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Width(m.splitWidthWithBorders).Render(m.dir))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	if len(m.names) == 0 {
		s.WriteString(infoStyle.Render("(empty)"))

		return s.String()
	}

	for i, name := range m.names {
		line := name
		if strings.HasSuffix(name, "/") {
			line = dirStyle.Render(name)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + name)
		} else {
			line = "  " + line
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	return s.String()
}

func (m TeaModel) detailsView() string {
	content := "Select a file to inspect it."

	switch {
	case m.details == nil:
		if name, ok := m.selected(); ok && strings.HasSuffix(name, "/") {
			content = "Directory " + m.dir + name
		}

	case m.details.err != nil:
		content = errorStyle.Render(m.details.err.Error())

	default:
		content = fmt.Sprintf(
			"Path: %s\nSector: %s\nBacking file: %s\nSize: %s\nBLAKE3: %s\n",
			m.details.path,
			m.details.sector,
			m.details.info.Path,
			humanize.Bytes(m.details.info.Size),
			m.details.info.Checksum,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.splitWidthWithBorders).Render("Details"),
		"", // Empty line for spacing.
		infoStyle.Width(m.splitWidthWithBorders).Render(content),
	)
}
