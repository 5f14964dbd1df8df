package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/desertwitch/sectorvfs/internal/filesystem"
	"github.com/desertwitch/sectorvfs/internal/index"
	"github.com/desertwitch/sectorvfs/internal/schema"
	"github.com/desertwitch/sectorvfs/internal/ui"
	"github.com/desertwitch/sectorvfs/internal/vfs"
	"github.com/dustin/go-humanize"
)

type vfsProvider interface {
	Initialize() error
	Entries() ([]index.Entry, error)
	FileExists(path string) (bool, error)
	GetFileSector(path string) (string, error)
	ListDirectory(dir string, recursive bool) ([]string, error)
	CreateFile(path string, overwrite bool) (string, error)
	DeleteFile(path string) error
	Check() (*vfs.CheckReport, error)
	SectorPath(sector string) string
}

type fsProvider interface {
	GetDiskUsage(path string) (filesystem.DiskStats, error)
	GetSectorInfo(path string) (filesystem.SectorInfo, error)
}

type ioProvider interface {
	ReadSector(ctx context.Context, sectorPath string, w io.Writer) (int64, error)
	WriteSector(ctx context.Context, sectorPath string, r io.Reader) (int64, error)
}

type command struct {
	name  string
	usage string
	help  string
	run   func(a *App, ctx context.Context, cancel context.CancelFunc, args []string) error
}

//nolint:gochecknoglobals
var commands = []command{
	{"init", "", "create the index file if it does not exist", (*App).cmdInit},
	{"create", "[-no-overwrite] PATH", "create an empty file, print its sector", (*App).cmdCreate},
	{"delete", "PATH", "delete a file and empty its sector", (*App).cmdDelete},
	{"exists", "PATH", "exit with 0 if a file exists, 1 otherwise", (*App).cmdExists},
	{"sector", "PATH", "print the sector of a file", (*App).cmdSector},
	{"ls", "[-r] [DIR]", "list a directory", (*App).cmdList},
	{"info", "PATH", "print sector, size and checksum of a file", (*App).cmdInfo},
	{"put", "[-no-overwrite] PATH", "write standard input into a file", (*App).cmdPut},
	{"cat", "PATH", "write a file to standard output", (*App).cmdCat},
	{"check", "", "verify the index against the sector files", (*App).cmdCheck},
	{"stat", "", "print usage of the backing store", (*App).cmdStat},
	{"browse", "[DIR]", "browse the file system interactively", (*App).cmdBrowse},
}

// App is the principal command-line application.
type App struct {
	store      *schema.Store
	vfsHandler vfsProvider
	fsHandler  fsProvider
	ioHandler  ioProvider
	stdin      io.Reader
	stdout     io.Writer
}

// NewApp returns a pointer to a new [App].
func NewApp(store *schema.Store, vfsHandler vfsProvider, fsHandler fsProvider, ioHandler ioProvider, stdin io.Reader, stdout io.Writer) *App {
	return &App{
		store:      store,
		vfsHandler: vfsHandler,
		fsHandler:  fsHandler,
		ioHandler:  ioHandler,
		stdin:      stdin,
		stdout:     stdout,
	}
}

// Run executes the command named by the first argument.
func (app *App) Run(ctx context.Context, cancel context.CancelFunc, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	for _, c := range commands {
		if c.name == args[0] {
			if err := c.run(app, ctx, cancel, args[1:]); err != nil {
				return fmt.Errorf("(%s) %w", c.name, err)
			}

			return nil
		}
	}

	return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
}

// parseArgs parses the flags of a command and returns its positional
// arguments, which must be between minArgs and maxArgs in count.
func parseArgs(fs *flag.FlagSet, args []string, minArgs int, maxArgs int) ([]string, error) {
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rest := fs.Args()
	if len(rest) < minArgs || len(rest) > maxArgs {
		return nil, fmt.Errorf("%w: %s expects %d to %d arguments, got %d", ErrUsage, fs.Name(), minArgs, maxArgs, len(rest))
	}

	return rest, nil
}

func (app *App) cmdInit(_ context.Context, _ context.CancelFunc, args []string) error {
	if _, err := parseArgs(flag.NewFlagSet("init", flag.ContinueOnError), args, 0, 0); err != nil {
		return err
	}

	if err := app.vfsHandler.Initialize(); err != nil {
		return err
	}

	slog.Info("Initialized the virtual file system.",
		"index", app.store.GetIndexPath(),
	)

	return nil
}

func (app *App) cmdCreate(_ context.Context, _ context.CancelFunc, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	noOverwrite := fs.Bool("no-overwrite", false, "fail if the file exists")

	rest, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	sector, err := app.vfsHandler.CreateFile(rest[0], !*noOverwrite)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, sector)

	return nil
}

func (app *App) cmdDelete(_ context.Context, _ context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("delete", flag.ContinueOnError), args, 1, 1)
	if err != nil {
		return err
	}

	return app.vfsHandler.DeleteFile(rest[0])
}

func (app *App) cmdExists(_ context.Context, _ context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("exists", flag.ContinueOnError), args, 1, 1)
	if err != nil {
		return err
	}

	exists, err := app.vfsHandler.FileExists(rest[0])
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotExists
	}

	return nil
}

// lookupSector returns the sector of a path, failing if it does not exist.
func (app *App) lookupSector(path string) (string, error) {
	sector, err := app.vfsHandler.GetFileSector(path)
	if err != nil {
		return "", err
	}
	if sector == "" {
		return "", fmt.Errorf("%w: %s", vfs.ErrFileNotFound, vfs.NormalizePath(path))
	}

	return sector, nil
}

func (app *App) cmdSector(_ context.Context, _ context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("sector", flag.ContinueOnError), args, 1, 1)
	if err != nil {
		return err
	}

	sector, err := app.lookupSector(rest[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, sector)

	return nil
}

func (app *App) cmdList(_ context.Context, _ context.CancelFunc, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	recursive := fs.Bool("r", false, "list recursively")

	rest, err := parseArgs(fs, args, 0, 1)
	if err != nil {
		return err
	}

	dir := "/"
	if len(rest) == 1 {
		dir = rest[0]
	}

	names, err := app.vfsHandler.ListDirectory(dir, *recursive)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(app.stdout, name)
	}

	return nil
}

func (app *App) cmdInfo(_ context.Context, _ context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("info", flag.ContinueOnError), args, 1, 1)
	if err != nil {
		return err
	}

	sector, err := app.lookupSector(rest[0])
	if err != nil {
		return err
	}

	info, err := app.fsHandler.GetSectorInfo(app.vfsHandler.SectorPath(sector))
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Path:    %s\n", vfs.NormalizePath(rest[0]))
	fmt.Fprintf(app.stdout, "Sector:  %s\n", sector)
	fmt.Fprintf(app.stdout, "File:    %s\n", info.Path)
	fmt.Fprintf(app.stdout, "Size:    %s (%d bytes)\n", humanize.Bytes(info.Size), info.Size)
	fmt.Fprintf(app.stdout, "BLAKE3:  %s\n", info.Checksum)

	return nil
}

func (app *App) cmdPut(ctx context.Context, _ context.CancelFunc, args []string) error {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	noOverwrite := fs.Bool("no-overwrite", false, "fail if the file exists")

	rest, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}

	sector, err := app.vfsHandler.CreateFile(rest[0], !*noOverwrite)
	if err != nil {
		return err
	}

	n, err := app.ioHandler.WriteSector(ctx, app.vfsHandler.SectorPath(sector), app.stdin)
	if err != nil {
		return err
	}

	slog.Debug("Wrote virtual file.",
		"path", vfs.NormalizePath(rest[0]),
		"sector", sector,
		"size", humanize.Bytes(uint64(n)), //nolint:gosec
	)

	return nil
}

func (app *App) cmdCat(ctx context.Context, _ context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("cat", flag.ContinueOnError), args, 1, 1)
	if err != nil {
		return err
	}

	sector, err := app.lookupSector(rest[0])
	if err != nil {
		return err
	}

	_, err = app.ioHandler.ReadSector(ctx, app.vfsHandler.SectorPath(sector), app.stdout)

	return err
}

func (app *App) cmdCheck(_ context.Context, _ context.CancelFunc, args []string) error {
	if _, err := parseArgs(flag.NewFlagSet("check", flag.ContinueOnError), args, 0, 0); err != nil {
		return err
	}

	report, err := app.vfsHandler.Check()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Entries: %d\n", report.Entries)
	for _, e := range report.Dangling {
		fmt.Fprintf(app.stdout, "dangling: %s (sector %s missing)\n", e.Path, e.Sector)
	}
	for _, p := range report.DuplicatePaths {
		fmt.Fprintf(app.stdout, "duplicate path: %s\n", p)
	}
	for _, s := range report.DuplicateSectors {
		fmt.Fprintf(app.stdout, "duplicate sector: %s\n", s)
	}
	if len(report.Unreferenced) > 0 {
		fmt.Fprintf(app.stdout, "Free sector files: %s\n", strings.Join(report.Unreferenced, ", "))
	}

	if !report.Healthy() {
		return ErrCheckFailed
	}

	return nil
}

func (app *App) cmdStat(_ context.Context, _ context.CancelFunc, args []string) error {
	if _, err := parseArgs(flag.NewFlagSet("stat", flag.ContinueOnError), args, 0, 0); err != nil {
		return err
	}

	stats, err := app.fsHandler.GetDiskUsage(app.store.GetFSPath())
	if err != nil {
		return err
	}

	entries, err := app.vfsHandler.Entries()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Root:  %s\n", app.store.GetFSPath())
	fmt.Fprintf(app.stdout, "Index: %s\n", app.store.GetIndexPath())
	fmt.Fprintf(app.stdout, "Files: %d\n", len(entries))
	fmt.Fprintf(app.stdout, "Total: %s\n", humanize.Bytes(stats.TotalSize))
	fmt.Fprintf(app.stdout, "Used:  %s\n", humanize.Bytes(stats.UsedSpace()))
	fmt.Fprintf(app.stdout, "Free:  %s\n", humanize.Bytes(stats.FreeSpace))

	return nil
}

func (app *App) cmdBrowse(ctx context.Context, cancel context.CancelFunc, args []string) error {
	rest, err := parseArgs(flag.NewFlagSet("browse", flag.ContinueOnError), args, 0, 1)
	if err != nil {
		return err
	}

	dir := "/"
	if len(rest) == 1 {
		dir = rest[0]
	}

	uiHandler := ui.NewHandler(ctx, cancel, app.vfsHandler, app.fsHandler, dir)

	prevLogger := slog.Default()
	defer slog.SetDefault(prevLogger)

	slog.SetDefault(slog.New(uiHandler.LogWriter.Handler(slog.LevelDebug)))

	return uiHandler.Launch()
}
