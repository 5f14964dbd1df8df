package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertwitch/sectorvfs/internal/configuration"
	"github.com/desertwitch/sectorvfs/internal/filesystem"
	"github.com/desertwitch/sectorvfs/internal/index"
	"github.com/desertwitch/sectorvfs/internal/io"
	"github.com/desertwitch/sectorvfs/internal/schema"
	"github.com/desertwitch/sectorvfs/internal/validation"
	"github.com/desertwitch/sectorvfs/internal/vfs"
	"github.com/lmittmann/tint"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

//nolint:gochecknoglobals
var (
	ExitCode = exitSuccess
	Version  string

	configFile = flag.String("config", "/etc/sectorvfs.cfg", "configuration file")
	rootDir    = flag.String("root", "", "backing store root (overrides configuration)")
	indexName  = flag.String("index", "", "index file name (overrides configuration)")
	debug      = flag.Bool("debug", false, "enable debug logging")
)

func setupLogging(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func usage() {
	out := flag.CommandLine.Output()

	fmt.Fprintf(out, "sectorvfs %s - virtual file system on a numbered-sector store\n\n", Version)
	fmt.Fprintf(out, "Usage: %s [flags] <command> [arguments]\n\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-7s %-21s %s\n", c.name, c.usage, c.help)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func loadConfiguration() (*configuration.AppConfiguration, error) {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	cfg, err := configHandler.Load(*configFile)
	if err != nil {
		return nil, err
	}

	if *rootDir != "" {
		cfg.Root = *rootDir
	}
	if *indexName != "" {
		cfg.IndexName = *indexName
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

func newApp(cfg *configuration.AppConfiguration) *App {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}

	store := schema.NewStore(cfg.Root, cfg.IndexName)
	indexHandler := index.NewHandler(store.GetIndexPath(), osProvider)

	return NewApp(
		store,
		vfs.NewHandler(store, indexHandler, osProvider),
		filesystem.NewHandler(osProvider, unixProvider),
		io.NewHandler(osProvider),
		os.Stdin,
		os.Stdout,
	)
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Usage = usage
	flag.Parse()

	setupLogging(slog.LevelInfo)
	setupSignalHandlers(cancel)

	cfg, err := loadConfiguration()
	if err != nil {
		slog.Error("Failed to load the configuration.",
			"path", *configFile,
			"err", err,
		)
		ExitCode = exitFailure

		return
	}
	setupLogging(cfg.SlogLevel())

	if err := validation.ValidateConfiguration(cfg, &schema.OS{}); err != nil {
		slog.Error("Invalid configuration.",
			"root", cfg.Root,
			"index", cfg.IndexName,
			"err", err,
		)
		ExitCode = exitFailure

		return
	}

	app := newApp(cfg)

	if err := app.Run(ctx, cancel, flag.Args()); err != nil {
		switch {
		case errors.Is(err, ErrUsage):
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			ExitCode = exitUsage

		case errors.Is(err, ErrNotExists):
			ExitCode = exitFailure

		default:
			slog.Error("Command failed.",
				"err", err,
			)
			ExitCode = exitFailure
		}
	}
}
