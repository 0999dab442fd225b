package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/roadmap/internal/cli"
	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then ~/.roadmap/config.jsonc, then ROADMAP_* env vars.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case logging is opt-in and goes to a file when one is configured,
	// since stderr is hidden behind the alt screen.
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		w, closeLog, err := logWriter(cfg.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
		observers = append(observers, service.NewLogUseCaseObserver(w))
	}

	// Wire repositories
	statusRepo := repository.NewSQLiteStatusRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)
	markerRepo := repository.NewSQLiteMarkerRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Statuses: service.NewStatusService(statusRepo, itemRepo),
		Items:    service.NewItemService(itemRepo, statusRepo, uow, observers...),
		Markers:  service.NewMarkerService(markerRepo),
		Views:    service.NewViewService(itemRepo, statusRepo, markerRepo, cfg.MaxVisible),
		Import:   service.NewImportService(statusRepo, uow, observers...),
		Export:   service.NewExportService(statusRepo, itemRepo, markerRepo, observers...),
		Config:   cfg,
	}

	// A fresh database starts with the Planned / In Progress / Done columns.
	if _, err := app.Statuses.EnsureDefaults(context.Background()); err != nil {
		return fmt.Errorf("creating default statuses: %w", err)
	}

	// Detect interactive terminal for the bare "roadmap" entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
