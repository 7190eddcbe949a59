package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/cli"
	"github.com/alexanderramin/releaseplan/internal/config"
	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/recommend"
	"github.com/alexanderramin/releaseplan/internal/repository"
	"github.com/alexanderramin/releaseplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(cli.ConfigPathFromArgs(os.Args[1:]))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := repository.NewSQLiteSnapshotStore(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	settings := service.EngineSettings{
		VelocityPerDay: cfg.VelocityPerDay,
		Weights: recommend.Weights{
			UtilizationFit: cfg.Fix.Weights.UtilizationFit,
			SkillMatch:     cfg.Fix.Weights.SkillMatch,
			Continuity:     cfg.Fix.Weights.Continuity,
			Proximity:      cfg.Fix.Weights.Proximity,
		},
		InsightLimit: cfg.Insights.Max,
	}
	if cfg.Trace {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		settings.Tracer = capacity.NewSlogTracer(logger)
	}

	app := &cli.App{
		Import:   service.NewImportService(uow, observers...),
		Releases: service.NewReleaseService(store),
		Health:   service.NewHealthService(store, settings, observers...),
		Fix:      service.NewFixService(store, uow, settings, observers...),
		Phases:   service.NewPhaseService(uow, observers...),
	}

	// Detect interactive terminal for confirmation prompts and the dashboard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
