package service

import (
	"context"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/importer"
)

type ImportService interface {
	app.ImportSnapshotUseCase
	app.ImportTicketsUseCase
	ImportSchema(ctx context.Context, schema *importer.ImportSchema, repairPhases bool) (*app.ImportResult, error)
}

type ReleaseService interface {
	app.ReleaseQueryUseCase
}

type HealthService interface {
	app.HealthReportUseCase
}

type FixService interface {
	app.RecommendFixUseCase
}

type PhaseService interface {
	app.EditPhaseUseCase
}
