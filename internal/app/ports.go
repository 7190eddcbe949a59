package app

import (
	"context"
)

type ImportSnapshotUseCase interface {
	ImportSnapshot(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

type ImportTicketsUseCase interface {
	ImportTicketsCSV(ctx context.Context, releaseRef string, filePath string) (*TicketImportResult, error)
}

type ReleaseQueryUseCase interface {
	ListReleases(ctx context.Context) ([]ReleaseSummary, error)
}

type HealthReportUseCase interface {
	HealthReport(ctx context.Context, req HealthRequest) (*HealthReport, error)
}

type RecommendFixUseCase interface {
	RecommendFix(ctx context.Context, req FixRequest) (*FixResponse, error)
}

type EditPhaseUseCase interface {
	EditPhaseEnd(ctx context.Context, req PhaseEditRequest) (*PhaseEditResponse, error)
}
