package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/repository"
)

type releaseService struct {
	store *repository.SQLiteSnapshotStore
}

func NewReleaseService(store *repository.SQLiteSnapshotStore) ReleaseService {
	return &releaseService{store: store}
}

func (s *releaseService) ListReleases(ctx context.Context) ([]app.ReleaseSummary, error) {
	releases, err := s.store.Releases.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]app.ReleaseSummary, 0, len(releases))
	for _, rel := range releases {
		snap, err := s.store.Load(ctx, rel.ID)
		if err != nil {
			return nil, fmt.Errorf("loading release %q: %w", rel.Name, err)
		}
		out = append(out, app.ReleaseSummary{
			Release:     snap.Release,
			MemberCount: len(snap.Team),
			TicketCount: len(snap.Tickets),
			PhaseCount:  len(snap.Phases),
		})
	}
	return out, nil
}
