package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/repository"
	"github.com/alexanderramin/releaseplan/internal/timeline"
)

type phaseService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPhaseService(uow db.UnitOfWork, observers ...UseCaseObserver) PhaseService {
	return &phaseService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *phaseService) EditPhaseEnd(ctx context.Context, req app.PhaseEditRequest) (resp *app.PhaseEditResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"release": req.ReleaseRef,
		"phase":   req.PhaseRef,
		"new_end": req.NewEnd.Format("2006-01-02"),
		"dry_run": req.DryRun,
		"repair":  req.Repair,
	}
	defer func() { observe(ctx, s.observer, "edit-phase-end", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteSnapshotStore(tx)
		rel, err := resolveRelease(ctx, store.Releases, req.ReleaseRef)
		if err != nil {
			return err
		}
		stored, err := store.Phases.ListByRelease(ctx, rel.ID)
		if err != nil {
			return err
		}

		resp = &app.PhaseEditResponse{Release: *rel, Before: domain.SortPhases(stored)}
		working := resp.Before
		if err := domain.CheckPhaseContiguity(working); err != nil {
			if !req.Repair {
				return fmt.Errorf("release %q: %w", rel.Name, err)
			}
			working = domain.RepairPhaseContiguity(working)
			resp.Repaired = true
		}

		idx, err := resolvePhase(working, req.PhaseRef)
		if err != nil {
			return err
		}
		resp.After, err = timeline.RecalculateCascadingDates(working, idx, req.NewEnd)
		if err != nil {
			return err
		}

		before := make(map[string]domain.Phase, len(resp.Before))
		for _, p := range resp.Before {
			before[p.ID] = p
		}
		for i := range resp.After {
			p := &resp.After[i]
			old := before[p.ID]
			if old.StartDate.Equal(p.StartDate) && old.EndDate.Equal(p.EndDate) {
				continue
			}
			resp.Changed = append(resp.Changed, p.ID)
			if req.DryRun {
				continue
			}
			if err := store.Phases.UpdateDates(ctx, p); err != nil {
				return err
			}
		}
		resp.Saved = !req.DryRun && len(resp.Changed) > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["changed"] = len(resp.Changed)
	return resp, nil
}
