package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/recommend"
	"github.com/alexanderramin/releaseplan/internal/repository"
)

type fixService struct {
	uow      db.UnitOfWork
	store    *repository.SQLiteSnapshotStore
	settings EngineSettings
	observer UseCaseObserver
}

func NewFixService(store *repository.SQLiteSnapshotStore, uow db.UnitOfWork, settings EngineSettings, observers ...UseCaseObserver) FixService {
	return &fixService{store: store, uow: uow, settings: settings, observer: useCaseObserverOrNoop(observers)}
}

func (s *fixService) RecommendFix(ctx context.Context, req app.FixRequest) (resp *app.FixResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": req.ReleaseRef, "ticket": req.TicketID, "apply": req.Apply}
	defer func() { observe(ctx, s.observer, "recommend-fix", startedAt, fields, err) }()

	snap, err := loadSnapshot(ctx, s.store, req.ReleaseRef)
	if err != nil {
		return nil, err
	}
	ticket := snap.FindTicket(req.TicketID)
	if ticket == nil {
		return nil, fmt.Errorf("ticket %q in release %q: %w", req.TicketID, snap.Release.Name, repository.ErrNotFound)
	}

	opts := s.settings.recommendOptions(snap.Release)
	fix := recommend.BestDevWindowFix(*ticket, snap.Phases, snap.Tickets, snap.Team, snap.Holidays, opts)
	resp = &app.FixResponse{
		Release:   snap.Release,
		Ticket:    *ticket,
		Fix:       fix,
		Ranked:    recommend.RankPlacements(*ticket, snap.Phases, snap.Tickets, snap.Team, snap.Holidays, opts),
		Conflicts: conflictsTouching(conflict.DetectConflicts(snap.Tickets, snap.Team, snap.Phases), ticket.ID),
	}
	fields["fix_kind"] = string(fix.Kind())
	fields["confidence"] = fix.Confidence()

	if !req.Apply {
		return resp, nil
	}
	updated, ok := recommend.ApplyFix(*ticket, fix, app.ResolveNow(req.Now))
	if !ok {
		return resp, nil
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTicketRepo(tx).Update(ctx, &updated)
	})
	if err != nil {
		return nil, fmt.Errorf("applying fix to %q: %w", ticket.ID, err)
	}

	resp.Applied = true
	resp.Updated = &updated
	after := withTicket(snap.Tickets, updated)
	resp.Remaining = conflictsTouching(conflict.DetectConflicts(after, snap.Team, snap.Phases), updated.ID)
	fields["remaining_conflicts"] = len(resp.Remaining)
	return resp, nil
}
