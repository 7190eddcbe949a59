package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/importer"
	"github.com/alexanderramin/releaseplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportSnapshot(ctx context.Context, req app.ImportRequest) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": req.FilePath}
	defer func() { observe(ctx, s.observer, "import-snapshot", startedAt, fields, err) }()

	schema, err := importer.LoadImportSchema(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema, req.RepairPhases, fields)
}

// ImportSchema persists an already-parsed snapshot document.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema, repairPhases bool) (*app.ImportResult, error) {
	return s.importSchema(ctx, schema, repairPhases, map[string]any{})
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema, repairPhases bool, fields map[string]any) (*app.ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	snap, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	repaired := false
	if err := domain.CheckPhaseContiguity(snap.Phases); err != nil {
		if !repairPhases {
			return nil, fmt.Errorf("release %q: %w", snap.Release.Name, err)
		}
		snap.Phases = domain.RepairPhaseContiguity(snap.Phases)
		repaired = true
	}

	replaced := false
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteSnapshotStore(tx)
		existing, err := store.Releases.GetByName(ctx, snap.Release.Name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return err
		default:
			if err := store.Releases.Delete(ctx, existing.ID); err != nil {
				return err
			}
			replaced = true
		}
		return store.Save(ctx, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("saving release %q: %w", snap.Release.Name, err)
	}

	result := &app.ImportResult{
		Release:        &snap.Release,
		MemberCount:    len(snap.Team),
		HolidayCount:   len(snap.Holidays),
		SprintCount:    len(snap.Sprints),
		PhaseCount:     len(snap.Phases),
		TicketCount:    len(snap.Tickets),
		PhasesRepaired: repaired,
		Replaced:       replaced,
	}
	for _, m := range snap.Team {
		result.PTOCount += len(m.PTO)
	}
	fields["release"] = snap.Release.Name
	fields["ticket_count"] = result.TicketCount
	fields["phases_repaired"] = repaired
	fields["replaced"] = replaced
	return result, nil
}

func (s *importService) ImportTicketsCSV(ctx context.Context, releaseRef string, filePath string) (result *app.TicketImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": filePath, "release": releaseRef}
	defer func() { observe(ctx, s.observer, "import-tickets-csv", startedAt, fields, err) }()

	rows, err := importer.LoadTicketsCSV(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading ticket csv: %w", err)
	}

	result = &app.TicketImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteSnapshotStore(tx)
		rel, err := resolveRelease(ctx, store.Releases, releaseRef)
		if err != nil {
			return err
		}
		result.Release = rel

		team, err := store.Team.ListByRelease(ctx, rel.ID)
		if err != nil {
			return err
		}
		if errs := importer.ValidateTicketImports(rows, team); len(errs) > 0 {
			return formatValidationErrors(errs)
		}
		tickets, err := importer.ConvertTickets(rows, rel.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("converting tickets: %w", err)
		}

		for i := range tickets {
			t := &tickets[i]
			existing, err := store.Tickets.GetByID(ctx, t.ID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				if err := store.Tickets.Create(ctx, t); err != nil {
					return err
				}
				result.Created++
			case err != nil:
				return err
			case existing.ReleaseID != rel.ID:
				return fmt.Errorf("ticket %q already belongs to another release", t.ID)
			default:
				t.CreatedAt = existing.CreatedAt
				if err := store.Tickets.Upsert(ctx, t); err != nil {
					return err
				}
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	return result, nil
}
