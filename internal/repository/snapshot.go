package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// SQLiteSnapshotStore composes the per-table repos over one DBTX, so a
// store built from a transaction reads and writes atomically.
type SQLiteSnapshotStore struct {
	Releases *SQLiteReleaseRepo
	Team     *SQLiteTeamRepo
	Holidays *SQLiteHolidayRepo
	Sprints  *SQLiteSprintRepo
	Phases   *SQLitePhaseRepo
	Tickets  *SQLiteTicketRepo
}

func NewSQLiteSnapshotStore(conn db.DBTX) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{
		Releases: NewSQLiteReleaseRepo(conn),
		Team:     NewSQLiteTeamRepo(conn),
		Holidays: NewSQLiteHolidayRepo(conn),
		Sprints:  NewSQLiteSprintRepo(conn),
		Phases:   NewSQLitePhaseRepo(conn),
		Tickets:  NewSQLiteTicketRepo(conn),
	}
}

// Load assembles the full snapshot for a release.
func (s *SQLiteSnapshotStore) Load(ctx context.Context, releaseID string) (*domain.Snapshot, error) {
	rel, err := s.Releases.GetByID(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	snap := &domain.Snapshot{Release: *rel}

	if snap.Team, err = s.Team.ListByRelease(ctx, releaseID); err != nil {
		return nil, fmt.Errorf("loading team: %w", err)
	}
	if snap.Holidays, err = s.Holidays.ListByRelease(ctx, releaseID); err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	if snap.Sprints, err = s.Sprints.ListByRelease(ctx, releaseID); err != nil {
		return nil, fmt.Errorf("loading sprints: %w", err)
	}
	if snap.Phases, err = s.Phases.ListByRelease(ctx, releaseID); err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	if snap.Tickets, err = s.Tickets.ListByRelease(ctx, releaseID); err != nil {
		return nil, fmt.Errorf("loading tickets: %w", err)
	}
	return snap, nil
}

// Save inserts every record of a new snapshot. Child records are stamped
// with the release ID.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	rel := &snap.Release
	if err := s.Releases.Create(ctx, rel); err != nil {
		return fmt.Errorf("creating release: %w", err)
	}
	for i := range snap.Team {
		snap.Team[i].ReleaseID = rel.ID
		if err := s.Team.Create(ctx, &snap.Team[i]); err != nil {
			return err
		}
	}
	for i := range snap.Holidays {
		snap.Holidays[i].ReleaseID = rel.ID
		if err := s.Holidays.Create(ctx, &snap.Holidays[i]); err != nil {
			return err
		}
	}
	for i := range snap.Sprints {
		snap.Sprints[i].ReleaseID = rel.ID
		if err := s.Sprints.Create(ctx, &snap.Sprints[i]); err != nil {
			return err
		}
	}
	for i := range snap.Phases {
		snap.Phases[i].ReleaseID = rel.ID
		if err := s.Phases.Create(ctx, &snap.Phases[i]); err != nil {
			return err
		}
	}
	for i := range snap.Tickets {
		snap.Tickets[i].ReleaseID = rel.ID
		if err := s.Tickets.Create(ctx, &snap.Tickets[i]); err != nil {
			return err
		}
	}
	return nil
}

var _ SnapshotStore = (*SQLiteSnapshotStore)(nil)
