package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) Create(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (id, release_id, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.ReleaseID, h.Name,
		h.StartDate.Format(dateLayout), h.EndDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting holiday %q: %w", h.Name, err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Holiday, error) {
	query := `SELECT id, release_id, name, start_date, end_date
		FROM holidays WHERE release_id = ? ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var start, end string
		if err := rows.Scan(&h.ID, &h.ReleaseID, &h.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		if err := parseDates(
			datePair{"holiday start_date", start, &h.StartDate},
			datePair{"holiday end_date", end, &h.EndDate},
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

func NewSQLiteSprintRepo(conn db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: conn}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (id, release_id, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ReleaseID, s.Name,
		s.StartDate.Format(dateLayout), s.EndDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint %q: %w", s.Name, err)
	}
	return nil
}

func (r *SQLiteSprintRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Sprint, error) {
	query := `SELECT id, release_id, name, start_date, end_date
		FROM sprints WHERE release_id = ? ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	var out []domain.Sprint
	for rows.Next() {
		var s domain.Sprint
		var start, end string
		if err := rows.Scan(&s.ID, &s.ReleaseID, &s.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning sprint: %w", err)
		}
		if err := parseDates(
			datePair{"sprint start_date", start, &s.StartDate},
			datePair{"sprint end_date", end, &s.EndDate},
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sprints: %w", err)
	}
	return out, nil
}
