package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

const phaseColumns = `id, release_id, name, type, start_date, end_date, allows_work, order_index`

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ReleaseID, p.Name, string(p.Type),
		p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout),
		boolToInt(p.AllowsWork), p.Order,
	)
	if err != nil {
		return fmt.Errorf("inserting phase %q: %w", p.Name, err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id)
	p, err := scanPhase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("phase: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByRelease returns phases in Order sequence.
func (r *SQLitePhaseRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE release_id = ?
		ORDER BY order_index, start_date, id`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var out []domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return out, nil
}

// UpdateDates persists a phase's start and end dates.
func (r *SQLitePhaseRepo) UpdateDates(ctx context.Context, p *domain.Phase) error {
	res, err := r.db.ExecContext(ctx, `UPDATE phases SET start_date = ?, end_date = ? WHERE id = ?`,
		p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout), p.ID)
	if err != nil {
		return fmt.Errorf("updating phase %q: %w", p.Name, err)
	}
	return requireAffected(res, "phase")
}

func scanPhase(s scanner) (domain.Phase, error) {
	var p domain.Phase
	var typ, start, end string
	var allows int
	if err := s.Scan(&p.ID, &p.ReleaseID, &p.Name, &typ, &start, &end, &allows, &p.Order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning phase: %w", err)
	}
	p.Type = domain.PhaseType(typ)
	p.AllowsWork = intToBool(allows)
	if err := parseDates(
		datePair{"phase start_date", start, &p.StartDate},
		datePair{"phase end_date", end, &p.EndDate},
	); err != nil {
		return p, err
	}
	return p, nil
}
