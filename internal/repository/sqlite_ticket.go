package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// SQLiteTicketRepo implements TicketRepo using a SQLite database.
type SQLiteTicketRepo struct {
	db db.DBTX
}

func NewSQLiteTicketRepo(conn db.DBTX) *SQLiteTicketRepo {
	return &SQLiteTicketRepo{db: conn}
}

const ticketColumns = `id, release_id, title, start_date, end_date, assigned_to, status,
	effort_days, story_points, required_skills, created_at, updated_at`

func ticketArgs(t *domain.Ticket) ([]any, error) {
	skills, err := encodeJSON(t.RequiredSkills, "[]")
	if err != nil {
		return nil, err
	}
	return []any{
		t.ID,
		t.ReleaseID,
		t.Title,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.AssignedTo,
		string(t.Status),
		nullableFloatToValue(t.EffortDays),
		nullableFloatToValue(t.StoryPoints),
		skills,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (r *SQLiteTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	args, err := ticketArgs(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting ticket %q: %w", t.Title, err)
	}
	return nil
}

// Upsert inserts t or, when a ticket with the same ID exists, replaces its
// mutable fields while keeping created_at.
func (r *SQLiteTicketRepo) Upsert(ctx context.Context, t *domain.Ticket) error {
	args, err := ticketArgs(t)
	if err != nil {
		return err
	}
	query := `INSERT INTO tickets (` + ticketColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			assigned_to = excluded.assigned_to,
			status = excluded.status,
			effort_days = excluded.effort_days,
			story_points = excluded.story_points,
			required_skills = excluded.required_skills,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting ticket %q: %w", t.Title, err)
	}
	return nil
}

func (r *SQLiteTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteTicketRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE release_id = ? ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tickets: %w", err)
	}
	return out, nil
}

func (r *SQLiteTicketRepo) Update(ctx context.Context, t *domain.Ticket) error {
	skills, err := encodeJSON(t.RequiredSkills, "[]")
	if err != nil {
		return err
	}
	query := `UPDATE tickets SET title = ?, start_date = ?, end_date = ?, assigned_to = ?, status = ?,
		effort_days = ?, story_points = ?, required_skills = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.AssignedTo,
		string(t.Status),
		nullableFloatToValue(t.EffortDays),
		nullableFloatToValue(t.StoryPoints),
		skills,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	return requireAffected(res, "ticket")
}

func scanTicket(s scanner) (domain.Ticket, error) {
	var t domain.Ticket
	var start, end, status, skills, created, updated string
	var effort, points sql.NullFloat64

	err := s.Scan(
		&t.ID, &t.ReleaseID, &t.Title,
		&start, &end,
		&t.AssignedTo, &status,
		&effort, &points, &skills,
		&created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scanning ticket: %w", err)
	}

	t.Status = domain.TicketStatus(status)
	t.EffortDays = floatFromNull(effort)
	t.StoryPoints = floatFromNull(points)
	if err := decodeJSON(skills, &t.RequiredSkills); err != nil {
		return t, fmt.Errorf("ticket %s required_skills: %w", t.ID, err)
	}
	if err := parseDates(
		datePair{"ticket start_date", start, &t.StartDate},
		datePair{"ticket end_date", end, &t.EndDate},
	); err != nil {
		return t, err
	}

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, created)
	if parseErr != nil {
		return t, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updated)
	if parseErr != nil {
		return t, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
