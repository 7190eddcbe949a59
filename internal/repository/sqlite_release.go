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

// SQLiteReleaseRepo implements ReleaseRepo using a SQLite database.
type SQLiteReleaseRepo struct {
	db db.DBTX
}

// NewSQLiteReleaseRepo creates a new SQLiteReleaseRepo.
func NewSQLiteReleaseRepo(conn db.DBTX) *SQLiteReleaseRepo {
	return &SQLiteReleaseRepo{db: conn}
}

const releaseColumns = `id, name, start_date, target_date, story_point_mapping, created_at, updated_at`

func (r *SQLiteReleaseRepo) Create(ctx context.Context, rel *domain.Release) error {
	mapping, err := encodeJSON(rel.StoryPointMapping, "{}")
	if err != nil {
		return err
	}
	query := `INSERT INTO releases (` + releaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rel.ID,
		rel.Name,
		rel.StartDate.Format(dateLayout),
		nullableTimeToString(rel.TargetDate, dateLayout),
		mapping,
		rel.CreatedAt.Format(time.RFC3339),
		rel.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting release: %w", err)
	}
	return nil
}

func (r *SQLiteReleaseRepo) GetByID(ctx context.Context, id string) (*domain.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName matches case-insensitively; with duplicate names the newest wins.
func (r *SQLiteReleaseRepo) GetByName(ctx context.Context, name string) (*domain.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases WHERE LOWER(name) = LOWER(?)
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteReleaseRepo) List(ctx context.Context) ([]*domain.Release, error) {
	query := `SELECT ` + releaseColumns + ` FROM releases ORDER BY start_date, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	defer rows.Close()

	var releases []*domain.Release
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating releases: %w", err)
	}
	return releases, nil
}

func (r *SQLiteReleaseRepo) Update(ctx context.Context, rel *domain.Release) error {
	mapping, err := encodeJSON(rel.StoryPointMapping, "{}")
	if err != nil {
		return err
	}
	query := `UPDATE releases SET name = ?, start_date = ?, target_date = ?, story_point_mapping = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rel.Name,
		rel.StartDate.Format(dateLayout),
		nullableTimeToString(rel.TargetDate, dateLayout),
		mapping,
		rel.UpdatedAt.Format(time.RFC3339),
		rel.ID,
	)
	if err != nil {
		return fmt.Errorf("updating release: %w", err)
	}
	return requireAffected(res, "release")
}

// Delete removes a release and every record it owns. Child rows are deleted
// explicitly since foreign_keys is a per-connection pragma.
func (r *SQLiteReleaseRepo) Delete(ctx context.Context, id string) error {
	for _, q := range releaseChildDeletes {
		if _, err := r.db.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("deleting release records: %w", err)
		}
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM releases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting release: %w", err)
	}
	return requireAffected(res, "release")
}

var releaseChildDeletes = []string{
	`DELETE FROM pto_entries WHERE member_id IN (SELECT id FROM team_members WHERE release_id = ?)`,
	`DELETE FROM team_members WHERE release_id = ?`,
	`DELETE FROM holidays WHERE release_id = ?`,
	`DELETE FROM sprints WHERE release_id = ?`,
	`DELETE FROM phases WHERE release_id = ?`,
	`DELETE FROM tickets WHERE release_id = ?`,
}

func (r *SQLiteReleaseRepo) scanOne(row *sql.Row) (*domain.Release, error) {
	rel, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("release: %w", ErrNotFound)
	}
	return rel, err
}

func scanRelease(s scanner) (*domain.Release, error) {
	var rel domain.Release
	var startStr, mappingStr, createdStr, updatedStr string
	var targetStr sql.NullString

	if err := s.Scan(&rel.ID, &rel.Name, &startStr, &targetStr, &mappingStr, &createdStr, &updatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning release: %w", err)
	}

	if err := parseDates(datePair{"start_date", startStr, &rel.StartDate}); err != nil {
		return nil, err
	}
	rel.TargetDate = parseNullableTime(targetStr, dateLayout)

	var parseErr error
	rel.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rel.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	var mapping domain.StoryPointMapping
	if err := decodeJSON(mappingStr, &mapping); err != nil {
		return nil, fmt.Errorf("release %s story_point_mapping: %w", rel.ID, err)
	}
	if len(mapping) > 0 {
		rel.StoryPointMapping = mapping
	}
	return &rel, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
