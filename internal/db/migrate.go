package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPhaseOrder(db); err != nil {
		return fmt.Errorf("backfilling phase order: %w", err)
	}
	return nil
}

// migrateBackfillPhaseOrder numbers phases stored before order_index existed
// (order_index = 0) by start date within their release.
func migrateBackfillPhaseOrder(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT release_id FROM phases WHERE order_index = 0`)
	if err != nil {
		return fmt.Errorf("querying releases needing phase order: %w", err)
	}
	var releaseIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning release id: %w", err)
		}
		releaseIDs = append(releaseIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating releases: %w", err)
	}
	rows.Close()

	for _, releaseID := range releaseIDs {
		if err := backfillReleasePhaseOrder(ctx, db, releaseID); err != nil {
			return err
		}
	}
	return nil
}

func backfillReleasePhaseOrder(ctx context.Context, db *sql.DB, releaseID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting phase order backfill: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM phases WHERE release_id = ? ORDER BY start_date, id`, releaseID)
	if err != nil {
		return fmt.Errorf("querying phases for release %s: %w", releaseID, err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning phase id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating phases: %w", err)
	}
	rows.Close()

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE phases SET order_index = ? WHERE id = ?`, i+1, id); err != nil {
			return fmt.Errorf("updating order for phase %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing phase order backfill: %w", err)
	}
	committed = true
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS releases (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		start_date          TEXT NOT NULL,
		target_date         TEXT,
		story_point_mapping TEXT NOT NULL DEFAULT '{}',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id                  TEXT PRIMARY KEY,
		release_id          TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		role                TEXT NOT NULL DEFAULT 'Developer'
		                    CHECK(role IN ('Developer','Designer','QA')),
		velocity_multiplier REAL,
		UNIQUE(release_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS pto_entries (
		id         TEXT PRIMARY KEY,
		member_id  TEXT NOT NULL REFERENCES team_members(id) ON DELETE CASCADE,
		name       TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id         TEXT PRIMARY KEY,
		release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name       TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id         TEXT PRIMARY KEY,
		release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		release_id  TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'Custom'
		            CHECK(type IN ('DevWindow','Testing','Deployment','Approval','Launch','Custom')),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		allows_work INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS tickets (
		id           TEXT PRIMARY KEY,
		release_id   TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		assigned_to  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'planned'
		             CHECK(status IN ('planned','in-progress','completed')),
		effort_days  REAL,
		story_points REAL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	// Columns added after the first schema version.
	`ALTER TABLE phases ADD COLUMN order_index INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE team_members ADD COLUMN skills TEXT NOT NULL DEFAULT '[]'`,
	`ALTER TABLE tickets ADD COLUMN required_skills TEXT NOT NULL DEFAULT '[]'`,

	`CREATE INDEX IF NOT EXISTS idx_team_members_release ON team_members(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pto_member ON pto_entries(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_holidays_release ON holidays(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_release ON sprints(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_release ON phases(release_id, order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_release ON tickets(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_assignee ON tickets(release_id, assigned_to)`,
}
