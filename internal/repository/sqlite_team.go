package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using a SQLite database.
type SQLiteTeamRepo struct {
	db db.DBTX
}

// NewSQLiteTeamRepo creates a new SQLiteTeamRepo.
func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

// Create inserts the member and every PTO entry attached to it.
func (r *SQLiteTeamRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	skills, err := encodeJSON(m.Skills, "[]")
	if err != nil {
		return err
	}
	query := `INSERT INTO team_members (id, release_id, name, role, velocity_multiplier, skills)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID,
		m.ReleaseID,
		m.Name,
		string(m.Role),
		nullableFloatToValue(m.VelocityMultiplier),
		skills,
	)
	if err != nil {
		return fmt.Errorf("inserting team member %q: %w", m.Name, err)
	}
	for i := range m.PTO {
		p := &m.PTO[i]
		p.MemberID = m.ID
		if err := r.AddPTO(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTeamRepo) AddPTO(ctx context.Context, p *domain.PTOEntry) error {
	query := `INSERT INTO pto_entries (id, member_id, name, start_date, end_date) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.MemberID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting pto entry: %w", err)
	}
	return nil
}

// ListByRelease returns members ordered by name, each with its PTO.
func (r *SQLiteTeamRepo) ListByRelease(ctx context.Context, releaseID string) ([]domain.TeamMember, error) {
	query := `SELECT id, release_id, name, role, velocity_multiplier, skills
		FROM team_members WHERE release_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var role, skills string
		var velocity sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.ReleaseID, &m.Name, &role, &velocity, &skills); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		m.Role = domain.Role(role)
		m.VelocityMultiplier = floatFromNull(velocity)
		if err := decodeJSON(skills, &m.Skills); err != nil {
			rows.Close()
			return nil, fmt.Errorf("team member %s skills: %w", m.ID, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	rows.Close()

	pto, err := r.listPTOByRelease(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PTO = pto[members[i].ID]
	}
	return members, nil
}

func (r *SQLiteTeamRepo) listPTOByRelease(ctx context.Context, releaseID string) (map[string][]domain.PTOEntry, error) {
	query := `SELECT p.id, p.member_id, p.name, p.start_date, p.end_date
		FROM pto_entries p JOIN team_members m ON m.id = p.member_id
		WHERE m.release_id = ? ORDER BY p.start_date, p.id`
	rows, err := r.db.QueryContext(ctx, query, releaseID)
	if err != nil {
		return nil, fmt.Errorf("listing pto entries: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.PTOEntry)
	for rows.Next() {
		var p domain.PTOEntry
		var start, end string
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning pto entry: %w", err)
		}
		if err := parseDates(
			datePair{"pto start_date", start, &p.StartDate},
			datePair{"pto end_date", end, &p.EndDate},
		); err != nil {
			return nil, err
		}
		out[p.MemberID] = append(out[p.MemberID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pto entries: %w", err)
	}
	return out, nil
}
