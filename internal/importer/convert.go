package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into a snapshot ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*domain.Snapshot, error) {
	now := time.Now().UTC()

	startDate, err := time.Parse(dateLayout, schema.Release.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	var targetDate *time.Time
	if schema.Release.TargetDate != nil {
		t, err := time.Parse(dateLayout, *schema.Release.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("parsing target_date: %w", err)
		}
		targetDate = &t
	}

	release := domain.Release{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(schema.Release.Name),
		StartDate:  startDate,
		TargetDate: targetDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if len(schema.Release.StoryPointMapping) > 0 {
		release.StoryPointMapping = domain.StoryPointMapping(schema.Release.StoryPointMapping)
	}
	snap := &domain.Snapshot{Release: release}

	for i, m := range schema.Team {
		member := domain.TeamMember{
			ID:                 uuid.New().String(),
			ReleaseID:          release.ID,
			Name:               strings.TrimSpace(m.Name),
			Role:               domain.Role(domain.CoalesceStr(m.Role, string(domain.RoleDeveloper))),
			VelocityMultiplier: m.VelocityMultiplier,
			Skills:             m.Skills,
		}
		for j, p := range m.PTO {
			start, end, err := parseRange(p.StartDate, p.EndDate)
			if err != nil {
				return nil, fmt.Errorf("team[%d].pto[%d]: %w", i, j, err)
			}
			member.PTO = append(member.PTO, domain.PTOEntry{
				ID:        uuid.New().String(),
				MemberID:  member.ID,
				Name:      domain.CoalesceStr(p.Name, "PTO"),
				StartDate: start,
				EndDate:   end,
			})
		}
		snap.Team = append(snap.Team, member)
	}

	for i, h := range schema.Holidays {
		start, end, err := parseRange(h.StartDate, domain.CoalesceStr(h.EndDate, h.StartDate))
		if err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		snap.Holidays = append(snap.Holidays, domain.Holiday{
			ID:        uuid.New().String(),
			ReleaseID: release.ID,
			Name:      h.Name,
			StartDate: start,
			EndDate:   end,
		})
	}

	for i, s := range schema.Sprints {
		start, end, err := parseRange(s.StartDate, s.EndDate)
		if err != nil {
			return nil, fmt.Errorf("sprints[%d]: %w", i, err)
		}
		snap.Sprints = append(snap.Sprints, domain.Sprint{
			ID:        uuid.New().String(),
			ReleaseID: release.ID,
			Name:      s.Name,
			StartDate: start,
			EndDate:   end,
		})
	}

	for i, p := range schema.Phases {
		start, end, err := parseRange(p.StartDate, p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("phases[%d]: %w", i, err)
		}
		typ := domain.PhaseType(p.Type)
		order := p.Order
		if order == 0 {
			order = i + 1
		}
		snap.Phases = append(snap.Phases, domain.Phase{
			ID:         uuid.New().String(),
			ReleaseID:  release.ID,
			Name:       p.Name,
			Type:       typ,
			StartDate:  start,
			EndDate:    end,
			AllowsWork: domain.BoolFromPtrWithDefault(typ == domain.PhaseDevWindow, p.AllowsWork),
			Order:      order,
		})
	}

	tickets, err := ConvertTickets(schema.Tickets, release.ID, now)
	if err != nil {
		return nil, err
	}
	snap.Tickets = tickets

	return snap, nil
}

// ConvertTickets turns validated ticket rows into domain tickets for a release.
func ConvertTickets(rows []TicketImport, releaseID string, now time.Time) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0, len(rows))
	for i, row := range rows {
		start, end, err := parseRange(row.StartDate, row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("tickets[%d]: %w", i, err)
		}
		assignee := strings.TrimSpace(row.AssignedTo)
		if strings.EqualFold(assignee, domain.UnassignedName) {
			assignee = ""
		}
		tickets = append(tickets, domain.Ticket{
			ID:             domain.CoalesceStr(strings.TrimSpace(row.ID), uuid.New().String()),
			ReleaseID:      releaseID,
			Title:          strings.TrimSpace(row.Title),
			StartDate:      start,
			EndDate:        end,
			AssignedTo:     assignee,
			Status:         domain.TicketStatus(domain.CoalesceStr(row.Status, string(domain.TicketPlanned))),
			EffortDays:     row.EffortDays,
			StoryPoints:    row.StoryPoints,
			RequiredSkills: row.RequiredSkills,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return tickets, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start_date: %w", err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end_date: %w", err)
	}
	return s, e, nil
}
