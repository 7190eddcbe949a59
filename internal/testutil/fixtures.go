package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/google/uuid"
)

var testTicketCounter atomic.Int64

// Date returns midnight UTC of the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Release options
type ReleaseOption func(*domain.Release)

func WithTargetDate(d time.Time) ReleaseOption {
	return func(r *domain.Release) {
		r.TargetDate = &d
	}
}

func WithStoryPointMapping(m domain.StoryPointMapping) ReleaseOption {
	return func(r *domain.Release) {
		r.StoryPointMapping = m
	}
}

func NewTestRelease(name string, start time.Time, opts ...ReleaseOption) *domain.Release {
	now := time.Now().UTC()
	r := &domain.Release{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithAssignee(name string) TicketOption {
	return func(t *domain.Ticket) {
		t.AssignedTo = name
	}
}

func WithEffort(days float64) TicketOption {
	return func(t *domain.Ticket) {
		t.EffortDays = &days
	}
}

func WithStoryPoints(sp float64) TicketOption {
	return func(t *domain.Ticket) {
		t.EffortDays = nil
		t.StoryPoints = &sp
	}
}

func WithStatus(s domain.TicketStatus) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = s
	}
}

func WithTicketID(id string) TicketOption {
	return func(t *domain.Ticket) {
		t.ID = id
	}
}

func WithRequiredSkills(skills ...string) TicketOption {
	return func(t *domain.Ticket) {
		t.RequiredSkills = skills
	}
}

func WithReleaseID(id string) TicketOption {
	return func(t *domain.Ticket) {
		t.ReleaseID = id
	}
}

// NewTestTicket builds a planned, unassigned ticket with 1 effort day.
// IDs are sequential ("T001", "T002", ...) so ordering in tests is readable.
func NewTestTicket(title string, start, end time.Time, opts ...TicketOption) domain.Ticket {
	now := time.Now().UTC()
	effort := 1.0
	t := domain.Ticket{
		ID:         fmt.Sprintf("T%03d", testTicketCounter.Add(1)),
		Title:      title,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.TicketPlanned,
		EffortDays: &effort,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// TeamMember options
type MemberOption func(*domain.TeamMember)

func WithRole(r domain.Role) MemberOption {
	return func(m *domain.TeamMember) {
		m.Role = r
	}
}

func WithVelocity(v float64) MemberOption {
	return func(m *domain.TeamMember) {
		m.VelocityMultiplier = &v
	}
}

func WithPTO(start, end time.Time) MemberOption {
	return func(m *domain.TeamMember) {
		m.PTO = append(m.PTO, domain.PTOEntry{
			ID:        uuid.New().String(),
			MemberID:  m.ID,
			Name:      "PTO",
			StartDate: start,
			EndDate:   end,
		})
	}
}

func WithSkills(skills ...string) MemberOption {
	return func(m *domain.TeamMember) {
		m.Skills = skills
	}
}

func NewTestMember(name string, opts ...MemberOption) domain.TeamMember {
	m := domain.TeamMember{
		ID:   uuid.New().String(),
		Name: name,
		Role: domain.RoleDeveloper,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func NewTestHoliday(name string, start, end time.Time) domain.Holiday {
	return domain.Holiday{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
}

func NewTestSprint(name string, start, end time.Time) domain.Sprint {
	return domain.Sprint{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
	}
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseType(pt domain.PhaseType) PhaseOption {
	return func(p *domain.Phase) {
		p.Type = pt
		p.AllowsWork = pt == domain.PhaseDevWindow
	}
}

func WithAllowsWork(allows bool) PhaseOption {
	return func(p *domain.Phase) {
		p.AllowsWork = allows
	}
}

// NewTestPhase builds a DevWindow phase that allows work.
func NewTestPhase(name string, order int, start, end time.Time, opts ...PhaseOption) domain.Phase {
	p := domain.Phase{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       domain.PhaseDevWindow,
		StartDate:  start,
		EndDate:    end,
		AllowsWork: true,
		Order:      order,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
