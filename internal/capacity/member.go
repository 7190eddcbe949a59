package capacity

import (
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// MemberLoad is one developer's capacity and velocity-adjusted assignment
// inside a single window.
type MemberLoad struct {
	WorkingDays   int
	HolidayDays   int
	PTODays       int
	AvailableDays int
	AssignedDays  int
	TicketIDs     []string
	Utilization   float64
}

// CalculateMemberLoad computes a member's load over [start, end]. Tickets
// with ID excludeID are ignored, which lets callers evaluate a move.
func CalculateMemberLoad(
	member *domain.TeamMember,
	start, end time.Time,
	tickets []domain.Ticket,
	holidays calendar.DaySet,
	opts Options,
	excludeID string,
) MemberLoad {
	var l MemberLoad
	l.WorkingDays = calendar.CountWorkingDays(start, end)
	l.HolidayDays = holidays.CountWorkingDaysIn(start, end)
	l.PTODays = PTOSet(member).CountWorkingDaysExcluding(start, end, holidays)
	l.AvailableDays = max(0, l.WorkingDays-l.HolidayDays-l.PTODays)

	for i := range tickets {
		t := &tickets[i]
		if t.ID == excludeID || t.AssignedTo != member.Name {
			continue
		}
		if !t.Overlaps(start, end) {
			continue
		}
		l.AssignedDays += AdjustedEffort(t, member, opts)
		l.TicketIDs = append(l.TicketIDs, t.ID)
	}
	sort.Strings(l.TicketIDs)
	l.Utilization = utilization(float64(l.AssignedDays), float64(l.AvailableDays))
	return l
}

// MemberSprintCapacity is one developer's capacity in one sprint.
type MemberSprintCapacity struct {
	SprintID     string
	SprintName   string
	StartDate    time.Time
	EndDate      time.Time
	Load         MemberLoad
	Status       Status
	OverCapacity bool
}

// TeamMemberCapacity aggregates a developer's capacity across sprints.
type TeamMemberCapacity struct {
	MemberID string
	Name     string
	Role     domain.Role
	Velocity float64

	Sprints            []MemberSprintCapacity
	TotalAvailableDays int
	TotalAssignedDays  int
	Utilization        float64
	OverCapacity       bool
	Status             Status
}

// CalculateTeamMemberCapacity computes per-sprint and aggregate capacity for
// one member. The status thresholds are applied to the aggregate as well as
// to each sprint.
func CalculateTeamMemberCapacity(
	member domain.TeamMember,
	sprints []domain.Sprint,
	tickets []domain.Ticket,
	holidays []domain.Holiday,
	opts Options,
) TeamMemberCapacity {
	return memberCapacity(member, sortSprints(sprints), tickets, HolidaySet(holidays), opts)
}

// CalculateAllTeamMemberCapacities runs CalculateTeamMemberCapacity for every
// member, ordered by name.
func CalculateAllTeamMemberCapacities(
	members []domain.TeamMember,
	sprints []domain.Sprint,
	tickets []domain.Ticket,
	holidays []domain.Holiday,
	opts Options,
) []TeamMemberCapacity {
	hs := HolidaySet(holidays)
	ordered := sortSprints(sprints)
	out := make([]TeamMemberCapacity, 0, len(members))
	for _, m := range members {
		out = append(out, memberCapacity(m, ordered, tickets, hs, opts))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func memberCapacity(
	member domain.TeamMember,
	sprints []domain.Sprint,
	tickets []domain.Ticket,
	hs calendar.DaySet,
	opts Options,
) TeamMemberCapacity {
	tc := TeamMemberCapacity{
		MemberID: member.ID,
		Name:     member.Name,
		Role:     member.Role,
		Velocity: member.Velocity(),
	}
	for _, s := range sprints {
		load := CalculateMemberLoad(&member, s.StartDate, s.EndDate, tickets, hs, opts, "")
		st, over := classify(load.Utilization, float64(load.AvailableDays))
		tc.Sprints = append(tc.Sprints, MemberSprintCapacity{
			SprintID:     s.ID,
			SprintName:   s.Name,
			StartDate:    calendar.Day(s.StartDate),
			EndDate:      calendar.Day(s.EndDate),
			Load:         load,
			Status:       st,
			OverCapacity: over,
		})
		tc.TotalAvailableDays += load.AvailableDays
		tc.TotalAssignedDays += load.AssignedDays
	}
	tc.Utilization = utilization(float64(tc.TotalAssignedDays), float64(tc.TotalAvailableDays))
	tc.Status, tc.OverCapacity = classify(tc.Utilization, float64(tc.TotalAvailableDays))
	return tc
}

func sortSprints(sprints []domain.Sprint) []domain.Sprint {
	out := make([]domain.Sprint, len(sprints))
	copy(out, sprints)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
