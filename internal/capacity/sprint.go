package capacity

import "github.com/alexanderramin/releaseplan/internal/domain"

// CalculateSprintCapacity computes team capacity versus assigned effort for
// one sprint. Tickets crossing a sprint boundary count their full effort.
func CalculateSprintCapacity(
	sprint domain.Sprint,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) CapacityResult {
	w := window{id: sprint.ID, name: sprint.Name, start: sprint.StartDate, end: sprint.EndDate}
	return calculateWindow(w, tickets, members, HolidaySet(holidays), opts)
}

// CalculateAllSprintCapacities computes CalculateSprintCapacity for every
// sprint, keyed by sprint ID. The holiday set is built once for all sprints.
func CalculateAllSprintCapacities(
	sprints []domain.Sprint,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) map[string]CapacityResult {
	hs := HolidaySet(holidays)
	out := make(map[string]CapacityResult, len(sprints))
	for _, s := range sprints {
		w := window{id: s.ID, name: s.Name, start: s.StartDate, end: s.EndDate}
		out[s.ID] = calculateWindow(w, tickets, members, hs, opts)
	}
	return out
}

// OverallUtilization sums assigned effort and team-days across results.
func OverallUtilization(results map[string]CapacityResult) (assigned float64, available int, pct float64) {
	for _, r := range results {
		assigned += r.AssignedDays
		available += r.TotalTeamDays
	}
	return assigned, available, utilization(assigned, float64(available))
}
