package capacity

import (
	"sort"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// ReleaseCapacity sizes the work a release can absorb across its dev windows.
type ReleaseCapacity struct {
	Phases        []CapacityResult
	TotalTeamDays int
	AssignedDays  float64
	Utilization   float64
	OverCapacity  bool
	NoCapacity    bool
	// NoDevWindow is set when no phase allows work at all.
	NoDevWindow bool
	Status      Status
}

// CalculatePhaseCapacity applies the sprint calculation to a phase window.
// Phases that do not allow work have no capacity by definition.
func CalculatePhaseCapacity(
	phase domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) CapacityResult {
	return phaseCapacity(phase, tickets, members, HolidaySet(holidays), opts)
}

func phaseCapacity(phase domain.Phase, tickets []domain.Ticket, members []domain.TeamMember, hs calendar.DaySet, opts Options) CapacityResult {
	w := window{id: phase.ID, name: phase.Name, start: phase.StartDate, end: phase.EndDate}
	res := calculateWindow(w, tickets, members, hs, opts)
	if !phase.AllowsWork {
		res.PTODays = 0
		res.TotalTeamDays = 0
		res.CapacityPoints = 0
		res.Utilization = 0
		res.OverCapacity = false
		res.NoCapacity = true
		res.Status = StatusNoCapacity
	}
	return res
}

// CalculateReleaseCapacity totals capacity over every phase that allows work.
// A ticket overlapping several dev windows contributes its effort once.
func CalculateReleaseCapacity(
	phases []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) ReleaseCapacity {
	hs := HolidaySet(holidays)
	var rc ReleaseCapacity
	counted := make(map[string]bool)
	var devWindows []domain.Phase
	for _, p := range domain.SortPhases(phases) {
		if p.AllowsWork {
			devWindows = append(devWindows, p)
		}
	}
	if len(devWindows) == 0 {
		rc.NoDevWindow = true
		rc.NoCapacity = true
		rc.Status = StatusNoCapacity
		return rc
	}

	for _, p := range devWindows {
		res := phaseCapacity(p, tickets, members, hs, opts)
		rc.Phases = append(rc.Phases, res)
		rc.TotalTeamDays += res.TotalTeamDays
	}

	ordered := make([]domain.Ticket, len(tickets))
	copy(ordered, tickets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	for i := range ordered {
		t := &ordered[i]
		if counted[t.ID] {
			continue
		}
		for _, p := range devWindows {
			if t.Overlaps(p.StartDate, p.EndDate) {
				rc.AssignedDays += ResolveEffortDays(t, opts.Mapping)
				counted[t.ID] = true
				break
			}
		}
	}
	rc.AssignedDays = roundTo(rc.AssignedDays, 4)
	rc.Utilization = utilization(rc.AssignedDays, float64(rc.TotalTeamDays))
	rc.Status, rc.OverCapacity = classify(rc.Utilization, float64(rc.TotalTeamDays))
	rc.NoCapacity = rc.TotalTeamDays == 0
	return rc
}
