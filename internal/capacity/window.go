package capacity

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// CapacityResult is the team-level capacity of one sprint or phase window.
type CapacityResult struct {
	WindowID   string
	WindowName string
	StartDate  time.Time
	EndDate    time.Time

	TotalDays   int
	WorkingDays int
	// HolidayDays counts distinct working days in the window that are holidays.
	HolidayDays int
	// PTODays sums each developer's PTO working days in the window, excluding holidays.
	PTODays int
	// AvailableDays is working days minus holidays, per person.
	AvailableDays int
	TeamSize      int
	TotalTeamDays int
	// CapacityPoints is TotalTeamDays scaled by the velocity-per-day constant.
	CapacityPoints float64

	AssignedDays float64
	TicketCount  int
	Utilization  float64
	OverCapacity bool
	// NoCapacity is set when TotalTeamDays is 0; Utilization is then 0 by definition.
	NoCapacity bool
	Status     Status

	Developers []string
}

type window struct {
	id    string
	name  string
	start time.Time
	end   time.Time
}

// HolidaySet folds every holiday into one de-duplicated day set.
func HolidaySet(holidays []domain.Holiday) calendar.DaySet {
	set := make(calendar.DaySet)
	for _, h := range holidays {
		set.AddRange(h.StartDate, h.EndDate)
	}
	return set
}

// PTOSet folds a member's PTO entries into one de-duplicated day set.
func PTOSet(m *domain.TeamMember) calendar.DaySet {
	set := make(calendar.DaySet)
	for _, p := range m.PTO {
		set.AddRange(p.StartDate, p.EndDate)
	}
	return set
}

func ticketsInWindow(tickets []domain.Ticket, start, end time.Time) []domain.Ticket {
	var out []domain.Ticket
	for _, t := range tickets {
		if t.Overlaps(start, end) {
			out = append(out, t)
		}
	}
	return out
}

// developersInWindow returns the team members with at least one ticket in
// the window, sorted by name so the result is independent of ticket order.
func developersInWindow(windowTickets []domain.Ticket, members []domain.TeamMember) []domain.TeamMember {
	names := make(map[string]bool)
	for _, t := range windowTickets {
		if t.IsAssigned() {
			names[t.AssignedTo] = true
		}
	}
	var devs []domain.TeamMember
	for _, m := range members {
		if names[m.Name] {
			devs = append(devs, m)
			delete(names, m.Name)
		}
	}
	sort.Slice(devs, func(i, j int) bool { return devs[i].Name < devs[j].Name })
	return devs
}

func calculateWindow(
	w window,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays calendar.DaySet,
	opts Options,
) CapacityResult {
	res := CapacityResult{
		WindowID:   w.id,
		WindowName: w.name,
		StartDate:  calendar.Day(w.start),
		EndDate:    calendar.Day(w.end),
	}
	if span := calendar.DaysBetween(w.start, w.end); span >= 0 {
		res.TotalDays = span + 1
	}
	res.WorkingDays = calendar.CountWorkingDays(w.start, w.end)
	res.HolidayDays = holidays.CountWorkingDaysIn(w.start, w.end)

	inWindow := ticketsInWindow(tickets, w.start, w.end)
	devs := developersInWindow(inWindow, members)

	for i := range devs {
		res.PTODays += PTOSet(&devs[i]).CountWorkingDaysExcluding(w.start, w.end, holidays)
		res.Developers = append(res.Developers, devs[i].Name)
	}

	res.AvailableDays = max(0, res.WorkingDays-res.HolidayDays)
	res.TeamSize = len(devs)
	res.TotalTeamDays = max(0, res.AvailableDays*res.TeamSize-res.PTODays)
	res.CapacityPoints = float64(res.TotalTeamDays) * opts.velocityPerDay()

	// Sum in ID order so float addition is independent of input order.
	sort.Slice(inWindow, func(i, j int) bool { return inWindow[i].ID < inWindow[j].ID })
	for i := range inWindow {
		res.AssignedDays += ResolveEffortDays(&inWindow[i], opts.Mapping)
	}
	res.AssignedDays = roundTo(res.AssignedDays, 4)
	res.TicketCount = len(inWindow)

	res.Utilization = utilization(res.AssignedDays, float64(res.TotalTeamDays))
	res.Status, res.OverCapacity = classify(res.Utilization, float64(res.TotalTeamDays))
	res.NoCapacity = res.TotalTeamDays == 0
	return res
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
