package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
)

// ErrPhasesNotContiguous is returned (joined with per-gap detail) when a
// release's phases leave gaps or overlap once sorted by Order.
var ErrPhasesNotContiguous = errors.New("phases are not contiguous")

type Phase struct {
	ID         string
	ReleaseID  string
	Name       string
	Type       PhaseType
	StartDate  time.Time
	EndDate    time.Time
	AllowsWork bool
	// Order is the 1-based sequence index within the release.
	Order int
}

// DurationDays is the phase length in calendar days minus one, i.e. the
// offset from StartDate to EndDate. Reversed phases report 0.
func (p *Phase) DurationDays() int {
	d := calendar.DaysBetween(p.StartDate, p.EndDate)
	if d < 0 {
		return 0
	}
	return d
}

// SortPhases returns a copy of phases ordered by Order, then StartDate, then ID.
func SortPhases(phases []Phase) []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CheckPhaseContiguity verifies that, sorted by Order, each phase starts the
// day after the previous one ends. All violations are reported together.
func CheckPhaseContiguity(phases []Phase) error {
	sorted := SortPhases(phases)
	var errs []error
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		want := calendar.AddDays(prev.EndDate, 1)
		if !calendar.Day(cur.StartDate).Equal(want) {
			errs = append(errs, fmt.Errorf("phase %q starts %s, expected %s (day after %q ends)",
				cur.Name, cur.StartDate.Format("2006-01-02"), want.Format("2006-01-02"), prev.Name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrPhasesNotContiguous}, errs...)...)
}

// RepairPhaseContiguity returns a contiguous copy of phases: the first phase
// (by Order) keeps its dates and every later phase is moved to start the day
// after its predecessor ends, keeping its own duration.
func RepairPhaseContiguity(phases []Phase) []Phase {
	out := SortPhases(phases)
	for i := range out {
		out[i].StartDate = calendar.Day(out[i].StartDate)
		out[i].EndDate = calendar.Day(out[i].EndDate)
		if i == 0 {
			continue
		}
		dur := out[i].DurationDays()
		out[i].StartDate = calendar.AddDays(out[i-1].EndDate, 1)
		out[i].EndDate = calendar.AddDays(out[i].StartDate, dur)
	}
	return out
}
