package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

type State string

const (
	StateOnTrack    State = "on_track"
	StateBehind     State = "behind"
	StateAhead      State = "ahead"
	StateNotStarted State = "not_started"
	StateUnknown    State = "unknown"
)

// paceTolerance is how far progress may trail or lead elapsed time, in
// percentage points, before the release counts as behind or ahead.
const paceTolerance = 10.0

// Status compares delivered effort with elapsed calendar time.
type Status struct {
	State State
	// ProgressPct is completed effort / total effort * 100.
	ProgressPct float64
	// ElapsedPct is (now - start) / (target - start) * 100, clamped to [0, 100].
	ElapsedPct float64
	// DaysLeft until the target date; nil without one.
	DaysLeft *int
	// WorkingDaysLeft counts weekdays from tomorrow through the target date.
	WorkingDaysLeft int
}

// IsBehind reports whether the release is trailing its schedule.
func (s Status) IsBehind() bool {
	return s.State == StateBehind
}

// EvaluateTimeline derives the pace of a release at now.
func EvaluateTimeline(release domain.Release, tickets []domain.Ticket, mapping domain.StoryPointMapping, now time.Time) Status {
	var total, done float64
	for i := range tickets {
		e := capacity.ResolveEffortDays(&tickets[i], mapping)
		total += e
		if tickets[i].Status == domain.TicketCompleted {
			done += e
		}
	}

	var st Status
	if total > 0 {
		st.ProgressPct = math.Round(done/total*10000) / 100
	}

	if release.TargetDate == nil {
		st.State = StateUnknown
		return st
	}
	start := calendar.Day(release.StartDate)
	target := calendar.Day(*release.TargetDate)
	today := calendar.Day(now)

	daysLeft := calendar.DaysBetween(today, target)
	st.DaysLeft = &daysLeft
	st.WorkingDaysLeft = calendar.CountWorkingDays(calendar.AddDays(today, 1), target)

	span := calendar.DaysBetween(start, target)
	if span <= 0 {
		st.State = StateUnknown
		return st
	}
	if today.Before(start) {
		st.State = StateNotStarted
		return st
	}
	elapsed := float64(calendar.DaysBetween(start, today)) / float64(span) * 100
	st.ElapsedPct = math.Round(math.Min(100, elapsed)*100) / 100

	switch {
	case total == 0:
		st.State = StateUnknown
	case daysLeft < 0 && st.ProgressPct < 100:
		st.State = StateBehind
	case st.ProgressPct < st.ElapsedPct-paceTolerance:
		st.State = StateBehind
	case st.ProgressPct > st.ElapsedPct+paceTolerance:
		st.State = StateAhead
	default:
		st.State = StateOnTrack
	}
	return st
}
