package recommend

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// maxWindowExtension bounds the extension search, in working days beyond the
// ticket's own effort.
const maxWindowExtension = 65

// capacityExhausted builds the fallback result: where everyone stands and
// what the plan could change instead. The window extension and the scope
// reduction are each found by re-running placement with that one change.
func capacityExhausted(
	ticket domain.Ticket,
	windows []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) CapacityExhausted {
	need := capacity.AdjustedEffort(&ticket, domain.FindMember(members, ticket.AssignedTo), opts.Capacity)
	lastIdx := latestWindow(windows)
	last := windows[lastIdx]

	res := CapacityExhausted{
		TicketID:   ticket.ID,
		NeededDays: need,
		Breakdown:  Breakdown(ticket, windows, tickets, members, holidays, opts),
	}

	quiet := opts
	quiet.Capacity.Tracer = nil

	extension, newEnd, ok := smallestExtension(ticket, windows, lastIdx, tickets, members, holidays, need, quiet)
	if ok {
		res.ShortfallDays = extension
		res.Summary = fmt.Sprintf("No developer can fit %q (%d day(s)) inside a dev window; %s needs %d more working day(s)",
			ticket.Title, need, last.Name, extension)
		res.Alternatives = append(res.Alternatives, Alternative{
			Kind:        AltExtendWindow,
			Description: fmt.Sprintf("Extend %s by %d working day(s)", last.Name, extension),
			Impact: fmt.Sprintf("%s would end %s instead of %s; later phases shift by the same amount",
				last.Name, newEnd.Format("Jan 2"), calendar.Day(last.EndDate).Format("Jan 2")),
			Days:       extension,
			PhaseID:    last.ID,
			NewEndDate: &newEnd,
		})
	} else {
		res.ShortfallDays = need
		res.Summary = fmt.Sprintf("No developer can fit %q (%d day(s)) inside a dev window", ticket.Title, need)
	}

	res.Alternatives = append(res.Alternatives, Alternative{
		Kind:        AltMoveBacklog,
		Description: fmt.Sprintf("Move %q to the backlog", ticket.Title),
		Impact:      fmt.Sprintf("Frees %d day(s) of effort; the work leaves this release", need),
		Days:        need,
	})
	res.Alternatives = append(res.Alternatives, reduceScope(ticket, windows, tickets, members, holidays, quiet))
	return res
}

// smallestExtension finds the fewest working days windows[lastIdx] must gain
// before some candidate can place ticket.
func smallestExtension(
	ticket domain.Ticket,
	windows []domain.Phase,
	lastIdx int,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	need int,
	opts Options,
) (int, time.Time, bool) {
	hs := capacity.HolidaySet(holidays)
	extended := make([]domain.Phase, len(windows))
	for k := 1; k <= need+maxWindowExtension; k++ {
		newEnd := calendar.AddWorkingDays(calendar.AddDays(windows[lastIdx].EndDate, 1), k, hs)
		copy(extended, windows)
		extended[lastIdx].EndDate = newEnd
		if len(RankPlacements(ticket, extended, tickets, members, holidays, opts)) > 0 {
			return k, newEnd, true
		}
	}
	return 0, time.Time{}, false
}

// reduceScope finds the smallest whole-day cut to ticket's base effort after
// which some candidate can place it in the current windows.
func reduceScope(
	ticket domain.Ticket,
	windows []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) Alternative {
	base := capacity.ResolveEffortDays(&ticket, opts.Capacity.Mapping)
	for cut := 1; base-float64(cut) > 0; cut++ {
		reduced := ticket.Clone()
		effort := base - float64(cut)
		reduced.EffortDays = &effort
		reduced.StoryPoints = nil
		if len(RankPlacements(reduced, windows, tickets, members, holidays, opts)) == 0 {
			continue
		}
		return Alternative{
			Kind:        AltReduceScope,
			Description: fmt.Sprintf("Reduce scope of %q by %d day(s)", ticket.Title, cut),
			Impact: fmt.Sprintf("Effort drops from %s to %s day(s), which fits a dev window without other changes",
				formatDays(base), formatDays(effort)),
			Days: cut,
		}
	}
	return Alternative{
		Kind:        AltReduceScope,
		Description: fmt.Sprintf("Reduce scope of %q", ticket.Title),
		Impact:      "No smaller version fits the current dev windows; split the work or combine with another change",
	}
}

func latestWindow(windows []domain.Phase) int {
	last := len(windows) - 1
	for i, w := range windows {
		if w.EndDate.After(windows[last].EndDate) {
			last = i
		}
	}
	return last
}

func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Breakdown reports, per eligible developer, capacity and load summed over
// every dev window with ticket itself left out.
func Breakdown(
	ticket domain.Ticket,
	phases []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) []DeveloperCapacity {
	windows := devWindows(phases)
	hs := capacity.HolidaySet(holidays)
	var out []DeveloperCapacity
	for _, m := range candidates(ticket, members) {
		dc := DeveloperCapacity{Developer: m.Name}
		for _, w := range windows {
			load := capacity.CalculateMemberLoad(m, w.StartDate, w.EndDate, tickets, hs, opts.Capacity, ticket.ID)
			dc.AvailableDays += load.AvailableDays
			dc.AssignedDays += load.AssignedDays
		}
		if dc.AvailableDays > 0 {
			dc.Utilization = roundPct(float64(dc.AssignedDays) / float64(dc.AvailableDays) * 100)
		}
		out = append(out, dc)
	}
	return out
}
