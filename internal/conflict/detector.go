// Package conflict finds assignee double-booking, PTO clashes and tickets
// scheduled outside every dev window. Detection is set-based: the result
// for a snapshot does not depend on the order of its tickets.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

const maxSuggestions = 3

// DetectConflicts runs every detector over the snapshot. Completed tickets
// no longer occupy anyone's calendar and are skipped.
func DetectConflicts(tickets []domain.Ticket, members []domain.TeamMember, phases []domain.Phase) []Conflict {
	active := activeTickets(tickets)

	var out []Conflict
	out = append(out, detectAssigneeOverlaps(active, tickets, members)...)
	out = append(out, detectPTOOverlaps(active, tickets, members)...)
	out = append(out, detectSpillover(active, phases)...)

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := SeverityRank(a.Severity), SeverityRank(b.Severity); ra != rb {
			return ra < rb
		}
		if ka, kb := kindRank(a.Kind), kindRank(b.Kind); ka != kb {
			return ka < kb
		}
		return a.ID < b.ID
	})
	return out
}

// activeTickets returns non-completed tickets sorted by start date then ID.
func activeTickets(tickets []domain.Ticket) []domain.Ticket {
	var out []domain.Ticket
	for _, t := range tickets {
		if t.IsActive() {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func detectAssigneeOverlaps(active, all []domain.Ticket, members []domain.TeamMember) []Conflict {
	byDev := make(map[string][]domain.Ticket)
	for _, t := range active {
		if t.IsAssigned() {
			byDev[t.AssignedTo] = append(byDev[t.AssignedTo], t)
		}
	}

	var out []Conflict
	for dev, list := range byDev {
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				a, b := list[i], list[j]
				s, e, ok := calendar.Intersect(a.StartDate, a.EndDate, b.StartDate, b.EndDate)
				if !ok {
					continue
				}
				sev := SeverityWarning
				if a.Status == domain.TicketInProgress || b.Status == domain.TicketInProgress {
					sev = SeverityCritical
				}
				move := pickMovable(a, b)
				ids := []string{a.ID, b.ID}
				sort.Strings(ids)
				c := Conflict{
					ID:                 fmt.Sprintf("%s:%s:%s", KindAssigneeOverlap, ids[0], ids[1]),
					Kind:               KindAssigneeOverlap,
					Severity:           sev,
					TicketIDs:          ids,
					Developer:          dev,
					OverlapStart:       s,
					OverlapEnd:         e,
					OverlapWorkingDays: calendar.CountWorkingDays(s, e),
					MoveTicketID:       move.ID,
					Message: fmt.Sprintf("%s is double-booked: %q and %q overlap %s to %s",
						dev, a.Title, b.Title, s.Format("Jan 2"), e.Format("Jan 2")),
				}
				c.Suggestions = suggestReassignment(move, dev, all, members)
				out = append(out, c)
			}
		}
	}
	return out
}

// pickMovable chooses which ticket of an overlapping pair should move:
// never an in-progress one when the other is not, otherwise the later one.
func pickMovable(a, b domain.Ticket) domain.Ticket {
	aIP, bIP := a.Status == domain.TicketInProgress, b.Status == domain.TicketInProgress
	if aIP != bIP {
		if aIP {
			return b
		}
		return a
	}
	if !a.StartDate.Equal(b.StartDate) {
		if a.StartDate.After(b.StartDate) {
			return a
		}
		return b
	}
	if a.ID > b.ID {
		return a
	}
	return b
}

func detectPTOOverlaps(active, all []domain.Ticket, members []domain.TeamMember) []Conflict {
	var out []Conflict
	for _, t := range active {
		if !t.IsAssigned() {
			continue
		}
		m := domain.FindMember(members, t.AssignedTo)
		if m == nil {
			continue
		}
		ticketDays := calendar.CountWorkingDays(t.StartDate, t.EndDate)
		for _, p := range m.PTO {
			days := calendar.OverlapWorkingDays(t.StartDate, t.EndDate, p.StartDate, p.EndDate)
			if days == 0 {
				continue
			}
			s, e, _ := calendar.Intersect(t.StartDate, t.EndDate, p.StartDate, p.EndDate)
			sev := SeverityWarning
			if days >= ticketDays {
				sev = SeverityCritical
			}
			c := Conflict{
				ID:                 fmt.Sprintf("%s:%s:%s", KindPTOOverlap, t.ID, ptoKey(p)),
				Kind:               KindPTOOverlap,
				Severity:           sev,
				TicketIDs:          []string{t.ID},
				Developer:          m.Name,
				OverlapStart:       s,
				OverlapEnd:         e,
				OverlapWorkingDays: days,
				PTOName:            p.Name,
				MoveTicketID:       t.ID,
				Message: fmt.Sprintf("%q overlaps %s's time off (%s) by %d working day(s)",
					t.Title, m.Name, domain.CoalesceStr(p.Name, "PTO"), days),
			}
			c.Suggestions = suggestReassignment(t, m.Name, all, members)
			out = append(out, c)
		}
	}
	return out
}

func ptoKey(p domain.PTOEntry) string {
	if p.ID != "" {
		return p.ID
	}
	return p.StartDate.Format("20060102") + "-" + p.EndDate.Format("20060102")
}

// detectSpillover flags tickets not entirely inside a single work-allowing
// phase. With no such phase configured, nothing is flagged.
func detectSpillover(active []domain.Ticket, phases []domain.Phase) []Conflict {
	var windows []domain.Phase
	covered := make(calendar.DaySet)
	for _, p := range phases {
		if p.AllowsWork {
			windows = append(windows, p)
			covered.AddRange(p.StartDate, p.EndDate)
		}
	}
	if len(windows) == 0 {
		return nil
	}

	var out []Conflict
	for _, t := range active {
		if InsideAnyWindow(t.StartDate, t.EndDate, windows) {
			continue
		}
		outside := countWorkingOutside(t.StartDate, t.EndDate, covered)
		var sev Severity
		switch {
		case !touchesAnyWindow(t.StartDate, t.EndDate, windows):
			sev = SeverityCritical
		case outside > 0:
			sev = SeverityWarning
		default:
			sev = SeverityInfo
		}
		out = append(out, Conflict{
			ID:                 fmt.Sprintf("%s:%s", KindSpillover, t.ID),
			Kind:               KindSpillover,
			Severity:           sev,
			TicketIDs:          []string{t.ID},
			Developer:          t.AssignedTo,
			OverlapStart:       calendar.Day(t.StartDate),
			OverlapEnd:         calendar.Day(t.EndDate),
			OverlapWorkingDays: outside,
			MoveTicketID:       t.ID,
			Message: fmt.Sprintf("%q (%s to %s) is not inside a dev window; %d working day(s) fall outside",
				t.Title, t.StartDate.Format("Jan 2"), t.EndDate.Format("Jan 2"), outside),
		})
	}
	return out
}

// InsideAnyWindow reports whether [start, end] lies entirely within one of
// the given phases. Straddling two adjacent windows does not count.
func InsideAnyWindow(start, end time.Time, windows []domain.Phase) bool {
	for _, p := range windows {
		if calendar.Contains(p.StartDate, p.EndDate, start, end) {
			return true
		}
	}
	return false
}

func touchesAnyWindow(start, end time.Time, windows []domain.Phase) bool {
	for _, p := range windows {
		if calendar.RangesOverlap(start, end, p.StartDate, p.EndDate) {
			return true
		}
	}
	return false
}

func countWorkingOutside(start, end time.Time, covered calendar.DaySet) int {
	n := 0
	for d := calendar.Day(start); !d.After(calendar.Day(end)); d = d.AddDate(0, 0, 1) {
		if !calendar.IsWeekend(d) && !covered.Has(d) {
			n++
		}
	}
	return n
}
