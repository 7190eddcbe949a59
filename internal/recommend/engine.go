package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// BestDevWindowFix proposes the single best fix for ticket. Reassign and
// Reschedule are only returned for placements that fit entirely inside one
// dev window, keep the developer at or under 100% utilization there, and
// introduce no assignee or PTO clash.
func BestDevWindowFix(
	ticket domain.Ticket,
	phases []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) Fix {
	windows := devWindows(phases)
	if len(windows) == 0 {
		return NoDevWindow{TicketID: ticket.ID}
	}

	ranked := RankPlacements(ticket, windows, tickets, members, holidays, opts)
	if len(ranked) == 0 {
		return capacityExhausted(ticket, windows, tickets, members, holidays, opts)
	}

	best := ranked[0]
	if best.Developer == ticket.AssignedTo {
		return Reschedule{
			Placement: best,
			TicketID:  ticket.ID,
			Summary: fmt.Sprintf("Reschedule %q to %s - %s in %s (%s at %.0f%%)",
				ticket.Title, best.StartDate.Format("Jan 2"), best.EndDate.Format("Jan 2"),
				best.PhaseName, best.Developer, best.UtilizationAfter),
		}
	}
	from := ticket.AssignedTo
	if !ticket.IsAssigned() {
		from = ""
	}
	return Reassign{
		Placement: best,
		TicketID:  ticket.ID,
		From:      from,
		Summary: fmt.Sprintf("Reassign %q to %s, %s - %s in %s (%.0f%% utilized after)",
			ticket.Title, best.Developer, best.StartDate.Format("Jan 2"), best.EndDate.Format("Jan 2"),
			best.PhaseName, best.UtilizationAfter),
	}
}

// RankPlacements returns every valid placement, best first: score
// descending, then developer name, then start date.
func RankPlacements(
	ticket domain.Ticket,
	phases []domain.Phase,
	tickets []domain.Ticket,
	members []domain.TeamMember,
	holidays []domain.Holiday,
	opts Options,
) []Placement {
	windows := devWindows(phases)
	hs := capacity.HolidaySet(holidays)
	weights := opts.weights()

	var out []Placement
	for _, m := range candidates(ticket, members) {
		p, phase, ok := earliestPlacement(&ticket, m, windows, tickets, hs, opts)
		if !ok {
			continue
		}
		p.Score, p.Reasons = scorePlacement(scoringInput{
			ticket:    &ticket,
			member:    m,
			phase:     phase,
			placement: p,
			weights:   weights,
		})
		opts.trace("fix_candidate_scored", map[string]any{
			"ticket_id": ticket.ID,
			"developer": m.Name,
			"phase":     p.PhaseName,
			"score":     p.Score,
		})
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Developer != b.Developer {
			return a.Developer < b.Developer
		}
		return a.StartDate.Before(b.StartDate)
	})
	return out
}

// candidates are members sharing the owner's role, the owner included.
func candidates(ticket domain.Ticket, members []domain.TeamMember) []*domain.TeamMember {
	role := conflict.EligibleRole(ticket.AssignedTo, members)
	var out []*domain.TeamMember
	for i := range members {
		if members[i].Role == role {
			out = append(out, &members[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// earliestPlacement scans windows in date order for the first working-day
// start where m can carry the ticket to completion inside the window.
func earliestPlacement(
	ticket *domain.Ticket,
	m *domain.TeamMember,
	windows []domain.Phase,
	tickets []domain.Ticket,
	hs calendar.DaySet,
	opts Options,
) (Placement, domain.Phase, bool) {
	need := capacity.AdjustedEffort(ticket, m, opts.Capacity)

	for _, w := range windows {
		load := capacity.CalculateMemberLoad(m, w.StartDate, w.EndDate, tickets, hs, opts.Capacity, ticket.ID)
		if load.AvailableDays == 0 {
			opts.trace("fix_candidate_rejected", rejectFields(ticket, m, w, "no capacity in window"))
			continue
		}
		after := float64(load.AssignedDays+need) / float64(load.AvailableDays) * 100
		if after > 100 {
			opts.trace("fix_candidate_rejected", rejectFields(ticket, m, w, "would exceed 100% utilization"))
			continue
		}

		end := calendar.Day(w.EndDate)
		for s := calendar.Day(w.StartDate); !s.After(end); s = s.AddDate(0, 0, 1) {
			if !calendar.IsWorkingDay(s, hs) {
				continue
			}
			e := calendar.AddWorkingDays(s, need, hs)
			if e.After(end) {
				break
			}
			if conflict.WouldClash(m, s, e, tickets, ticket.ID) {
				continue
			}
			return Placement{
				Developer:         m.Name,
				StartDate:         s,
				EndDate:           e,
				PhaseID:           w.ID,
				PhaseName:         w.Name,
				DurationDays:      need,
				UtilizationBefore: load.Utilization,
				UtilizationAfter:  roundPct(after),
			}, w, true
		}
		opts.trace("fix_candidate_rejected", rejectFields(ticket, m, w, "no clash-free slot"))
	}
	return Placement{}, domain.Phase{}, false
}

func rejectFields(t *domain.Ticket, m *domain.TeamMember, w domain.Phase, reason string) map[string]any {
	return map[string]any{
		"ticket_id": t.ID,
		"developer": m.Name,
		"phase":     w.Name,
		"reason":    reason,
	}
}

// devWindows returns the work-allowing phases ordered by start date.
func devWindows(phases []domain.Phase) []domain.Phase {
	var out []domain.Phase
	for _, p := range domain.SortPhases(phases) {
		if p.AllowsWork {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
