package conflict

import (
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

// WouldClash reports whether giving member a ticket over [start, end] would
// create an assignee overlap or PTO conflict. The ticket with ID excludeID is
// ignored so a ticket never clashes with its own current placement. The rules
// match DetectConflicts exactly.
func WouldClash(member *domain.TeamMember, start, end time.Time, tickets []domain.Ticket, excludeID string) bool {
	for _, p := range member.PTO {
		if calendar.OverlapWorkingDays(start, end, p.StartDate, p.EndDate) > 0 {
			return true
		}
	}
	for i := range tickets {
		t := &tickets[i]
		if t.ID == excludeID || !t.IsActive() || t.AssignedTo != member.Name {
			continue
		}
		if t.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// EligibleRole is the role a replacement must have: the current owner's role,
// or Developer when the owner is unknown.
func EligibleRole(owner string, members []domain.TeamMember) domain.Role {
	if m := domain.FindMember(members, owner); m != nil && m.Role != "" {
		return m.Role
	}
	return domain.RoleDeveloper
}

func suggestReassignment(t domain.Ticket, owner string, all []domain.Ticket, members []domain.TeamMember) []Suggestion {
	role := EligibleRole(owner, members)
	var out []Suggestion
	for i := range members {
		m := &members[i]
		if m.Name == owner || m.Role != role {
			continue
		}
		if WouldClash(m, t.StartDate, t.EndDate, all, t.ID) {
			continue
		}
		out = append(out, Suggestion{
			Developer: m.Name,
			Reason:    "free for the whole ticket window",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Developer < out[j].Developer })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
