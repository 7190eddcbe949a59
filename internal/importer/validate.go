package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateRelease(&schema.Release)...)

	memberNames := make(map[string]bool)
	errs = append(errs, validateTeam(schema.Team, memberNames)...)

	for i, h := range schema.Holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		end := h.EndDate
		if end == "" {
			end = h.StartDate
		}
		errs = append(errs, validateRange(prefix, h.StartDate, end)...)
	}

	sprintNames := make(map[string]bool)
	for i, s := range schema.Sprints {
		prefix := fmt.Sprintf("sprints[%d]", i)
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if sprintNames[s.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate sprint %q", prefix, s.Name))
		} else {
			sprintNames[s.Name] = true
		}
		errs = append(errs, validateRange(prefix, s.StartDate, s.EndDate)...)
	}

	errs = append(errs, validatePhases(schema.Phases)...)
	errs = append(errs, validateTickets(schema.Tickets, memberNames)...)

	return errs
}

// ValidateTicketImports checks tickets arriving on their own (CSV) against
// the team of the release they will join.
func ValidateTicketImports(tickets []TicketImport, members []domain.TeamMember) []error {
	names := make(map[string]bool, len(members))
	for _, m := range members {
		names[m.Name] = true
	}
	return validateTickets(tickets, names)
}

func validateRelease(r *ReleaseImport) []error {
	var errs []error

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Errorf("release.name is required"))
	}
	if r.StartDate == "" {
		errs = append(errs, fmt.Errorf("release.start_date is required"))
	} else if _, err := time.Parse(dateLayout, r.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("release.start_date: invalid date format %q (expected YYYY-MM-DD)", r.StartDate))
	}
	if r.TargetDate != nil {
		target, err := time.Parse(dateLayout, *r.TargetDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("release.target_date: invalid date format %q (expected YYYY-MM-DD)", *r.TargetDate))
		} else if start, startErr := time.Parse(dateLayout, r.StartDate); startErr == nil && !target.After(start) {
			errs = append(errs, fmt.Errorf("release.target_date %q must be after start_date %q", *r.TargetDate, r.StartDate))
		}
	}
	for sp, days := range r.StoryPointMapping {
		if sp < 0 || days < 0 {
			errs = append(errs, fmt.Errorf("release.story_point_mapping: %d -> %g must not be negative", sp, days))
		}
	}

	return errs
}

func validateTeam(team []MemberImport, names map[string]bool) []error {
	var errs []error

	for i, m := range team {
		prefix := fmt.Sprintf("team[%d]", i)

		switch {
		case strings.TrimSpace(m.Name) == "":
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		case strings.EqualFold(m.Name, domain.UnassignedName):
			errs = append(errs, fmt.Errorf("%s.name: %q is reserved", prefix, m.Name))
		case names[m.Name]:
			errs = append(errs, fmt.Errorf("%s.name: duplicate member %q", prefix, m.Name))
		default:
			names[m.Name] = true
		}

		if m.Role != "" && !domain.ValidRoles[m.Role] {
			errs = append(errs, fmt.Errorf("%s.role: invalid value %q", prefix, m.Role))
		}
		if m.VelocityMultiplier != nil && *m.VelocityMultiplier <= 0 {
			errs = append(errs, fmt.Errorf("%s.velocity_multiplier must be positive", prefix))
		}
		for j, p := range m.PTO {
			errs = append(errs, validateRange(fmt.Sprintf("%s.pto[%d]", prefix, j), p.StartDate, p.EndDate)...)
		}
	}

	return errs
}

func validatePhases(phases []PhaseImport) []error {
	var errs []error
	orders := make(map[int]string)

	for i, p := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		} else if !domain.ValidPhaseTypes[p.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, p.Type))
		}
		if p.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must not be negative", prefix))
		} else if p.Order > 0 {
			if other, dup := orders[p.Order]; dup {
				errs = append(errs, fmt.Errorf("%s.order: %d already used by %q", prefix, p.Order, other))
			} else {
				orders[p.Order] = p.Name
			}
		}
		errs = append(errs, validateRange(prefix, p.StartDate, p.EndDate)...)
	}

	return errs
}

func validateTickets(tickets []TicketImport, memberNames map[string]bool) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, t := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)

		if t.ID != "" {
			if ids[t.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate ticket %q", prefix, t.ID))
			}
			ids[t.ID] = true
		}
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		errs = append(errs, validateRange(prefix, t.StartDate, t.EndDate)...)

		if t.Status != "" && !domain.ValidTicketStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if t.EffortDays != nil && *t.EffortDays < 0 {
			errs = append(errs, fmt.Errorf("%s.effort_days must not be negative", prefix))
		}
		if t.StoryPoints != nil && *t.StoryPoints < 0 {
			errs = append(errs, fmt.Errorf("%s.story_points must not be negative", prefix))
		}

		owner := strings.TrimSpace(t.AssignedTo)
		if owner != "" && !strings.EqualFold(owner, domain.UnassignedName) && !memberNames[owner] {
			errs = append(errs, fmt.Errorf("%s.assigned_to: %q is not a team member", prefix, t.AssignedTo))
		}
	}

	return errs
}

func validateRange(prefix, start, end string) []error {
	var errs []error

	s, startErr := parseRequiredDate(prefix+".start_date", start)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	e, endErr := parseRequiredDate(prefix+".end_date", end)
	if endErr != nil {
		errs = append(errs, endErr)
	}
	if startErr == nil && endErr == nil && e.Before(s) {
		errs = append(errs, fmt.Errorf("%s: end_date %q is before start_date %q", prefix, end, start))
	}

	return errs
}

func parseRequiredDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)
	}
	return t, nil
}
