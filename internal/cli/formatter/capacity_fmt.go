package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/capacity"
)

const utilizationBarWidth = 12

// FormatCapacity renders per-sprint capacity followed by the dev-window total.
func FormatCapacity(r *app.HealthReport) string {
	var b strings.Builder

	b.WriteString(Header("Sprints") + "\n")
	if len(r.Sprints) == 0 {
		b.WriteString(Dim("No sprints defined.") + "\n")
	} else {
		headers := []string{"SPRINT", "DATES", "WORKING", "HOLIDAY", "PTO", "TEAM DAYS", "ASSIGNED", "UTILIZATION", "STATUS"}
		rows := make([][]string, 0, len(r.Sprints))
		for _, s := range r.Sprints {
			rows = append(rows, capacityRow(s))
		}
		b.WriteString(RenderTable(headers, rows))
		fmt.Fprintf(&b, "\nOverall sprint utilization: %s\n", RenderUtilization(r.Utilization, utilizationBarWidth))
	}

	b.WriteString("\n" + Header("Dev windows") + "\n")
	rc := r.Capacity
	switch {
	case rc.NoDevWindow:
		b.WriteString(StyleRed.Render("No dev window configured: no phase allows work.") + "\n")
	default:
		headers := []string{"PHASE", "DATES", "WORKING", "HOLIDAY", "PTO", "TEAM DAYS", "ASSIGNED", "UTILIZATION", "STATUS"}
		rows := make([][]string, 0, len(rc.Phases))
		for _, p := range rc.Phases {
			rows = append(rows, capacityRow(p))
		}
		b.WriteString(RenderTable(headers, rows))
		fmt.Fprintf(&b, "\nRelease: %s of %d team-days assigned %s %s\n",
			formatDays(rc.AssignedDays), rc.TotalTeamDays,
			RenderUtilization(rc.Utilization, utilizationBarWidth), CapacityPill(rc.Status))
	}

	return RenderBox("Capacity · "+r.Release.Name, b.String())
}

func capacityRow(c capacity.CapacityResult) []string {
	util := RenderUtilization(c.Utilization, utilizationBarWidth)
	if c.NoCapacity {
		util = Dim("n/a")
	}
	return []string{
		Bold(c.WindowName),
		DateRange(c.StartDate, c.EndDate),
		fmt.Sprintf("%d", c.WorkingDays),
		fmt.Sprintf("%d", c.HolidayDays),
		fmt.Sprintf("%d", c.PTODays),
		fmt.Sprintf("%d", c.TotalTeamDays),
		formatDays(c.AssignedDays),
		util,
		CapacityPill(c.Status),
	}
}

// FormatTeam renders each member's load across every sprint.
func FormatTeam(r *app.HealthReport) string {
	var b strings.Builder
	if len(r.Team) == 0 {
		b.WriteString(Dim("No team members.") + "\n")
		return RenderBox("Team · "+r.Release.Name, b.String())
	}

	headers := []string{"MEMBER", "ROLE", "VELOCITY", "AVAILABLE", "ASSIGNED", "UTILIZATION", "STATUS"}
	rows := make([][]string, 0, len(r.Team))
	for _, m := range r.Team {
		rows = append(rows, []string{
			Bold(m.Name),
			string(m.Role),
			fmt.Sprintf("%.2fx", m.Velocity),
			fmt.Sprintf("%d", m.TotalAvailableDays),
			fmt.Sprintf("%d", m.TotalAssignedDays),
			RenderUtilization(m.Utilization, utilizationBarWidth),
			CapacityPill(m.Status),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	var over []string
	for _, m := range r.Team {
		for _, s := range m.Sprints {
			if s.OverCapacity {
				over = append(over, fmt.Sprintf("%s in %s (%d of %d days)",
					m.Name, s.SprintName, s.Load.AssignedDays, s.Load.AvailableDays))
			}
		}
	}
	if len(over) > 0 {
		b.WriteString("\n" + StyleRed.Render("Over capacity:") + "\n")
		for _, o := range over {
			b.WriteString("  " + o + "\n")
		}
	}
	return RenderBox("Team · "+r.Release.Name, b.String())
}
