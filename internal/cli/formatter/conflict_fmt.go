package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/conflict"
)

// FormatConflicts lists conflicts most severe first with reassignment hints.
func FormatConflicts(conflicts []conflict.Conflict, m conflict.Metrics) string {
	var b strings.Builder
	if len(conflicts) == 0 {
		b.WriteString(StyleGreen.Render("No conflicts detected.") + "\n")
		return b.String()
	}

	for _, c := range conflicts {
		fmt.Fprintf(&b, "%s %s\n", SeverityBadge(c.Severity), c.Message)
		detail := []string{string(c.Kind), "tickets " + strings.Join(c.TicketIDs, ", ")}
		if !c.OverlapStart.IsZero() {
			detail = append(detail, DateRange(c.OverlapStart, c.OverlapEnd))
		}
		b.WriteString("         " + Dim(strings.Join(detail, " · ")) + "\n")
		for _, s := range c.Suggestions {
			fmt.Fprintf(&b, "         %s %s: %s\n", StyleGreen.Render("→"), s.Developer, Dim(s.Reason))
		}
	}

	b.WriteString("\n" + FormatConflictSummary(m) + "\n")
	return b.String()
}

// FormatConflictSummary renders the one-line conflict tally.
func FormatConflictSummary(m conflict.Metrics) string {
	parts := []string{
		StyleRed.Render(fmt.Sprintf("%d Critical", m.Critical)),
		StyleYellow.Render(fmt.Sprintf("%d Warning", m.Warning)),
		StyleBlue.Render(fmt.Sprintf("%d Info", m.Info)),
	}
	line := strings.Join(parts, ", ")
	line += Dim(fmt.Sprintf("  (%s affected, %d reassignable", Plural(m.AffectedTickets, "ticket"), m.Reassignable))
	if m.PTODelayRiskDays > 0 {
		line += Dim(fmt.Sprintf(", %d PTO delay-risk days", m.PTODelayRiskDays))
	}
	return line + Dim(")")
}
