package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/recommend"
)

const maxRankedShown = 5

// FormatFix renders the recommended fix, the runner-up placements and,
// when the fix was applied, the ticket's remaining conflicts.
func FormatFix(resp *app.FixResponse) string {
	var b strings.Builder
	t := resp.Ticket
	owner := t.AssignedTo
	if !t.IsAssigned() {
		owner = "unassigned"
	}
	fmt.Fprintf(&b, "%s %s  %s\n", Bold(t.ID), t.Title, Dim(fmt.Sprintf("%s · %s", owner, DateRange(t.StartDate, t.EndDate))))

	if len(resp.Conflicts) > 0 {
		b.WriteString("\n" + Header("Conflicts") + "\n")
		for _, c := range resp.Conflicts {
			fmt.Fprintf(&b, "%s %s\n", SeverityBadge(c.Severity), c.Message)
		}
	}

	b.WriteString("\n" + Header("Recommendation") + "\n")
	b.WriteString(formatFixVariant(resp.Fix))

	if len(resp.Ranked) > 1 {
		b.WriteString("\n" + Header("Alternatives") + "\n")
		headers := []string{"DEVELOPER", "DATES", "WINDOW", "UTIL AFTER", "SCORE"}
		var rows [][]string
		for i, p := range resp.Ranked[1:] {
			if i >= maxRankedShown {
				break
			}
			rows = append(rows, []string{
				p.Developer,
				DateRange(p.StartDate, p.EndDate),
				p.PhaseName,
				fmt.Sprintf("%.0f%%", p.UtilizationAfter),
				fmt.Sprintf("%.1f", p.Score),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if resp.Applied {
		b.WriteString("\n" + FormatFixOutcome(resp))
	}
	return b.String()
}

// FormatFixOutcome reports the persisted change and what still conflicts.
func FormatFixOutcome(resp *app.FixResponse) string {
	if !resp.Applied || resp.Updated == nil {
		return Dim("Nothing was applied.") + "\n"
	}
	var b strings.Builder
	u := resp.Updated
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Applied: %s now %s, %s", u.ID, u.AssignedTo, DateRange(u.StartDate, u.EndDate))) + "\n")
	if len(resp.Remaining) == 0 {
		b.WriteString(StyleGreen.Render("No conflicts remain for this ticket.") + "\n")
	}
	for _, c := range resp.Remaining {
		fmt.Fprintf(&b, "%s %s\n", SeverityBadge(c.Severity), c.Message)
	}
	return b.String()
}

func formatFixVariant(fix recommend.Fix) string {
	var b strings.Builder
	switch f := fix.(type) {
	case recommend.Reassign:
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("REASSIGN"), f.Summary)
		writePlacement(&b, f.Placement, f.Confidence())
	case recommend.Reschedule:
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("RESCHEDULE"), f.Summary)
		writePlacement(&b, f.Placement, f.Confidence())
	case recommend.CapacityExhausted:
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("CAPACITY EXHAUSTED"), f.Summary)
		if len(f.Breakdown) > 0 {
			headers := []string{"DEVELOPER", "AVAILABLE", "ASSIGNED", "SPARE", "UTILIZATION"}
			rows := make([][]string, 0, len(f.Breakdown))
			for _, d := range f.Breakdown {
				rows = append(rows, []string{
					d.Developer,
					fmt.Sprintf("%d", d.AvailableDays),
					fmt.Sprintf("%d", d.AssignedDays),
					fmt.Sprintf("%d", d.SpareDays()),
					RenderUtilization(d.Utilization, utilizationBarWidth),
				})
			}
			b.WriteString(RenderTable(headers, rows))
		}
		for _, a := range f.Alternatives {
			fmt.Fprintf(&b, "  %s %s %s\n", StyleYellow.Render("•"), a.Description, Dim(a.Impact))
		}
	case recommend.NoDevWindow:
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("NO DEV WINDOW"), f.Description())
	default:
		b.WriteString(fix.Description() + "\n")
	}
	return b.String()
}

func writePlacement(b *strings.Builder, p recommend.Placement, confidence int) {
	fmt.Fprintf(b, "  %s in %s, %d working days, utilization %.0f%% → %.0f%%, confidence %d%%\n",
		DateRange(p.StartDate, p.EndDate), p.PhaseName, p.DurationDays,
		p.UtilizationBefore, p.UtilizationAfter, confidence)
	for _, r := range p.Reasons {
		fmt.Fprintf(b, "    %s %s\n", Dim(fmt.Sprintf("%+5.1f", r.WeightDelta)), r.Message)
	}
}
