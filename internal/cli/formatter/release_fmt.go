package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/app"
)

// FormatReleases lists stored releases with their sizes.
func FormatReleases(releases []app.ReleaseSummary) string {
	if len(releases) == 0 {
		return Dim("No releases imported yet. Run `releaseplan import <file>`.") + "\n"
	}

	headers := []string{"NAME", "START", "TARGET", "TEAM", "PHASES", "TICKETS"}
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		target := Dim("--")
		if r.Release.TargetDate != nil {
			target = r.Release.TargetDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			Bold(r.Release.Name),
			r.Release.StartDate.Format("2006-01-02"),
			target,
			fmt.Sprintf("%d", r.MemberCount),
			fmt.Sprintf("%d", r.PhaseCount),
			fmt.Sprintf("%d", r.TicketCount),
		})
	}
	return RenderTable(headers, rows)
}

// FormatImportResult summarizes a snapshot import.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("Imported release"), Bold(res.Release.Name))
	fmt.Fprintf(&b, "  %s (%d PTO), %s\n",
		Plural(res.MemberCount, "member"), res.PTOCount, Plural(res.HolidayCount, "holiday"))
	fmt.Fprintf(&b, "  %s, %s, %s\n",
		Plural(res.SprintCount, "sprint"), Plural(res.PhaseCount, "phase"), Plural(res.TicketCount, "ticket"))
	if res.Replaced {
		b.WriteString(Dim("  Replaced the previously imported release with this name.") + "\n")
	}
	if res.PhasesRepaired {
		b.WriteString(StyleYellow.Render("  Phases were not contiguous and have been moved into sequence.") + "\n")
	}
	return b.String()
}

// FormatTicketImport summarizes a CSV ticket import.
func FormatTicketImport(res *app.TicketImportResult) string {
	return fmt.Sprintf("%s %s: %d created, %d updated\n",
		StyleGreen.Render("Tickets imported into"), Bold(res.Release.Name), res.Created, res.Updated)
}
