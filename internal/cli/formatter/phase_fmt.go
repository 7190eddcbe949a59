package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/app"
)

// FormatPhaseEdit shows every phase before and after a cascading end-date edit.
func FormatPhaseEdit(resp *app.PhaseEditResponse) string {
	var b strings.Builder
	changed := make(map[string]bool, len(resp.Changed))
	for _, id := range resp.Changed {
		changed[id] = true
	}
	before := make(map[string]string, len(resp.Before))
	for _, p := range resp.Before {
		before[p.ID] = DateRange(p.StartDate, p.EndDate)
	}

	headers := []string{"#", "PHASE", "TYPE", "BEFORE", "AFTER", ""}
	rows := make([][]string, 0, len(resp.After))
	for _, p := range resp.After {
		after := DateRange(p.StartDate, p.EndDate)
		mark := ""
		if changed[p.ID] {
			after = StyleYellow.Render(after)
			mark = StyleYellow.Render("moved")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Order),
			Bold(p.Name),
			string(p.Type),
			Dim(before[p.ID]),
			after,
			mark,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	if resp.Repaired {
		b.WriteString(StyleYellow.Render("Stored phases were not contiguous and were repaired first.") + "\n")
	}
	switch {
	case len(resp.Changed) == 0:
		b.WriteString(Dim("No phase dates changed.") + "\n")
	case resp.Saved:
		b.WriteString(StyleGreen.Render(fmt.Sprintf("Saved %s.", Plural(len(resp.Changed), "phase"))) + "\n")
	default:
		b.WriteString(Dim(fmt.Sprintf("Dry run: %s would change.", Plural(len(resp.Changed), "phase"))) + "\n")
	}
	return b.String()
}
