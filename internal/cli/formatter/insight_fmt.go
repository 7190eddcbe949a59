package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/app"
)

// FormatInsights renders release pace, team velocity and the ranked insights.
func FormatInsights(r *app.HealthReport) string {
	var b strings.Builder
	b.WriteString(FormatTimeline(r))

	b.WriteString("\n" + Header("Insights") + "\n")
	if len(r.Insights) == 0 {
		b.WriteString(Dim("Nothing needs attention.") + "\n")
	}
	for i, in := range r.Insights {
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), Bold(in.Title))
		fmt.Fprintf(&b, "   %s\n", in.Message)
		if in.Action != "" {
			fmt.Fprintf(&b, "   %s %s\n", StyleGreen.Render("→"), in.Action)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range r.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
	}
	return RenderBox("Insights · "+r.Release.Name, b.String())
}

// FormatTimeline renders the pace line and velocity statistics.
func FormatTimeline(r *app.HealthReport) string {
	var b strings.Builder
	tl := r.Timeline
	fmt.Fprintf(&b, "%s  progress %.0f%% · elapsed %.0f%%", TimelineBadge(tl.State), tl.ProgressPct, tl.ElapsedPct)
	if tl.DaysLeft != nil {
		fmt.Fprintf(&b, " · %d days left (%d working)", *tl.DaysLeft, tl.WorkingDaysLeft)
	}
	b.WriteString("\n")

	if r.Velocity.Sprints > 0 {
		fmt.Fprintf(&b, "Velocity: %s effort-days per sprint (σ %s over %s)\n",
			formatDays(round1(r.Velocity.Mean)), formatDays(round1(r.Velocity.StdDev)), Plural(r.Velocity.Sprints, "sprint"))
	} else {
		b.WriteString(Dim("Velocity: no finished sprints yet") + "\n")
	}
	return b.String()
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
