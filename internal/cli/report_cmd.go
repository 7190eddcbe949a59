package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/cli/formatter"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/spf13/cobra"
)

// newReportCmd builds a read-only command that renders one view of the
// release health report.
func newReportCmd(a *App, use, short string, render func(cmd *cobra.Command, r *app.HealthReport) error) *cobra.Command {
	now := new(*time.Time)
	cmd := &cobra.Command{
		Use:   use + " <release>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.Health.HealthReport(cmd.Context(), app.HealthRequest{ReleaseRef: args[0], Now: *now})
			if err != nil {
				return err
			}
			return render(cmd, report)
		},
	}
	cmd.Flags().Var(newDateValue(now), "now", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func newCapacityCmd(a *App) *cobra.Command {
	return newReportCmd(a, "capacity", "Show sprint and dev-window capacity",
		func(cmd *cobra.Command, r *app.HealthReport) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCapacity(r))
			return nil
		})
}

func newTeamCmd(a *App) *cobra.Command {
	return newReportCmd(a, "team", "Show per-member capacity across sprints",
		func(cmd *cobra.Command, r *app.HealthReport) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTeam(r))
			return nil
		})
}

func newInsightsCmd(a *App) *cobra.Command {
	return newReportCmd(a, "insights", "Show release pace and the top insights",
		func(cmd *cobra.Command, r *app.HealthReport) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInsights(r))
			return nil
		})
}

func newConflictsCmd(a *App) *cobra.Command {
	var severity string
	cmd := newReportCmd(a, "conflicts", "List assignee, PTO and dev-window conflicts",
		func(cmd *cobra.Command, r *app.HealthReport) error {
			conflicts, err := filterBySeverity(r.Conflicts, severity)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConflicts(conflicts, conflict.Summarize(conflicts)))
			return nil
		})
	cmd.Flags().StringVar(&severity, "severity", "", "Only show critical, warning or info conflicts")
	return cmd
}

func filterBySeverity(conflicts []conflict.Conflict, severity string) ([]conflict.Conflict, error) {
	if severity == "" {
		return conflicts, nil
	}
	want := conflict.Severity(strings.ToLower(severity))
	switch want {
	case conflict.SeverityCritical, conflict.SeverityWarning, conflict.SeverityInfo:
	default:
		return nil, fmt.Errorf("invalid severity %q (expected critical, warning or info)", severity)
	}
	var out []conflict.Conflict
	for _, c := range conflicts {
		if c.Severity == want {
			out = append(out, c)
		}
	}
	return out, nil
}
