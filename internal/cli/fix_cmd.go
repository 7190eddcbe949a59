package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/cli/formatter"
	"github.com/alexanderramin/releaseplan/internal/recommend"
	"github.com/spf13/cobra"
)

var errConfirmationRequired = errors.New("refusing to apply without confirmation: pass --yes in a non-interactive session")

func newFixCmd(a *App) *cobra.Command {
	var apply, yes bool
	var now *time.Time

	cmd := &cobra.Command{
		Use:   "fix <release> <ticket>",
		Short: "Recommend the best dev-window fix for a ticket",
		Long: "Ranks reassignments and reschedules that keep the ticket inside a dev window.\n" +
			"With --apply the best reassign or reschedule is saved after confirmation.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			req := app.FixRequest{ReleaseRef: args[0], TicketID: args[1], Now: now}

			resp, err := a.Fix.RecommendFix(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatFix(resp))
			if !apply {
				return nil
			}

			kind := resp.Fix.Kind()
			if kind != recommend.KindReassign && kind != recommend.KindReschedule {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("\nNothing to apply: %s.", kind)))
				return nil
			}
			if !yes {
				if !a.interactive() {
					return errConfirmationRequired
				}
				ok, err := a.confirm(fmt.Sprintf("Apply %s to %s?", kind, resp.Ticket.ID))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, formatter.Dim("Cancelled."))
					return nil
				}
			}

			req.Apply = true
			resp, err = a.Fix.RecommendFix(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, "\n"+formatter.FormatFixOutcome(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Save the recommended reassign or reschedule")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without asking for confirmation")
	cmd.Flags().Var(newDateValue(&now), "now", "Timestamp the change as of this date (YYYY-MM-DD)")
	return cmd
}
