package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPhaseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Inspect and edit release phases",
	}
	cmd.AddCommand(newPhaseEditCmd(a))
	return cmd
}

func newPhaseEditCmd(a *App) *cobra.Command {
	var end *time.Time
	var dryRun, repair bool

	cmd := &cobra.Command{
		Use:   "edit <release> <phase>",
		Short: "Change a phase's end date and shift every later phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if end == nil {
				return errors.New("--end is required")
			}
			resp, err := a.Phases.EditPhaseEnd(cmd.Context(), app.PhaseEditRequest{
				ReleaseRef: args[0],
				PhaseRef:   args[1],
				NewEnd:     *end,
				Repair:     repair,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseEdit(resp))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&end), "end", "New end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the cascade without saving it")
	cmd.Flags().BoolVar(&repair, "repair", false, "Make stored phases contiguous before editing")
	return cmd
}
