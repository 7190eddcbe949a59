package cli

import (
	"fmt"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a release snapshot from JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.ImportSnapshot(cmd.Context(), app.ImportRequest{
				FilePath:     args[0],
				RepairPhases: repair,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair-phases", false, "Move non-contiguous phases into sequence instead of failing")
	return cmd
}

func newImportCSVCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-csv <release> <file>",
		Short: "Create or update tickets of a release from a CSV export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.ImportTicketsCSV(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTicketImport(res))
			return nil
		},
	}
}

func newReleasesCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "releases",
		Aliases: []string{"ls"},
		Short:   "List imported releases",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			releases, err := a.Releases.ListReleases(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReleases(releases))
			return nil
		},
	}
}
