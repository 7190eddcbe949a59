package cli

import (
	"github.com/alexanderramin/releaseplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Import   service.ImportService
	Releases service.ReleaseService
	Health   service.HealthService
	Fix      service.FixService
	Phases   service.PhaseService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh form.
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

// NewRootCmd creates the top-level "releaseplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "releaseplan",
		Short:         "Release capacity, conflict and fix planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read before the tree is built; see ConfigPathFromArgs.
	root.PersistentFlags().String(configFlag, "", "Config file (.yaml, .yml or .json)")

	root.AddCommand(
		newImportCmd(app),
		newImportCSVCmd(app),
		newReleasesCmd(app),
		newCapacityCmd(app),
		newTeamCmd(app),
		newConflictsCmd(app),
		newInsightsCmd(app),
		newFixCmd(app),
		newPhaseCmd(app),
		newDashboardCmd(app),
	)

	return root
}
