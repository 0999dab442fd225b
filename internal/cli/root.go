package cli

import (
	"time"

	"github.com/alexanderramin/roadmap/internal/config"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Statuses service.StatusService
	Items    service.ItemService
	Markers  service.MarkerService
	Views    service.ViewService
	Import   service.ImportService
	Export   service.ExportService

	Config config.Config

	// Clock returns the current time. Tests pin it; nil means time.Now.
	Clock func() time.Time

	// IsInteractive reports whether stdin is a terminal. When it does, the
	// bare "roadmap" command opens the TUI.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "roadmap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "Terminal roadmap planner: calendar, gantt, board, list and table views",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return RunTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStatusCmd(app),
		newItemCmd(app),
		newMarkerCmd(app),
		newCalendarCmd(app),
		newGanttCmd(app),
		newBoardCmd(app),
		newTableCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newTUICmd(app),
	)

	return root
}
