package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive views",
		Long: `Open the full-screen interface. Number keys switch between the
calendar, gantt, board, list and table views; ':' runs any roadmap command.
Changes made from another terminal are picked up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(cmd.Context(), app)
		},
	}
}

// RunTUI runs the interactive views until the user quits.
func RunTUI(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(app)
	// An in-memory database has no file to watch; the TUI still works,
	// it just won't see changes made elsewhere.
	if changes, err := watchDB(ctx, app.Config.DBPath, watchDebounce); err == nil {
		m.changes = changes
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
