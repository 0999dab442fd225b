package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/viewstate"
	"github.com/spf13/cobra"
)

const defaultCalendarCellWidth = 12

func newCalendarCmd(app *App) *cobra.Command {
	var month string
	var width int

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid of items by end date",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := viewstate.NewCalendarState(app.now())
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
				}
				state.SetYear(t.Year())
				state.SetMonth(t.Month())
			}

			grid, err := app.Views.MonthGrid(context.Background(), state.Year, state.MonthIndex())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMonth(state.Label(), grid, width))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	cmd.Flags().IntVar(&width, "width", defaultCalendarCellWidth, "Width of one day cell")

	return cmd
}
