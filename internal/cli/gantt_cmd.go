package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/viewstate"
	"github.com/spf13/cobra"
)

// newGanttState seeds the Gantt range and zoom from config.
func newGanttState(app *App) *viewstate.GanttState {
	gs := viewstate.NewGanttState()
	if app.Config.Range != "" {
		gs.SetRange(app.Config.Range)
	}
	if app.Config.Zoom > 0 {
		gs.SetZoom(app.Config.Zoom)
	}
	return gs
}

// timelineRequest builds the view request for the current Gantt state.
func timelineRequest(app *App, gs *viewstate.GanttState, from time.Time, columns int) service.TimelineRequest {
	return service.TimelineRequest{
		Unit:        gs.Range,
		Zoom:        gs.Zoom,
		ColumnWidth: float64(app.Config.ColumnWidth),
		From:        from,
		Columns:     columns,
		Now:         app.now(),
	}
}

func newGanttCmd(app *App) *cobra.Command {
	var (
		unit             domain.RangeUnit
		from             time.Time
		statusRef, group string
		zoom, columns    int
		chars            int
	)

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Show items as bars on a timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			gs := newGanttState(app)
			if cmd.Flags().Changed("range") {
				gs.SetRange(unit)
			}
			if cmd.Flags().Changed("zoom") {
				gs.SetZoom(zoom)
			}

			start := app.now()
			if !from.IsZero() {
				start = from
			}

			req := timelineRequest(app, gs, start, columns)
			req.Filter = repository.ItemFilter{Group: group}
			if statusRef != "" {
				st, err := app.Statuses.Resolve(ctx, statusRef)
				if err != nil {
					return err
				}
				req.Filter.StatusID = st.ID
			}

			view, err := app.Views.Timeline(ctx, req)
			if err != nil {
				return err
			}

			opts := formatter.DefaultGanttOptions(req.Now)
			opts.ColumnChars = chars
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGantt(view, opts))
			return nil
		},
	}

	cmd.Flags().Var(rangeValue{&unit}, "range", "Column unit: daily, weekly or monthly (default from config)")
	cmd.Flags().IntVar(&zoom, "zoom", 0, "Zoom percentage, 25-400")
	cmd.Flags().Var(dateValue{&from}, "from", "First visible date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&columns, "columns", service.DefaultTimelineColumns, "Number of columns to show")
	cmd.Flags().IntVar(&chars, "chars", 10, "Characters per column")
	cmd.Flags().StringVar(&statusRef, "status", "", "Only items in this status")
	cmd.Flags().StringVar(&group, "group", "", "Only items in this group")

	return cmd
}
