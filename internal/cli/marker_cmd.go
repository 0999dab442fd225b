package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/spf13/cobra"
)

func newMarkerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marker",
		Short: "Manage timeline markers",
	}

	cmd.AddCommand(
		newMarkerAddCmd(app),
		newMarkerListCmd(app),
		newMarkerRemoveCmd(app),
	)

	return cmd
}

func newMarkerAddCmd(app *App) *cobra.Command {
	var date, bg, fg string

	cmd := &cobra.Command{
		Use:   "add LABEL",
		Short: "Add a marker line to the timeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDate(date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			m := &domain.Marker{
				Date:            d,
				Label:           strings.Join(args, " "),
				BackgroundColor: bg,
				TextColor:       fg,
			}
			if err := app.Markers.Create(context.Background(), m); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added marker %s on %s\n", formatter.MarkerBadge(*m), domain.FormatDate(m.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Marker date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&bg, "bg", "", "Background color, e.g. #1D4ED8")
	cmd.Flags().StringVar(&fg, "fg", "", "Text color, e.g. #FFFFFF")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newMarkerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List markers by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			markers, err := app.Markers.List(context.Background())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMarkerList(markers))
			return nil
		},
	}
}

func newMarkerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm MARKER",
		Aliases: []string{"remove"},
		Short:   "Delete a marker",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMarkerID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Markers.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed marker %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
