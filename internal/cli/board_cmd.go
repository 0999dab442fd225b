package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const (
	layoutKanban = "kanban"
	layoutList   = "list"
)

func newBoardCmd(app *App) *cobra.Command {
	var layout string
	var width int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show items grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.Views.Board(context.Background())
			if err != nil {
				return err
			}
			opts := formatter.BoardOptions{ColumnWidth: width, Now: app.now()}

			switch layout {
			case layoutKanban:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatKanban(b, opts))
			case layoutList:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatList(b, opts))
			default:
				return fmt.Errorf("unknown layout %q (expected kanban or list)", layout)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layout, "layout", layoutKanban, "Layout: kanban or list")
	cmd.Flags().IntVar(&width, "width", 24, "Kanban column width")

	return cmd
}
