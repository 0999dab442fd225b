package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/table"
	"github.com/spf13/cobra"
)

func newTableCmd(app *App) *cobra.Command {
	var sortBy string
	var desc bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show items as a sortable table",
		RunE: func(cmd *cobra.Command, args []string) error {
			column, err := table.ParseColumn(sortBy)
			if err != nil {
				return err
			}
			items, err := app.Views.Table(context.Background(), column, desc)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemTable(items, column, desc, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", table.ColumnName, "Sort column: name, start, end or status")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	return cmd
}
