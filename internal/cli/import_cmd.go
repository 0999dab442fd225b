package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import statuses, items and markers from a JSON file",
		Long: `Import statuses, items and markers from a JSON file.

The file may contain comments and trailing commas. Rows whose id already
exists are updated, so importing a previous export again is safe. The
whole file is written in one transaction: on any error nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := execImport(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

// execImport runs an import and describes the result.
func execImport(ctx context.Context, app *App, path string) (string, error) {
	result, err := app.Import.Import(ctx, path)
	if err != nil {
		return "", err
	}
	return importSummary(path, result), nil
}

func importSummary(path string, r *service.ImportResult) string {
	return fmt.Sprintf("Imported %s: %d statuses (%d updated), %d items (%d updated), %d markers",
		path,
		r.StatusesCreated+r.StatusesUpdated, r.StatusesUpdated,
		r.ItemsCreated+r.ItemsUpdated, r.ItemsUpdated,
		r.MarkerCount,
	)
}
