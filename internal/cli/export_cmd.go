package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/roadmap/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var formatStr, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roadmap as JSON or iCalendar",
		Long: `Export the roadmap as JSON (re-importable) or as an iCalendar feed with
one all-day event per item.

Without --out the export is written to standard output. The format
defaults to the --out file extension, then to json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatStr == "" {
				formatStr = formatFromPath(out)
			}
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if out == "" {
				return app.Export.Write(ctx, cmd.OutOrStdout(), format)
			}

			result, err := app.Export.ExportFile(ctx, format, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items and %d markers to %s (%s)\n",
				result.ItemCount, result.MarkerCount, result.Path, result.Format)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatStr, "format", "", "Export format: json or ics")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		return string(export.FormatICS)
	}
	return string(export.FormatJSON)
}
