package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage statuses (board columns)",
	}

	cmd.AddCommand(
		newStatusAddCmd(app),
		newStatusListCmd(app),
		newStatusRemoveCmd(app),
	)

	return cmd
}

func newStatusAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a status",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Status{
				Name:  strings.Join(args, " "),
				Color: color,
			}
			if err := app.Statuses.Create(context.Background(), s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created status %s %s\n", formatter.StatusLabel(*s), formatter.TruncID(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #F59E0B (default grey)")

	return cmd
}

func newStatusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List statuses in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			statuses, err := app.Statuses.List(ctx)
			if err != nil {
				return err
			}
			items, err := app.Items.List(ctx, repository.ItemFilter{})
			if err != nil {
				return err
			}
			counts := make(map[string]int, len(statuses))
			for _, it := range items {
				counts[it.Status.ID]++
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatusList(statuses, counts))
			return nil
		},
	}
}

func newStatusRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm STATUS",
		Aliases: []string{"remove"},
		Short:   "Delete a status that no item uses",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Statuses.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Statuses.Delete(ctx, s.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed status %s\n", s.Name)
			return nil
		},
	}
}
