package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage roadmap items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemShowCmd(app),
		newItemEditCmd(app),
		newItemMoveCmd(app),
		newItemRescheduleCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

// defaultStatus returns the first board column, creating the default
// statuses on an empty database.
func defaultStatus(ctx context.Context, app *App) (*domain.Status, error) {
	statuses, err := app.Statuses.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("no statuses defined; add one with: roadmap status add NAME")
	}
	return &statuses[0], nil
}

// parseOptionalDate parses a YYYY-MM-DD flag value; empty means nil.
func parseOptionalDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &t, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var name, start, end, statusRef, group string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			startAt, err := domain.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endAt, err := parseOptionalDate("end", end)
			if err != nil {
				return err
			}

			var st *domain.Status
			if statusRef == "" {
				st, err = defaultStatus(ctx, app)
			} else {
				st, err = app.Statuses.Resolve(ctx, statusRef)
			}
			if err != nil {
				return err
			}

			it := &domain.Item{
				Name:    name,
				StartAt: startAt,
				EndAt:   endAt,
				Status:  *st,
				Group:   strings.TrimSpace(group),
			}
			if err := app.Items.Create(ctx, it); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created item %s %s (%s, %s)\n",
				it.Name, formatter.TruncID(it.ID), formatter.DateRange(*it), formatter.StatusLabel(it.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, blank for ongoing)")
	cmd.Flags().StringVar(&statusRef, "status", "", "Status name or ID (default: first column)")
	cmd.Flags().StringVar(&group, "group", "", "Group label")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var statusRef, group string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items by start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			filter := repository.ItemFilter{Group: group}
			if statusRef != "" {
				st, err := app.Statuses.Resolve(ctx, statusRef)
				if err != nil {
					return err
				}
				filter.StatusID = st.ID
			}

			items, err := app.Items.List(ctx, filter)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemTable(items, "", false, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusRef, "status", "", "Only items in this status")
	cmd.Flags().StringVar(&group, "group", "", "Only items in this group")

	return cmd
}

func newItemShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ITEM",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemDetail(*it, app.now()))
			return nil
		},
	}
}

func newItemEditCmd(app *App) *cobra.Command {
	var name, group string

	cmd := &cobra.Command{
		Use:   "edit ITEM",
		Short: "Rename an item or change its group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				it.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("group") {
				it.Group = strings.TrimSpace(group)
			}
			if err := app.Items.Update(ctx, it); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", it.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&group, "group", "", "New group (empty to clear)")

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ITEM STATUS",
		Short: "Move an item to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			st, err := app.Statuses.Resolve(ctx, args[1])
			if err != nil {
				return err
			}
			it, err := app.Items.MoveToStatus(ctx, id, st.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", it.Name, formatter.StatusLabel(it.Status))
			return nil
		},
	}
}

func newItemRescheduleCmd(app *App) *cobra.Command {
	var start, end string
	var ongoing bool

	cmd := &cobra.Command{
		Use:   "reschedule ITEM",
		Short: "Change an item's start and end dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			it, err := app.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}

			startAt := it.StartAt
			if start != "" {
				if startAt, err = domain.ParseDate(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			endAt := it.EndAt
			switch {
			case ongoing:
				endAt = nil
			case end != "":
				if endAt, err = parseOptionalDate("end", end); err != nil {
					return err
				}
			}

			it, err = app.Items.Reschedule(ctx, id, startAt, endAt)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %s: %s\n", it.Name, formatter.DateRange(*it))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&ongoing, "ongoing", false, "Clear the end date")
	cmd.MarkFlagsMutuallyExclusive("end", "ongoing")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ITEM",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
