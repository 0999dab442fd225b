package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a date field with YYYY-MM-DD validation.
func dateInput(title string, required bool, value *string) *huh.Input {
	validate := validateOptionalDate
	if required {
		validate = validateDate
	}
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validate)
}

// itemFormValues are the raw strings collected by the item form.
type itemFormValues struct {
	Name     string
	Start    string
	End      string
	StatusID string
	Group    string
}

func itemFormValuesFor(it domain.Item) *itemFormValues {
	v := &itemFormValues{
		Name:     it.Name,
		Start:    domain.FormatDate(it.StartAt),
		StatusID: it.Status.ID,
		Group:    it.Group,
	}
	if it.EndAt != nil {
		v.End = domain.FormatDate(*it.EndAt)
	}
	return v
}

// apply copies the form values onto it.
func (v *itemFormValues) apply(it *domain.Item) error {
	start, err := domain.ParseDate(v.Start)
	if err != nil {
		return err
	}
	var end *time.Time
	if strings.TrimSpace(v.End) != "" {
		t, err := domain.ParseDate(v.End)
		if err != nil {
			return err
		}
		end = &t
	}
	it.Name = strings.TrimSpace(v.Name)
	it.StartAt = start
	it.EndAt = end
	it.Status = domain.Status{ID: v.StatusID}
	it.Group = strings.TrimSpace(v.Group)
	return nil
}

// itemForm builds the add/edit item form. It returns nil when there is no
// status to choose from.
func itemForm(ctx context.Context, app *App, v *itemFormValues) *huh.Form {
	options := statusOptions(ctx, app)
	if len(options) == 0 {
		return nil
	}
	if v.StatusID == "" {
		v.StatusID = options[0].Value
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&v.Name).
				Validate(validateRequired("name")),
			dateInput("Start (YYYY-MM-DD)", true, &v.Start),
			dateInput("End (YYYY-MM-DD, blank while ongoing)", false, &v.End),
			huh.NewSelect[string]().
				Title("Status").
				Options(options...).
				Value(&v.StatusID),
			huh.NewInput().
				Title("Group").
				Placeholder("optional").
				Value(&v.Group),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}

// addItemWizard opens the item form and creates the item on submit.
func addItemWizard(state *SharedState) tea.Cmd {
	ctx := context.Background()
	app := state.App
	v := &itemFormValues{Start: domain.FormatDate(state.Now())}
	form := itemForm(ctx, app, v)
	if form == nil {
		return outputCmd(formatter.StyleYellow.Render("No statuses defined. Add one with: status add NAME"))
	}
	return startWizardCmd(state, "Add item", form, func() tea.Cmd {
		it := &domain.Item{}
		if err := v.apply(it); err != nil {
			return outputCmd(shellError(err))
		}
		if err := app.Items.Create(ctx, it); err != nil {
			return outputCmd(shellError(err))
		}
		state.SelectedItemID = it.ID
		return outputCmd(fmt.Sprintf("Created item %s %s (%s)",
			formatter.Bold(it.Name), formatter.Dim(formatter.TruncID(it.ID)), formatter.DateRange(*it)))
	})
}

// editItemWizard opens the item form filled with the item's fields.
func editItemWizard(state *SharedState, itemID string) tea.Cmd {
	ctx := context.Background()
	app := state.App
	it, err := app.Items.GetByID(ctx, itemID)
	if err != nil {
		return outputCmd(shellError(err))
	}
	v := itemFormValuesFor(*it)
	form := itemForm(ctx, app, v)
	if form == nil {
		return outputCmd(formatter.StyleYellow.Render("No statuses defined."))
	}
	return startWizardCmd(state, "Edit item", form, func() tea.Cmd {
		if err := v.apply(it); err != nil {
			return outputCmd(shellError(err))
		}
		if err := app.Items.Update(ctx, it); err != nil {
			return outputCmd(shellError(err))
		}
		return outputCmd(fmt.Sprintf("Updated item %s", formatter.Bold(it.Name)))
	})
}

// deleteItemWizard asks for confirmation before removing an item.
func deleteItemWizard(state *SharedState, it domain.Item) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(fmt.Sprintf("Delete %q?", it.Name), &confirmed)
	return startWizardCmd(state, "Delete item", form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		if err := state.App.Items.Delete(context.Background(), it.ID); err != nil {
			return outputCmd(shellError(err))
		}
		if state.SelectedItemID == it.ID {
			state.SelectedItemID = ""
		}
		return outputCmd(fmt.Sprintf("Removed item %s", formatter.Bold(it.Name)))
	})
}

// markerFormValues are the raw strings collected by the marker form.
type markerFormValues struct {
	Label string
	Date  string
	Bg    string
	Fg    string
}

func markerForm(v *markerFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Value(&v.Label).
				Validate(validateRequired("label")),
			dateInput("Date (YYYY-MM-DD)", true, &v.Date),
			huh.NewInput().
				Title("Background color").
				Placeholder("#10B981").
				Value(&v.Bg).
				Validate(validateHexColor),
			huh.NewInput().
				Title("Text color").
				Placeholder("#FFFFFF").
				Value(&v.Fg).
				Validate(validateHexColor),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}

// addMarkerWizard opens the marker form and stores the marker on submit.
func addMarkerWizard(state *SharedState) tea.Cmd {
	v := &markerFormValues{Date: domain.FormatDate(state.Now())}
	return startWizardCmd(state, "Add marker", markerForm(v), func() tea.Cmd {
		date, err := domain.ParseDate(v.Date)
		if err != nil {
			return outputCmd(shellError(err))
		}
		m := &domain.Marker{
			Label:           strings.TrimSpace(v.Label),
			Date:            date,
			BackgroundColor: v.Bg,
			TextColor:       v.Fg,
		}
		if err := state.App.Markers.Create(context.Background(), m); err != nil {
			return outputCmd(shellError(err))
		}
		return outputCmd(fmt.Sprintf("Added marker %s on %s", formatter.MarkerBadge(*m), domain.FormatDate(m.Date)))
	})
}
