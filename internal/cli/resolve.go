package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/repository"
)

// resolveItemID resolves an item reference which can be:
//   - A full item ID
//   - A unique ID prefix
//   - An item name (case-insensitive, must be unique)
func resolveItemID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item ID is required")
	}
	items, err := app.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(items))
	var named []string
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
		ids = append(ids, it.ID)
		if strings.EqualFold(it.Name, input) {
			named = append(named, it.ID)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return "", fmt.Errorf("item name %q is ambiguous (%d matches); use the ID", input, len(named))
	}
	return matchPrefix("item", input, ids)
}

// resolveMarkerID resolves a marker by full ID or unique ID prefix.
func resolveMarkerID(ctx context.Context, app *App, input string) (string, error) {
	markers, err := app.Markers.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		if m.ID == input {
			return m.ID, nil
		}
		ids = append(ids, m.ID)
	}
	return matchPrefix("marker", input, ids)
}

func matchPrefix(kind, input string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}
