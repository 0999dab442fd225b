package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
)

// ValidateImportSchema checks the import file before conversion and
// returns every problem found. known lists statuses already stored;
// items may reference them as well as the file's own statuses.
func ValidateImportSchema(schema *ImportSchema, known ...domain.Status) []error {
	var errs []error

	statuses := newStatusIndex(known)
	errs = append(errs, validateStatuses(schema.Statuses, statuses)...)
	errs = append(errs, validateItems(schema.Items, statuses)...)
	errs = append(errs, validateMarkers(schema.Markers)...)

	return errs
}

func validateStatuses(in []StatusImport, idx *statusIndex) []error {
	var errs []error
	seenIDs := map[string]bool{}
	seenNames := map[string]bool{}

	for i, s := range in {
		path := fmt.Sprintf("statuses[%d]", i)
		st := domain.Status{ID: s.ID, Name: s.Name, Color: s.Color}
		if err := st.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
		if s.ID != "" {
			if seenIDs[s.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", path, s.ID))
			}
			seenIDs[s.ID] = true
		}
		if key := strings.ToLower(s.Name); key != "" {
			if seenNames[key] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", path, s.Name))
			}
			seenNames[key] = true
		}
		idx.add(st)
	}
	return errs
}

func validateItems(in []ItemImport, idx *statusIndex) []error {
	var errs []error
	seenIDs := map[string]bool{}

	for i, it := range in {
		path := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(it.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		}
		if it.ID != "" {
			if seenIDs[it.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", path, it.ID))
			}
			seenIDs[it.ID] = true
		}

		start, startErr := parseRequiredDate(path+".start_at", it.StartAt)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		if it.EndAt != nil {
			end, err := domain.ParseDate(*it.EndAt)
			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("%s.end_at: %w", path, err))
			case startErr == nil && end.Before(start):
				errs = append(errs, fmt.Errorf("%s: %w", path, domain.ErrInvalidRange))
			}
		}

		if strings.TrimSpace(it.Status) == "" {
			errs = append(errs, fmt.Errorf("%s.status is required", path))
		} else if _, ok := idx.resolve(it.Status); !ok {
			errs = append(errs, fmt.Errorf("%s.status %q: %w", path, it.Status, domain.ErrUnknownStatus))
		}
	}
	return errs
}

func validateMarkers(in []MarkerImport) []error {
	var errs []error
	for i, m := range in {
		path := fmt.Sprintf("markers[%d]", i)
		date, err := parseRequiredDate(path+".date", m.Date)
		if err != nil {
			errs = append(errs, err)
		}
		mk := domain.Marker{Date: date, Label: m.Label, BackgroundColor: m.BackgroundColor, TextColor: m.TextColor}
		if err == nil {
			if vErr := mk.Validate(); vErr != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, vErr))
			}
		} else if strings.TrimSpace(m.Label) == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", path))
		}
	}
	return errs
}

func parseRequiredDate(path, s string) (t time.Time, err error) {
	if strings.TrimSpace(s) == "" {
		return t, fmt.Errorf("%s is required", path)
	}
	t, err = domain.ParseDate(s)
	if err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// statusIndex resolves a status reference by id, then by name.
type statusIndex struct {
	byID   map[string]domain.Status
	byName map[string]domain.Status
}

func newStatusIndex(known []domain.Status) *statusIndex {
	idx := &statusIndex{byID: map[string]domain.Status{}, byName: map[string]domain.Status{}}
	for _, s := range known {
		idx.add(s)
	}
	return idx
}

func (x *statusIndex) add(s domain.Status) {
	if s.ID != "" {
		x.byID[s.ID] = s
	}
	if s.Name != "" {
		x.byName[strings.ToLower(s.Name)] = s
	}
}

func (x *statusIndex) resolve(ref string) (domain.Status, bool) {
	ref = strings.TrimSpace(ref)
	if s, ok := x.byID[ref]; ok {
		return s, true
	}
	s, ok := x.byName[strings.ToLower(ref)]
	return s, ok
}
