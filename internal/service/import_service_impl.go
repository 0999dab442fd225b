package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/importer"
	"github.com/alexanderramin/roadmap/internal/repository"
)

type importService struct {
	statuses repository.StatusRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService returns a service that writes a whole import file in
// one transaction. Rows whose id already exists are updated, so importing
// an export again is idempotent.
func NewImportService(statuses repository.StatusRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		statuses: statuses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{
		"statuses": len(schema.Statuses),
		"items":    len(schema.Items),
		"markers":  len(schema.Markers),
	}
	done := track(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	known, err := s.statuses.List(ctx)
	if err != nil {
		return nil, err
	}
	if errs := importer.ValidateImportSchema(schema, known...); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(schema, known...)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLiteStatusRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)
		txMarkers := repository.NewSQLiteMarkerRepo(tx)

		for _, st := range converted.Statuses {
			created, err := upsertStatus(ctx, txStatuses, st)
			if err != nil {
				return fmt.Errorf("importing status %q: %w", st.Name, err)
			}
			if created {
				result.StatusesCreated++
			} else {
				result.StatusesUpdated++
			}
		}

		for _, it := range converted.Items {
			existing, err := txItems.GetByID(ctx, it.ID)
			switch {
			case err == nil:
				it.CreatedAt = existing.CreatedAt
				if err := txItems.Update(ctx, it); err != nil {
					return fmt.Errorf("updating item %q: %w", it.Name, err)
				}
				result.ItemsUpdated++
			case errors.Is(err, domain.ErrNotFound):
				if err := txItems.Create(ctx, it); err != nil {
					return fmt.Errorf("creating item %q: %w", it.Name, err)
				}
				result.ItemsCreated++
			default:
				return err
			}
		}

		for _, m := range converted.Markers {
			if _, err := txMarkers.GetByID(ctx, m.ID); err == nil {
				if err := txMarkers.Delete(ctx, m.ID); err != nil {
					return fmt.Errorf("replacing marker %q: %w", m.Label, err)
				}
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if err := txMarkers.Create(ctx, m); err != nil {
				return fmt.Errorf("creating marker %q: %w", m.Label, err)
			}
			result.MarkerCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// upsertStatus keeps an existing status's board position and appends new
// ones after the last column.
func upsertStatus(ctx context.Context, statuses repository.StatusRepo, st *domain.Status) (created bool, err error) {
	existing, err := statuses.GetByID(ctx, st.ID)
	switch {
	case err == nil:
		st.Position = existing.Position
		return false, statuses.Update(ctx, st)
	case errors.Is(err, domain.ErrNotFound):
		pos, err := statuses.NextPosition(ctx)
		if err != nil {
			return false, err
		}
		st.Position = pos
		return true, statuses.Create(ctx, st)
	default:
		return false, err
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
