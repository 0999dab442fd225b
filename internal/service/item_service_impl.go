package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/google/uuid"
)

type itemService struct {
	items    repository.ItemRepo
	statuses repository.StatusRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewItemService(
	items repository.ItemRepo,
	statuses repository.StatusRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ItemService {
	return &itemService{
		items:    items,
		statuses: statuses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) Create(ctx context.Context, it *domain.Item) (err error) {
	done := track(ctx, s.observer, "create-item", map[string]any{"status_id": it.Status.ID})
	defer func() { done(err) }()

	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	it.Name = strings.TrimSpace(it.Name)

	if err = it.Validate(); err != nil {
		return err
	}
	if err = s.attachStatus(ctx, it); err != nil {
		return err
	}
	return s.items.Create(ctx, it)
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	return s.items.List(ctx, filter)
}

func (s *itemService) Update(ctx context.Context, it *domain.Item) error {
	it.UpdatedAt = time.Now().UTC()
	if err := it.Validate(); err != nil {
		return err
	}
	if err := s.attachStatus(ctx, it); err != nil {
		return err
	}
	return s.items.Update(ctx, it)
}

// MoveToStatus is the drop action of the board and list views.
func (s *itemService) MoveToStatus(ctx context.Context, itemID, statusID string) (moved *domain.Item, err error) {
	done := track(ctx, s.observer, "move-item", map[string]any{"item_id": itemID, "status_id": statusID})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)
		txStatuses := repository.NewSQLiteStatusRepo(tx)

		it, err := txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		st, err := lookupStatus(ctx, txStatuses, statusID)
		if err != nil {
			return err
		}
		it.MoveTo(*st, time.Now().UTC())
		if err := txItems.Update(ctx, it); err != nil {
			return err
		}
		moved = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// Reschedule is the drop action of the Gantt view.
func (s *itemService) Reschedule(ctx context.Context, itemID string, start time.Time, end *time.Time) (moved *domain.Item, err error) {
	done := track(ctx, s.observer, "reschedule-item", map[string]any{"item_id": itemID, "start_at": domain.FormatDate(start)})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteItemRepo(tx)

		it, err := txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if err := it.Reschedule(start, end, time.Now().UTC()); err != nil {
			return err
		}
		if err := txItems.Update(ctx, it); err != nil {
			return err
		}
		moved = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

// attachStatus replaces the item's status with the stored one so callers
// may pass only an id.
func (s *itemService) attachStatus(ctx context.Context, it *domain.Item) error {
	st, err := lookupStatus(ctx, s.statuses, it.Status.ID)
	if err != nil {
		return err
	}
	it.Status = *st
	return nil
}

func lookupStatus(ctx context.Context, statuses repository.StatusRepo, id string) (*domain.Status, error) {
	st, err := statuses.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("status %q: %w", id, domain.ErrUnknownStatus)
	}
	return st, err
}
