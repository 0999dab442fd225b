package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/google/uuid"
)

// DefaultStatusColor is used when a status is created without a color.
const DefaultStatusColor = "#6B7280"

// DefaultStatuses are created on first run.
var DefaultStatuses = []domain.Status{
	{ID: "planned", Name: "Planned", Color: "#6B7280"},
	{ID: "in-progress", Name: "In Progress", Color: "#F59E0B"},
	{ID: "done", Name: "Done", Color: "#10B981"},
}

type statusService struct {
	statuses repository.StatusRepo
	items    repository.ItemRepo
}

func NewStatusService(statuses repository.StatusRepo, items repository.ItemRepo) StatusService {
	return &statusService{statuses: statuses, items: items}
}

// Create appends the status after the existing ones.
func (s *statusService) Create(ctx context.Context, st *domain.Status) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	st.Name = strings.TrimSpace(st.Name)
	if st.Color == "" {
		st.Color = DefaultStatusColor
	}
	if err := st.Validate(); err != nil {
		return err
	}
	pos, err := s.statuses.NextPosition(ctx)
	if err != nil {
		return err
	}
	st.Position = pos
	return s.statuses.Create(ctx, st)
}

func (s *statusService) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	return s.statuses.GetByID(ctx, id)
}

func (s *statusService) Resolve(ctx context.Context, ref string) (*domain.Status, error) {
	st, err := s.statuses.GetByID(ctx, ref)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	st, err = s.statuses.GetByName(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("status %q: %w", ref, domain.ErrUnknownStatus)
	}
	return st, err
}

func (s *statusService) List(ctx context.Context) ([]domain.Status, error) {
	return s.statuses.List(ctx)
}

func (s *statusService) Update(ctx context.Context, st *domain.Status) error {
	if err := st.Validate(); err != nil {
		return err
	}
	return s.statuses.Update(ctx, st)
}

// Delete refuses to remove a status that items still reference.
func (s *statusService) Delete(ctx context.Context, id string) error {
	n, err := s.items.CountByStatus(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("status %s has %d items: %w", id, n, domain.ErrStatusInUse)
	}
	return s.statuses.Delete(ctx, id)
}

func (s *statusService) EnsureDefaults(ctx context.Context) ([]domain.Status, error) {
	existing, err := s.statuses.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}
	for _, def := range DefaultStatuses {
		st := def
		if err := s.Create(ctx, &st); err != nil {
			return nil, fmt.Errorf("creating default status %q: %w", st.Name, err)
		}
	}
	return s.statuses.List(ctx)
}
