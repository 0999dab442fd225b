package repository

import (
	"context"

	"github.com/alexanderramin/roadmap/internal/domain"
)

type StatusRepo interface {
	Create(ctx context.Context, s *domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Status, error)
	GetByName(ctx context.Context, name string) (*domain.Status, error)
	List(ctx context.Context) ([]domain.Status, error)
	Update(ctx context.Context, s *domain.Status) error
	Delete(ctx context.Context, id string) error
	NextPosition(ctx context.Context) (int, error)
}

// ItemFilter narrows an item listing. Zero values match everything.
type ItemFilter struct {
	StatusID string
	Group    string
}

type ItemRepo interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, statusID string) (int, error)
}

type MarkerRepo interface {
	Create(ctx context.Context, m *domain.Marker) error
	GetByID(ctx context.Context, id string) (*domain.Marker, error)
	List(ctx context.Context) ([]domain.Marker, error)
	Delete(ctx context.Context, id string) error
}
