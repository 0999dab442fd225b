package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/google/uuid"
)

type markerService struct {
	markers repository.MarkerRepo
}

func NewMarkerService(markers repository.MarkerRepo) MarkerService {
	return &markerService{markers: markers}
}

func (s *markerService) Create(ctx context.Context, m *domain.Marker) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Label = strings.TrimSpace(m.Label)
	m.CreatedAt = time.Now().UTC()
	if err := m.Validate(); err != nil {
		return err
	}
	return s.markers.Create(ctx, m)
}

func (s *markerService) List(ctx context.Context) ([]domain.Marker, error) {
	return s.markers.List(ctx)
}

func (s *markerService) Delete(ctx context.Context, id string) error {
	return s.markers.Delete(ctx, id)
}
