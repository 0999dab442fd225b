package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/roadmap/internal/export"
	"github.com/alexanderramin/roadmap/internal/repository"
)

type exportService struct {
	statuses repository.StatusRepo
	items    repository.ItemRepo
	markers  repository.MarkerRepo
	observer UseCaseObserver
}

func NewExportService(
	statuses repository.StatusRepo,
	items repository.ItemRepo,
	markers repository.MarkerRepo,
	observers ...UseCaseObserver,
) ExportService {
	return &exportService{
		statuses: statuses,
		items:    items,
		markers:  markers,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) ExportFile(ctx context.Context, format export.Format, path string) (result *ExportResult, err error) {
	done := track(ctx, s.observer, "export", map[string]any{"format": string(format), "path": path})
	defer func() { done(err) }()

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err = export.WriteFile(path, format, data, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &ExportResult{
		Path:        path,
		Format:      format,
		ItemCount:   len(data.Items),
		MarkerCount: len(data.Markers),
	}, nil
}

func (s *exportService) Write(ctx context.Context, w io.Writer, format export.Format) error {
	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	return export.Write(w, format, data, time.Now().UTC())
}

func (s *exportService) load(ctx context.Context) (export.Data, error) {
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return export.Data{}, err
	}
	items, err := s.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return export.Data{}, err
	}
	markers, err := s.markers.List(ctx)
	if err != nil {
		return export.Data{}, err
	}
	return export.Data{Statuses: statuses, Items: items, Markers: markers}, nil
}
