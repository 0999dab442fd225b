package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/roadmap/internal/board"
	"github.com/alexanderramin/roadmap/internal/calendar"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/export"
	"github.com/alexanderramin/roadmap/internal/importer"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/timeline"
)

type StatusService interface {
	Create(ctx context.Context, s *domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Status, error)
	// Resolve finds a status by id, or by name ignoring case.
	Resolve(ctx context.Context, ref string) (*domain.Status, error)
	List(ctx context.Context) ([]domain.Status, error)
	Update(ctx context.Context, s *domain.Status) error
	Delete(ctx context.Context, id string) error
	// EnsureDefaults creates the default statuses when none exist.
	EnsureDefaults(ctx context.Context) ([]domain.Status, error)
}

type ItemService interface {
	Create(ctx context.Context, it *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	MoveToStatus(ctx context.Context, itemID, statusID string) (*domain.Item, error)
	Reschedule(ctx context.Context, itemID string, start time.Time, end *time.Time) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
}

type MarkerService interface {
	Create(ctx context.Context, m *domain.Marker) error
	List(ctx context.Context) ([]domain.Marker, error)
	Delete(ctx context.Context, id string) error
}

// TimelineRequest selects the window of a Gantt chart.
type TimelineRequest struct {
	Unit        domain.RangeUnit
	Zoom        int
	ColumnWidth float64
	From        time.Time
	Columns     int
	Now         time.Time
	Filter      repository.ItemFilter
}

// TimelineRow is one item bar.
type TimelineRow struct {
	Item     domain.Item
	Position timeline.Position
}

// MarkerLine is one vertical marker, the Today marker included.
type MarkerLine struct {
	Marker domain.Marker
	Offset float64
}

// TimelineView is a laid-out Gantt chart. Offsets are measured from the
// timeline anchor; Origin is the offset of the first visible column.
type TimelineView struct {
	Timeline timeline.Timeline
	Origin   float64
	Columns  []timeline.Column
	Rows     []TimelineRow
	Markers  []MarkerLine
}

type ViewService interface {
	MonthGrid(ctx context.Context, year, monthIndex int) ([]calendar.DayCell, error)
	Timeline(ctx context.Context, req TimelineRequest) (*TimelineView, error)
	Board(ctx context.Context) (board.Board, error)
	Table(ctx context.Context, column string, desc bool) ([]domain.Item, error)
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	StatusesCreated int
	StatusesUpdated int
	ItemsCreated    int
	ItemsUpdated    int
	MarkerCount     int
}

type ImportService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// ExportResult counts what an export wrote.
type ExportResult struct {
	Path        string
	Format      export.Format
	ItemCount   int
	MarkerCount int
}

type ExportService interface {
	ExportFile(ctx context.Context, format export.Format, path string) (*ExportResult, error)
	Write(ctx context.Context, w io.Writer, format export.Format) error
}
