package service

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/roadmap/internal/board"
	"github.com/alexanderramin/roadmap/internal/calendar"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/table"
	"github.com/alexanderramin/roadmap/internal/timeline"
)

// DefaultTimelineColumns is how many columns a Gantt chart shows when the
// request does not say.
const DefaultTimelineColumns = 12

type viewService struct {
	items      repository.ItemRepo
	statuses   repository.StatusRepo
	markers    repository.MarkerRepo
	maxVisible int
}

// NewViewService builds the read-side projections. maxVisible caps the
// items shown per calendar day.
func NewViewService(
	items repository.ItemRepo,
	statuses repository.StatusRepo,
	markers repository.MarkerRepo,
	maxVisible int,
) ViewService {
	return &viewService{items: items, statuses: statuses, markers: markers, maxVisible: maxVisible}
}

func (s *viewService) MonthGrid(ctx context.Context, year, monthIndex int) ([]calendar.DayCell, error) {
	items, err := s.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	return calendar.BuildMonthGrid(year, monthIndex, items, calendar.WithMaxVisible(s.maxVisible)), nil
}

func (s *viewService) Timeline(ctx context.Context, req TimelineRequest) (*TimelineView, error) {
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	if req.From.IsZero() {
		req.From = req.Now
	}
	if req.Columns <= 0 {
		req.Columns = DefaultTimelineColumns
	}

	items, err := s.items.List(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	markers, err := s.markers.List(ctx)
	if err != nil {
		return nil, err
	}

	tl := timeline.New(req.Unit, req.From)
	if req.Zoom > 0 {
		tl.Zoom = req.Zoom
	}
	if req.ColumnWidth > 0 {
		tl.ColumnWidth = req.ColumnWidth
	}

	view := &TimelineView{
		Timeline: tl,
		Columns:  tl.Columns(req.From, req.Columns),
		Rows:     make([]TimelineRow, 0, len(items)),
	}
	// Inner offsets are below one column, so flooring lands on the
	// column boundary.
	view.Origin = math.Floor(tl.Offset(view.Columns[0].Start)/tl.Width()) * tl.Width()

	for _, it := range items {
		view.Rows = append(view.Rows, TimelineRow{Item: it, Position: tl.Position(it, req.Now)})
	}
	for _, m := range append(markers, domain.TodayMarker(req.Now)) {
		view.Markers = append(view.Markers, MarkerLine{Marker: m, Offset: tl.MarkerOffset(m)})
	}
	return view, nil
}

func (s *viewService) Board(ctx context.Context) (board.Board, error) {
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return board.Board{}, err
	}
	items, err := s.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return board.Board{}, err
	}
	return board.Build(statuses, items), nil
}

func (s *viewService) Table(ctx context.Context, column string, desc bool) ([]domain.Item, error) {
	col, err := table.ParseColumn(column)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	return table.Sort(items, col, desc), nil
}
