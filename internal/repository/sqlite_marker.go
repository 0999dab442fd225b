package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
)

type SQLiteMarkerRepo struct {
	db db.DBTX
}

func NewSQLiteMarkerRepo(conn db.DBTX) *SQLiteMarkerRepo {
	return &SQLiteMarkerRepo{db: conn}
}

const markerColumns = `id, date, label, background_color, text_color, created_at`

func (r *SQLiteMarkerRepo) Create(ctx context.Context, m *domain.Marker) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO markers (`+markerColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, formatTime(m.Date), m.Label, m.BackgroundColor, m.TextColor, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting marker: %w", err)
	}
	return nil
}

func (r *SQLiteMarkerRepo) GetByID(ctx context.Context, id string) (*domain.Marker, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+markerColumns+` FROM markers WHERE id = ?`, id)
	m, err := scanMarker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("marker %s: %w", id, domain.ErrNotFound)
	}
	return m, err
}

func (r *SQLiteMarkerRepo) List(ctx context.Context) ([]domain.Marker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+markerColumns+` FROM markers ORDER BY date, label`)
	if err != nil {
		return nil, fmt.Errorf("listing markers: %w", err)
	}
	defer rows.Close()

	var markers []domain.Marker
	for rows.Next() {
		m, err := scanMarker(rows)
		if err != nil {
			return nil, err
		}
		markers = append(markers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating markers: %w", err)
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Date.Before(markers[j].Date)
	})
	return markers, nil
}

func (r *SQLiteMarkerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM markers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting marker: %w", err)
	}
	return checkAffected(res, fmt.Errorf("marker %s: %w", id, domain.ErrNotFound))
}

func scanMarker(row scanner) (*domain.Marker, error) {
	var m domain.Marker
	var dateStr, createdStr string
	err := row.Scan(&m.ID, &dateStr, &m.Label, &m.BackgroundColor, &m.TextColor, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning marker: %w", err)
	}
	if m.Date, err = parseTime("date", dateStr); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime("created_at", createdStr); err != nil {
		return nil, err
	}
	return &m, nil
}
