package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
)

// SQLiteStatusRepo implements StatusRepo using a SQLite database.
type SQLiteStatusRepo struct {
	db db.DBTX
}

func NewSQLiteStatusRepo(conn db.DBTX) *SQLiteStatusRepo {
	return &SQLiteStatusRepo{db: conn}
}

const statusColumns = `id, name, color, position`

func (r *SQLiteStatusRepo) Create(ctx context.Context, s *domain.Status) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO statuses (id, name, color, position, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Color, s.Position, formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("inserting status: %w", err)
	}
	return nil
}

func (r *SQLiteStatusRepo) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+statusColumns+` FROM statuses WHERE id = ?`, id)
	s, err := scanStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("status %s: %w", id, domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteStatusRepo) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+statusColumns+` FROM statuses WHERE LOWER(name) = LOWER(?)`, name)
	s, err := scanStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("status %q: %w", name, domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteStatusRepo) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+statusColumns+` FROM statuses ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	defer rows.Close()

	var statuses []domain.Status
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating statuses: %w", err)
	}
	return statuses, nil
}

func (r *SQLiteStatusRepo) Update(ctx context.Context, s *domain.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE statuses SET name = ?, color = ?, position = ? WHERE id = ?`,
		s.Name, s.Color, s.Position, s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	return checkAffected(res, fmt.Errorf("status %s: %w", s.ID, domain.ErrNotFound))
}

func (r *SQLiteStatusRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting status: %w", err)
	}
	return checkAffected(res, fmt.Errorf("status %s: %w", id, domain.ErrNotFound))
}

// NextPosition returns the position after the last status.
func (r *SQLiteStatusRepo) NextPosition(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM statuses`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next status position: %w", err)
	}
	return next, nil
}

func scanStatus(row scanner) (*domain.Status, error) {
	var s domain.Status
	if err := row.Scan(&s.ID, &s.Name, &s.Color, &s.Position); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning status: %w", err)
	}
	return &s, nil
}
