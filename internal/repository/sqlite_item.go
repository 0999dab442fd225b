package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
)

// SQLiteItemRepo implements ItemRepo. Reads join the item's status so
// callers always get a fully populated domain.Item.
type SQLiteItemRepo struct {
	db db.DBTX
}

func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

const itemSelect = `SELECT i.id, i.name, i.start_at, i.end_at, i.group_name, i.created_at, i.updated_at,
		s.id, s.name, s.color, s.position
	FROM items i JOIN statuses s ON s.id = i.status_id`

func (r *SQLiteItemRepo) Create(ctx context.Context, it *domain.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, name, start_at, end_at, status_id, group_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID,
		it.Name,
		formatTime(it.StartAt),
		nullableTimeToString(it.EndAt),
		it.Status.ID,
		it.Group,
		formatTime(it.CreatedAt),
		formatTime(it.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, itemSelect+` WHERE i.id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return it, err
}

func (r *SQLiteItemRepo) List(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	var where []string
	var args []any
	if filter.StatusID != "" {
		where = append(where, "i.status_id = ?")
		args = append(args, filter.StatusID)
	}
	if filter.Group != "" {
		where = append(where, "i.group_name = ?")
		args = append(args, filter.Group)
	}
	query := itemSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.start_at, i.name, i.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	// Stored times keep their own offset, so text order is not time order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartAt.Before(items[j].StartAt)
	})
	return items, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, it *domain.Item) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, start_at = ?, end_at = ?, status_id = ?, group_name = ?, updated_at = ?
		WHERE id = ?`,
		it.Name,
		formatTime(it.StartAt),
		nullableTimeToString(it.EndAt),
		it.Status.ID,
		it.Group,
		formatTime(it.UpdatedAt),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return checkAffected(res, fmt.Errorf("item %s: %w", it.ID, domain.ErrNotFound))
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return checkAffected(res, fmt.Errorf("item %s: %w", id, domain.ErrNotFound))
}

func (r *SQLiteItemRepo) CountByStatus(ctx context.Context, statusID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE status_id = ?`, statusID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting items for status %s: %w", statusID, err)
	}
	return n, nil
}

func scanItem(row scanner) (*domain.Item, error) {
	var it domain.Item
	var startStr, createdStr, updatedStr string
	var endStr sql.NullString

	err := row.Scan(
		&it.ID, &it.Name, &startStr, &endStr, &it.Group, &createdStr, &updatedStr,
		&it.Status.ID, &it.Status.Name, &it.Status.Color, &it.Status.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	if it.StartAt, err = parseTime("start_at", startStr); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTime("created_at", createdStr); err != nil {
		return nil, err
	}
	if it.UpdatedAt, err = parseTime("updated_at", updatedStr); err != nil {
		return nil, err
	}
	it.EndAt = parseNullableTime(endStr)
	return &it, nil
}
