package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// Times are stored as RFC3339 text in the offset they were given in, so
// an item keeps the calendar date it was entered with.
const timeLayout = time.RFC3339

// parseNullableTime parses a nullable column into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString returns nil (SQL NULL) for a nil time.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// checkAffected maps a zero-row update or delete to err.
func checkAffected(res sql.Result, err error) error {
	n, raErr := res.RowsAffected()
	if raErr != nil {
		return fmt.Errorf("reading rows affected: %w", raErr)
	}
	if n == 0 {
		return err
	}
	return nil
}
