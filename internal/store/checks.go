package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
)

// ErrNotInitialized is returned when the schema a call needs has not been
// migrated yet.
var ErrNotInitialized = errors.New("database is not initialized")

// JSONCheck is one recorded json_valid evaluation.
type JSONCheck struct {
	ID        string
	Document  string
	Flags     int32
	Valid     bool
	CheckedAt time.Time
}

// FlagName returns the name of the check's flags, or the bare number when
// they are not one of the named combinations.
func (c JSONCheck) FlagName() string {
	f := sqlite.JSONValidFlag(c.Flags)
	if f.IsValid() {
		return f.String()
	}
	return fmt.Sprintf("%d", c.Flags)
}

// RecordJSONCheck stores c in the json_checks table and returns its ID.
// A missing ID is generated, and a zero CheckedAt is set to now.
func RecordJSONCheck(ctx context.Context, db *sql.DB, c JSONCheck) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CheckedAt.IsZero() {
		c.CheckedAt = time.Now()
	}
	if err := requireTable(ctx, db, "json_checks"); err != nil {
		return "", err
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO json_checks (id, document, flags, valid, checked_at) VALUES (?, ?, ?, ?, ?)`,
		sqlite.Arg(sqlite.String, c.ID),
		sqlite.Arg(sqlite.String, c.Document),
		sqlite.Arg(sqlite.JSONFlagInt32, c.Flags),
		sqlite.Arg(sqlite.Bool, c.Valid),
		sqlite.Arg(sqlite.TimestamptzText, c.CheckedAt.UTC().Format(sqlite.TimeFormat)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record json check: %w", err)
	}
	return c.ID, nil
}

// ListJSONChecks returns the most recent checks first, at most limit of
// them. A non-positive limit returns all of them.
func ListJSONChecks(ctx context.Context, db *sql.DB, limit int) ([]JSONCheck, error) {
	if err := requireTable(ctx, db, "json_checks"); err != nil {
		return nil, err
	}
	query := `SELECT id, document, flags, valid, checked_at FROM json_checks ORDER BY checked_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, sqlite.Arg(sqlite.Int64, int64(limit)))
	}

	sqlRows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query json checks: %w", err)
	}
	rows := sqlite.WrapRows(sqlRows)
	defer func() { _ = rows.Close() }()

	var (
		checks    []JSONCheck
		c         JSONCheck
		checkedAt string
	)
	dest := []any{
		sqlite.Into(sqlite.String, &c.ID),
		sqlite.Into(sqlite.String, &c.Document),
		sqlite.Into(sqlite.Int32, &c.Flags),
		sqlite.Into(sqlite.Bool, &c.Valid),
		sqlite.Into(sqlite.TimestamptzText, &checkedAt),
	}
	if err := rows.CheckColumns(dest...); err != nil {
		return nil, err
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan json check: %w", err)
		}
		c.CheckedAt, err = time.Parse(sqlite.TimeFormat, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checked_at of %s: %w", c.ID, err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate json checks: %w", err)
	}
	return checks, nil
}

func requireTable(ctx context.Context, db *sql.DB, name string) error {
	var n int64
	err := db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		sqlite.Arg(sqlite.String, name),
	).Scan(sqlite.Into(sqlite.Int64, &n))
	if err != nil {
		return fmt.Errorf("failed to look up table %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: table %s is missing", ErrNotInitialized, name)
	}
	return nil
}
