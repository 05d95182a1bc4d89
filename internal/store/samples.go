package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/leapstack-labs/litetype/pkg/sqlite"
)

// Sample is one row of the samples table, with a column per logical type.
type Sample struct {
	Small     int16
	Int       int32
	Big       int64
	Flag      bool
	Float     float32
	Double    float64
	Label     string
	Payload   []byte
	CreatedAt time.Time
}

// DefaultSamples returns the rows inserted by Seed.
func DefaultSamples(now time.Time) []Sample {
	return []Sample{
		{Small: 1, Int: 1, Big: 1, Flag: true, Float: 1.5, Double: 1.5, Label: "one", Payload: []byte{0x01}, CreatedAt: now},
		{Small: -32768, Int: 70000, Big: 1 << 40, Flag: false, Float: 3.1415927, Double: 3.141592653589793, Label: "limits", Payload: []byte{0xde, 0xad, 0xbe, 0xef}, CreatedAt: now},
		{Small: 0, Int: 0, Big: 0, Flag: false, Float: 0, Double: 0, Label: "", Payload: []byte{}, CreatedAt: now},
	}
}

// InsertSamples inserts rows into the samples table in one transaction.
func InsertSamples(ctx context.Context, db *sql.DB, rows []Sample) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO samples
		(small_value, int_value, big_value, flag, float_value, double_value, label, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, s := range rows {
		_, err := stmt.ExecContext(ctx,
			sqlite.Arg(sqlite.Int16, s.Small),
			sqlite.Arg(sqlite.Int32, s.Int),
			sqlite.Arg(sqlite.Int64, s.Big),
			sqlite.Arg(sqlite.Bool, s.Flag),
			sqlite.Arg(sqlite.Float32, s.Float),
			sqlite.Arg(sqlite.Float64, s.Double),
			sqlite.Arg(sqlite.String, s.Label),
			sqlite.Arg(sqlite.Bytes, s.Payload),
			sqlite.Arg(sqlite.TimestamptzText, s.CreatedAt.UTC().Format(sqlite.TimeFormat)),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sample %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit samples: %w", err)
	}
	return nil
}

// ListSamples returns every sample in insertion order.
func ListSamples(ctx context.Context, db *sql.DB) ([]Sample, error) {
	sqlRows, err := db.QueryContext(ctx, `SELECT small_value, int_value, big_value, flag,
		float_value, double_value, label, payload, created_at FROM samples ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	rows := sqlite.WrapRows(sqlRows)
	defer func() { _ = rows.Close() }()

	var (
		samples   []Sample
		s         Sample
		createdAt string
	)
	dest := []any{
		sqlite.Into(sqlite.Int16, &s.Small),
		sqlite.Into(sqlite.Int32, &s.Int),
		sqlite.Into(sqlite.Int64, &s.Big),
		sqlite.Into(sqlite.Bool, &s.Flag),
		sqlite.Into(sqlite.Float32, &s.Float),
		sqlite.Into(sqlite.Float64, &s.Double),
		sqlite.Into(sqlite.String, &s.Label),
		sqlite.Into(sqlite.Bytes, &s.Payload),
		sqlite.Into(sqlite.TimestamptzText, &createdAt),
	}
	if err := rows.CheckColumns(dest...); err != nil {
		return nil, err
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		s.CreatedAt, err = time.Parse(sqlite.TimeFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate samples: %w", err)
	}
	return samples, nil
}
