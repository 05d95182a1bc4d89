// Package store opens SQLite databases through the modernc.org/sqlite driver
// and manages the sample schema used by the CLI.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/litetype/pkg/sqlite"

	// registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver name of modernc.org/sqlite.
	DriverName = "sqlite"

	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
)

// IsMemory reports whether path names an in-memory database.
func IsMemory(path string) bool {
	return path == "" || path == MemoryPath
}

// DSN builds the modernc data source name for path. Pragmas are passed as
// _pragma parameters, which the driver runs on every new connection.
func DSN(path string, p Params) string {
	if IsMemory(path) {
		path = MemoryPath
	}

	q := url.Values{}
	if p.BusyTimeout > 0 {
		q.Add("_pragma", "busy_timeout("+strconv.Itoa(p.BusyTimeout)+")")
	}
	if p.ForeignKeys {
		q.Add("_pragma", "foreign_keys(1)")
	}
	if p.JournalMode != "" && !IsMemory(path) {
		q.Add("_pragma", "journal_mode("+p.JournalMode+")")
	}
	if p.ReadOnly {
		q.Set("mode", "ro")
	}

	if len(q) == 0 {
		return path
	}
	return "file:" + path + "?" + q.Encode()
}

// Open opens and pings the database at path. An empty path or ":memory:"
// opens an in-memory database limited to one connection, so every query
// sees the same data.
func Open(ctx context.Context, path string, p Params, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := p.Validate(path); err != nil {
		return nil, fmt.Errorf("invalid connection params: %w", err)
	}

	dsn := DSN(path, p)
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if IsMemory(path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	logger.Debug("opened database",
		slog.String("path", path),
		slog.String("dsn", dsn),
		slog.Bool("read_only", p.ReadOnly))
	return db, nil
}

// Version returns the version of the SQLite library behind db.
func Version(ctx context.Context, db *sql.DB) (string, error) {
	var v string
	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(sqlite.Into(sqlite.String, &v)); err != nil {
		return "", fmt.Errorf("failed to query sqlite version: %w", err)
	}
	return v, nil
}
