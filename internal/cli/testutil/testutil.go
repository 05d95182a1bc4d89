// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	itestutil "github.com/leapstack-labs/litetype/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	// sqlite driver for test databases.
	_ "modernc.org/sqlite"
)

// Result holds the output of an executed command.
type Result struct {
	Out    bytes.Buffer
	ErrOut bytes.Buffer
}

// Output returns stdout as a string.
func (r *Result) Output() string {
	return r.Out.String()
}

// ErrorOutput returns stderr as a string.
func (r *Result) ErrorOutput() string {
	return r.ErrOut.String()
}

// ExecuteCommand runs cmd with args and cfg stored in its context, the way
// the root command's pre-run hook would store it. Logs go to t.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (*Result, error) {
	t.Helper()

	res := &Result{}
	cmd.SetOut(&res.Out)
	cmd.SetErr(&res.ErrOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, itestutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return res, err
}

// Config returns the default configuration with the given database and
// output format.
func Config(database, output string) *config.Config {
	cfg := config.Default()
	cfg.Database = database
	cfg.Output = output
	return cfg
}

// SampleDB creates a database file in a temp dir with a typed table and a
// view, and returns its path.
func SampleDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	itestutil.Exec(t, db,
		`CREATE TABLE readings (
			id INTEGER PRIMARY KEY,
			sensor VARCHAR(32) NOT NULL,
			level SMALLINT,
			active BOOLEAN,
			ratio FLOAT,
			raw BLOB
		)`,
		`CREATE VIEW active_readings AS SELECT id, sensor FROM readings WHERE active`,
		`INSERT INTO readings (id, sensor, level, active, ratio, raw) VALUES
			(1, 'north', 12, 1, 0.5, x'0102'),
			(2, 'south', 70000, 0, NULL, NULL)`,
	)
	return path
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdownTable checks that every non-empty line of md is a
// pipe-delimited table row with the same number of cells.
func AssertValidMarkdownTable(t *testing.T, md string) {
	t.Helper()

	cells := -1
	for i, line := range strings.Split(strings.TrimSpace(md), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			t.Errorf("line %d is not a table row: %q", i+1, line)
			continue
		}
		n := strings.Count(line, "|")
		if cells == -1 {
			cells = n
		} else if n != cells {
			t.Errorf("line %d has %d separators, want %d: %q", i+1, n, cells, line)
		}
	}
}
