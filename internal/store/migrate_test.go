package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/litetype/internal/testutil"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), DefaultParams(), testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func migratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db := fileDB(t)
	require.NoError(t, Migrate(context.Background(), db, testutil.NewTestLogger(t)))
	return db
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db := fileDB(t)

	v, err := MigrationVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, Migrate(ctx, db, testutil.NewTestLogger(t)))
	require.NoError(t, Migrate(ctx, db, testutil.NewTestLogger(t)), "second run is a no-op")

	v, err = MigrationVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	for _, table := range []string{"samples", "json_checks"} {
		var n int
		err := db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestSamples_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := migratedDB(t)

	now := time.Date(2024, 5, 1, 12, 30, 0, 123000000, time.UTC)
	want := DefaultSamples(now)
	require.NoError(t, InsertSamples(ctx, db, want))

	got, err := ListSamples(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Small, got[i].Small)
		assert.Equal(t, want[i].Int, got[i].Int)
		assert.Equal(t, want[i].Big, got[i].Big)
		assert.Equal(t, want[i].Flag, got[i].Flag)
		assert.Equal(t, want[i].Float, got[i].Float)
		assert.Equal(t, want[i].Double, got[i].Double)
		assert.Equal(t, want[i].Label, got[i].Label)
		assert.Equal(t, want[i].Payload, got[i].Payload)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "created_at %v", got[i].CreatedAt)
	}
}

func TestJSONChecks(t *testing.T) {
	ctx := context.Background()
	db := migratedDB(t)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id, err := RecordJSONCheck(ctx, db, JSONCheck{
		Document:  "{a:1}",
		Flags:     int32(sqlite.FlagJSON5OrJSONB),
		Valid:     true,
		CheckedAt: first,
	})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	_, err = RecordJSONCheck(ctx, db, JSONCheck{ID: "fixed", Document: "{a:1}", Flags: 3})
	require.NoError(t, err)

	checks, err := ListJSONChecks(ctx, db, 0)
	require.NoError(t, err)
	require.Len(t, checks, 2)

	assert.Equal(t, "fixed", checks[0].ID)
	assert.Equal(t, "3", checks[0].FlagName())
	assert.False(t, checks[0].Valid)

	assert.Equal(t, id, checks[1].ID)
	assert.Equal(t, "json5-or-jsonb", checks[1].FlagName())
	assert.True(t, checks[1].Valid)
	assert.True(t, first.Equal(checks[1].CheckedAt))

	limited, err := ListJSONChecks(ctx, db, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = RecordJSONCheck(ctx, db, JSONCheck{ID: "fixed", Document: "[]", Flags: 1})
	assert.Error(t, err, "duplicate id")
}

func TestJSONChecks_NotInitialized(t *testing.T) {
	ctx := context.Background()
	db := fileDB(t)

	_, err := RecordJSONCheck(ctx, db, JSONCheck{Document: "{}", Flags: 1, Valid: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Contains(t, err.Error(), "json_checks")

	_, err = ListJSONChecks(ctx, db, 0)
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, Migrate(ctx, db, testutil.NewTestLogger(t)))
	checks, err := ListJSONChecks(ctx, db, 0)
	require.NoError(t, err)
	assert.Empty(t, checks)
}
