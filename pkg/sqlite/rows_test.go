package sqlite

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArg_DriverValues(t *testing.T) {
	n := int32(6)
	tests := []struct {
		name string
		arg  driver.Valuer
		want driver.Value
	}{
		{"smallint widened", Arg(Int16, int16(-7)), int64(-7)},
		{"integer", Arg(Int32, int32(70000)), int64(70000)},
		{"bigint", Arg(Int64, int64(1<<40)), int64(1 << 40)},
		{"bool true", Arg(Bool, true), int64(1)},
		{"bool false", Arg(Bool, false), int64(0)},
		{"float widened", Arg(Float32, float32(1.5)), 1.5},
		{"double", Arg(Float64, 2.5), 2.5},
		{"text", Arg(String, "hi"), "hi"},
		{"blob", Arg(Bytes, []byte{1, 2}), []byte{1, 2}},
		{"named json flag", Arg(JSONFlag, FlagJSON5OrJSONB), int64(6)},
		{"raw json flag", Arg(JSONFlagInt32, 6), int64(6)},
		{"json flag reference", Arg(JSONFlagInt32Ref, &n), int64(6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("INSERT INTO t").
				WithArgs(tt.want).
				WillReturnResult(sqlmock.NewResult(1, 1))

			_, err = db.ExecContext(context.Background(), "INSERT INTO t VALUES (?)", tt.arg)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestArg_EncodeError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(context.Background(), "INSERT INTO t VALUES (?)", Arg(JSONFlagInt32Ref, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil reference")
}

func TestInto_PlainRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"n", "ok", "name"}).AddRow(int64(65536), int64(2), []byte("alpha")),
	)

	var (
		n    int16
		ok   bool
		name string
	)
	err = db.QueryRowContext(context.Background(), "SELECT n, ok, name FROM t").
		Scan(Into(Int16, &n), Into(Bool, &ok), Into(String, &name))
	require.NoError(t, err)
	assert.Equal(t, int16(0), n)
	assert.True(t, ok)
	assert.Equal(t, "alpha", name)
}

func TestInto_NullLeavesDestinationUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(nil))

	n := int32(42)
	err = db.QueryRowContext(context.Background(), "SELECT n FROM t").Scan(Into(Int32, &n))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedNull), "got %v", err)
	assert.Equal(t, int32(42), n)
}

func TestRows_ViewsExpireOnNext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow([]byte("alpha")).AddRow([]byte("beta")),
	)

	sqlRows, err := db.QueryContext(context.Background(), "SELECT name FROM t")
	require.NoError(t, err)
	rows := WrapRows(sqlRows)
	defer rows.Close()

	require.True(t, rows.Next())
	var first TextView
	require.NoError(t, rows.Scan(Into(StringView, &first)))
	s, err := first.Text()
	require.NoError(t, err)
	assert.Equal(t, "alpha", s)
	owned, err := first.Clone()
	require.NoError(t, err)

	require.True(t, rows.Next())
	assert.False(t, first.Valid())
	_, err = first.Text()
	assert.ErrorIs(t, err, ErrViewExpired)
	assert.Equal(t, "alpha", owned)

	var second TextView
	require.NoError(t, rows.Scan(Into(StringView, &second)))
	s, err = second.Text()
	require.NoError(t, err)
	assert.Equal(t, "beta", s)

	require.NoError(t, rows.Close())
	assert.False(t, second.Valid())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRows_ScanPassesOtherDestinations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "data"}).AddRow(int64(1), []byte{0xde, 0xad}),
	)

	sqlRows, err := db.QueryContext(context.Background(), "SELECT id, data FROM t")
	require.NoError(t, err)
	rows := WrapRows(sqlRows)
	defer rows.Close()

	require.True(t, rows.Next())
	var (
		id   int64
		data BlobView
	)
	require.NoError(t, rows.Scan(&id, Into(BytesView, &data)))
	assert.Equal(t, int64(1), id)
	b, err := data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)
	assert.Equal(t, uint64(1), rows.Epoch().Current())
}

func TestRows_CheckColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	newRows := func() *sqlmock.Rows {
		return mock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("id").OfType("INTEGER", int64(0)),
			sqlmock.NewColumn("name").OfType("VARCHAR(32)", ""),
		).AddRow(int64(1), "x")
	}
	mock.ExpectQuery("SELECT").WillReturnRows(newRows())
	mock.ExpectQuery("SELECT").WillReturnRows(newRows())

	var (
		id   int64
		name string
	)

	sqlRows, err := db.QueryContext(context.Background(), "SELECT id, name FROM t")
	require.NoError(t, err)
	rows := WrapRows(sqlRows)
	assert.NoError(t, rows.CheckColumns(Into(Int64, &id), Into(String, &name)))
	assert.NoError(t, rows.CheckColumns(&id), "plain destinations are skipped")
	require.NoError(t, rows.Close())

	sqlRows, err = db.QueryContext(context.Background(), "SELECT id, name FROM t")
	require.NoError(t, err)
	rows = WrapRows(sqlRows)
	defer rows.Close()

	err = rows.CheckColumns(Into(String, &name), Into(Int64, &id))
	var misuse *MisuseError
	require.True(t, errors.As(err, &misuse), "got %v", err)
	assert.Equal(t, "Text", misuse.SQLType)
	assert.Equal(t, "INTEGER", misuse.DeclType)
	assert.Contains(t, err.Error(), `column "id"`)
}

func TestInto_ViewsRequireRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow([]byte("☠☠")).AddRow([]byte("beta")),
	)
	mock.ExpectQuery("SELECT data").WillReturnRows(
		sqlmock.NewRows([]string{"data"}).AddRow([]byte{1, 2}),
	)

	sqlRows, err := db.QueryContext(context.Background(), "SELECT name FROM t")
	require.NoError(t, err)
	defer sqlRows.Close()

	require.True(t, sqlRows.Next())
	var first TextView
	err = sqlRows.Scan(Into(StringView, &first))
	var misuse *MisuseError
	require.True(t, errors.As(err, &misuse), "got %v", err)
	assert.Equal(t, "Text", misuse.SQLType)
	assert.Contains(t, err.Error(), "views require sqlite.Rows")
	assert.Zero(t, first.Len())

	// Owned decoders keep working on the same cursor.
	require.True(t, sqlRows.Next())
	var second string
	require.NoError(t, sqlRows.Scan(Into(String, &second)))
	assert.Equal(t, "beta", second)
	require.NoError(t, sqlRows.Close())

	var data BlobView
	err = db.QueryRowContext(context.Background(), "SELECT data FROM t").Scan(Into(BytesView, &data))
	require.True(t, errors.As(err, &misuse), "got %v", err)
	assert.Equal(t, "Binary", misuse.SQLType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
