package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/internal/cli/testutil"
	itestutil "github.com/leapstack-labs/litetype/internal/testutil"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/leapstack-labs/litetype/pkg/sqltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) []map[string]any {
	t.Helper()
	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &got), "output: %s", s)
	return got
}

func TestReadSQL(t *testing.T) {
	file := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT 2"), 0o600))

	tests := []struct {
		name    string
		args    []string
		input   string
		stdin   string
		want    string
		wantErr string
	}{
		{name: "args", args: []string{"SELECT", "1"}, want: "SELECT 1"},
		{name: "args win over file", args: []string{"SELECT 1"}, input: file, want: "SELECT 1"},
		{name: "file", input: file, want: "SELECT 2"},
		{name: "stdin", stdin: "SELECT 3", want: "SELECT 3"},
		{name: "blank stdin", stdin: "  \n", wantErr: "no SQL given on stdin"},
		{name: "missing file", input: filepath.Join(t.TempDir(), "nope.sql"), wantErr: "failed to read file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSQL(tt.args, tt.input, strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColumnOverrides(t *testing.T) {
	got, err := parseColumnOverrides([]string{"level=BigInt", "raw=varchar(10)"})
	require.NoError(t, err)
	assert.Equal(t, map[string]sqltype.Tag{"level": sqltype.BigInt{}, "raw": sqltype.Text{}}, got)

	for _, spec := range []string{"level", "=BigInt", "level=Geometry"} {
		_, err := parseColumnOverrides([]string{spec})
		assert.Error(t, err, spec)
	}
}

func TestParseBindArgs(t *testing.T) {
	got, err := parseBindArgs([]string{
		"SmallInt:5",
		"null",
		"Text:hi",
		"Binary:x'00ff'",
		"Double:2.5",
		"Bool:true",
		"JsonValidFlags:json5",
		"JsonValidFlags:3",
	}, sqlite.DefaultMaxLength)
	require.NoError(t, err)
	assert.Equal(t, []any{
		int64(5), nil, "hi", []byte{0x00, 0xff}, 2.5, int64(1), int64(2), int64(3),
	}, got)
}

func TestParseBindArgs_Errors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr string
	}{
		{"42", "expected TYPE:VALUE"},
		{"Geometry:1", "unknown SQL type"},
		{"SmallInt:40000", "invalid --arg 1"},
		{"JsonValidFlags:json6", "unknown JSON validity flag"},
		{"Text:hello", "exceeds limit of 4 bytes"},
	}

	for _, tt := range tests {
		_, err := parseBindArgs([]string{tt.spec}, 4)
		require.Error(t, err, tt.spec)
		assert.Contains(t, err.Error(), tt.wantErr, tt.spec)
	}
}

func TestColumnTag(t *testing.T) {
	overrides := map[string]sqltype.Tag{"a": sqltype.BigInt{}}

	assert.Equal(t, sqltype.BigInt{}, columnTag("a", "SMALLINT", overrides))
	assert.Equal(t, sqltype.SmallInt{}, columnTag("b", "SMALLINT", overrides))
	assert.Nil(t, columnTag("c", "", overrides))
	assert.Nil(t, columnTag("d", "GEOMETRY", overrides))
}

func TestExecuteQuery(t *testing.T) {
	db := itestutil.OpenMemoryDB(t)
	itestutil.Exec(t, db,
		`CREATE TABLE t (id INTEGER, level SMALLINT, active BOOLEAN, note TEXT)`,
		`INSERT INTO t VALUES (1, 70000, 2, NULL), (2, -1, 0, 'x')`,
	)
	ctx := context.Background()

	rs, err := executeQuery(ctx, db, "SELECT id, level, active, note FROM t ORDER BY id", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "level", "active", "note"}, rs.Columns)
	assert.Equal(t, [][]any{
		{int32(1), int16(4464), true, nil},
		{int32(2), int16(-1), false, "x"},
	}, rs.Rows)

	rs, err = executeQuery(ctx, db, "SELECT level FROM t WHERE id = ?",
		map[string]sqltype.Tag{"level": sqltype.BigInt{}}, []any{int64(1)})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(70000)}}, rs.Rows)

	// Expressions have no declared type and decode by storage class.
	rs, err = executeQuery(ctx, db, "SELECT 1 + 1, 0.5, 'a', x'01', NULL", nil, nil)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, []any{int64(2), 0.5, "a", []byte{0x01}, nil}, rs.Rows[0])
}

func TestExecuteQuery_Errors(t *testing.T) {
	db := itestutil.OpenMemoryDB(t)
	itestutil.Exec(t, db, `CREATE TABLE t (id INTEGER, name TEXT)`)
	ctx := context.Background()

	_, err := executeQuery(ctx, db, "SELECT * FROM missing", nil, nil)
	assert.ErrorContains(t, err, "failed to run query")

	_, err = executeQuery(ctx, db, "SELECT id FROM t", map[string]sqltype.Tag{"nope": sqltype.Text{}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available columns: id")

	_, err = executeQuery(ctx, db, "SELECT name FROM t", map[string]sqltype.Tag{"name": sqltype.Integer{}}, nil)
	var misuse *sqlite.MisuseError
	assert.ErrorAs(t, err, &misuse)
}

func TestQueryCommand(t *testing.T) {
	path := testutil.SampleDB(t)

	res, err := testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputJSON),
		"SELECT id, sensor, level, active, ratio, raw FROM readings ORDER BY id")
	require.NoError(t, err)

	got := decodeJSON(t, res.Output())
	require.Len(t, got, 2)
	assert.Equal(t, map[string]any{
		"id": float64(1), "sensor": "north", "level": float64(12),
		"active": true, "ratio": 0.5, "raw": "x'0102'",
	}, got[0])
	assert.Equal(t, float64(4464), got[1]["level"])
	assert.Nil(t, got[1]["ratio"])
}

func TestQueryCommand_ArgsAndOverrides(t *testing.T) {
	path := testutil.SampleDB(t)

	res, err := testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputJSON),
		"SELECT level FROM readings WHERE sensor = ?", "--arg", "Text:south", "--col", "level=BigInt")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"level": float64(70000)}}, decodeJSON(t, res.Output()))
}

func TestQueryCommand_Input(t *testing.T) {
	path := testutil.SampleDB(t)
	file := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT count(*) AS n FROM readings"), 0o600))

	res, err := testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputCSV), "--input", file)
	require.NoError(t, err)
	assert.Contains(t, res.Output(), "2")
}

func TestQueryTablesCommand(t *testing.T) {
	path := testutil.SampleDB(t)

	res, err := testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputJSON), "tables")
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"name": "readings", "type": "table"},
		{"name": "active_readings", "type": "view"},
	}, decodeJSON(t, res.Output()))
}

func TestQuerySchemaCommand(t *testing.T) {
	path := testutil.SampleDB(t)

	res, err := testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputJSON), "schema", "readings")
	require.NoError(t, err)

	got := decodeJSON(t, res.Output())
	require.Len(t, got, 6)
	assert.Equal(t, map[string]any{
		"column": "sensor", "declared": "VARCHAR(32)", "affinity": "TEXT",
		"logical_type": "Text", "go_type": "string", "not_null": true, "pk": false,
	}, got[1])
	assert.Equal(t, "int16", got[2]["go_type"])
	assert.Equal(t, true, got[0]["pk"])

	_, err = testutil.ExecuteCommand(t, NewQueryCommand(), testutil.Config(path, config.OutputJSON), "schema", "missing")
	assert.ErrorContains(t, err, `table or view "missing" not found`)
}
