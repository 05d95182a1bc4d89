package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/leapstack-labs/litetype/pkg/sqltype"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input   string
	Columns []string
	Args    []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL and decode the results with logical types",
		Long: `Run a SQL statement against the configured database and decode each
result column with a logical type.

A column's type comes from --col if given, else from its declared type
(INTEGER, VARCHAR(20), ...), else from the storage class of each value.
A --col type that contradicts the column's declared affinity is an error.

Parameters are bound with --arg TYPE:VALUE, in order. The value is parsed
for the given type: x'0a1b' for blobs, a flag name or number for
JsonValidFlags. --arg NULL binds SQL NULL.`,
		Example: `  # Decode a SMALLINT column, showing truncation of stored values
  litetype query "SELECT small_value FROM samples"

  # Override a column's type
  litetype query "SELECT 65536 AS n" --col n=SmallInt

  # Bind typed parameters
  litetype query "SELECT json_valid(?, ?)" --arg TEXT:'{a:1}' --arg JsonValidFlags:json5-or-jsonb

  # List tables
  litetype query tables`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().StringArrayVar(&opts.Columns, "col", nil, "Decode a column as a type (name=TYPE)")
	cmd.Flags().StringArrayVar(&opts.Args, "arg", nil, "Bind a parameter (TYPE:VALUE or NULL)")
	_ = cmd.Flags().SetAnnotation("col", LogicalTypeAnnotation, []string{"name=TYPE"})
	_ = cmd.Flags().SetAnnotation("arg", LogicalTypeAnnotation, []string{"TYPE:VALUE", "NULL"})

	cmd.AddCommand(newQueryTablesCommand())
	cmd.AddCommand(newQuerySchemaCommand())

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cc := NewCommandContext(cmd)

	query, err := readSQL(args, opts.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	overrides, err := parseColumnOverrides(opts.Columns)
	if err != nil {
		return err
	}
	bindArgs, err := parseBindArgs(opts.Args, cc.Cfg.MaxBindLength)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := cc.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	cc.Logger.Debug("running query",
		slog.String("sql", query),
		slog.Int("args", len(bindArgs)),
		slog.Int("column_overrides", len(overrides)))

	rs, err := executeQuery(ctx, db, query, overrides, bindArgs)
	if err != nil {
		return err
	}
	return cc.Render(rs)
}

// readSQL takes the statement from args, the input file, or piped stdin,
// in that order.
func readSQL(args []string, input string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case input != "":
		content, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	case stdin != nil && !isTerminal(stdin):
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return "", fmt.Errorf("no SQL given on stdin")
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("no SQL given: pass it as an argument, with --input, or on stdin")
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseColumnOverrides parses name=TYPE pairs.
func parseColumnOverrides(specs []string) (map[string]sqltype.Tag, error) {
	overrides := make(map[string]sqltype.Tag, len(specs))
	for _, spec := range specs {
		name, typeName, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --col %q: expected name=TYPE", spec)
		}
		tag, err := sqltype.Lookup(typeName)
		if err != nil {
			return nil, fmt.Errorf("invalid --col %q: %w", spec, err)
		}
		overrides[name] = tag
	}
	return overrides, nil
}

// parseBindArgs encodes TYPE:VALUE specs into driver values, each limited
// to maxLength bytes.
func parseBindArgs(specs []string, maxLength int) ([]any, error) {
	args := make([]any, 0, len(specs))
	for i, spec := range specs {
		if strings.EqualFold(spec, "NULL") {
			args = append(args, nil)
			continue
		}
		typeName, lit, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid --arg %d %q: expected TYPE:VALUE", i+1, spec)
		}
		tag, err := sqltype.Lookup(typeName)
		if err != nil {
			return nil, fmt.Errorf("invalid --arg %d: %w", i+1, err)
		}

		out := sqlite.NewOutputWithLimit(maxLength)
		isNull, err := sqlite.EncodeText(tag, lit, out)
		if err != nil {
			return nil, fmt.Errorf("invalid --arg %d: %w", i+1, err)
		}
		if isNull {
			args = append(args, nil)
			continue
		}
		args = append(args, out.Value())
	}
	return args, nil
}

// columnTag picks the logical type of a result column. nil means decode
// by storage class.
func columnTag(name, declType string, overrides map[string]sqltype.Tag) sqltype.Tag {
	if tag, ok := overrides[name]; ok {
		return tag
	}
	if declType == "" {
		return nil
	}
	tag, err := sqltype.Lookup(declType)
	if err != nil {
		return nil
	}
	return tag
}

func executeQuery(ctx context.Context, db *sql.DB, query string, overrides map[string]sqltype.Tag, args []any) (*resultSet, error) {
	sqlRows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	rows := sqlite.WrapRows(sqlRows)
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}

	rs := &resultSet{Columns: make([]string, len(types))}
	values := make([]any, len(types))
	dest := make([]any, len(types))
	for i, ct := range types {
		rs.Columns[i] = ct.Name()
		dest[i] = sqlite.IntoAny(columnTag(ct.Name(), ct.DatabaseTypeName(), overrides), &values[i])
	}
	for name := range overrides {
		if !slices.Contains(rs.Columns, name) {
			return nil, fmt.Errorf("unknown column %q in --col\nAvailable columns: %s", name, strings.Join(rs.Columns, ", "))
		}
	}
	if err := rows.CheckColumns(dest...); err != nil {
		return nil, err
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rs.Rows)+1, err)
		}
		rs.Rows = append(rs.Rows, slices.Clone(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return rs, nil
}

func newQueryTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables and views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			db, err := cc.OpenDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			rs, err := listTables(cmd.Context(), db)
			if err != nil {
				return err
			}
			return cc.Render(rs)
		},
	}
}

func listTables(ctx context.Context, db *sql.DB) (*resultSet, error) {
	return executeQuery(ctx, db, `
		SELECT name, type
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		AND name NOT LIKE 'goose_%'
		ORDER BY type, name`, nil, nil)
}

func newQuerySchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show the columns of a table with their affinity and logical type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			db, err := cc.OpenDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			rs, err := showSchema(cmd.Context(), db, args[0])
			if err != nil {
				return err
			}
			return cc.Render(rs)
		},
	}
}

func showSchema(ctx context.Context, db *sql.DB, table string) (*resultSet, error) {
	sqlRows, err := db.QueryContext(ctx,
		`SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`,
		sqlite.Arg(sqlite.String, table))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema of %s: %w", table, err)
	}
	rows := sqlite.WrapRows(sqlRows)
	defer func() { _ = rows.Close() }()

	rs := &resultSet{Columns: []string{"column", "declared", "affinity", "logical_type", "go_type", "not_null", "pk"}}
	var (
		name, declType string
		notNull, pk    bool
	)
	for rows.Next() {
		if err := rows.Scan(
			sqlite.Into(sqlite.String, &name),
			sqlite.Into(sqlite.String, &declType),
			sqlite.Into(sqlite.Bool, &notNull),
			sqlite.Into(sqlite.Bool, &pk),
		); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}

		logical, goType := "", ""
		if tag, err := sqltype.Lookup(declType); err == nil {
			logical, goType = tag.Name(), sqlite.HostType(tag)
		}
		rs.Rows = append(rs.Rows, []any{
			name, declType, sqltype.AffinityOf(declType).String(), logical, goType, notNull, pk,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate column info: %w", err)
	}
	if len(rs.Rows) == 0 {
		return nil, fmt.Errorf("table or view %q not found", table)
	}
	return rs, nil
}
