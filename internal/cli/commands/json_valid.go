package commands

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/spf13/cobra"
)

// JSONValidOptions holds options for the json-valid command.
type JSONValidOptions struct {
	Flag   string
	Raw    int32
	Record bool
}

// NewJSONValidCommand creates the json-valid command.
func NewJSONValidCommand() *cobra.Command {
	opts := &JSONValidOptions{}

	cmd := &cobra.Command{
		Use:   "json-valid <document>",
		Short: "Check a document with SQLite's json_valid",
		Long: `Evaluate json_valid(document, flags) in SQLite.

--flag binds a named flag combination; --raw binds a bare integer, which
SQLite accepts as long as it is between 1 and 15. Pass - as the document
to read it from stdin.

With --record the result is stored in the json_checks table, which
'litetype init' creates.`,
		Example: `  # JSON5 is accepted by the default flags
  litetype json-valid '{a:1}'

  # ... but not as strict RFC-8259 JSON
  litetype json-valid '{a:1}' --flag rfc8259-json

  # Raw flag value
  litetype json-valid '[1,2]' --raw 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSONValid(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Flag, "flag", sqlite.FlagJSON5OrJSONB.String(), "Named flag combination (see 'litetype types --flags')")
	cmd.Flags().Int32Var(&opts.Raw, "raw", 0, "Raw integer flags")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "Store the result in the json_checks table")
	cmd.MarkFlagsMutuallyExclusive("flag", "raw")
	_ = cmd.Flags().SetAnnotation("flag", JSONFlagAnnotation, []string{"NAME"})
	_ = cmd.Flags().SetAnnotation("raw", JSONFlagAnnotation, []string{"1-15"})

	_ = cmd.RegisterFlagCompletionFunc("flag", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range sqlite.JSONValidFlagValues() {
			names = append(names, f.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runJSONValid(cmd *cobra.Command, doc string, opts *JSONValidOptions) error {
	cc := NewCommandContext(cmd)

	if doc == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		doc = string(content)
	}

	var (
		flagArg driver.Valuer
		flags   int32
	)
	if cmd.Flags().Changed("raw") {
		flagArg, flags = sqlite.Arg(sqlite.JSONFlagInt32, opts.Raw), opts.Raw
	} else {
		f, err := sqlite.ParseJSONValidFlag(opts.Flag)
		if err != nil {
			return err
		}
		flagArg, flags = sqlite.Arg(sqlite.JSONFlag, f), int32(f)
	}

	ctx := cmd.Context()
	db, err := cc.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	valid, err := evaluateJSONValid(ctx, db, doc, flagArg)
	if err != nil {
		return err
	}

	check := store.JSONCheck{Document: doc, Flags: flags, Valid: valid, CheckedAt: time.Now()}
	rs := &resultSet{
		Columns: []string{"document", "flags", "valid"},
		Rows:    [][]any{{doc, check.FlagName(), valid}},
	}

	if opts.Record {
		id, err := store.RecordJSONCheck(ctx, db, check)
		if err != nil {
			if errors.Is(err, store.ErrNotInitialized) {
				return fmt.Errorf("%w (run 'litetype init' first)", err)
			}
			return err
		}
		cc.Logger.Info("recorded json check", slog.String("id", id))
		rs.Columns = append(rs.Columns, "id")
		rs.Rows[0] = append(rs.Rows[0], id)
	}

	return cc.Render(rs)
}

// evaluateJSONValid runs json_valid(doc, flags) and decodes the result
// as a Bool.
func evaluateJSONValid(ctx context.Context, db *sql.DB, doc string, flags driver.Valuer) (bool, error) {
	var valid bool
	err := db.QueryRowContext(ctx, "SELECT json_valid(?, ?)", sqlite.Arg(sqlite.String, doc), flags).
		Scan(sqlite.Into(sqlite.Bool, &valid))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate json_valid: %w", err)
	}
	return valid, nil
}
