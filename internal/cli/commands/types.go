package commands

import (
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/leapstack-labs/litetype/pkg/sqltype"
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	var flags bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the logical SQL types",
		Long: `List every logical SQL type with its storage class, the Go type it
decodes to, and the declared column types that map to it.

With --flags, list the named json_valid flag combinations instead.`,
		Example: `  # All logical types
  litetype types

  # JSON validity flags as YAML
  litetype types --flags -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if flags {
				return cc.Render(flagsResult())
			}
			return cc.Render(typesResult())
		},
	}

	cmd.Flags().BoolVar(&flags, "flags", false, "List JSON validity flags")
	return cmd
}

func typesResult() *resultSet {
	rs := &resultSet{Columns: []string{"type", "storage", "go_type", "aliases"}}
	for _, tag := range sqltype.All() {
		rs.Rows = append(rs.Rows, []any{
			tag.Name(),
			tag.Storage().String(),
			sqlite.HostType(tag),
			strings.Join(sqltype.Aliases(tag), ", "),
		})
	}
	return rs
}

func flagsResult() *resultSet {
	rs := &resultSet{Columns: []string{"flag", "value"}}
	for _, f := range sqlite.JSONValidFlagValues() {
		rs.Rows = append(rs.Rows, []any{f.String(), int32(f)})
	}
	return rs
}
