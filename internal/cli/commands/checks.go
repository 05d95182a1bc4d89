package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/spf13/cobra"
)

// NewChecksCommand creates the checks command.
func NewChecksCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List recorded json-valid checks",
		Long:  `List the checks stored by 'litetype json-valid --record', newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			db, err := cc.OpenDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			checks, err := store.ListJSONChecks(cmd.Context(), db, limit)
			if err != nil {
				if errors.Is(err, store.ErrNotInitialized) {
					return fmt.Errorf("%w (run 'litetype init' first)", err)
				}
				return err
			}

			rs := &resultSet{Columns: []string{"id", "document", "flags", "valid", "checked_at"}}
			for _, c := range checks {
				rs.Rows = append(rs.Rows, []any{c.ID, c.Document, c.FlagName(), c.Valid, c.CheckedAt.Format(time.RFC3339)})
			}
			return cc.Render(rs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of checks to list (0 for all)")
	return cmd
}
