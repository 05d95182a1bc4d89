package commands

import (
	"fmt"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the litetype version and the version of the bundled SQLite library.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "litetype v%s\n", version)

			sqliteVersion := "unknown"
			db, err := store.Open(cmd.Context(), store.MemoryPath, store.Params{}, config.GetLogger(cmd.Context()))
			if err == nil {
				if v, err := store.Version(cmd.Context(), db); err == nil {
					sqliteVersion = v
				}
				_ = db.Close()
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "SQLite %s (modernc.org/sqlite)\n", sqliteVersion)
		},
	}
}
