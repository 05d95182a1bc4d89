package commands

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/spf13/cobra"
)

// Flag annotation keys. The values list the forms the flag accepts.
const (
	// LogicalTypeAnnotation marks flags whose values name a logical type.
	LogicalTypeAnnotation = "litetype_logical_type"
	// JSONFlagAnnotation marks flags whose values are json_valid flags.
	JSONFlagAnnotation = "litetype_json_flag"
)

// CommandContext holds the shared dependencies of a command.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// NewCommandContext collects the config and logger the root command stored
// in cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	return &CommandContext{
		Cfg:    config.FromContext(ctx),
		Logger: config.GetLogger(ctx),
		Out:    cmd.OutOrStdout(),
	}
}

// OpenDB opens the configured database. The caller must close it.
func (c *CommandContext) OpenDB(ctx context.Context) (*sql.DB, error) {
	params, err := store.ParseParams(c.Cfg.Params)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, c.Cfg.Database, params, c.Logger)
}

// Format returns the output format to render with, resolving "auto".
func (c *CommandContext) Format() string {
	return resolveFormat(c.Cfg.Output, c.Out)
}

// Render writes rs to the command's output in the configured format.
func (c *CommandContext) Render(rs *resultSet) error {
	return render(c.Out, c.Format(), rs)
}
