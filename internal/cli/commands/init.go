package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Seed        bool
	WriteConfig bool
	Force       bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sample schema in the configured database",
		Long: `Create or upgrade the sample schema in the configured database file.

This creates:
  - samples: one column per logical type
  - json_checks: results stored by 'litetype json-valid --record'

Use --seed to insert sample rows and --write-config to save the current
settings to litetype.yaml.`,
		Example: `  # Initialize app.db with sample rows
  litetype init --database app.db --seed

  # Also write litetype.yaml pointing at app.db
  litetype init --database app.db --write-config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "Insert sample rows")
	cmd.Flags().BoolVar(&opts.WriteConfig, "write-config", false, "Write litetype.yaml")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing litetype.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	cc := NewCommandContext(cmd)
	if store.IsMemory(cc.Cfg.Database) {
		return fmt.Errorf("init needs a database file: set --database or database in litetype.yaml")
	}

	if opts.WriteConfig {
		if err := writeConfigFile("litetype.yaml", cc.Cfg, opts.Force); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cc.Out, "Wrote litetype.yaml")
	}

	ctx := cmd.Context()
	db, err := cc.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(ctx, db, cc.Logger); err != nil {
		return err
	}
	version, err := store.MigrationVersion(ctx, db)
	if err != nil {
		return err
	}
	cc.Logger.Debug("migrated database", slog.String("path", cc.Cfg.Database), slog.Int64("version", version))
	_, _ = fmt.Fprintf(cc.Out, "Initialized %s (schema version %d)\n", cc.Cfg.Database, version)

	if opts.Seed {
		samples := store.DefaultSamples(time.Now())
		if err := store.InsertSamples(ctx, db, samples); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cc.Out, "Inserted %d sample rows\n", len(samples))
	}
	return nil
}

// fileConfig is the part of Config written by --write-config.
type fileConfig struct {
	Database string         `yaml:"database"`
	Output   string         `yaml:"output,omitempty"`
	LogLevel string         `yaml:"log_level,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
}

func writeConfigFile(path string, cfg *config.Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(fileConfig{
		Database: cfg.Database,
		Output:   cfg.Output,
		LogLevel: cfg.LogLevel,
		Params:   cfg.Params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
