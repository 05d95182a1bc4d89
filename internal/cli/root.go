// Package cli provides the command-line interface for litetype.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/litetype/internal/cli/commands"
	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "litetype",
		Short: "litetype - typed SQLite values",
		Long: `litetype decodes and encodes SQLite values through logical SQL types.

Columns declared SMALLINT come back as int16, BOOLEAN as bool, and so on,
with the same coercions SQLite applies itself. json-valid binds the flag
argument of json_valid either by name or as a raw integer.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			loader := config.NewLoader()
			cfg, err := loader.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Verbose)
			if err != nil {
				return err
			}
			if f := loader.FileUsed(); f != "" {
				logger.Info("using config file", "path", f)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go and modernc.org/sqlite
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./litetype.yaml)")
	rootCmd.PersistentFlags().String("database", "", "Path to the SQLite database (default: in-memory)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|json|yaml|csv|md)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int("max-bind-length", sqlite.DefaultMaxLength, "Largest text or blob argument in bytes")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewTypesCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewJSONValidCommand())
	rootCmd.AddCommand(commands.NewChecksCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for litetype.

Bash:
  $ source <(litetype completion bash)

Zsh:
  $ litetype completion zsh > "${fpath[1]}/_litetype"

Fish:
  $ litetype completion fish | source

PowerShell:
  PS> litetype completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
