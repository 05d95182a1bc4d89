package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// configNames are the file names searched for in the working directory.
var configNames = []string{"litetype.yaml", "litetype.yml"}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// findConfigFile returns explicit if set, else the first config file found
// in the working directory, else "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Loader loads configuration. The zero value is not usable; call NewLoader.
type Loader struct {
	k        *koanf.Koanf
	fileUsed string
}

// NewLoader returns a Loader with an empty koanf instance.
func NewLoader() *Loader {
	return &Loader{k: koanf.New(".")}
}

// FileUsed returns the config file read by the last Load, if any.
func (l *Loader) FileUsed() string {
	return l.fileUsed
}

// Load reads the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func (l *Loader) Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	l.k = koanf.New(".")
	l.fileUsed = ""

	// 1. Defaults
	if err := l.k.Load(confmap.Provider(map[string]any{
		"database":        DefaultDatabase,
		"output":          DefaultOutput,
		"verbose":         false,
		"log_level":       DefaultLogLevel,
		"max_bind_length": sqlite.DefaultMaxLength,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	l.fileUsed = findConfigFile(cfgFile)
	if l.fileUsed != "" {
		if err := l.k.Load(file.Provider(l.fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", l.fileUsed, err)
		}
	}

	// 3. Environment: LITETYPE_LOG_LEVEL -> log_level, LITETYPE_PARAMS__BUSY_TIMEOUT -> params.busy_timeout
	if err := l.k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those set explicitly
	if flags != nil {
		if err := l.k.Load(posflag.ProviderWithFlag(flags, ".", l.k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Database = expandEnvVars(cfg.Database)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration with a fresh Loader.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	return NewLoader().Load(cfgFile, flags)
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the command context. Without one
// it returns the defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger writing text to w. verbose forces debug
// level; otherwise level names a slog level ("debug", "info", "warn", "error").
func NewLogger(w io.Writer, level string, verbose bool) (*slog.Logger, error) {
	var lvl slog.Level
	if verbose {
		lvl = slog.LevelDebug
	} else if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// expandEnvVars expands ${VAR} patterns with environment variable values.
// Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}
