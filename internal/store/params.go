package store

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds SQLite connection settings.
// Parsed from the config's params map using mapstructure.
type Params struct {
	// BusyTimeout is how long a connection waits on a locked database, in milliseconds.
	BusyTimeout int `mapstructure:"busy_timeout"`

	// ForeignKeys enables foreign key enforcement.
	ForeignKeys bool `mapstructure:"foreign_keys"`

	// JournalMode: "delete", "truncate", "persist", "memory", "wal" or "off".
	// Empty leaves SQLite's default.
	JournalMode string `mapstructure:"journal_mode"`

	// ReadOnly opens the database file read-only.
	ReadOnly bool `mapstructure:"read_only"`
}

var journalModes = []string{"DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF"}

// DefaultParams returns the settings used when the config has none.
func DefaultParams() Params {
	return Params{
		BusyTimeout: 5000,
		ForeignKeys: true,
	}
}

// ParseParams decodes raw on top of DefaultParams. Unknown keys are an error.
// Values may be given as strings, as they are when set from the environment.
func ParseParams(raw map[string]any) (Params, error) {
	p := DefaultParams()
	if len(raw) == 0 {
		return p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Params{}, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Params{}, fmt.Errorf("failed to decode connection params: %w", err)
	}

	p.JournalMode = strings.ToUpper(strings.TrimSpace(p.JournalMode))
	return p, nil
}

// Validate checks p against the database it will be used for.
func (p Params) Validate(path string) error {
	if p.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must not be negative, got %d", p.BusyTimeout)
	}
	if p.JournalMode != "" && !isJournalMode(p.JournalMode) {
		return fmt.Errorf("unknown journal_mode %q\nAvailable modes: %s",
			p.JournalMode, strings.ToLower(strings.Join(journalModes, ", ")))
	}
	if p.ReadOnly && IsMemory(path) {
		return fmt.Errorf("read_only requires a database file, got %s", path)
	}
	return nil
}

func isJournalMode(mode string) bool {
	for _, m := range journalModes {
		if strings.EqualFold(m, mode) {
			return true
		}
	}
	return false
}
