package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		want    Params
		wantErr string
	}{
		{
			name: "nil uses defaults",
			raw:  nil,
			want: DefaultParams(),
		},
		{
			name: "typed values",
			raw:  map[string]any{"busy_timeout": 100, "foreign_keys": false, "journal_mode": "wal"},
			want: Params{BusyTimeout: 100, ForeignKeys: false, JournalMode: "WAL"},
		},
		{
			name: "string values from env",
			raw:  map[string]any{"busy_timeout": "250", "read_only": "true"},
			want: Params{BusyTimeout: 250, ForeignKeys: true, ReadOnly: true},
		},
		{
			name:    "unknown key",
			raw:     map[string]any{"cache_size": 10},
			wantErr: "cache_size",
		},
		{
			name:    "bad type",
			raw:     map[string]any{"busy_timeout": "soon"},
			wantErr: "failed to decode connection params",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		path    string
		wantErr string
	}{
		{"defaults in memory", DefaultParams(), MemoryPath, ""},
		{"wal on file", Params{JournalMode: "WAL"}, "app.db", ""},
		{"negative timeout", Params{BusyTimeout: -1}, "app.db", "must not be negative"},
		{"unknown journal mode", Params{JournalMode: "FAST"}, "app.db", "Available modes: delete, truncate"},
		{"read only in memory", Params{ReadOnly: true}, MemoryPath, "requires a database file"},
		{"read only on empty path", Params{ReadOnly: true}, "", "requires a database file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(tt.path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
