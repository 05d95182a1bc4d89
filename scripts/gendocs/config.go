package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/leapstack-labs/litetype/internal/store"
	"github.com/leapstack-labs/litetype/pkg/sqlite"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "general", "params"
}

func getConfigSchema() []ConfigField {
	params := store.DefaultParams()
	return []ConfigField{
		{Name: "database", Type: "string", Default: config.DefaultDatabase, Description: "SQLite database path. `${VAR}` references are expanded", Category: "general"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: " + strings.Join(config.OutputFormats(), ", "), Category: "general"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Description: "Log level: debug, info, warn, error", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Log at info level at least", Category: "general"},
		{Name: "max_bind_length", Type: "int", Default: strconv.Itoa(sqlite.DefaultMaxLength), Description: "Largest text or blob argument in bytes", Category: "general"},

		{Name: "busy_timeout", Type: "int", Default: strconv.Itoa(params.BusyTimeout), Description: "Milliseconds to wait for a locked database", Category: "params"},
		{Name: "foreign_keys", Type: "bool", Default: strconv.FormatBool(params.ForeignKeys), Description: "Enforce foreign key constraints", Category: "params"},
		{Name: "journal_mode", Type: "string", Description: "Journal mode of a database file, e.g. wal", Category: "params"},
		{Name: "read_only", Type: "bool", Default: "false", Description: "Open the database file read-only", Category: "params"},
	}
}

func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, configDoc(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func configDoc() []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "litetype configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("litetype reads `litetype.yaml` or `litetype.yml` from the working directory, or the file given with `--config`. " +
		"Environment variables override the file and flags override both.")

	fields := getConfigSchema()
	for _, section := range []struct {
		category, title, intro string
	}{
		{"general", "Settings", ""},
		{"params", "Connection Parameters", "Set under the `params` key and applied to every connection:"},
	} {
		w.Header(2, section.title)
		if section.intro != "" {
			w.Paragraph(section.intro)
		}

		var rows [][]string
		for _, f := range fields {
			if f.Category != section.category {
				continue
			}
			defVal := "-"
			if f.Default != "" {
				defVal = InlineCode(f.Default)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `database: ${HOME}/data/app.db
output: table
log_level: info
params:
  busy_timeout: 10000
  journal_mode: wal`)

	return w.Bytes()
}
