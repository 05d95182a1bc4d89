package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/litetype/pkg/sqlite"
	"github.com/leapstack-labs/litetype/pkg/sqltype"
)

func generateTypesDocs(outDir string) error {
	log.Printf("Generating type docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(outDir, "types.md")
	if err := os.WriteFile(filename, typesDoc(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated types.md")
	return nil
}

func typesDoc() []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("SQL Types", "Logical SQL types and the Go types they decode to")
	w.GeneratedMarker()

	w.Header(1, "SQL Types")
	w.Paragraph(`Each logical type names how a column is meant to be read. The type of a
query column comes from its declared type, matched case-insensitively with
any size suffix removed, so ` + InlineCode("VARCHAR(64)") + ` reads as Text.`)

	var rows [][]string
	for _, tag := range sqltype.All() {
		aliases := sqltype.Aliases(tag)
		for i, a := range aliases {
			aliases[i] = InlineCode(a)
		}
		rows = append(rows, []string{
			InlineCode(tag.Name()),
			tag.Storage().String(),
			InlineCode(sqlite.HostType(tag)),
			strings.Join(aliases, ", "),
		})
	}
	w.Table([]string{"Type", "Storage", "Go type", "Declared as"}, rows)

	w.Header(2, "Coercion")
	w.Paragraph(`Values are converted the way SQLite converts them. Text read as a number
takes its longest numeric prefix, reals read as integers truncate toward
zero and saturate, and SmallInt keeps the low 16 bits of the stored
integer, so 70000 reads as 4464.`)

	w.Header(2, "JSON validity flags")
	w.Paragraph("The second argument of " + InlineCode("json_valid") + " binds by name with these values:")

	var flagRows [][]string
	for _, f := range sqlite.JSONValidFlagValues() {
		flagRows = append(flagRows, []string{InlineCode(f.String()), strconv.Itoa(int(f))})
	}
	w.Table([]string{"Flag", "Value"}, flagRows)

	return w.Bytes()
}
