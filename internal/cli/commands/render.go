package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/litetype/internal/cli/config"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// resultSet is a rendered table: column names and rows of decoded values.
type resultSet struct {
	Columns []string
	Rows    [][]any
}

// resolveFormat maps "auto" to a table on a terminal and JSON otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "" && format != config.OutputAuto {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return config.OutputTable
	}
	return config.OutputJSON
}

func render(w io.Writer, format string, rs *resultSet) error {
	switch format {
	case config.OutputJSON:
		return renderJSON(w, rs)
	case config.OutputYAML:
		return renderYAML(w, rs)
	case config.OutputCSV:
		newTableWriter(w, rs).RenderCSV()
		return nil
	case config.OutputMarkdown:
		if len(rs.Rows) == 0 {
			_, _ = fmt.Fprintln(w, "(0 rows)")
			return nil
		}
		newTableWriter(w, rs).RenderMarkdown()
		return nil
	default:
		return renderTable(w, rs)
	}
}

func newTableWriter(w io.Writer, rs *resultSet) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, values := range rs.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		t.AppendRow(row)
	}
	return t
}

func renderTable(w io.Writer, rs *resultSet) error {
	if len(rs.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}
	newTableWriter(w, rs).Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.Rows))
	return nil
}

// records returns one map per row for the JSON and YAML encoders.
func records(rs *resultSet) []map[string]any {
	out := make([]map[string]any, 0, len(rs.Rows))
	for _, values := range rs.Rows {
		rec := make(map[string]any, len(values))
		for i, v := range values {
			rec[rs.Columns[i]] = plainValue(v)
		}
		out = append(out, rec)
	}
	return out
}

func renderJSON(w io.Writer, rs *resultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(rs))
}

func renderYAML(w io.Writer, rs *resultSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(rs)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// plainValue converts blobs to their SQL literal form so that every output
// format shows them the same way.
func plainValue(v any) any {
	if b, ok := v.([]byte); ok {
		return blobLiteral(b)
	}
	return v
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return blobLiteral(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func blobLiteral(b []byte) string {
	return "x'" + hex.EncodeToString(b) + "'"
}
