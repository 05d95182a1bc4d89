package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanExample(t *testing.T) {
	in := "  # first\n  litetype types\n\n    indented"
	assert.Equal(t, "# first\nlitetype types\n\n  indented", cleanExample(in))
	assert.Equal(t, "flat", cleanExample("flat\n"))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Output format", cleanDescription("output format."))
	assert.Equal(t, "", cleanDescription("  "))
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Title")
	w.Table([]string{"A", "B"}, [][]string{{"1", "2"}})
	w.Table([]string{"A"}, nil)
	w.CodeBlock("bash", "echo hi\n")

	out := string(w.Bytes())
	assert.True(t, strings.HasPrefix(out, "## Title\n\n"))
	assert.Contains(t, out, "| A | B |")
	assert.Contains(t, out, "| 1 | 2 |")
	assert.Contains(t, out, "```bash\necho hi\n```")
}

func TestTypesDoc(t *testing.T) {
	out := string(typesDoc())
	assert.Contains(t, out, "`SmallInt`")
	assert.Contains(t, out, "`int16`")
	assert.Contains(t, out, "`json5-or-jsonb`")
}

func TestConfigDoc(t *testing.T) {
	out := string(configDoc())
	assert.Contains(t, out, "`busy_timeout`")
	assert.Contains(t, out, "`:memory:`")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index", "types", "query", "json-valid", "checks", "init", "version"} {
		_, err := os.Stat(filepath.Join(dir, name+".md"))
		assert.NoError(t, err, name)
	}

	page, err := os.ReadFile(filepath.Join(dir, "json-valid.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "`--flag`")
	assert.Contains(t, string(page), "litetype json-valid <document>")
}

func TestCommandPage_LogicalTypes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	query, err := os.ReadFile(filepath.Join(dir, "query.md"))
	require.NoError(t, err)
	assert.Contains(t, string(query), "## Logical Types")
	assert.Contains(t, string(query), "`name=TYPE`")
	assert.Contains(t, string(query), "`TYPE:VALUE` or `NULL`")
	assert.Contains(t, string(query), "[logical types](/reference/types)")
	assert.Contains(t, string(query), "litetype query tables")

	jsonValid, err := os.ReadFile(filepath.Join(dir, "json-valid.md"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonValid), "(/reference/types#json-validity-flags)")

	checks, err := os.ReadFile(filepath.Join(dir, "checks.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(checks), "## Logical Types")

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "(/reference/configuration)")
	assert.NotContains(t, string(index), "Exit Codes")
}
