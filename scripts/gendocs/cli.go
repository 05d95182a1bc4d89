package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/litetype/internal/cli"
	"github.com/leapstack-labs/litetype/internal/cli/commands"
	"github.com/leapstack-labs/litetype/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	typesRef     = "/reference/types"
	jsonFlagsRef = "/reference/types#json-validity-flags"
	configRef    = "/reference/configuration"
)

// generateCLIDocs writes index.md and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	if err := writePage(outDir, "index", cliIndex(root)); err != nil {
		return err
	}
	for _, cmd := range documented(root) {
		if err := writePage(outDir, cmd.Name(), commandPage(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func writePage(outDir, name string, page []byte) error {
	if err := os.WriteFile(filepath.Join(outDir, name+".md"), page, 0600); err != nil {
		return fmt.Errorf("failed to write %s.md: %w", name, err)
	}
	log.Printf("  Generated %s.md", name)
	return nil
}

func documented(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		switch {
		case cmd.Hidden, cmd.Name() == "help", cmd.Name() == "completion":
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for litetype")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("litetype reads SQLite values through logical SQL types. Each type fixes the Go value a column decodes to and the way an argument is bound; the full list is in the " +
		link("types reference", typesRef) + ".")

	var rows [][]string
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			link(InlineCode(cmd.Name()), "/cli/"+cmd.Name()),
			cleanDescription(cmd.Short),
			strings.Join(typedFlagNames(cmd), ", "),
		})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description", "Typed flags"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("Each option in " + link("litetype.yaml", configRef) + " can be set from the environment. Flags win over both.")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode(config.EnvPrefix + "DATABASE"), "Database path"},
		{InlineCode(config.EnvPrefix + "OUTPUT"), "Output format"},
		{InlineCode(config.EnvPrefix + "LOG_LEVEL"), "Log level"},
		{InlineCode(config.EnvPrefix + "VERBOSE"), "Verbose logging"},
		{InlineCode(config.EnvPrefix + "MAX_BIND_LENGTH"), "Largest text or blob argument in bytes"},
		{InlineCode(config.EnvPrefix + "PARAMS__BUSY_TIMEOUT"), "Connection parameter; `__` separates nested keys"},
	})

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	usage := []string{commandLine(cmd)}
	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			usage = append(usage, commandLine(sub))
		}
	}
	w.CodeBlock("bash", strings.Join(usage, "\n"))

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}

	if typed := typedFlagRows(cmd.LocalFlags()); len(typed) > 0 {
		w.Header(2, "Logical Types")
		w.Paragraph("These options take a logical type or a json_valid flag. Type names match case-insensitively and accept the declared-type aliases.")
		w.Table([]string{"Option", "Accepts", "Values"}, typed)
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	w.Paragraph("Global options are listed in the " + link("CLI reference", "/cli") + ".")
	return w.Bytes()
}

func commandLine(cmd *cobra.Command) string {
	line := strings.TrimSuffix(cmd.UseLine(), " [flags]")
	if !strings.HasPrefix(line, "litetype") {
		line = "litetype " + line
	}
	return line
}

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, flagDefault(f), cleanDescription(f.Usage)})
	})
	return rows
}

func flagDefault(f *pflag.Flag) string {
	switch {
	case f.DefValue == "", f.DefValue == "[]", f.DefValue == "0" && f.Value.Type() == "int32":
		return ""
	case f.Value.Type() == "string":
		return InlineCode(f.DefValue)
	}
	return f.DefValue
}

// typedFlagRows lists the flags carrying a logical type or json flag
// annotation, with a link to where their values are documented.
func typedFlagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if forms, ok := f.Annotations[commands.LogicalTypeAnnotation]; ok {
			rows = append(rows, []string{InlineCode("--" + f.Name), codeList(forms), link("logical types", typesRef)})
		}
		if forms, ok := f.Annotations[commands.JSONFlagAnnotation]; ok {
			rows = append(rows, []string{InlineCode("--" + f.Name), codeList(forms), link("JSON validity flags", jsonFlagsRef)})
		}
	})
	return rows
}

func typedFlagNames(cmd *cobra.Command) []string {
	var names []string
	for _, row := range typedFlagRows(cmd.LocalFlags()) {
		names = append(names, row[0])
	}
	return names
}

func codeList(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return strings.Join(out, " or ")
}

func link(text, target string) string {
	return "[" + text + "](" + target + ")"
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
