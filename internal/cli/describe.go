// internal/cli/describe.go
package timetool

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/timetool/internal/timetools"
)

// describeCmd implements 'describe', which prints the tool catalog.
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the catalog of time tools",
	Long:  `The 'describe' command prints the tools with their input schemas. With --remote the catalog is fetched from the MCP server binary over tools/list. With --jsonMode the raw catalog is printed as JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		cfg := configOrDefault()

		inv, release, err := openInvoker(cmd.Context(), cfg, remote)
		if err != nil {
			return err
		}
		defer release()

		tools, err := inv.Describe(cmd.Context())
		if err != nil {
			return err
		}
		if cfg.JSONMode {
			return writeCatalogJSON(cmd.OutOrStdout(), tools)
		}
		renderCatalog(cmd.OutOrStdout(), tools)
		return nil
	},
}

func init() {
	describeCmd.Flags().Bool("remote", false, "fetch the catalog from the MCP server binary")
	rootCmd.AddCommand(describeCmd)
}

func writeCatalogJSON(out io.Writer, tools []timetools.Definition) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"tools": tools})
}

// renderCatalog prints each tool with its arguments in a styled block.
func renderCatalog(out io.Writer, tools []timetools.Definition) {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	descStyle := lipgloss.NewStyle().PaddingLeft(2)
	argStyle := lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("244"))

	for i, def := range tools {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, nameStyle.Render(def.Name))
		fmt.Fprintln(out, descStyle.Render(def.Description))
		lines := argumentLines(def)
		if len(lines) == 0 {
			fmt.Fprintln(out, argStyle.Render("(no arguments)"))
			continue
		}
		for _, line := range lines {
			fmt.Fprintln(out, argStyle.Render(line))
		}
	}
}

// argumentLines lists "name (type, required): description" for each property.
func argumentLines(def timetools.Definition) []string {
	props, _ := def.InputSchema["properties"].(map[string]any)
	required := map[string]bool{}
	switch req := def.InputSchema["required"].(type) {
	case []string:
		for _, r := range req {
			required[r] = true
		}
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		prop, _ := props[name].(map[string]any)
		typ, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		attrs := []string{typ}
		if required[name] {
			attrs = append(attrs, "required")
		}
		line := fmt.Sprintf("%s (%s)", name, strings.Join(attrs, ", "))
		if desc != "" {
			line += ": " + desc
		}
		lines = append(lines, line)
	}
	return lines
}
