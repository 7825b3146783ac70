package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adalundhe/dsassist/core/templates"
)

var (
	renderIndent     string
	renderIndentFrom string
)

var renderCmd = &cobra.Command{
	Use:   "render <template-id>",
	Short: "Print a template's code",
	Long: `Render prints a template's code with every non-blank line prefixed
by the given indentation.

Examples:
  dsassist render bfs
  dsassist render two-sum --indent "        "
  dsassist render dfs --indent-from "    if (root == null) {"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderIndent, "indent", "i", "", "Prefix for every non-blank line")
	renderCmd.Flags().StringVar(&renderIndentFrom, "indent-from", "", "Use the leading whitespace of this line as the indent")
}

func runRender(cmd *cobra.Command, args []string) error {
	indent := renderIndent
	if renderIndentFrom != "" {
		indent = templates.IndentOf(renderIndentFrom)
	}

	body, err := current.catalog.Render(args[0], indent)
	if err != nil {
		return err
	}

	current.logger.Debug("template rendered", "id", args[0], "indent_len", len(indent))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
	return err
}
