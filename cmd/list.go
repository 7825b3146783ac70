package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adalundhe/dsassist/core/templates"
)

var (
	listCategory string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog templates",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCategory, "category", "", "Only list templates in this category")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output templates as JSON")
}

// templateOutput is the JSON output for one template.
type templateOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Complexity  string   `json:"complexity,omitempty"`
	Keywords    []string `json:"keywords"`
}

func runList(cmd *cobra.Command, _ []string) error {
	all := current.catalog.All()
	if listCategory != "" {
		all = current.catalog.ByCategory(listCategory)
	}

	out := cmd.OutOrStdout()
	if listJSON {
		return outputListJSON(out, all)
	}

	p := paletteFor(out)
	if len(all) == 0 {
		fmt.Fprintf(out, "%sNo templates found.%s\n", p.yellow, p.reset)
		return nil
	}
	for _, t := range all {
		fmt.Fprintf(out, "%s%-20s%s %s\n", p.bold, t.ID, p.reset, t.Name)
		fmt.Fprintf(out, "   %s%s%s\n", p.gray, t.Description, p.reset)
	}
	return nil
}

func outputListJSON(w io.Writer, all []templates.Template) error {
	out := make([]templateOutput, 0, len(all))
	for _, t := range all {
		out = append(out, templateOutput{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			Complexity:  t.Complexity,
			Keywords:    t.Keywords,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
