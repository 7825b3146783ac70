package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adalundhe/dsassist/core/browse"
)

const (
	// SearchMaxLimit is the maximum number of results.
	SearchMaxLimit = 100

	searchTimeout = 10 * time.Second
)

var (
	searchFuzzy bool
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search templates by name, description or keyword",
	Long: `Search the template catalog using full-text search, or match ids
and names fuzzily with --fuzzy.

Examples:
  dsassist search "level order"
  dsassist search --fuzzy slw
  dsassist search --json memoization | jq '.hits'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolVarP(&searchFuzzy, "fuzzy", "f", false, "Fuzzy-match template ids and names")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", browse.DefaultLimit, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	limit := normalizeLimit(searchLimit)

	var hits []browse.Hit
	if searchFuzzy {
		hits = browse.Fuzzy(current.catalog, query, limit)
	} else {
		var err error
		hits, err = fullTextSearch(cmd.Context(), query, limit)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if searchJSON {
		return outputSearchJSON(out, query, hits)
	}
	outputSearchText(out, query, hits)
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return browse.DefaultLimit
	}
	return min(limit, SearchMaxLimit)
}

func fullTextSearch(parent context.Context, query string, limit int) ([]browse.Hit, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, searchTimeout)
	defer cancel()

	idx, err := browse.NewIndex(current.catalog, browse.WithLogger(current.logger))
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	return idx.Search(ctx, query, limit)
}

// searchOutput is the JSON output structure.
type searchOutput struct {
	Query string       `json:"query"`
	Hits  []browse.Hit `json:"hits"`
}

func outputSearchJSON(w io.Writer, query string, hits []browse.Hit) error {
	if hits == nil {
		hits = []browse.Hit{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(searchOutput{Query: query, Hits: hits})
}

func outputSearchText(w io.Writer, query string, hits []browse.Hit) {
	p := paletteFor(w)

	fmt.Fprintf(w, "%s%sSearch Results%s\n", p.bold, p.cyan, p.reset)
	fmt.Fprintf(w, "%sQuery:%s %s\n\n", p.gray, p.reset, query)

	if len(hits) == 0 {
		fmt.Fprintf(w, "%sNo results found.%s\n", p.yellow, p.reset)
		return
	}

	for i, h := range hits {
		fmt.Fprintf(w, "%s%d.%s %s%s%s  %s\n", p.yellow, i+1, p.reset, p.bold, h.ID, p.reset, h.Name)
		fmt.Fprintf(w, "   %s%s%s\n", p.gray, h.Description, p.reset)
	}
}
