package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adalundhe/dsassist/core/detect"
)

var (
	detectVerbose bool
	detectJSON    bool
	detectRender  bool
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Detect DSA patterns in a source file",
	Long: `Detect reads a source file (or stdin when no file or "-" is given)
and prints up to three matching templates, best first.

Examples:
  dsassist detect Solution.java
  cat solve.py | dsassist detect --json
  dsassist detect --verbose Solution.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVarP(&detectVerbose, "verbose", "v", false, "Show the score of every template")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output results as JSON")
	detectCmd.Flags().BoolVarP(&detectRender, "render", "r", false, "Print the best template's code")
}

func runDetect(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	d := current.detector()
	ranked := d.Rank(text)

	out := cmd.OutOrStdout()
	if detectJSON {
		return outputDetectJSON(out, ranked, d, text)
	}

	outputDetectText(out, ranked)
	if detectVerbose {
		outputScores(out, d.Score(text))
	}
	if detectRender && len(ranked) > 0 {
		body, err := current.catalog.Render(ranked[0].ID, "")
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, body)
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// detectOutput is the JSON output structure.
type detectOutput struct {
	Patterns []string        `json:"patterns"`
	Results  []detect.Result `json:"results"`
	Scores   []detect.Result `json:"scores,omitempty"`
}

func outputDetectJSON(w io.Writer, ranked []detect.Result, d *detect.Detector, text string) error {
	out := detectOutput{
		Patterns: make([]string, len(ranked)),
		Results:  ranked,
	}
	for i, r := range ranked {
		out.Patterns[i] = r.ID
	}
	if detectVerbose {
		out.Scores = d.Score(text)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputDetectText(w io.Writer, ranked []detect.Result) {
	p := paletteFor(w)

	if len(ranked) == 0 {
		fmt.Fprintf(w, "%sNo patterns detected.%s\n", p.yellow, p.reset)
		return
	}

	for i, r := range ranked {
		t, err := current.catalog.Get(r.ID)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s%d.%s %s%s%s  %s\n", p.yellow, i+1, p.reset, p.bold, t.ID, p.reset, t.Name)
		fmt.Fprintf(w, "   %sScore:%s %d  %sKeywords:%s %d/%d  %s%s%s\n",
			p.gray, p.reset, r.Score,
			p.gray, p.reset, r.KeywordMatches, r.TotalKeywords,
			p.gray, t.Complexity, p.reset)
	}
}

func outputScores(w io.Writer, scored []detect.Result) {
	p := paletteFor(w)

	fmt.Fprintf(w, "\n%s%sAll scores%s\n", p.bold, p.cyan, p.reset)
	for _, r := range scored {
		mark := " "
		if r.Candidate {
			mark = p.green + "*" + p.reset
		}
		fmt.Fprintf(w, " %s %-20s score=%-4d matched=%d/%d bonus=%d\n",
			mark, r.ID, r.Score, r.KeywordMatches, r.TotalKeywords, r.Bonus)
	}
}
