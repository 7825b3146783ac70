package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adalundhe/dsassist/core/watch"
)

var watchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Re-detect patterns as source files change",
	Long: `Watch monitors directories (the working directory by default) and
prints the detected patterns for a file whenever they change.

Examples:
  dsassist watch
  dsassist watch src/ --json`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print one JSON report per line")
}

func runWatch(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		paths = []string{wd}
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewWatcher(current.config.WatcherConfig(paths...))
	if err != nil {
		return err
	}
	defer w.Stop()

	session, err := watch.NewSession(current.detector(),
		watch.WithCacheSize(current.config.Watch.CacheSize),
		watch.WithLogger(current.logger),
	)
	if err != nil {
		return err
	}

	events, err := w.Start(ctx)
	if err != nil {
		return err
	}
	current.logger.Info("watching", "paths", paths, "session", session.ID())

	out := cmd.OutOrStdout()
	for report := range session.Run(ctx, events) {
		if err := outputReport(out, report); err != nil {
			return err
		}
	}
	return nil
}

func outputReport(w io.Writer, r watch.Report) error {
	if watchJSON {
		return json.NewEncoder(w).Encode(r)
	}

	p := paletteFor(w)
	patterns := p.yellow + "no patterns" + p.reset
	if len(r.Patterns) > 0 {
		patterns = p.green + strings.Join(r.Patterns, ", ") + p.reset
	}
	_, err := fmt.Fprintf(w, "%s%s%s %s%s%s  %s\n",
		p.gray, r.Time.Format("15:04:05"), p.reset,
		p.bold, r.Path, p.reset,
		patterns)
	return err
}
