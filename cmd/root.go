// Package cmd provides the dsassist command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adalundhe/dsassist/core/config"
	"github.com/adalundhe/dsassist/core/detect"
	"github.com/adalundhe/dsassist/core/templates"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// =============================================================================
// Global Flags
// =============================================================================

var (
	rootConfigFile  string
	rootCatalogFile string
	rootLogLevel    string
)

// app holds what every subcommand needs, built once per invocation.
type app struct {
	config  *config.Config
	catalog *templates.Catalog
	logger  *slog.Logger
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "dsassist",
	Short: "Detect data structure and algorithm patterns in code",
	Long: `dsassist scores source code against a catalog of DSA templates
(two sum, binary search, BFS, DFS, sliding window, quick sort, dynamic
programming) and renders the matching template ready to paste.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootConfigFile, "config", "c", "", "Config file (overrides user and project config)")
	flags.StringVar(&rootCatalogFile, "catalog", "", "YAML catalog of extra templates")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}

// =============================================================================
// Setup
// =============================================================================

func setupApp(cmd *cobra.Command, _ []string) error {
	sources := config.DefaultSources()
	sources.File = rootConfigFile

	manager := config.NewManager(sources)
	if err := manager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cfg := *manager.Get()
	if rootLogLevel != "" {
		cfg.Log.Level = rootLogLevel
	}
	if rootCatalogFile != "" {
		cfg.Catalog.Path = rootCatalogFile
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if files := manager.Loaded(); len(files) > 0 {
		logger.Debug("config loaded", "files", files)
	}

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	current = &app{config: &cfg, catalog: catalog, logger: logger}
	return nil
}

func loadCatalog(cfg config.CatalogConfig) (*templates.Catalog, error) {
	if cfg.Path == "" {
		return templates.Default(), nil
	}

	extra, err := templates.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.ReplaceDefaults {
		return extra, nil
	}
	return templates.Merge(templates.Default(), extra)
}

func (a *app) detector() *detect.Detector {
	return detect.New(a.catalog,
		detect.WithThresholds(a.config.Thresholds()),
		detect.WithLogger(a.logger),
	)
}

// =============================================================================
// Output Helpers
// =============================================================================

// palette is empty when output is not a terminal.
type palette struct {
	reset, bold, green, yellow, cyan, gray string
}

func paletteFor(w io.Writer) palette {
	if !isTerminal(w) {
		return palette{}
	}
	return palette{
		reset:  colorReset,
		bold:   colorBold,
		green:  colorGreen,
		yellow: colorYellow,
		cyan:   colorCyan,
		gray:   colorGray,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
