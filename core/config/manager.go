// Package config loads dsassist settings from layered YAML files and the
// environment. Later layers override earlier ones: defaults, the user file,
// the nearest project file, an explicit file, then DSASSIST_* variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/dsassist/core/detect"
	"github.com/adalundhe/dsassist/core/watch"
)

const (
	// ProjectFileName is searched for from the working directory upward.
	ProjectFileName = ".dsassist.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DSASSIST_"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Detector DetectorConfig `yaml:"detector"`
	Watch    WatchConfig    `yaml:"watch"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type CatalogConfig struct {
	// Path is a YAML catalog file. Relative paths resolve against the
	// directory of the config file that set them.
	Path string `yaml:"path"`

	// ReplaceDefaults drops the built-in templates instead of extending them.
	ReplaceDefaults bool `yaml:"replace_defaults"`
}

type DetectorConfig struct {
	MinScore      int     `yaml:"min_score"`
	MinMatchRatio float64 `yaml:"min_match_ratio"`
	MaxResults    int     `yaml:"max_results"`
}

type WatchConfig struct {
	Debounce  time.Duration `yaml:"debounce"`
	Include   []string      `yaml:"include"`
	Exclude   []string      `yaml:"exclude"`
	CacheSize int           `yaml:"cache_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Detector: DetectorConfig{
			MinScore:      detect.DefaultMinScore,
			MinMatchRatio: detect.DefaultMinMatchRatio,
			MaxResults:    detect.DefaultMaxResults,
		},
		Watch: WatchConfig{
			Debounce:  watch.DefaultDebounce,
			Include:   append([]string(nil), watch.DefaultIncludePatterns...),
			Exclude:   append([]string(nil), watch.DefaultExcludePatterns...),
			CacheSize: watch.DefaultCacheSize,
		},
	}
}

// Thresholds converts the detector section for detect.WithThresholds.
func (c *Config) Thresholds() detect.Thresholds {
	return detect.Thresholds{
		MinMatchRatio: c.Detector.MinMatchRatio,
		MinScore:      c.Detector.MinScore,
		MaxResults:    c.Detector.MaxResults,
	}
}

// WatcherConfig builds a watcher configuration rooted at the given paths.
func (c *Config) WatcherConfig(paths ...string) watch.Config {
	return watch.Config{
		Paths:           paths,
		IncludePatterns: append([]string(nil), c.Watch.Include...),
		ExcludePatterns: append([]string(nil), c.Watch.Exclude...),
		Debounce:        c.Watch.Debounce,
	}
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return level, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Detector.MinScore < 0 {
		errs = append(errs, fmt.Errorf("%w: detector.min_score must be >= 0", ErrInvalidConfig))
	}
	if c.Detector.MinMatchRatio < 0 || c.Detector.MinMatchRatio > 1 {
		errs = append(errs, fmt.Errorf("%w: detector.min_match_ratio must be within [0, 1]", ErrInvalidConfig))
	}
	if c.Detector.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("%w: detector.max_results must be > 0", ErrInvalidConfig))
	}
	if c.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: watch.debounce must be > 0", ErrInvalidConfig))
	}
	if c.Watch.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: watch.cache_size must be > 0", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// =============================================================================
// Manager
// =============================================================================

// Sources names the files a Manager reads. Empty fields are skipped.
type Sources struct {
	// UserFile is optional; a missing file is not an error.
	UserFile string

	// ProjectDir is where the upward search for ProjectFileName starts.
	ProjectDir string

	// File is an explicit config file; it must exist.
	File string
}

// DefaultSources reads the user file under os.UserConfigDir and searches for
// a project file from the working directory.
func DefaultSources() Sources {
	var src Sources
	if dir, err := os.UserConfigDir(); err == nil {
		src.UserFile = filepath.Join(dir, "dsassist", "config.yaml")
	}
	if wd, err := os.Getwd(); err == nil {
		src.ProjectDir = wd
	}
	return src
}

type Manager struct {
	current   atomic.Pointer[Config]
	sources   Sources
	loaded    []string
	loadedMu  sync.RWMutex
	watchers  []func(*Config)
	watcherMu sync.RWMutex
}

func NewManager(sources Sources) *Manager {
	m := &Manager{sources: sources}
	m.current.Store(DefaultConfig())
	return m
}

// Get returns the current snapshot. Callers must not modify it.
func (m *Manager) Get() *Config {
	return m.current.Load()
}

// Loaded lists the files that contributed to the current snapshot.
func (m *Manager) Loaded() []string {
	m.loadedMu.RLock()
	defer m.loadedMu.RUnlock()
	return append([]string(nil), m.loaded...)
}

// Load rebuilds the configuration from all sources. On error the previous
// snapshot stays in effect.
func (m *Manager) Load() error {
	cfg := DefaultConfig()
	var loaded []string

	if m.sources.UserFile != "" {
		ok, err := loadYAMLFile(m.sources.UserFile, cfg, false)
		if err != nil {
			return fmt.Errorf("user config: %w", err)
		}
		if ok {
			loaded = append(loaded, m.sources.UserFile)
		}
	}

	if m.sources.ProjectDir != "" {
		if path, err := FindUp(m.sources.ProjectDir, ProjectFileName); err == nil {
			if _, err := loadYAMLFile(path, cfg, true); err != nil {
				return fmt.Errorf("project config: %w", err)
			}
			loaded = append(loaded, path)
		}
	}

	if m.sources.File != "" {
		if _, err := loadYAMLFile(m.sources.File, cfg, true); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		loaded = append(loaded, m.sources.File)
	}

	if err := applyEnvironment(cfg, os.Getenv); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	m.current.Store(cfg)
	m.loadedMu.Lock()
	m.loaded = loaded
	m.loadedMu.Unlock()
	m.notifyWatchers(cfg)

	return nil
}

// loadYAMLFile overlays path onto cfg and reports whether the file existed.
func loadYAMLFile(path string, cfg *Config, required bool) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	before := cfg.Catalog.Path
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if p := cfg.Catalog.Path; p != before && p != "" && !filepath.IsAbs(p) {
		cfg.Catalog.Path = filepath.Join(filepath.Dir(path), p)
	}
	return true, nil
}

func applyEnvironment(cfg *Config, getenv func(string) string) error {
	var errs []error
	env := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}

	if v := env("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := env("DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Debounce = d
		} else {
			errs = append(errs, fmt.Errorf("%sDEBOUNCE: %w", EnvPrefix, err))
		}
	}
	if v := env("MIN_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Detector.MinScore = n
		} else {
			errs = append(errs, fmt.Errorf("%sMIN_SCORE: %w", EnvPrefix, err))
		}
	}
	if v := env("MIN_MATCH_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Detector.MinMatchRatio = f
		} else {
			errs = append(errs, fmt.Errorf("%sMIN_MATCH_RATIO: %w", EnvPrefix, err))
		}
	}
	if v := env("MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Detector.MaxResults = n
		} else {
			errs = append(errs, fmt.Errorf("%sMAX_RESULTS: %w", EnvPrefix, err))
		}
	}
	return errors.Join(errs...)
}

// OnChange registers fn to run after every successful Load.
func (m *Manager) OnChange(fn func(*Config)) {
	m.watcherMu.Lock()
	m.watchers = append(m.watchers, fn)
	m.watcherMu.Unlock()
}

func (m *Manager) notifyWatchers(cfg *Config) {
	m.watcherMu.RLock()
	watchers := m.watchers
	m.watcherMu.RUnlock()

	for _, fn := range watchers {
		fn(cfg)
	}
}

func (m *Manager) Reload() error {
	return m.Load()
}
