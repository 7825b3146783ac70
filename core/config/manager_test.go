package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/dsassist/core/detect"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, detect.DefaultThresholds(), cfg.Thresholds())
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Contains(t, cfg.Watch.Include, "*.java")
	assert.NoError(t, cfg.Validate())
}

func TestManager_GetBeforeLoad(t *testing.T) {
	m := NewManager(Sources{})
	require.NotNil(t, m.Get())
	assert.Equal(t, DefaultConfig(), m.Get())
}

func TestManager_LayerOrder(t *testing.T) {
	dir := t.TempDir()
	userFile := filepath.Join(dir, "user", "config.yaml")
	project := filepath.Join(dir, "project")
	explicit := filepath.Join(dir, "explicit.yaml")

	writeConfig(t, userFile, `
log:
  level: debug
detector:
  min_score: 30
  max_results: 5
`)
	writeConfig(t, filepath.Join(project, ProjectFileName), `
detector:
  min_score: 40
watch:
  debounce: 2s
  include: ["*.go"]
`)
	writeConfig(t, explicit, `
detector:
  max_results: 2
`)

	m := NewManager(Sources{UserFile: userFile, ProjectDir: project, File: explicit})
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 40, cfg.Detector.MinScore)
	assert.Equal(t, 2, cfg.Detector.MaxResults)
	assert.Equal(t, 0.3, cfg.Detector.MinMatchRatio)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, []string{"*.go"}, cfg.Watch.Include)
	assert.Equal(t, []string{userFile, filepath.Join(project, ProjectFileName), explicit}, m.Loaded())
}

func TestManager_ProjectFileFoundFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src", "java")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeConfig(t, filepath.Join(root, ProjectFileName), "catalog:\n  path: patterns.yaml\n")

	m := NewManager(Sources{ProjectDir: sub})
	require.NoError(t, m.Load())

	assert.Equal(t, filepath.Join(root, "patterns.yaml"), m.Get().Catalog.Path)
}

func TestManager_MissingUserFileIsIgnored(t *testing.T) {
	m := NewManager(Sources{UserFile: filepath.Join(t.TempDir(), "none.yaml")})
	require.NoError(t, m.Load())
	assert.Empty(t, m.Loaded())
}

func TestManager_MissingExplicitFileFails(t *testing.T) {
	m := NewManager(Sources{File: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, m.Load())
}

func TestManager_Environment(t *testing.T) {
	t.Setenv("DSASSIST_LOG_LEVEL", "warn")
	t.Setenv("DSASSIST_CATALOG", "/etc/dsassist/catalog.yaml")
	t.Setenv("DSASSIST_DEBOUNCE", "1s")
	t.Setenv("DSASSIST_MIN_SCORE", "50")
	t.Setenv("DSASSIST_MIN_MATCH_RATIO", "0.5")
	t.Setenv("DSASSIST_MAX_RESULTS", "1")

	m := NewManager(Sources{})
	require.NoError(t, m.Load())

	cfg := m.Get()
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	assert.Equal(t, "/etc/dsassist/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, detect.Thresholds{MinMatchRatio: 0.5, MinScore: 50, MaxResults: 1}, cfg.Thresholds())
}

func TestManager_BadEnvironmentKeepsPreviousConfig(t *testing.T) {
	t.Setenv("DSASSIST_MAX_RESULTS", "many")

	m := NewManager(Sources{})
	before := m.Get()
	assert.Error(t, m.Load())
	assert.Same(t, before, m.Get())
}

func TestManager_InvalidValuesFail(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, file, `
log:
  level: loud
detector:
  min_match_ratio: 1.5
`)

	m := NewManager(Sources{File: file})
	err := m.Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "log level")
	assert.Contains(t, err.Error(), "min_match_ratio")
}

func TestManager_MalformedYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, file, "detector: [unterminated")

	m := NewManager(Sources{File: file})
	err := m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), file)
}

func TestManager_OnChange(t *testing.T) {
	m := NewManager(Sources{})

	var got []*Config
	m.OnChange(func(c *Config) { got = append(got, c) })

	require.NoError(t, m.Load())
	require.NoError(t, m.Reload())

	require.Len(t, got, 2)
	assert.Same(t, m.Get(), got[1])
}

func TestConfig_WatcherConfig(t *testing.T) {
	cfg := DefaultConfig()
	wc := cfg.WatcherConfig("/src")

	assert.Equal(t, []string{"/src"}, wc.Paths)
	assert.Equal(t, cfg.Watch.Include, wc.IncludePatterns)
	assert.Equal(t, cfg.Watch.Debounce, wc.Debounce)

	wc.IncludePatterns[0] = "*.rs"
	assert.NotEqual(t, "*.rs", cfg.Watch.Include[0])
}
