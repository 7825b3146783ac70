// Package watch re-runs pattern detection as source files change. A Watcher
// turns fsnotify events into debounced per-file events; a Session turns
// those into detection reports, dropping results that did not change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// =============================================================================
// Constants
// =============================================================================

// DefaultDebounce is how long a file must stay quiet before it is analysed.
const DefaultDebounce = 500 * time.Millisecond

// eventBuffer is the capacity of the watcher's output channel.
const eventBuffer = 64

var (
	// DefaultIncludePatterns are the source files analysed by default.
	DefaultIncludePatterns = []string{"*.java", "*.py", "*.js", "*.ts", "*.cpp", "*.c"}

	// DefaultExcludePatterns are skipped directories.
	DefaultExcludePatterns = []string{".git", "node_modules"}
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrNoPathsConfigured indicates no watch paths were specified.
	ErrNoPathsConfigured = errors.New("no paths configured for watching")

	// ErrPathNotExist indicates a watch path does not exist.
	ErrPathNotExist = errors.New("watch path does not exist")

	// ErrPathNotDirectory indicates a watch path is not a directory.
	ErrPathNotDirectory = errors.New("watch path is not a directory")

	// ErrInvalidPattern indicates an include or exclude pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// =============================================================================
// Config
// =============================================================================

// Config configures a Watcher.
type Config struct {
	// Paths are the directories to watch recursively.
	Paths []string

	// IncludePatterns are glob patterns a file's base name must match to be
	// reported. Empty means every file.
	IncludePatterns []string

	// ExcludePatterns are glob patterns for paths to ignore.
	ExcludePatterns []string

	// Debounce is the quiet interval before a file's event is emitted.
	Debounce time.Duration
}

// DefaultConfig returns the default configuration for one root directory.
func DefaultConfig(root string) Config {
	return Config{
		Paths:           []string{root},
		IncludePatterns: append([]string(nil), DefaultIncludePatterns...),
		ExcludePatterns: append([]string(nil), DefaultExcludePatterns...),
		Debounce:        DefaultDebounce,
	}
}

type pendingEvent struct {
	event *FileEvent
	timer *time.Timer
}

// =============================================================================
// Watcher
// =============================================================================

// Watcher monitors source files using fsnotify.
type Watcher struct {
	config   Config
	watcher  *fsnotify.Watcher
	includes []glob.Glob
	excludes []glob.Glob

	mu       sync.Mutex
	pending  map[string]*pendingEvent
	eventCh  chan *FileEvent
	stopOnce sync.Once
	stopped  bool
}

// NewWatcher validates cfg and creates a watcher. Nothing is watched until
// Start is called.
func NewWatcher(cfg Config) (*Watcher, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	includes, err := compilePatterns(cfg.IncludePatterns)
	if err != nil {
		return nil, err
	}
	excludes, err := compilePatterns(cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:   cfg,
		watcher:  fw,
		includes: includes,
		excludes: excludes,
		pending:  make(map[string]*pendingEvent),
	}, nil
}

func validateConfig(cfg *Config) error {
	if len(cfg.Paths) == 0 {
		return ErrNoPathsConfigured
	}
	for _, path := range cfg.Paths {
		if err := validatePath(path); err != nil {
			return err
		}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return nil
}

func validatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return ErrPathNotDirectory
	}
	return nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// =============================================================================
// Start
// =============================================================================

// Start begins watching. The returned channel is closed when ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) (<-chan *FileEvent, error) {
	w.eventCh = make(chan *FileEvent, eventBuffer)

	for _, path := range w.config.Paths {
		if err := w.addDirectoryRecursive(path); err != nil {
			close(w.eventCh)
			return nil, err
		}
	}

	go w.processEvents(ctx)

	return w.eventCh, nil
}

func (w *Watcher) addDirectoryRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.isExcluded(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// =============================================================================
// Event Processing
// =============================================================================

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.cleanup()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if w.isExcluded(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) && w.handleNewDirectory(event.Name) {
		return
	}

	if !w.isIncluded(event.Name) {
		return
	}

	w.scheduleEvent(event.Name, mapFSNotifyOperation(event.Op))
}

// handleNewDirectory starts watching path if it is a directory and reports
// whether it was one.
func (w *Watcher) handleNewDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	_ = w.addDirectoryRecursive(path)
	return true
}

// fsOpMappings maps fsnotify operations to FileOperation; first match wins.
var fsOpMappings = []struct {
	fsOp   fsnotify.Op
	fileOp FileOperation
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpModify},
	{fsnotify.Remove, OpDelete},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpModify},
}

func mapFSNotifyOperation(op fsnotify.Op) FileOperation {
	for _, m := range fsOpMappings {
		if op.Has(m.fsOp) {
			return m.fileOp
		}
	}
	return OpModify
}

// =============================================================================
// Debouncing
// =============================================================================

// scheduleEvent (re)arms the debounce timer for path; only the last event in
// a burst is emitted.
func (w *Watcher) scheduleEvent(path string, op FileOperation) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	event := &FileEvent{
		Path:      path,
		Operation: op,
		Time:      time.Now(),
	}

	if existing, ok := w.pending[path]; ok {
		existing.timer.Stop()
		existing.event = event
		existing.timer = w.createDebounceTimer(path, event)
		return
	}

	w.pending[path] = &pendingEvent{
		event: event,
		timer: w.createDebounceTimer(path, event),
	}
}

func (w *Watcher) createDebounceTimer(path string, event *FileEvent) *time.Timer {
	return time.AfterFunc(w.config.Debounce, func() {
		w.emitEvent(path, event)
	})
}

func (w *Watcher) emitEvent(path string, event *FileEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	if p, ok := w.pending[path]; !ok || p.event != event {
		return // superseded by a newer event
	}
	delete(w.pending, path)

	select {
	case w.eventCh <- event:
	default:
		// Consumer is behind; the next change to this path re-arms it.
	}
}

// =============================================================================
// Filtering
// =============================================================================

func (w *Watcher) isIncluded(path string) bool {
	if len(w.includes) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, pattern := range w.includes {
		if pattern.Match(base) {
			return true
		}
	}
	return false
}

func (w *Watcher) isExcluded(path string) bool {
	for _, pattern := range w.excludes {
		if matchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks the full path, each path component, and every path
// suffix, so "node_modules" also excludes files below it.
func matchesPattern(path string, pattern glob.Glob) bool {
	if pattern.Match(path) {
		return true
	}
	parts := splitPath(path)
	for i, part := range parts {
		if pattern.Match(part) || pattern.Match(filepath.Join(parts[i:]...)) {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	for path != "" && path != "/" && path != "." {
		dir, file := filepath.Split(path)
		if file != "" {
			parts = append([]string{file}, parts...)
		}
		path = filepath.Clean(dir)
	}
	return parts
}

// =============================================================================
// Stop
// =============================================================================

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		for _, p := range w.pending {
			p.timer.Stop()
		}
		w.pending = make(map[string]*pendingEvent)
		w.mu.Unlock()

		err = w.watcher.Close()
	})
	return err
}

// cleanup closes the event channel when processing stops.
func (w *Watcher) cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.stopped {
		w.stopped = true
		for _, p := range w.pending {
			p.timer.Stop()
		}
		w.pending = make(map[string]*pendingEvent)
	}

	close(w.eventCh)
}
