package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adalundhe/dsassist/core/detect"
)

const (
	// DefaultCacheSize is how many files' last results a Session remembers.
	DefaultCacheSize = 1024

	// MaxFileSize is the largest file a Session will analyse.
	MaxFileSize = 1 << 20
)

// Session runs detection on changed files and reports only when a file's
// detected patterns differ from the last report for that file.
type Session struct {
	id        string
	detector  *detect.Detector
	last      *lru.Cache[string, []string]
	cacheSize int
	logger    *slog.Logger
	now       func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCacheSize sets how many files' results are remembered.
func WithCacheSize(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session that analyses files with detector.
func NewSession(detector *detect.Detector, opts ...SessionOption) (*Session, error) {
	s := &Session{
		id:        uuid.NewString(),
		detector:  detector,
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	last, err := lru.New[string, []string](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	s.last = last
	s.logger = s.logger.With("session", s.id)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Handle analyses the file behind ev. It returns a report and true when
// the detected patterns changed since the last call for the same path.
func (s *Session) Handle(ev *FileEvent) (Report, bool) {
	if ev.Operation.removesFile() {
		s.last.Remove(ev.Path)
		return Report{}, false
	}

	text, err := readSource(ev.Path)
	if err != nil {
		s.logger.Warn("skipping file", "path", ev.Path, "error", err)
		return Report{}, false
	}

	ids := s.detector.Detect(text)
	prev, _ := s.last.Get(ev.Path)
	s.last.Add(ev.Path, ids)

	if slices.Equal(prev, ids) {
		return Report{}, false
	}

	report := Report{
		ID:       uuid.NewString(),
		Path:     ev.Path,
		Patterns: ids,
		Time:     s.now(),
	}
	s.logger.Info("patterns changed", "path", ev.Path, "patterns", ids)
	return report, true
}

func readSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s is larger than %d bytes", path, MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Run handles events until ctx is done or events is closed. The returned
// channel is closed when Run exits.
func (s *Session) Run(ctx context.Context, events <-chan *FileEvent) <-chan Report {
	out := make(chan Report, eventBuffer)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				report, changed := s.Handle(ev)
				if !changed {
					continue
				}
				select {
				case out <- report:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
