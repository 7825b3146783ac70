// Package detect scores text against the template catalog and ranks the
// templates it most resembles. Scoring is a keyword heuristic: literal
// substring counts plus per-template bonus rules, no parsing.
package detect

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/adalundhe/dsassist/core/templates"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// PointsPerOccurrence is added for every occurrence of a keyword.
	PointsPerOccurrence = 10

	// DefaultMinMatchRatio is the share of a template's keywords that must
	// appear at least once.
	DefaultMinMatchRatio = 0.3

	// DefaultMinScore is the lowest score a candidate may have.
	DefaultMinScore = 20

	// DefaultMaxResults caps the ranked result.
	DefaultMaxResults = 3
)

// Thresholds decide which scored templates become candidates.
type Thresholds struct {
	MinMatchRatio float64
	MinScore      int
	MaxResults    int
}

// DefaultThresholds returns the stock thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMatchRatio: DefaultMinMatchRatio,
		MinScore:      DefaultMinScore,
		MaxResults:    DefaultMaxResults,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is one template's score for one analysis call.
type Result struct {
	ID             string `json:"id"`
	Score          int    `json:"score"`
	KeywordMatches int    `json:"keyword_matches"`
	TotalKeywords  int    `json:"total_keywords"`
	Bonus          int    `json:"bonus"`
	Candidate      bool   `json:"candidate"`
}

// MatchRatio is the fraction of keywords seen at least once.
func (r Result) MatchRatio() float64 {
	if r.TotalKeywords == 0 {
		return 0
	}
	return float64(r.KeywordMatches) / float64(r.TotalKeywords)
}

// =============================================================================
// Detector
// =============================================================================

// Detector ranks catalog templates for a piece of text. It keeps no state
// between calls, so one Detector may serve any number of goroutines.
type Detector struct {
	catalog    *templates.Catalog
	thresholds Thresholds
	logger     *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithThresholds overrides the candidate thresholds. Non-positive MaxResults
// and out-of-range values fall back to the defaults.
func WithThresholds(t Thresholds) Option {
	return func(d *Detector) {
		d.thresholds = sanitize(t)
	}
}

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Detector over catalog.
func New(catalog *templates.Catalog, opts ...Option) *Detector {
	d := &Detector{
		catalog:    catalog,
		thresholds: DefaultThresholds(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func sanitize(t Thresholds) Thresholds {
	def := DefaultThresholds()
	if t.MinMatchRatio < 0 || t.MinMatchRatio > 1 {
		t.MinMatchRatio = def.MinMatchRatio
	}
	if t.MinScore < 0 {
		t.MinScore = def.MinScore
	}
	if t.MaxResults <= 0 {
		t.MaxResults = def.MaxResults
	}
	return t
}

// Thresholds returns the thresholds in effect.
func (d *Detector) Thresholds() Thresholds {
	return d.thresholds
}

// Detect returns the ids of the best matching templates, highest score
// first. It never fails; text with no matches yields an empty slice.
func (d *Detector) Detect(text string) []string {
	ranked := d.Rank(text)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	return ids
}

// Rank returns the candidates sorted by descending score, catalog order on
// ties, truncated to MaxResults.
func (d *Detector) Rank(text string) []Result {
	scored := d.Score(text)

	candidates := make([]Result, 0, len(scored))
	for _, r := range scored {
		if r.Candidate {
			candidates = append(candidates, r)
		}
	}

	slices.SortStableFunc(candidates, func(a, b Result) int {
		return b.Score - a.Score
	})
	if len(candidates) > d.thresholds.MaxResults {
		candidates = candidates[:d.thresholds.MaxResults]
	}

	d.logger.Debug("patterns ranked",
		"text_len", len(text),
		"templates", len(scored),
		"candidates", len(candidates),
	)
	return candidates
}

// Score scores every template in catalog order. Candidate marks the ones
// that pass the thresholds.
func (d *Detector) Score(text string) []Result {
	lower := strings.ToLower(text)
	all := d.catalog.All()

	results := make([]Result, 0, len(all))
	for _, tmpl := range all {
		results = append(results, d.scoreTemplate(lower, tmpl))
	}
	return results
}

func (d *Detector) scoreTemplate(lower string, tmpl templates.Template) Result {
	r := Result{
		ID:            tmpl.ID,
		TotalKeywords: len(tmpl.Keywords),
	}

	for _, kw := range tmpl.Keywords {
		count := strings.Count(lower, kw)
		if count > 0 {
			r.KeywordMatches++
			r.Score += count * PointsPerOccurrence
		}
	}

	if tmpl.Bonus.Fires(lower) {
		r.Bonus = tmpl.Bonus.Points
		r.Score += r.Bonus
	}

	r.Candidate = r.MatchRatio() >= d.thresholds.MinMatchRatio && r.Score >= d.thresholds.MinScore
	return r
}
