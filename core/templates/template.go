// Package templates holds the algorithm template catalog: named snippets with
// the keywords and bonus rules the detector scores them by.
package templates

import (
	"slices"
	"strings"
)

// =============================================================================
// Template
// =============================================================================

// Template is an insertable algorithm snippet plus the data used to detect it.
// Values handed out by a Catalog are copies; mutating them has no effect on
// the catalog.
type Template struct {
	// Identity
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// Display metadata
	Category   string `json:"category,omitempty"`
	Complexity string `json:"complexity,omitempty"`

	// Body is inserted verbatim apart from indentation.
	Body string `json:"body"`

	// Detection data. Keywords are lowercase once registered.
	Keywords []string   `json:"keywords"`
	Bonus    *BonusRule `json:"bonus,omitempty"`
}

// BonusMode selects how a BonusRule's terms combine.
type BonusMode string

const (
	// BonusAll fires when every term is present.
	BonusAll BonusMode = "all"

	// BonusAny fires when at least one term is present.
	BonusAny BonusMode = "any"
)

// BonusRule adds Points to a template's score when its terms appear in the
// analysed text.
type BonusRule struct {
	Mode   BonusMode `json:"mode"`
	Terms  []string  `json:"terms"`
	Points int       `json:"points"`
}

// Fires reports whether the rule applies to already-lowercased text.
func (b *BonusRule) Fires(lower string) bool {
	if b == nil || len(b.Terms) == 0 {
		return false
	}
	switch b.Mode {
	case BonusAny:
		return slices.ContainsFunc(b.Terms, func(term string) bool {
			return strings.Contains(lower, term)
		})
	default:
		for _, term := range b.Terms {
			if !strings.Contains(lower, term) {
				return false
			}
		}
		return true
	}
}

func (b *BonusRule) clone() *BonusRule {
	if b == nil {
		return nil
	}
	return &BonusRule{
		Mode:   b.Mode,
		Terms:  slices.Clone(b.Terms),
		Points: b.Points,
	}
}

func (t Template) clone() Template {
	t.Keywords = slices.Clone(t.Keywords)
	t.Bonus = t.Bonus.clone()
	return t
}

// =============================================================================
// Template Builder (Fluent API)
// =============================================================================

// Builder provides a fluent API for building templates
type Builder struct {
	tmpl Template
}

// New starts a template with the given id.
func New(id string) *Builder {
	return &Builder{tmpl: Template{ID: id}}
}

// Name sets the display name
func (b *Builder) Name(name string) *Builder {
	b.tmpl.Name = name
	return b
}

// Description sets the one-line summary
func (b *Builder) Description(desc string) *Builder {
	b.tmpl.Description = desc
	return b
}

// Category sets the browsing category
func (b *Builder) Category(category string) *Builder {
	b.tmpl.Category = category
	return b
}

// Complexity sets the display-only complexity note
func (b *Builder) Complexity(complexity string) *Builder {
	b.tmpl.Complexity = complexity
	return b
}

// Keywords sets detection keywords
func (b *Builder) Keywords(keywords ...string) *Builder {
	b.tmpl.Keywords = keywords
	return b
}

// BonusAll adds points when every term is present
func (b *Builder) BonusAll(points int, terms ...string) *Builder {
	b.tmpl.Bonus = &BonusRule{Mode: BonusAll, Terms: terms, Points: points}
	return b
}

// BonusAny adds points when any term is present
func (b *Builder) BonusAny(points int, terms ...string) *Builder {
	b.tmpl.Bonus = &BonusRule{Mode: BonusAny, Terms: terms, Points: points}
	return b
}

// Body sets the snippet text
func (b *Builder) Body(body string) *Builder {
	b.tmpl.Body = body
	return b
}

// Build returns the constructed template
func (b *Builder) Build() Template {
	return b.tmpl.clone()
}
