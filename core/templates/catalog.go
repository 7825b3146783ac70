package templates

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrNotFound       = errors.New("template not found")
	ErrDuplicateID    = errors.New("duplicate template id")
	ErrEmptyID        = errors.New("template id is required")
	ErrNoKeywords     = errors.New("template has no keywords")
	ErrInvalidKeyword = errors.New("blank keyword")
	ErrInvalidBonus   = errors.New("invalid bonus rule")
)

// =============================================================================
// Catalog
// =============================================================================

// Catalog is an ordered set of templates keyed by id. It is filled once at
// startup and only read afterwards, but every method is safe for concurrent
// use.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]Template
	order     []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		templates: make(map[string]Template),
	}
}

// Register validates a template, lowercases its keywords and bonus terms and
// appends it to the catalog.
func (c *Catalog) Register(t Template) error {
	t = t.clone()
	if err := normalize(&t); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.templates[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}
	c.templates[t.ID] = t
	c.order = append(c.order, t.ID)
	return nil
}

func normalize(t *Template) error {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return ErrEmptyID
	}
	if len(t.Keywords) == 0 {
		return fmt.Errorf("%w: %s", ErrNoKeywords, t.ID)
	}
	for i, kw := range t.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w in %s at position %d", ErrInvalidKeyword, t.ID, i)
		}
		t.Keywords[i] = strings.ToLower(kw)
	}
	return normalizeBonus(t)
}

func normalizeBonus(t *Template) error {
	b := t.Bonus
	if b == nil {
		return nil
	}
	if b.Mode == "" {
		b.Mode = BonusAll
	}
	if b.Mode != BonusAll && b.Mode != BonusAny {
		return fmt.Errorf("%w in %s: unknown mode %q", ErrInvalidBonus, t.ID, b.Mode)
	}
	if len(b.Terms) == 0 || b.Points <= 0 {
		return fmt.Errorf("%w in %s: needs terms and positive points", ErrInvalidBonus, t.ID)
	}
	for i, term := range b.Terms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("%w in %s: blank term", ErrInvalidBonus, t.ID)
		}
		b.Terms[i] = strings.ToLower(term)
	}
	return nil
}

// Get returns a template by id.
func (c *Catalog) Get(id string) (Template, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t.clone(), nil
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.templates[id]
	return ok
}

// All returns every template in registration order.
func (c *Catalog) All() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.templates[id].clone())
	}
	return result
}

// IDs returns template ids in registration order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, len(c.order))
	copy(result, c.order)
	return result
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// ByCategory returns templates whose category matches, ignoring case.
func (c *Catalog) ByCategory(category string) []Template {
	var result []Template
	for _, t := range c.All() {
		if strings.EqualFold(t.Category, category) {
			result = append(result, t)
		}
	}
	return result
}

// Merge returns a new catalog holding base's templates followed by extra's.
// Duplicate ids fail with ErrDuplicateID.
func Merge(base, extra *Catalog) (*Catalog, error) {
	merged := NewCatalog()
	for _, src := range []*Catalog{base, extra} {
		if src == nil {
			continue
		}
		for _, t := range src.All() {
			if err := merged.Register(t); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
