package browse

import (
	"github.com/sahilm/fuzzy"

	"github.com/adalundhe/dsassist/core/templates"
)

// templateSource adapts catalog templates to fuzzy.Source, matching on
// "id name".
type templateSource []templates.Template

func (s templateSource) Len() int {
	return len(s)
}

func (s templateSource) String(i int) string {
	return s[i].ID + " " + s[i].Name
}

// Fuzzy matches pattern against template ids and names, best match first.
// An empty pattern returns every template in catalog order. limit <= 0
// means no limit.
func Fuzzy(catalog *templates.Catalog, pattern string, limit int) []Hit {
	all := catalog.All()

	if pattern == "" {
		return truncate(toHitsInOrder(all), limit)
	}

	matches := fuzzy.FindFrom(pattern, templateSource(all))
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		t := all[m.Index]
		hits = append(hits, Hit{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Score:       float64(m.Score),
		})
	}
	return truncate(hits, limit)
}

func toHitsInOrder(all []templates.Template) []Hit {
	hits := make([]Hit, len(all))
	for i, t := range all {
		hits[i] = Hit{ID: t.ID, Name: t.Name, Description: t.Description}
	}
	return hits
}

func truncate(hits []Hit, limit int) []Hit {
	if limit > 0 && len(hits) > limit {
		return hits[:limit]
	}
	return hits
}
