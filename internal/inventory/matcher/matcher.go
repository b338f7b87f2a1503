// internal/inventory/matcher/matcher.go
package matcher

import (
	"strings"
	"unicode/utf8"

	"availability-api/internal/models"
)

// Matcher selects products whose name contains every significant query term.
type Matcher struct {
	maxResults int
}

func New(cfg *Config) *Matcher {
	if cfg == nil {
		cfg = &Config{MaxResults: DefaultMaxResults}
	}
	return &Matcher{maxResults: cfg.MaxResults}
}

// Terms splits a query on whitespace, lowercases it and drops one-character terms.
func Terms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

// Match returns the products whose lowercased name contains all terms of
// query, in input order. A query with no usable terms matches nothing.
func (m *Matcher) Match(query string, products []models.NormalizedProduct) []models.NormalizedProduct {
	matches := make([]models.NormalizedProduct, 0)
	terms := Terms(query)
	if len(terms) == 0 {
		return matches
	}

	for _, p := range products {
		if m.maxResults > 0 && len(matches) >= m.maxResults {
			break
		}
		if containsAll(strings.ToLower(p.Name), terms) {
			matches = append(matches, p)
		}
	}
	return matches
}

func containsAll(name string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(name, term) {
			return false
		}
	}
	return true
}
