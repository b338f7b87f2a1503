// internal/websearch/models.go
package websearch

import (
	"context"

	"availability-api/internal/models"
)

// Outcome is the result of one storefront lookup. On failure Candidates is
// empty and Error describes what went wrong.
type Outcome struct {
	Candidates []models.SearchCandidate
	SourceURL  string
	Error      string
}

func (o Outcome) Failed() bool { return o.Error != "" }

// Searcher resolves a free-text query to storefront listings.
type Searcher interface {
	Search(ctx context.Context, query string) Outcome
}
