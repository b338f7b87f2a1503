// internal/catalog/models.go
package catalog

import (
	"context"

	"availability-api/internal/inventory/fetcher"
	"availability-api/internal/models"
	"availability-api/internal/websearch"
)

// Snapshot is one normalized view of the inventory. Degraded is set when the
// upstream fetch failed and Products is empty for that reason.
type Snapshot struct {
	Products []models.NormalizedProduct `json:"products"`
	Degraded bool                       `json:"degraded"`
	Cause    string                     `json:"cause,omitempty"`
}

// Combined pairs inventory matches with storefront listings for one query.
type Combined struct {
	Query    string
	Products Snapshot
	Web      websearch.Outcome
}

// InventorySource is satisfied by *fetcher.Fetcher.
type InventorySource interface {
	Fetch(ctx context.Context) fetcher.Result
}

// Matcher is satisfied by *matcher.Matcher.
type Matcher interface {
	Match(query string, products []models.NormalizedProduct) []models.NormalizedProduct
}
