// internal/inventory/filter/filter.go
package filter

import (
	"strings"

	"availability-api/internal/common/metrics"
	"availability-api/internal/inventory/codes"
	"availability-api/internal/models"
)

// Reason names why a raw record was left out of the available set.
type Reason string

const (
	ReasonMalformed Reason = "malformed"
	ReasonWarehouse Reason = "warehouse"
	ReasonStock     Reason = "stock"
	ReasonColor     Reason = "color"
	ReasonStatus    Reason = "status"
	ReasonPrice     Reason = "price"
	ReasonDuplicate Reason = "duplicate"
)

const unavailableColor = "N/A"

// Report summarizes one filtering pass.
type Report struct {
	Input    int
	Accepted int
	Rejected map[Reason]int
}

// Fields flattens the report for structured logging.
func (r Report) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"input":    r.Input,
		"accepted": r.Accepted,
	}
	for reason, n := range r.Rejected {
		fields["rejected_"+string(reason)] = n
	}
	return fields
}

// FilterAndNormalize keeps the eligible records, converts them to display
// form and drops repeated codes. The result is never nil.
func FilterAndNormalize(records []models.RawRecord) []models.NormalizedProduct {
	products, _ := Apply(records)
	return products
}

// Apply is FilterAndNormalize plus a per-reason account of what was dropped.
// The first record carrying a given code wins; output keeps input order.
func Apply(records []models.RawRecord) ([]models.NormalizedProduct, Report) {
	report := Report{Input: len(records), Rejected: make(map[Reason]int)}
	products := make([]models.NormalizedProduct, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		product, reason, ok := normalize(rec)
		if ok {
			if _, dup := seen[product.Code]; dup {
				reason, ok = ReasonDuplicate, false
			}
		}
		if !ok {
			report.Rejected[reason]++
			metrics.FilterRejections.WithLabelValues(string(reason)).Inc()
			continue
		}
		seen[product.Code] = struct{}{}
		products = append(products, product)
	}

	report.Accepted = len(products)
	return products, report
}

// Eligible reports whether a single record passes every inclusion rule,
// ignoring duplicates.
func Eligible(rec models.RawRecord) bool {
	_, _, ok := normalize(rec)
	return ok
}

func normalize(rec models.RawRecord) (models.NormalizedProduct, Reason, bool) {
	if !rec.Complete() {
		return models.NormalizedProduct{}, ReasonMalformed, false
	}

	warehouse := codes.ParseWarehouse(rec.Warehouse.Value)
	if !warehouse.Mapped() {
		return models.NormalizedProduct{}, ReasonWarehouse, false
	}
	if rec.Stock.Value != 1 {
		return models.NormalizedProduct{}, ReasonStock, false
	}
	if strings.ToUpper(rec.Color.Value) == unavailableColor {
		return models.NormalizedProduct{}, ReasonColor, false
	}
	// eligibility compares the uppercased code as sent; only the label lookup trims
	status := codes.ParseStatus(rec.Status.Value)
	if !status.Mapped() || strings.ToUpper(rec.Status.Value) != status.Code() {
		return models.NormalizedProduct{}, ReasonStatus, false
	}
	if rec.Price.Value == 0 {
		return models.NormalizedProduct{}, ReasonPrice, false
	}

	return models.NormalizedProduct{
		Code:      rec.Code.Value,
		Price:     rec.Price.Value,
		Color:     rec.Color.Value,
		Status:    status.Label(),
		Name:      rec.Name.Value,
		Warehouse: warehouse.Label(),
	}, "", true
}
