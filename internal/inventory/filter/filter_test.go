// internal/inventory/filter/filter_test.go
package filter

import (
	"encoding/json"
	"strings"
	"testing"

	"availability-api/internal/inventory/codes"
	"availability-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func record(code string, price float64, color, status, warehouse, name string, stock float64) models.RawRecord {
	return models.RawRecord{
		Code:      models.NewText(code),
		Price:     models.NewNumber(price),
		Color:     models.NewText(color),
		Status:    models.NewText(status),
		Warehouse: models.NewText(warehouse),
		Name:      models.NewText(name),
		Stock:     models.NewNumber(stock),
	}
}

func validRecord(code string) models.RawRecord {
	return record(code, 100, "Red", "NU", "BM", "Phone "+code, 1)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestFilterAndNormalize_ConcreteRecord(t *testing.T) {
	var rec models.RawRecord
	require.NoError(t, json.Unmarshal([]byte(
		`{"CODIGO":"X1","Precio":100,"COLOR":"Red","ESTADO":"nu","BODEGA":"bm","NOMBRE":"Phone X","SALDO":1}`,
	), &rec))

	got := FilterAndNormalize([]models.RawRecord{rec})

	require.Len(t, got, 1)
	assert.Equal(t, models.NormalizedProduct{
		Code:      "X1",
		Price:     100,
		Color:     "Red",
		Status:    "Nuevo",
		Name:      "Phone X",
		Warehouse: "Medellin",
	}, got[0])
}

func TestFilterAndNormalize_EmptyInput(t *testing.T) {
	got := FilterAndNormalize([]models.RawRecord{})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = FilterAndNormalize(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		rec    models.RawRecord
		reason Reason
	}{
		{name: "zero price", rec: record("P0", 0, "Red", "NU", "BM", "Phone", 1), reason: ReasonPrice},
		{name: "unknown warehouse", rec: record("W1", 10, "Red", "NU", "XX", "Phone", 1), reason: ReasonWarehouse},
		{name: "out of stock", rec: record("S0", 10, "Red", "NU", "BM", "Phone", 0), reason: ReasonStock},
		{name: "stock above one", rec: record("S2", 10, "Red", "NU", "BM", "Phone", 2), reason: ReasonStock},
		{name: "color n/a lowercase", rec: record("C1", 10, "n/a", "NU", "BM", "Phone", 1), reason: ReasonColor},
		{name: "color N/A", rec: record("C2", 10, "N/A", "NU", "BM", "Phone", 1), reason: ReasonColor},
		{name: "unknown status", rec: record("E1", 10, "Red", "NEW", "BM", "Phone", 1), reason: ReasonStatus},
		{name: "whitespace padded status", rec: record("E2", 10, "Red", " nu", "BM", "Phone", 1), reason: ReasonStatus},
		{name: "trailing space status", rec: record("E3", 10, "Red", "AA ", "BM", "Phone", 1), reason: ReasonStatus},
		{name: "missing fields", rec: models.RawRecord{Code: models.NewText("M1")}, reason: ReasonMalformed},
		{name: "empty record", rec: models.RawRecord{}, reason: ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, report := Apply([]models.RawRecord{tt.rec})

			assert.Empty(t, got)
			assert.Equal(t, 1, report.Input)
			assert.Equal(t, 0, report.Accepted)
			assert.Equal(t, 1, report.Rejected[tt.reason])
			assert.False(t, Eligible(tt.rec))
		})
	}
}

func TestApply_AcceptsEveryMappedCode(t *testing.T) {
	var records []models.RawRecord
	for _, w := range codes.AllWarehouses() {
		for _, s := range codes.AllStatuses() {
			records = append(records, record(w.Code()+s.Code(), 5, "Black", strings.ToLower(s.Code()), w.Code(), "Item", 1))
		}
	}

	got, report := Apply(records)

	assert.Len(t, got, len(codes.AllWarehouses())*len(codes.AllStatuses()))
	assert.Empty(t, report.Rejected)
}

func TestApply_NegativePriceIsKept(t *testing.T) {
	got := FilterAndNormalize([]models.RawRecord{record("N1", -5, "Red", "C", "TB", "Refund", 1)})

	require.Len(t, got, 1)
	assert.Equal(t, "Gangazo", got[0].Status)
	assert.Equal(t, "Tienda Bogota", got[0].Warehouse)
}

// ==========================
// Deduplication Tests
// ==========================

func TestApply_DuplicateCodesFirstWins(t *testing.T) {
	first := record("D1", 100, "Red", "NU", "BM", "First", 1)
	second := record("D1", 200, "Blue", "A", "BB", "Second", 1)
	other := validRecord("D2")

	got, report := Apply([]models.RawRecord{first, other, second})

	require.Len(t, got, 2)
	assert.Equal(t, "D1", got[0].Code)
	assert.Equal(t, "First", got[0].Name)
	assert.Equal(t, 100.0, got[0].Price)
	assert.Equal(t, "D2", got[1].Code)
	assert.Equal(t, 1, report.Rejected[ReasonDuplicate])
}

func TestApply_IneligibleDuplicateDoesNotShadow(t *testing.T) {
	ineligible := record("D1", 0, "Red", "NU", "BM", "Free", 1)
	eligible := record("D1", 50, "Red", "NU", "BM", "Paid", 1)

	got := FilterAndNormalize([]models.RawRecord{ineligible, eligible})

	require.Len(t, got, 1)
	assert.Equal(t, "Paid", got[0].Name)
}

func TestApply_PreservesOrderAndSkipsMalformed(t *testing.T) {
	records := []models.RawRecord{
		validRecord("A"),
		{},
		validRecord("B"),
		record("C", 10, "Red", "NU", "ZZ", "Nope", 1),
		validRecord("D"),
	}

	got := FilterAndNormalize(records)

	codesOut := make([]string, 0, len(got))
	for _, p := range got {
		codesOut = append(codesOut, p.Code)
	}
	assert.Equal(t, []string{"A", "B", "D"}, codesOut)
}

// ==========================
// Property Tests
// ==========================

func TestFilterAndNormalize_Idempotent(t *testing.T) {
	statusCode := map[string]string{}
	for _, s := range codes.AllStatuses() {
		statusCode[s.Label()] = s.Code()
	}
	warehouseCode := map[string]string{}
	for _, w := range codes.AllWarehouses() {
		warehouseCode[w.Label()] = w.Code()
	}

	input := []models.RawRecord{
		validRecord("A"),
		record("B", 12.5, "Blue", "aa", "tm", "Tablet", 1),
		record("A", 1, "Red", "NU", "BM", "Dup", 1),
		record("C", 0, "Red", "NU", "BM", "Zero", 1),
		record("E", 3, "Green", "b", "BB", "Watch", 1),
	}
	first := FilterAndNormalize(input)

	rebuilt := make([]models.RawRecord, 0, len(first))
	for _, p := range first {
		rebuilt = append(rebuilt, record(p.Code, p.Price, p.Color, statusCode[p.Status], warehouseCode[p.Warehouse], p.Name, 1))
	}
	second := FilterAndNormalize(rebuilt)

	assert.Equal(t, first, second)
}

func TestReport_Fields(t *testing.T) {
	_, report := Apply([]models.RawRecord{validRecord("A"), validRecord("A"), {}})

	fields := report.Fields()
	assert.Equal(t, 3, fields["input"])
	assert.Equal(t, 1, fields["accepted"])
	assert.Equal(t, 1, fields["rejected_duplicate"])
	assert.Equal(t, 1, fields["rejected_malformed"])
}
