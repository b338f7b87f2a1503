// internal/inventory/matcher/matcher_test.go
package matcher

import (
	"fmt"
	"testing"

	"availability-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(code, name string) models.NormalizedProduct {
	return models.NormalizedProduct{Code: code, Name: name, Price: 1, Status: "Nuevo", Warehouse: "Medellin"}
}

func names(products []models.NormalizedProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestMatch_AllTermsRequired(t *testing.T) {
	m := New(&Config{MaxResults: DefaultMaxResults})
	products := []models.NormalizedProduct{
		product("1", "iPhone 13 Pro"),
		product("2", "Samsung A13"),
	}

	got := m.Match("iphone 13", products)

	assert.Equal(t, []string{"iPhone 13 Pro"}, names(got))
}

func TestMatch_SingleCharacterTermsIgnored(t *testing.T) {
	m := New(&Config{MaxResults: DefaultMaxResults})
	products := []models.NormalizedProduct{
		product("1", "iPhone 13 Pro"),
		product("2", "Samsung A13"),
		product("3", "Moto G8"),
	}

	assert.Equal(t, m.Match("13", products), m.Match("a 13", products))
	assert.Equal(t, []string{"iPhone 13 Pro", "Samsung A13"}, names(m.Match("a 13", products)))
}

func TestMatch_NoUsableTerms(t *testing.T) {
	m := New(nil)
	products := []models.NormalizedProduct{product("1", "a b c")}

	tests := []string{"", "   ", "a", "a b c", "\t x \n"}
	for _, q := range tests {
		t.Run(fmt.Sprintf("%q", q), func(t *testing.T) {
			got := m.Match(q, products)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestMatch_CaseInsensitive(t *testing.T) {
	m := New(nil)
	got := m.Match("GALAXY s21", []models.NormalizedProduct{product("1", "Samsung Galaxy S21 Ultra")})
	require.Len(t, got, 1)
}

func TestMatch_CapPreservesOrder(t *testing.T) {
	products := make([]models.NormalizedProduct, 0, 15)
	for i := 0; i < 15; i++ {
		products = append(products, product(fmt.Sprint(i), fmt.Sprintf("Phone %02d", i)))
	}

	got := New(&Config{MaxResults: 10}).Match("phone", products)
	require.Len(t, got, 10)
	for i, p := range got {
		assert.Equal(t, fmt.Sprint(i), p.Code)
	}

	assert.Len(t, New(&Config{MaxResults: 0}).Match("phone", products), 15)
	assert.Len(t, New(&Config{MaxResults: -1}).Match("phone", products), 15)
}

func TestMatch_NothingMatches(t *testing.T) {
	got := New(nil).Match("pixel", []models.NormalizedProduct{product("1", "iPhone 13")})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"iphone", "13"}, Terms("  iPhone   13 "))
	assert.Equal(t, []string{"ñu"}, Terms("ñ ñu"))
	assert.Empty(t, Terms("a b"))
}
