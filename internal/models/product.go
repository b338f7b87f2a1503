// internal/models/product.go
package models

import (
	"bytes"
	"encoding/json"
)

// Text is a string field from the upstream payload. Present is false when the
// key was missing, null, or held something other than a JSON string.
type Text struct {
	Value   string
	Present bool
}

func NewText(v string) Text { return Text{Value: v, Present: true} }

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text{Value: s, Present: true}
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// Number is a numeric field from the upstream payload. Only JSON numbers are
// accepted; strings, booleans and nulls leave Present false.
type Number struct {
	Value   float64
	Present bool
}

func NewNumber(v float64) Number { return Number{Value: v, Present: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil && !bytes.Equal(b, []byte("null")) {
		*n = Number{Value: f, Present: true}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// RawRecord is one entry of the upstream "listado" array. No field is
// guaranteed; the eligibility filter treats absent fields as a non-match.
type RawRecord struct {
	Code      Text   `json:"CODIGO"`
	Price     Number `json:"Precio"`
	Color     Text   `json:"COLOR"`
	Status    Text   `json:"ESTADO"`
	Warehouse Text   `json:"BODEGA"`
	Name      Text   `json:"NOMBRE"`
	Stock     Number `json:"SALDO"`
}

// Complete reports whether every field needed by the filter is present.
func (r RawRecord) Complete() bool {
	return r.Code.Present && r.Price.Present && r.Color.Present &&
		r.Status.Present && r.Warehouse.Present && r.Name.Present && r.Stock.Present
}

// NormalizedProduct is the canonical product returned by the API.
type NormalizedProduct struct {
	Code      string  `json:"codigo"`
	Price     float64 `json:"precio"`
	Color     string  `json:"color"`
	Status    string  `json:"estado"`
	Name      string  `json:"nombre"`
	Warehouse string  `json:"bodega"`
}

// SearchCandidate is a storefront listing found for a free-text query.
type SearchCandidate struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
