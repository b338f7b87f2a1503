// Package codes translates upstream status and warehouse codes into display labels.
package codes

import "strings"

// Status is the condition grade of a product as reported upstream in ESTADO.
type Status int

const (
	StatusUnmapped Status = iota
	StatusNew
	StatusLikeNew
	StatusUsedGood
	StatusUsed
	StatusBargain
)

var statusByCode = map[string]Status{
	"NU": StatusNew,
	"AA": StatusLikeNew,
	"A":  StatusUsedGood,
	"B":  StatusUsed,
	"C":  StatusBargain,
}

var statusInfo = map[Status]struct{ code, label string }{
	StatusNew:      {"NU", "Nuevo"},
	StatusLikeNew:  {"AA", "Como nuevo"},
	StatusUsedGood: {"A", "Seminuevo"},
	StatusUsed:     {"B", "Usado"},
	StatusBargain:  {"C", "Gangazo"},
}

// Warehouse is the stock location reported upstream in BODEGA.
type Warehouse int

const (
	WarehouseUnmapped Warehouse = iota
	WarehouseMedellin
	WarehouseBogota
	WarehouseStoreMedellin
	WarehouseStoreBogota
)

var warehouseByCode = map[string]Warehouse{
	"BM": WarehouseMedellin,
	"BB": WarehouseBogota,
	"TM": WarehouseStoreMedellin,
	"TB": WarehouseStoreBogota,
}

var warehouseInfo = map[Warehouse]struct{ code, label string }{
	WarehouseMedellin:      {"BM", "Medellin"},
	WarehouseBogota:        {"BB", "Bogota"},
	WarehouseStoreMedellin: {"TM", "Tienda Medellin"},
	WarehouseStoreBogota:   {"TB", "Tienda Bogota"},
}

// Normalize trims surrounding whitespace and uppercases a code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ParseStatus(code string) Status {
	return statusByCode[Normalize(code)]
}

func (s Status) Mapped() bool { return s != StatusUnmapped }

// Label is the display text, empty for StatusUnmapped.
func (s Status) Label() string { return statusInfo[s].label }

// Code is the canonical upstream code, empty for StatusUnmapped.
func (s Status) Code() string { return statusInfo[s].code }

func ParseWarehouse(code string) Warehouse {
	return warehouseByCode[Normalize(code)]
}

func (w Warehouse) Mapped() bool { return w != WarehouseUnmapped }

func (w Warehouse) Label() string { return warehouseInfo[w].label }

func (w Warehouse) Code() string { return warehouseInfo[w].code }

// StatusText maps a status code to its label. Unknown codes come back
// normalized rather than failing.
func StatusText(code string) string {
	if s := ParseStatus(code); s.Mapped() {
		return s.Label()
	}
	return Normalize(code)
}

// WarehouseText maps a warehouse code to its label. ok is false for unknown
// codes, which the eligibility filter uses to reject the record.
func WarehouseText(code string) (label string, ok bool) {
	w := ParseWarehouse(code)
	if !w.Mapped() {
		return "", false
	}
	return w.Label(), true
}

// AllStatuses lists every mapped status in a stable order.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusLikeNew, StatusUsedGood, StatusUsed, StatusBargain}
}

// AllWarehouses lists every mapped warehouse in a stable order.
func AllWarehouses() []Warehouse {
	return []Warehouse{WarehouseMedellin, WarehouseBogota, WarehouseStoreMedellin, WarehouseStoreBogota}
}
