// internal/api/models.go
package api

import "availability-api/internal/models"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type ProductsResponse struct {
	Status    string                     `json:"status"`
	Count     int                        `json:"count"`
	Productos []models.NormalizedProduct `json:"productos"`
}

// URLsResponse lists storefront links for a query. Error is null when the
// lookup succeeded.
type URLsResponse struct {
	Status             string                   `json:"status"`
	Query              string                   `json:"query"`
	URLsEncontradas    []models.SearchCandidate `json:"urls_encontradas"`
	TotalURLs          int                      `json:"total_urls"`
	URLBusquedaGeneral string                   `json:"url_busqueda_general"`
	Error              *string                  `json:"error"`
}

type ProductsSection struct {
	Count     int                        `json:"count"`
	Productos []models.NormalizedProduct `json:"productos"`
}

type WebSection struct {
	URLsEncontradas    []models.SearchCandidate `json:"urls_encontradas"`
	TotalURLs          int                      `json:"total_urls"`
	URLBusquedaGeneral string                   `json:"url_busqueda_general"`
	Error              *string                  `json:"error"`
}

type CompleteResponse struct {
	Status       string          `json:"status"`
	Query        string          `json:"query"`
	ProductosAPI ProductsSection `json:"productos_api"`
	ProductosWeb WebSection      `json:"productos_web"`
}

type HomeResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}
