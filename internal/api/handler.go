// internal/api/handler.go
package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"availability-api/internal/catalog"
	"availability-api/internal/common/logger"
	"availability-api/internal/models"
	"availability-api/internal/websearch"

	"github.com/gin-gonic/gin"
)

const homeMessage = "WhatsApp API - Productos Disponibles"

// CatalogService is satisfied by *catalog.Service.
type CatalogService interface {
	Available(ctx context.Context) catalog.Snapshot
	Search(ctx context.Context, query string) catalog.Snapshot
	URLs(ctx context.Context, query string) websearch.Outcome
	Complete(ctx context.Context, query string) catalog.Combined
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Handler struct {
	service CatalogService
	logger  logger.Logger
	checks  map[string]ReadinessCheck
}

func NewHandler(service CatalogService, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.With(map[string]interface{}{"component": "api"}),
		checks:  make(map[string]ReadinessCheck),
	}
}

func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checks[name] = check
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	productos := r.Group("/productos")
	productos.GET("/disponibles", h.Available)
	productos.GET("/buscar/:query", h.Search)
	productos.GET("/urls/:query", h.URLs)
	productos.GET("/completo/:query", h.Complete)
}

func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, HomeResponse{
		Message: homeMessage,
		Endpoints: map[string]string{
			"productos_disponibles": "/productos/disponibles",
			"buscar_productos":      "/productos/buscar/<query>",
			"buscar_urls":           "/productos/urls/<query>",
			"busqueda_completa":     "/productos/completo/<query>",
		},
	})
}

// Available never fails at the HTTP level; an unreachable inventory shows up
// as an empty list.
func (h *Handler) Available(c *gin.Context) {
	snap := h.service.Available(c.Request.Context())
	h.logDegraded(c, snap)
	c.JSON(http.StatusOK, productsResponse(snap))
}

func (h *Handler) Search(c *gin.Context) {
	query := c.Param("query")
	snap := h.service.Search(c.Request.Context(), query)
	h.logDegraded(c, snap)
	c.JSON(http.StatusOK, productsResponse(snap))
}

func (h *Handler) URLs(c *gin.Context) {
	query := c.Param("query")
	outcome := h.service.URLs(c.Request.Context(), query)
	c.JSON(http.StatusOK, urlsResponse(query, outcome))
}

func (h *Handler) Complete(c *gin.Context) {
	query := c.Param("query")
	combined := h.service.Complete(c.Request.Context(), query)
	h.logDegraded(c, combined.Products)

	web := webSection(combined.Web)
	c.JSON(http.StatusOK, CompleteResponse{
		Status: StatusSuccess,
		Query:  query,
		ProductosAPI: ProductsSection{
			Count:     len(combined.Products.Products),
			Productos: nonNilProducts(combined.Products),
		},
		ProductosWeb: web,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) Ready(c *gin.Context) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := make(map[string]string)
	for _, name := range names {
		if err := h.checks[name](c.Request.Context()); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		h.logger.Warn("readiness check failed", map[string]interface{}{"failures": failures})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "not_ready",
			"failures": failures,
			"time":     time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) logDegraded(c *gin.Context, snap catalog.Snapshot) {
	if !snap.Degraded {
		return
	}
	h.logger.Warn("serving degraded inventory", map[string]interface{}{
		"requestId": GetRequestID(c),
		"path":      c.Request.URL.Path,
		"cause":     snap.Cause,
	})
}

func productsResponse(snap catalog.Snapshot) ProductsResponse {
	return ProductsResponse{
		Status:    StatusSuccess,
		Count:     len(snap.Products),
		Productos: nonNilProducts(snap),
	}
}

func urlsResponse(query string, outcome websearch.Outcome) URLsResponse {
	web := webSection(outcome)
	status := StatusSuccess
	if web.Error != nil {
		status = StatusError
	}
	return URLsResponse{
		Status:             status,
		Query:              query,
		URLsEncontradas:    web.URLsEncontradas,
		TotalURLs:          web.TotalURLs,
		URLBusquedaGeneral: web.URLBusquedaGeneral,
		Error:              web.Error,
	}
}

func webSection(outcome websearch.Outcome) WebSection {
	section := WebSection{
		URLsEncontradas:    outcome.Candidates,
		TotalURLs:          len(outcome.Candidates),
		URLBusquedaGeneral: outcome.SourceURL,
	}
	if section.URLsEncontradas == nil {
		section.URLsEncontradas = emptyCandidates()
	}
	if outcome.Error != "" {
		msg := outcome.Error
		section.Error = &msg
	}
	return section
}

func nonNilProducts(snap catalog.Snapshot) []models.NormalizedProduct {
	if snap.Products == nil {
		return []models.NormalizedProduct{}
	}
	return snap.Products
}

func emptyCandidates() []models.SearchCandidate {
	return []models.SearchCandidate{}
}
