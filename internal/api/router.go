// internal/api/router.go
package api

import (
	"availability-api/internal/common/logger"
	"availability-api/internal/common/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with middleware, API routes and /metrics.
func NewRouter(h *Handler, obs *observability.Observability, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(log), Metrics(obs))

	h.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
