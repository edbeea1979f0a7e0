package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the operational endpoints.
type Handler struct {
	metrics http.Handler
	started time.Time
}

// NewHandler creates a new handler instance. A nil gatherer leaves the
// metrics endpoint unregistered.
func NewHandler(gatherer prometheus.Gatherer) *Handler {
	h := &Handler{started: time.Now()}
	if gatherer != nil {
		h.metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return h
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
		if h.metrics != nil {
			health.GET("/metrics", h.MetricsHandler)
		}
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "alive",
		"time":   time.Now(),
	}))
}

// ReadinessCheck always succeeds: the registry has no external dependencies.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "ready",
		"uptime": time.Since(h.started).String(),
	}))
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
