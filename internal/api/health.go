package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the configured rate source).
type HealthHandler struct {
	ready func() error // database ping or data directory check
}

// NewHealthHandler constructs a HealthHandler. A nil ready func always reports ready.
func NewHealthHandler(ready func() error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: 200 OK if the rate source is usable, 503 with the reason otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness probe
	// @Summary      Readiness probe
	// @Description  Returns ready if the historical rate source (database or data directory) is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ready != nil {
			if err := h.ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "reason": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
