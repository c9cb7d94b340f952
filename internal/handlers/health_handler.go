package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the healthcheck probes
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    []Pinger
	timeout time.Duration
}

func NewHealthHandler(deps ...Pinger) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		timeout: 2 * time.Second,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	for _, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			attachError(c, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"reason": dep.Name() + " unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
