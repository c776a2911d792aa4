package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type HealthController struct {
	ping func(ctx context.Context) error
}

// NewHealthController reports healthy while ping succeeds. database.Ping fits.
func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// Show handles GET /api/health.
func (c *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	if err := c.ping(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Warn("health check failed", "error", err)
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	response.Success(w, map[string]string{"database": "ok"})
}
