package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the health check endpoint.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// RegisterRoutes registers the health route on the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health reports service liveness.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.serviceName,
	})
}
