// Package v1 provides HTTP handlers for the strategy engine.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hagglekit/strategy-engine/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Decision API
	e.POST("/v1/decide", h.Decide)

	// Audit API
	e.GET("/v1/sessions/:session_id/decisions", h.GetSessionDecisions)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "strategy-engine",
		"version": "0.1.0",
	})
}
