// Package http provides the HTTP server implementation for the strategy engine.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hagglekit/strategy-engine/internal/service"
	v1 "github.com/hagglekit/strategy-engine/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. This server handles
// decide calls from the dialogue orchestrator and the session audit API.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
