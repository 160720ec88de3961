package handler

import (
	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/middleware"
	"campusdrop/internal/pkg/models"
	"campusdrop/services/connectivity"
	httpHandler "campusdrop/services/connectivity/handler/http"
)

// Handler wires the connectivity HTTP handlers to routes
type Handler struct {
	connectivityHTTP *httpHandler.ConnectivityHandler
	cfg              *models.Config
}

// NewHandler creates a new connectivity handler
func NewHandler(connectivityUC connectivity.ConnectivityUC, cfg *models.Config) *Handler {
	return &Handler{
		connectivityHTTP: httpHandler.NewConnectivityHandler(connectivityUC),
		cfg:              cfg,
	}
}

// RegisterRoutes registers all HTTP routes for the connectivity service
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.Server.InternalAPIKey))
	internal.GET("/areas/:name/reachable", h.connectivityHTTP.GetReachable)
	internal.GET("/connectivity/stats", h.connectivityHTTP.GetStats)
}
