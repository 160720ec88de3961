package handler

import (
	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/middleware"
	"campusdrop/internal/pkg/models"
	"campusdrop/services/dispatch"
	httpHandler "campusdrop/services/dispatch/handler/http"
)

// Handler wires the dispatch HTTP handlers to routes
type Handler struct {
	dispatchHTTP *httpHandler.DispatchHandler
	cfg          *models.Config
}

// NewHandler creates a new dispatch handler
func NewHandler(dispatchUC dispatch.DispatchUC, cfg *models.Config) *Handler {
	return &Handler{
		dispatchHTTP: httpHandler.NewDispatchHandler(dispatchUC),
		cfg:          cfg,
	}
}

// RegisterRoutes registers all HTTP routes for the dispatch service
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.Server.InternalAPIKey))
	internal.POST("/requests", h.dispatchHTTP.CreateRequest)
	internal.GET("/requests/:id", h.dispatchHTTP.GetRequest)
	internal.POST("/requests/expire", h.dispatchHTTP.ExpireRequests)
}
