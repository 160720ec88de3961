package handler

import (
	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/middleware"
	"campusdrop/internal/pkg/models"
	"campusdrop/services/location"
	httpHandler "campusdrop/services/location/handler/http"
)

// Handler combines the HTTP and NSQ handlers for the location service
type Handler struct {
	locationHTTP *httpHandler.LocationHandler
	pingConsumer *PingConsumer
	cfg          *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(locationUC location.LocationUC, cfg *models.Config) *Handler {
	return &Handler{
		locationHTTP: httpHandler.NewLocationHandler(locationUC),
		pingConsumer: NewPingConsumer(locationUC),
		cfg:          cfg,
	}
}

// RegisterRoutes registers all HTTP routes for the location service
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/locations/gps", h.locationHTTP.UpdateGPS)
	e.POST("/locations/ping", h.locationHTTP.Ping)
	e.GET("/areas", h.locationHTTP.ListAreas)
	e.GET("/areas/:name", h.locationHTTP.GetArea)

	// Internal routes for service-to-service communication (API key required)
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.Server.InternalAPIKey))
	internal.POST("/areas/reload", h.locationHTTP.ReloadAreas)
}

// StartConsumers starts the NSQ consumers for the location service
func (h *Handler) StartConsumers() error {
	return h.pingConsumer.Start(h.cfg.NSQ)
}

// StopConsumers stops the NSQ consumers
func (h *Handler) StopConsumers() {
	h.pingConsumer.Stop()
}
