package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	"campusdrop/internal/utils"
	"campusdrop/services/location"
)

// LocationHandler handles HTTP requests for location operations
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
	}
}

// UpdateGPS classifies a user-initiated GPS update
func (h *LocationHandler) UpdateGPS(c echo.Context) error {
	var update models.GPSUpdate
	if err := c.Bind(&update); err != nil {
		logger.Error("Failed to bind GPS update", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if update.UserID == "" {
		return utils.BadRequestResponse(c, "user_id is required")
	}
	if update.DeviceID == "" {
		return utils.BadRequestResponse(c, "device_id is required")
	}

	result, err := h.locationUC.UpdateLocation(c.Request().Context(), update)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			return utils.BadRequestResponse(c, err.Error())
		}
		logger.Error("Failed to process GPS update",
			logger.String("user_id", update.UserID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to process GPS update")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location classified", result)
}

// Ping records a background connectivity ping
func (h *LocationHandler) Ping(c echo.Context) error {
	var update models.GPSUpdate
	if err := c.Bind(&update); err != nil {
		logger.Error("Failed to bind ping", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if update.UserID == "" {
		return utils.BadRequestResponse(c, "user_id is required")
	}

	if err := h.locationUC.HandlePing(c.Request().Context(), update); err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) || errors.Is(err, models.ErrInvalidDevice) {
			return utils.BadRequestResponse(c, err.Error())
		}
		logger.Error("Failed to process ping",
			logger.String("user_id", update.UserID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to process ping")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ping recorded", map[string]string{"status": "ok"})
}

// ListAreas returns the current area catalog
func (h *LocationHandler) ListAreas(c echo.Context) error {
	areas := h.locationUC.Areas(c.Request().Context())
	return utils.SuccessResponse(c, http.StatusOK, "Areas retrieved", areas)
}

// GetArea returns a single catalog entry by name
func (h *LocationHandler) GetArea(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return utils.BadRequestResponse(c, "area name is required")
	}

	area, err := h.locationUC.Area(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, models.ErrAreaNotFound) {
			return utils.NotFoundResponse(c, "area not found")
		}
		logger.Error("Failed to get area", logger.String("area", name), logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to get area")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Area retrieved", area)
}

// ReloadAreas reloads the area catalog from storage
func (h *LocationHandler) ReloadAreas(c echo.Context) error {
	count, err := h.locationUC.ReloadCatalog(c.Request().Context())
	if err != nil {
		logger.Error("Failed to reload area catalog", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to reload catalog")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Catalog reloaded", map[string]int{"areas": count})
}
