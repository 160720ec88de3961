package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/utils"
	"campusdrop/services/connectivity"
)

// ConnectivityHandler handles HTTP requests for reachability queries
type ConnectivityHandler struct {
	connectivityUC connectivity.ConnectivityUC
}

// NewConnectivityHandler creates a new connectivity HTTP handler
func NewConnectivityHandler(connectivityUC connectivity.ConnectivityUC) *ConnectivityHandler {
	return &ConnectivityHandler{
		connectivityUC: connectivityUC,
	}
}

// GetReachable returns the reachable count for an area
func (h *ConnectivityHandler) GetReachable(c echo.Context) error {
	areaName := c.Param("name")
	if areaName == "" {
		return utils.BadRequestResponse(c, "area name is required")
	}

	byDevice := c.QueryParam("by_device") == "true"

	count, err := h.connectivityUC.ReachableCount(c.Request().Context(), areaName, byDevice)
	if err != nil {
		logger.Error("Failed to count reachable users",
			logger.String("area", areaName),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to count reachable users")
	}

	mode := "users"
	if byDevice {
		mode = "devices"
	}
	return utils.SuccessResponse(c, http.StatusOK, "Reachable count retrieved", map[string]interface{}{
		"area":  areaName,
		"count": count,
		"mode":  mode,
	})
}

// GetStats returns reachability statistics across all tracked areas
func (h *ConnectivityHandler) GetStats(c echo.Context) error {
	stats, err := h.connectivityUC.Stats(c.Request().Context())
	if err != nil {
		logger.Error("Failed to compute connectivity stats", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to compute stats")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Connectivity stats retrieved", stats)
}
