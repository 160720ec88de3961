package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	"campusdrop/internal/utils"
	"campusdrop/services/dispatch"
)

// DispatchHandler handles HTTP requests for delivery request operations
type DispatchHandler struct {
	dispatchUC dispatch.DispatchUC
}

// NewDispatchHandler creates a new dispatch HTTP handler
func NewDispatchHandler(dispatchUC dispatch.DispatchUC) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: dispatchUC,
	}
}

// CreateRequest posts a new delivery request
func (h *DispatchHandler) CreateRequest(c echo.Context) error {
	var input models.CreateRequestInput
	if err := c.Bind(&input); err != nil {
		logger.Error("Failed to bind request input", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if input.PostedBy == "" {
		return utils.BadRequestResponse(c, "posted_by is required")
	}
	if input.Item == "" {
		return utils.BadRequestResponse(c, "item is required")
	}

	request, err := h.dispatchUC.CreateRequest(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, models.ErrDeadlinePassed) || errors.Is(err, models.ErrInvalidCoordinate) {
			return utils.BadRequestResponse(c, err.Error())
		}
		logger.Error("Failed to create delivery request",
			logger.String("posted_by", input.PostedBy),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to create request")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Request created", request)
}

// GetRequest returns a delivery request by id
func (h *DispatchHandler) GetRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid request id")
	}

	request, err := h.dispatchUC.GetRequest(c.Request().Context(), id)
	if err != nil {
		logger.Error("Failed to get delivery request",
			logger.String("request_id", id.String()),
			logger.Err(err))
		return utils.NotFoundResponse(c, "request not found")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Request retrieved", request)
}

// ExpireRequests runs one expiration sweep on demand
func (h *DispatchHandler) ExpireRequests(c echo.Context) error {
	result, err := h.dispatchUC.ExpireDueRequests(c.Request().Context())
	if err != nil {
		logger.Error("Failed to run expiration sweep", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to expire requests")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Expiration sweep completed", result)
}
