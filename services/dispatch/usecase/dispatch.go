package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	"campusdrop/services/dispatch"
)

// DispatchUC implements delivery request lifecycle logic.
type DispatchUC struct {
	requestRepo dispatch.RequestRepo
	dispatchGW  dispatch.DispatchGW
	resolver    dispatch.AreaResolver
	now         func() time.Time
}

// NewDispatchUC creates a new dispatch usecase
func NewDispatchUC(
	requestRepo dispatch.RequestRepo,
	dispatchGW dispatch.DispatchGW,
	resolver dispatch.AreaResolver,
) *DispatchUC {
	return &DispatchUC{
		requestRepo: requestRepo,
		dispatchGW:  dispatchGW,
		resolver:    resolver,
		now:         time.Now,
	}
}

// CreateRequest validates the input, tags the request with the campus areas
// resolved from its coordinates, and stores it as open.
func (uc *DispatchUC) CreateRequest(ctx context.Context, input models.CreateRequestInput) (*models.DeliveryRequest, error) {
	now := uc.now()
	if !input.Deadline.After(now) {
		return nil, models.ErrDeadlinePassed
	}

	pickup, err := uc.resolver.Resolve(ctx, input.PickupLocation, models.ResolveNormal)
	if err != nil {
		return nil, err
	}
	drop, err := uc.resolver.Resolve(ctx, input.DropLocation, models.ResolveNormal)
	if err != nil {
		return nil, err
	}

	request := &models.DeliveryRequest{
		ID:             uuid.New(),
		PostedBy:       input.PostedBy,
		Item:           input.Item,
		PickupLocation: input.PickupLocation,
		PickupArea:     pickup.PrimaryAreaName(),
		DropLocation:   input.DropLocation,
		DropArea:       drop.PrimaryAreaName(),
		Deadline:       input.Deadline,
		Status:         models.RequestStatusOpen,
		Notes:          input.Notes,
		CreatedAt:      now,
	}

	if err := uc.requestRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Delivery request created",
		logger.String("request_id", request.ID.String()),
		logger.String("pickup_area", request.PickupArea),
		logger.String("drop_area", request.DropArea))
	return request, nil
}

// GetRequest returns a request by id.
func (uc *DispatchUC) GetRequest(ctx context.Context, id uuid.UUID) (*models.DeliveryRequest, error) {
	return uc.requestRepo.GetRequest(ctx, id)
}

// ExpireDueRequests runs one expiration sweep. A store failure on one
// request does not stop the sweep; a lost conditional write means another
// actor got there first and counts as skipped. Publish failures are logged
// only: the row already moved, and re-expiring it is not possible.
func (uc *DispatchUC) ExpireDueRequests(ctx context.Context) (models.ExpiryScanResult, error) {
	now := uc.now()
	ids, err := uc.requestRepo.ExpirableRequests(ctx, now)
	if err != nil {
		return models.ExpiryScanResult{}, err
	}

	result := models.ExpiryScanResult{Scanned: len(ids)}
	for _, id := range ids {
		expired, err := uc.requestRepo.ExpireRequest(ctx, id)
		if err != nil {
			logger.Error("Failed to expire request",
				logger.String("request_id", id.String()),
				logger.Err(err))
			result.Failed++
			continue
		}
		if !expired {
			result.Skipped++
			continue
		}
		result.Expired++

		event := models.RequestExpiredEvent{RequestID: id, ExpiredAt: now}
		if err := uc.dispatchGW.PublishRequestExpired(ctx, event); err != nil {
			logger.Error("Failed to publish request expired event",
				logger.String("request_id", id.String()),
				logger.Err(err))
		}
	}

	if result.Scanned > 0 {
		logger.Info("Expiration sweep completed",
			logger.Int("scanned", result.Scanned),
			logger.Int("expired", result.Expired),
			logger.Int("skipped", result.Skipped),
			logger.Int("failed", result.Failed))
	}
	return result, nil
}
