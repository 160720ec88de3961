package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusdrop/internal/pkg/models"
)

// RequestRepo defines persistence for delivery requests
type RequestRepo interface {
	// CreateRequest inserts a new delivery request.
	CreateRequest(ctx context.Context, request *models.DeliveryRequest) error

	// GetRequest returns a request by id.
	GetRequest(ctx context.Context, id uuid.UUID) (*models.DeliveryRequest, error)

	// ExpirableRequests returns the ids of non-terminal requests whose
	// deadline is at or before now.
	ExpirableRequests(ctx context.Context, now time.Time) ([]uuid.UUID, error)

	// ExpireRequest conditionally transitions a request to expired. Returns
	// false when the request was already terminal, meaning a concurrent
	// actor won the race.
	ExpireRequest(ctx context.Context, id uuid.UUID) (bool, error)
}
