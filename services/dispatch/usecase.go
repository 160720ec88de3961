package dispatch

import (
	"context"

	"github.com/google/uuid"

	"campusdrop/internal/pkg/models"
)

// DispatchUC defines the interface for delivery request business logic
type DispatchUC interface {
	// CreateRequest validates and stores a new delivery request, tagging it
	// with the campus areas resolved from its pickup and drop coordinates.
	CreateRequest(ctx context.Context, input models.CreateRequestInput) (*models.DeliveryRequest, error)

	// GetRequest returns a request by id.
	GetRequest(ctx context.Context, id uuid.UUID) (*models.DeliveryRequest, error)

	// ExpireDueRequests runs one expiration sweep: finds overdue requests,
	// conditionally expires each, and publishes an event per transition.
	ExpireDueRequests(ctx context.Context) (models.ExpiryScanResult, error)
}

// AreaResolver resolves a coordinate to its primary campus area. Implemented
// by the location service.
type AreaResolver interface {
	Resolve(ctx context.Context, c models.Coordinate, mode models.ResolveMode) (models.AreaClassification, error)
}
