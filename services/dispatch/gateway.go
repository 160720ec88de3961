package dispatch

import (
	"context"

	"campusdrop/internal/pkg/models"
)

// DispatchGW defines the interface for publishing dispatch events
type DispatchGW interface {
	// PublishRequestExpired notifies downstream consumers that a request
	// expired.
	PublishRequestExpired(ctx context.Context, event models.RequestExpiredEvent) error
}
