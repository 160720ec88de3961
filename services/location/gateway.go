package location

import (
	"context"
	"time"

	"campusdrop/internal/pkg/models"
)

// LocationGW defines the interface for publishing location events
type LocationGW interface {
	// PublishLocationUpdate publishes a classified GPS update downstream.
	PublishLocationUpdate(ctx context.Context, event models.LocationUpdateEvent) error
}

// PresenceRecorder refreshes a user's reachability record after a
// successful classification. Implemented by the connectivity service.
type PresenceRecorder interface {
	RecordPing(ctx context.Context, userID, deviceID, areaName string, seenAt time.Time) error
}
