package connectivity

import (
	"context"
	"time"

	"campusdrop/internal/pkg/models"
)

// ConnectivityUC defines the interface for reachability business logic
type ConnectivityUC interface {
	// RecordPing refreshes the user's presence record. An empty area name
	// means the user was last seen outside every campus zone.
	RecordPing(ctx context.Context, userID, deviceID, areaName string, seenAt time.Time) error

	// ReachableCount returns how many users (or distinct devices, when
	// byDevice is set) are currently reachable in the area.
	ReachableCount(ctx context.Context, areaName string, byDevice bool) (int, error)

	// Stats returns the current reachability picture across all tracked
	// areas.
	Stats(ctx context.Context) (models.ConnectivityStats, error)
}
