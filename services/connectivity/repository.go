package connectivity

import (
	"context"

	"campusdrop/internal/pkg/models"
)

// ConnectivityRepo defines persistence for presence records
type ConnectivityRepo interface {
	// UpsertRecord overwrites the user's presence record and moves the user
	// between area presence sets when the area changed.
	UpsertRecord(ctx context.Context, record models.ConnectivityRecord) error

	// Record returns the current presence record for a user. The bool is
	// false when no record exists.
	Record(ctx context.Context, userID string) (models.ConnectivityRecord, bool, error)

	// RecordsByArea returns the presence records of users last seen in the
	// area.
	RecordsByArea(ctx context.Context, areaName string) ([]models.ConnectivityRecord, error)

	// TrackedAreas returns the names of areas that have had presence.
	TrackedAreas(ctx context.Context) ([]string, error)
}
