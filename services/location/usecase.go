package location

import (
	"context"

	"campusdrop/internal/pkg/models"
)

// LocationUC defines the interface for location business logic
type LocationUC interface {
	// Resolve classifies a coordinate against the current area catalog.
	Resolve(ctx context.Context, c models.Coordinate, mode models.ResolveMode) (models.AreaClassification, error)

	// UpdateLocation classifies a user GPS update, records the user's
	// presence, and publishes the classified update downstream.
	UpdateLocation(ctx context.Context, update models.GPSUpdate) (models.AreaClassification, error)

	// HandlePing classifies a background connectivity ping in fast mode
	// and refreshes the user's presence record.
	HandlePing(ctx context.Context, update models.GPSUpdate) error

	// Areas returns the catalog snapshot currently serving classification.
	Areas(ctx context.Context) []models.AreaInfo

	// Area returns a single catalog entry by name.
	Area(ctx context.Context, name string) (models.AreaInfo, error)

	// ReloadCatalog reloads the area catalog from storage and swaps it in
	// atomically. In-flight classifications keep the old snapshot.
	ReloadCatalog(ctx context.Context) (int, error)
}
