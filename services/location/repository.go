package location

import (
	"context"

	"campusdrop/internal/pkg/models"
)

// CatalogRepo defines persistence for the campus area catalog
type CatalogRepo interface {
	// ListAreas loads every enabled area with its geometry.
	ListAreas(ctx context.Context) ([]models.Area, error)
}
