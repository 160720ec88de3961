package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
)

// CatalogRepo loads the campus area catalog from Postgres.
type CatalogRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(cfg *models.Config, db *sqlx.DB) *CatalogRepo {
	return &CatalogRepo{
		cfg: cfg,
		db:  db,
	}
}

type areaRow struct {
	Name        string          `db:"name"`
	DisplayName sql.NullString  `db:"display_name"`
	Kind        string          `db:"kind"`
	CenterLat   sql.NullFloat64 `db:"center_lat"`
	CenterLng   sql.NullFloat64 `db:"center_lng"`
	RadiusM     sql.NullFloat64 `db:"radius_m"`
}

type vertexRow struct {
	AreaName  string  `db:"area_name"`
	Position  int     `db:"position"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}

// ListAreas loads every enabled area with its geometry. Malformed rows are
// skipped with a warning rather than failing the whole reload.
func (r *CatalogRepo) ListAreas(ctx context.Context) ([]models.Area, error) {
	areasQuery := `
		SELECT name, display_name, kind, center_lat, center_lng, radius_m
		FROM campus_areas
		WHERE enabled = true
		ORDER BY name
	`

	var rows []areaRow
	if err := r.db.SelectContext(ctx, &rows, areasQuery); err != nil {
		return nil, fmt.Errorf("failed to load campus areas: %w", err)
	}

	verticesQuery := `
		SELECT area_name, position, latitude, longitude
		FROM campus_area_vertices
		ORDER BY area_name, position
	`

	var vertices []vertexRow
	if err := r.db.SelectContext(ctx, &vertices, verticesQuery); err != nil {
		return nil, fmt.Errorf("failed to load area vertices: %w", err)
	}

	ringsByArea := make(map[string][]models.Coordinate)
	for _, v := range vertices {
		ringsByArea[v.AreaName] = append(ringsByArea[v.AreaName], models.Coordinate{
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
		})
	}

	areas := make([]models.Area, 0, len(rows))
	for _, row := range rows {
		geom, err := buildGeometry(row, ringsByArea[row.Name])
		if err != nil {
			logger.Warn("Skipping malformed campus area",
				logger.String("area", row.Name),
				logger.Err(err))
			continue
		}
		areas = append(areas, models.Area{
			Name:        row.Name,
			DisplayName: row.DisplayName.String,
			Geometry:    geom,
		})
	}

	return areas, nil
}

func buildGeometry(row areaRow, ring []models.Coordinate) (models.Geometry, error) {
	switch row.Kind {
	case "circle":
		if !row.CenterLat.Valid || !row.CenterLng.Valid || !row.RadiusM.Valid {
			return nil, fmt.Errorf("circle area %s is missing center or radius", row.Name)
		}
		if row.RadiusM.Float64 <= 0 {
			return nil, fmt.Errorf("circle area %s has non-positive radius", row.Name)
		}
		return models.Circle{
			Center: models.Coordinate{
				Latitude:  row.CenterLat.Float64,
				Longitude: row.CenterLng.Float64,
			},
			RadiusM: row.RadiusM.Float64,
		}, nil
	case "polygon":
		if len(ring) < 3 {
			return nil, fmt.Errorf("polygon area %s has %d vertices, need at least 3", row.Name, len(ring))
		}
		return models.Polygon{Vertices: ring}, nil
	default:
		return nil, fmt.Errorf("unknown geometry kind %q for area %s", row.Kind, row.Name)
	}
}
