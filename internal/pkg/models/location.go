package models

import "time"

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is within valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinate
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// ResolveMode selects how much geometry work the resolver does for an update.
type ResolveMode string

const (
	// ResolveNormal runs full containment and edge-buffer checks. Used for
	// user-initiated GPS updates.
	ResolveNormal ResolveMode = "normal"

	// ResolveFast checks only the distance to each area's reference point.
	// Used for background connectivity pings where edge accuracy does not
	// matter.
	ResolveFast ResolveMode = "fast"
)

// AreaClassification is the result of resolving a coordinate against the
// area catalog. It is produced per call and never persisted.
type AreaClassification struct {
	PrimaryArea       *Area   `json:"primary_area,omitempty"`
	IsOnEdge          bool    `json:"is_on_edge"`
	EdgeAreas         []Area  `json:"edge_areas,omitempty"`
	DistanceToPrimary float64 `json:"distance_to_primary_m"`
	Geohash           string  `json:"geohash,omitempty"`
}

// PrimaryAreaName returns the primary area name, or "" when the point is
// outside every campus zone.
func (ac AreaClassification) PrimaryAreaName() string {
	if ac.PrimaryArea == nil {
		return ""
	}
	return ac.PrimaryArea.Name
}

// GPSUpdate is the ingress payload for both GPS updates and background pings.
type GPSUpdate struct {
	UserID    string     `json:"user_id"`
	DeviceID  string     `json:"device_id"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	AccuracyM *float64   `json:"accuracy_m,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Coordinate returns the update's position as a Coordinate.
func (u GPSUpdate) Coordinate() Coordinate {
	return Coordinate{Latitude: u.Latitude, Longitude: u.Longitude}
}
