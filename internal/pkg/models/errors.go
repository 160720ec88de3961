package models

import "errors"

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is
	// outside the valid WGS84 range. Rejected before any geometry work.
	ErrInvalidCoordinate = errors.New("latitude must be between -90 and 90 and longitude between -180 and 180")

	// ErrInvalidDevice is returned when a connectivity ping carries an
	// empty device identifier.
	ErrInvalidDevice = errors.New("device id must not be empty")

	// ErrAreaNotFound is returned when a named area is not in the catalog.
	ErrAreaNotFound = errors.New("area not found")

	// ErrDeadlinePassed is returned when a new request's deadline is not in
	// the future.
	ErrDeadlinePassed = errors.New("deadline must be in the future")
)
