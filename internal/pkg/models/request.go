package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a delivery request.
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusExpired   RequestStatus = "expired"
)

// Terminal reports whether no further transitions are allowed from the
// status. Completed and Expired requests are never touched again.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusExpired
}

// DeliveryRequest is a posted delivery errand. The location core owns only
// the deadline-driven Open/Accepted -> Expired transition; acceptance and
// completion are driven by collaborators.
type DeliveryRequest struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PostedBy       string        `json:"posted_by" db:"posted_by"`
	Item           string        `json:"item" db:"item"`
	PickupLocation Coordinate    `json:"pickup_location"`
	PickupArea     string        `json:"pickup_area" db:"pickup_area"`
	DropLocation   Coordinate    `json:"drop_location"`
	DropArea       string        `json:"drop_area" db:"drop_area"`
	Deadline       time.Time     `json:"deadline" db:"deadline"`
	Status         RequestStatus `json:"status" db:"status"`
	Notes          string        `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// CreateRequestInput is the ingress payload for posting a new request.
// Pickup and drop areas are resolved from the coordinates, not supplied by
// the caller.
type CreateRequestInput struct {
	PostedBy       string     `json:"posted_by"`
	Item           string     `json:"item"`
	PickupLocation Coordinate `json:"pickup_location"`
	DropLocation   Coordinate `json:"drop_location"`
	Deadline       time.Time  `json:"deadline"`
	Notes          string     `json:"notes,omitempty"`
}

// ExpiryScanResult summarizes one scheduler wake. Skipped counts requests
// that a concurrent actor transitioned before our conditional write; those
// are expected outcomes, not failures.
type ExpiryScanResult struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
