package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationUpdateEvent is published after a GPS update has been classified.
type LocationUpdateEvent struct {
	UserID      string     `json:"user_id"`
	DeviceID    string     `json:"device_id"`
	Location    Coordinate `json:"location"`
	PrimaryArea string     `json:"primary_area,omitempty"`
	IsOnEdge    bool       `json:"is_on_edge"`
	EdgeAreas   []string   `json:"edge_areas,omitempty"`
	Geohash     string     `json:"geohash,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
}

// RequestExpiredEvent is published for each request the scheduler
// transitions to expired. Consumed by the notification collaborator.
type RequestExpiredEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	ExpiredAt time.Time `json:"expired_at"`
}
