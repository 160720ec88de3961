package gateway

import (
	"context"

	"campusdrop/internal/pkg/constants"
	"campusdrop/internal/pkg/models"
	nsqpkg "campusdrop/internal/pkg/nsq"
)

// LocationGW publishes location events to NSQ.
type LocationGW struct {
	producer *nsqpkg.Producer
}

// NewLocationGW creates a new location gateway
func NewLocationGW(producer *nsqpkg.Producer) *LocationGW {
	return &LocationGW{producer: producer}
}

// PublishLocationUpdate publishes a classified GPS update to the
// location.updated topic.
func (g *LocationGW) PublishLocationUpdate(_ context.Context, event models.LocationUpdateEvent) error {
	return g.producer.Publish(constants.TopicLocationUpdated, event)
}
