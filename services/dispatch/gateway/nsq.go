package gateway

import (
	"context"

	"campusdrop/internal/pkg/constants"
	"campusdrop/internal/pkg/models"
	nsqpkg "campusdrop/internal/pkg/nsq"
)

// DispatchGW publishes dispatch events to NSQ.
type DispatchGW struct {
	producer *nsqpkg.Producer
}

// NewDispatchGW creates a new dispatch gateway
func NewDispatchGW(producer *nsqpkg.Producer) *DispatchGW {
	return &DispatchGW{producer: producer}
}

// PublishRequestExpired publishes an expiration to the request.expired topic.
func (g *DispatchGW) PublishRequestExpired(_ context.Context, event models.RequestExpiredEvent) error {
	return g.producer.Publish(constants.TopicRequestExpired, event)
}
