package handler

import (
	"context"
	"errors"

	"campusdrop/internal/pkg/constants"
	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	nsqpkg "campusdrop/internal/pkg/nsq"
	"campusdrop/services/location"
)

// PingConsumer consumes background connectivity pings from NSQ.
type PingConsumer struct {
	locationUC location.LocationUC
	consumer   *nsqpkg.Consumer
}

// NewPingConsumer creates a new ping consumer
func NewPingConsumer(locationUC location.LocationUC) *PingConsumer {
	return &PingConsumer{locationUC: locationUC}
}

// Start connects the consumer to the NSQ daemon and, when configured, the
// lookupd instances.
func (pc *PingConsumer) Start(cfg models.NSQConfig) error {
	consumer, err := nsqpkg.NewConsumer(
		constants.TopicLocationPing,
		constants.ChannelDelivery,
		cfg.Address,
		pc.handlePing,
	)
	if err != nil {
		return err
	}
	if len(cfg.LookupAddresses) > 0 {
		if err := consumer.ConnectToLookupd(cfg.LookupAddresses); err != nil {
			return err
		}
	}
	pc.consumer = consumer
	return nil
}

// handlePing processes one ping message. Validation failures are dropped
// rather than requeued; a malformed ping never becomes valid.
func (pc *PingConsumer) handlePing(message []byte) error {
	var update models.GPSUpdate
	if err := nsqpkg.UnmarshalMessage(message, &update); err != nil {
		logger.Warn("Dropping malformed ping message", logger.Err(err))
		return nil
	}

	err := pc.locationUC.HandlePing(context.Background(), update)
	if errors.Is(err, models.ErrInvalidCoordinate) || errors.Is(err, models.ErrInvalidDevice) {
		logger.Warn("Dropping invalid ping",
			logger.String("user_id", update.UserID),
			logger.Err(err))
		return nil
	}
	return err
}

// Stop gracefully stops the consumer
func (pc *PingConsumer) Stop() {
	if pc.consumer != nil {
		pc.consumer.Stop()
	}
}
