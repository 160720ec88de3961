package constants

// NSQ topics
const (
	// TopicLocationUpdated carries classified GPS updates.
	TopicLocationUpdated = "location.updated"

	// TopicLocationPing carries raw background connectivity pings from the
	// mobile ingestion tier.
	TopicLocationPing = "location.ping"

	// TopicRequestExpired carries requests the scheduler transitioned to
	// expired, for the notification collaborator.
	TopicRequestExpired = "request.expired"
)

// NSQ channels
const (
	ChannelDelivery = "delivery"
)
