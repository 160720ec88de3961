package constants

// Redis key formats
const (
	// KeyUserConnectivity holds the current presence record for one user.
	KeyUserConnectivity = "connectivity:user:%s" // Format: connectivity:user:{user_id}

	// KeyAreaPresence is the set of user IDs last seen in an area.
	KeyAreaPresence = "connectivity:area:%s" // Format: connectivity:area:{area_name}

	// KeyTrackedAreas is the set of area names that have ever had presence.
	KeyTrackedAreas = "connectivity:areas"
)

// Redis hash fields for connectivity records
const (
	FieldDeviceID = "device_id"
	FieldArea     = "area"
	FieldLastSeen = "last_seen"
)
