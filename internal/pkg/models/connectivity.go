package models

import "time"

// ConnectivityRecord is the current presence record for one user. A new ping
// overwrites the previous record for that user; the device id is what merges
// multiple accounts sharing one physical device during counting.
type ConnectivityRecord struct {
	UserID   string    `json:"user_id"`
	DeviceID string    `json:"device_id"`
	AreaName string    `json:"area_name"`
	LastSeen time.Time `json:"last_seen"`
}

// Stale reports whether the record falls outside the staleness horizon at
// the given instant.
func (r ConnectivityRecord) Stale(now time.Time, horizon time.Duration) bool {
	return now.Sub(r.LastSeen) > horizon
}

// AreaReachability is the reachable count for one area in both count modes.
type AreaReachability struct {
	AreaName string `json:"area_name"`
	Users    int    `json:"users"`
	Devices  int    `json:"devices"`
}

// ConnectivityStats is the admin/analytics view of current reachability.
type ConnectivityStats struct {
	TotalTracked     int                `json:"total_tracked"`
	ReachableUsers   int                `json:"reachable_users"`
	ReachableDevices int                `json:"reachable_devices"`
	ByArea           []AreaReachability `json:"by_area"`
}
