package usecase

import (
	"context"
	"sort"
	"time"

	"campusdrop/internal/pkg/models"
	"campusdrop/services/connectivity"
)

// ConnectivityUC implements reachability tracking over the presence store.
type ConnectivityUC struct {
	cfg  models.ConnectivityConfig
	repo connectivity.ConnectivityRepo
	now  func() time.Time
}

// NewConnectivityUC creates a new connectivity usecase
func NewConnectivityUC(cfg models.ConnectivityConfig, repo connectivity.ConnectivityRepo) *ConnectivityUC {
	return &ConnectivityUC{
		cfg:  cfg,
		repo: repo,
		now:  time.Now,
	}
}

// RecordPing refreshes the user's presence record. Repeated pings from the
// same position are idempotent apart from the timestamp.
func (uc *ConnectivityUC) RecordPing(ctx context.Context, userID, deviceID, areaName string, seenAt time.Time) error {
	if userID == "" || deviceID == "" {
		return models.ErrInvalidDevice
	}
	if seenAt.IsZero() {
		seenAt = uc.now()
	}
	return uc.repo.UpsertRecord(ctx, models.ConnectivityRecord{
		UserID:   userID,
		DeviceID: deviceID,
		AreaName: areaName,
		LastSeen: seenAt,
	})
}

// ReachableCount counts users last seen in the area within the staleness
// horizon. With byDevice set, users sharing one physical device collapse to
// a single count.
func (uc *ConnectivityUC) ReachableCount(ctx context.Context, areaName string, byDevice bool) (int, error) {
	records, err := uc.repo.RecordsByArea(ctx, areaName)
	if err != nil {
		return 0, err
	}

	users, devices := uc.countFresh(records)
	if byDevice {
		return devices, nil
	}
	return users, nil
}

// Stats aggregates reachability across every tracked area. Users and devices
// reachable in multiple areas are counted once in the totals.
func (uc *ConnectivityUC) Stats(ctx context.Context) (models.ConnectivityStats, error) {
	areas, err := uc.repo.TrackedAreas(ctx)
	if err != nil {
		return models.ConnectivityStats{}, err
	}
	sort.Strings(areas)

	now := uc.now()
	stats := models.ConnectivityStats{}
	allUsers := make(map[string]struct{})
	allDevices := make(map[string]struct{})

	for _, area := range areas {
		records, err := uc.repo.RecordsByArea(ctx, area)
		if err != nil {
			return models.ConnectivityStats{}, err
		}
		stats.TotalTracked += len(records)

		areaUsers := make(map[string]struct{})
		areaDevices := make(map[string]struct{})
		for _, rec := range records {
			if rec.Stale(now, uc.cfg.StalenessHorizon) {
				continue
			}
			areaUsers[rec.UserID] = struct{}{}
			areaDevices[rec.DeviceID] = struct{}{}
			allUsers[rec.UserID] = struct{}{}
			allDevices[rec.DeviceID] = struct{}{}
		}
		stats.ByArea = append(stats.ByArea, models.AreaReachability{
			AreaName: area,
			Users:    len(areaUsers),
			Devices:  len(areaDevices),
		})
	}

	stats.ReachableUsers = len(allUsers)
	stats.ReachableDevices = len(allDevices)
	return stats, nil
}

// countFresh returns distinct user and device counts within the horizon.
func (uc *ConnectivityUC) countFresh(records []models.ConnectivityRecord) (users, devices int) {
	now := uc.now()
	userSet := make(map[string]struct{})
	deviceSet := make(map[string]struct{})
	for _, rec := range records {
		if rec.Stale(now, uc.cfg.StalenessHorizon) {
			continue
		}
		userSet[rec.UserID] = struct{}{}
		deviceSet[rec.DeviceID] = struct{}{}
	}
	return len(userSet), len(deviceSet)
}
