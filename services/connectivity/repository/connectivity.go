package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"campusdrop/internal/pkg/constants"
	"campusdrop/internal/pkg/database"
	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
)

// ConnectivityRepo stores presence records in Redis. One hash per user plus
// one membership set per area; both carry a TTL so abandoned records age out
// on their own.
type ConnectivityRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewConnectivityRepository creates a new connectivity repository
func NewConnectivityRepository(cfg *models.Config, redisClient *database.RedisClient) *ConnectivityRepo {
	return &ConnectivityRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// UpsertRecord overwrites the user's presence record. When the user moved to
// a different area, membership follows: removed from the old area's set,
// added to the new one's.
func (r *ConnectivityRepo) UpsertRecord(ctx context.Context, record models.ConnectivityRecord) error {
	userKey := fmt.Sprintf(constants.KeyUserConnectivity, record.UserID)
	ttl := r.cfg.Connectivity.RecordTTL

	oldArea, err := r.redisClient.HGet(ctx, userKey, constants.FieldArea)
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read previous presence: %w", err)
	}

	fields := map[string]interface{}{
		constants.FieldDeviceID: record.DeviceID,
		constants.FieldArea:     record.AreaName,
		constants.FieldLastSeen: record.LastSeen.UTC().Format(time.RFC3339Nano),
	}
	if err := r.redisClient.HSet(ctx, userKey, fields); err != nil {
		return fmt.Errorf("failed to store presence record: %w", err)
	}
	if err := r.redisClient.Expire(ctx, userKey, ttl); err != nil {
		return fmt.Errorf("failed to set presence TTL: %w", err)
	}

	if oldArea != "" && oldArea != record.AreaName {
		oldKey := fmt.Sprintf(constants.KeyAreaPresence, oldArea)
		if err := r.redisClient.SRem(ctx, oldKey, record.UserID); err != nil {
			return fmt.Errorf("failed to leave previous area set: %w", err)
		}
	}

	if record.AreaName == "" {
		return nil
	}

	areaKey := fmt.Sprintf(constants.KeyAreaPresence, record.AreaName)
	if err := r.redisClient.SAdd(ctx, areaKey, record.UserID); err != nil {
		return fmt.Errorf("failed to join area set: %w", err)
	}
	if err := r.redisClient.Expire(ctx, areaKey, ttl); err != nil {
		return fmt.Errorf("failed to set area set TTL: %w", err)
	}
	if err := r.redisClient.SAdd(ctx, constants.KeyTrackedAreas, record.AreaName); err != nil {
		return fmt.Errorf("failed to register tracked area: %w", err)
	}
	return nil
}

// Record returns the current presence record for a user.
func (r *ConnectivityRepo) Record(ctx context.Context, userID string) (models.ConnectivityRecord, bool, error) {
	userKey := fmt.Sprintf(constants.KeyUserConnectivity, userID)

	fields, err := r.redisClient.HGetAll(ctx, userKey)
	if err != nil {
		return models.ConnectivityRecord{}, false, fmt.Errorf("failed to read presence record: %w", err)
	}
	if len(fields) == 0 {
		return models.ConnectivityRecord{}, false, nil
	}

	record, err := parseRecord(userID, fields)
	if err != nil {
		return models.ConnectivityRecord{}, false, err
	}
	return record, true, nil
}

// RecordsByArea returns the presence records of users last seen in the area.
// Members whose record expired or moved elsewhere are pruned from the set as
// they are encountered.
func (r *ConnectivityRepo) RecordsByArea(ctx context.Context, areaName string) ([]models.ConnectivityRecord, error) {
	areaKey := fmt.Sprintf(constants.KeyAreaPresence, areaName)

	userIDs, err := r.redisClient.SMembers(ctx, areaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read area presence set: %w", err)
	}

	records := make([]models.ConnectivityRecord, 0, len(userIDs))
	for _, userID := range userIDs {
		record, ok, err := r.Record(ctx, userID)
		if err != nil {
			logger.Warn("Skipping unreadable presence record",
				logger.String("user_id", userID),
				logger.Err(err))
			continue
		}
		if !ok || record.AreaName != areaName {
			// Record expired or the user moved; drop the dangling member.
			if err := r.redisClient.SRem(ctx, areaKey, userID); err != nil {
				logger.Warn("Failed to prune area set member",
					logger.String("user_id", userID),
					logger.Err(err))
			}
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// TrackedAreas returns the names of areas that have had presence.
func (r *ConnectivityRepo) TrackedAreas(ctx context.Context) ([]string, error) {
	areas, err := r.redisClient.SMembers(ctx, constants.KeyTrackedAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracked areas: %w", err)
	}
	return areas, nil
}

func parseRecord(userID string, fields map[string]string) (models.ConnectivityRecord, error) {
	lastSeen, err := time.Parse(time.RFC3339Nano, fields[constants.FieldLastSeen])
	if err != nil {
		return models.ConnectivityRecord{}, fmt.Errorf("failed to parse last_seen: %w", err)
	}
	return models.ConnectivityRecord{
		UserID:   userID,
		DeviceID: fields[constants.FieldDeviceID],
		AreaName: fields[constants.FieldArea],
		LastSeen: lastSeen,
	}, nil
}
