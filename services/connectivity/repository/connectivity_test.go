package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdrop/internal/pkg/constants"
	"campusdrop/internal/pkg/database"
	"campusdrop/internal/pkg/models"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func testConfig() *models.Config {
	return &models.Config{
		Connectivity: models.ConnectivityConfig{
			StalenessHorizon: 5 * time.Minute,
			RecordTTL:        24 * time.Hour,
		},
	}
}

func testRecord(userID, deviceID, area string) models.ConnectivityRecord {
	return models.ConnectivityRecord{
		UserID:   userID,
		DeviceID: deviceID,
		AreaName: area,
		LastSeen: time.Now().UTC(),
	}
}

func TestUpsertRecord(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	err := repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit"))
	assert.NoError(t, err)

	userKey := fmt.Sprintf(constants.KeyUserConnectivity, "user-1")
	assert.True(t, mr.Exists(userKey))

	// Record carries a TTL
	assert.Greater(t, mr.TTL(userKey), time.Duration(0))

	// User joined the area set and the area is tracked
	members, err := client.SMembers(ctx, fmt.Sprintf(constants.KeyAreaPresence, "sbit")).Result()
	require.NoError(t, err)
	assert.Contains(t, members, "user-1")

	tracked, err := client.SMembers(ctx, constants.KeyTrackedAreas).Result()
	require.NoError(t, err)
	assert.Contains(t, tracked, "sbit")
}

func TestUpsertRecordMovesAreas(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "tdi")))

	oldMembers, err := client.SMembers(ctx, fmt.Sprintf(constants.KeyAreaPresence, "sbit")).Result()
	require.NoError(t, err)
	assert.NotContains(t, oldMembers, "user-1")

	newMembers, err := client.SMembers(ctx, fmt.Sprintf(constants.KeyAreaPresence, "tdi")).Result()
	require.NoError(t, err)
	assert.Contains(t, newMembers, "user-1")
}

func TestUpsertRecordOffCampus(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	// User pings from inside an area, then from outside every area
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "")))

	members, err := client.SMembers(ctx, fmt.Sprintf(constants.KeyAreaPresence, "sbit")).Result()
	require.NoError(t, err)
	assert.NotContains(t, members, "user-1")

	// The record itself survives with an empty area
	record, ok, err := repo.Record(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, record.AreaName)
	assert.Equal(t, "device-1", record.DeviceID)
}

func TestRecordMissing(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})

	_, ok, err := repo.Record(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordsByArea(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-2", "device-2", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-3", "device-3", "tdi")))

	records, err := repo.RecordsByArea(ctx, "sbit")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "sbit", rec.AreaName)
	}
}

func TestRecordsByAreaPrunesDanglingMembers(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-2", "device-2", "sbit")))

	// Simulate user-2's record expiring while the set member lingers
	mr.Del(fmt.Sprintf(constants.KeyUserConnectivity, "user-2"))

	records, err := repo.RecordsByArea(ctx, "sbit")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "user-1", records[0].UserID)

	// The dangling member was pruned
	members, err := client.SMembers(ctx, fmt.Sprintf(constants.KeyAreaPresence, "sbit")).Result()
	require.NoError(t, err)
	assert.NotContains(t, members, "user-2")
}

func TestTrackedAreas(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()

	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})
	ctx := context.Background()

	areas, err := repo.TrackedAreas(ctx)
	require.NoError(t, err)
	assert.Empty(t, areas)

	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-1", "device-1", "sbit")))
	require.NoError(t, repo.UpsertRecord(ctx, testRecord("user-2", "device-2", "tdi")))

	areas, err = repo.TrackedAreas(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sbit", "tdi"}, areas)
}

func TestUpsertRecordRedisError(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewConnectivityRepository(testConfig(), &database.RedisClient{Client: client})

	mr.Close()

	err := repo.UpsertRecord(context.Background(), testRecord("user-1", "device-1", "sbit"))
	assert.Error(t, err)
}
