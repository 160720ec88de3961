package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusdrop/internal/pkg/models"
)

type fakeCatalogRepo struct {
	areas []models.Area
	err   error
	calls int
}

func (f *fakeCatalogRepo) ListAreas(_ context.Context) ([]models.Area, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.areas, nil
}

type fakeLocationGW struct {
	events []models.LocationUpdateEvent
	err    error
}

func (f *fakeLocationGW) PublishLocationUpdate(_ context.Context, event models.LocationUpdateEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type pingCall struct {
	userID   string
	deviceID string
	areaName string
	seenAt   time.Time
}

type fakePresence struct {
	pings []pingCall
	err   error
}

func (f *fakePresence) RecordPing(_ context.Context, userID, deviceID, areaName string, seenAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.pings = append(f.pings, pingCall{userID: userID, deviceID: deviceID, areaName: areaName, seenAt: seenAt})
	return nil
}

// Test catalog: sbit circle plus a second circle 800m to the east, so their
// 400m boundaries meet exactly halfway.
func testAreas() []models.Area {
	tdiCenter := models.Coordinate{
		Latitude:  campusCenter.Latitude,
		Longitude: campusCenter.Longitude + 0.0082245,
	}
	return []models.Area{
		circleArea("sbit", campusCenter, 400),
		circleArea("tdi", tdiCenter, 400),
	}
}

func newTestUC(t *testing.T, cfg models.LocationConfig, areas []models.Area) (*LocationUC, *fakeLocationGW, *fakePresence) {
	t.Helper()
	repo := &fakeCatalogRepo{areas: areas}
	gw := &fakeLocationGW{}
	presence := &fakePresence{}
	uc := NewLocationUC(cfg, repo, gw, presence)

	_, err := uc.ReloadCatalog(context.Background())
	require.NoError(t, err)
	return uc, gw, presence
}

func defaultCfg() models.LocationConfig {
	return models.LocationConfig{EdgeBufferM: 50}
}

// eastOf shifts a coordinate roughly meters east at campus latitude.
func eastOf(c models.Coordinate, meters float64) models.Coordinate {
	return models.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude + meters/97270.0}
}

// northOf shifts a coordinate roughly meters north.
func northOf(c models.Coordinate, meters float64) models.Coordinate {
	return models.Coordinate{Latitude: c.Latitude + meters/111194.9, Longitude: c.Longitude}
}

func TestResolveInteriorPoint(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	// 100m east of the sbit center: deep inside, far from every boundary
	result, err := uc.Resolve(context.Background(), eastOf(campusCenter, 100), models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "sbit", result.PrimaryArea.Name)
	assert.InDelta(t, 100, result.DistanceToPrimary, 1)
	assert.False(t, result.IsOnEdge)
	assert.Empty(t, result.EdgeAreas)
	assert.NotEmpty(t, result.Geohash)
}

func TestResolveNearOwnBoundary(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	// 360m east: still inside sbit, 40m from its boundary and 40m from
	// the neighboring circle's inflated boundary.
	result, err := uc.Resolve(context.Background(), eastOf(campusCenter, 360), models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "sbit", result.PrimaryArea.Name)
	assert.True(t, result.IsOnEdge)

	names := edgeNames(result)
	assert.Contains(t, names, "sbit")
	assert.Contains(t, names, "tdi")
}

func TestResolveOutsideAllWithinBuffer(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	// 430m north of the sbit center: 30m past the boundary, outside both
	// circles but inside sbit's edge buffer. The nearest area still becomes
	// the primary, flagged as ambiguous.
	result, err := uc.Resolve(context.Background(), northOf(campusCenter, 430), models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "sbit", result.PrimaryArea.Name)
	assert.InDelta(t, 430, result.DistanceToPrimary, 1)
	assert.True(t, result.IsOnEdge)
	assert.Equal(t, []string{"sbit"}, edgeNames(result))
}

func TestResolveEdgeSetListsEveryBufferHit(t *testing.T) {
	// Seven concentric circles: a point just past their shared boundary is
	// ambiguous with all of them, and the edge set reports all seven.
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	areas := make([]models.Area, 0, len(names))
	for _, name := range names {
		areas = append(areas, circleArea(name, campusCenter, 400))
	}
	uc, _, _ := newTestUC(t, defaultCfg(), areas)

	result, err := uc.Resolve(context.Background(), northOf(campusCenter, 430), models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "a", result.PrimaryArea.Name)
	assert.True(t, result.IsOnEdge)
	assert.Len(t, result.EdgeAreas, len(names))
}

func TestResolveFarOutside(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	result, err := uc.Resolve(context.Background(),
		models.Coordinate{Latitude: 28.90, Longitude: 77.00}, models.ResolveNormal)
	require.NoError(t, err)

	assert.Nil(t, result.PrimaryArea)
	assert.False(t, result.IsOnEdge)
	assert.Empty(t, result.EdgeAreas)
}

func TestResolveSharedBoundary(t *testing.T) {
	// Two squares sharing an edge at longitude 77.155. A point on the
	// shared edge is ambiguous with both.
	west := models.Area{Name: "west", Geometry: models.Polygon{Vertices: []models.Coordinate{
		{Latitude: 28.980, Longitude: 77.145},
		{Latitude: 28.990, Longitude: 77.145},
		{Latitude: 28.990, Longitude: 77.155},
		{Latitude: 28.980, Longitude: 77.155},
	}}}
	east := models.Area{Name: "east", Geometry: models.Polygon{Vertices: []models.Coordinate{
		{Latitude: 28.980, Longitude: 77.155},
		{Latitude: 28.990, Longitude: 77.155},
		{Latitude: 28.990, Longitude: 77.165},
		{Latitude: 28.980, Longitude: 77.165},
	}}}

	uc, _, _ := newTestUC(t, defaultCfg(), []models.Area{west, east})

	result, err := uc.Resolve(context.Background(),
		models.Coordinate{Latitude: 28.985, Longitude: 77.155}, models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.True(t, result.IsOnEdge)

	names := edgeNames(result)
	assert.Contains(t, names, "west")
	assert.Contains(t, names, "east")
}

func TestResolveOverlapTieBreakByName(t *testing.T) {
	// Concentric circles: equal distance to both references, so the
	// alphabetically first name wins.
	uc, _, _ := newTestUC(t, defaultCfg(), []models.Area{
		circleArea("beta", campusCenter, 400),
		circleArea("alpha", campusCenter, 400),
	})

	result, err := uc.Resolve(context.Background(), campusCenter, models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "alpha", result.PrimaryArea.Name)
}

func TestResolveZeroBufferDisablesEdges(t *testing.T) {
	cfg := models.LocationConfig{EdgeBufferM: 0}
	uc, _, _ := newTestUC(t, cfg, testAreas())

	result, err := uc.Resolve(context.Background(), eastOf(campusCenter, 399), models.ResolveNormal)
	require.NoError(t, err)

	require.NotNil(t, result.PrimaryArea)
	assert.False(t, result.IsOnEdge)
	assert.Empty(t, result.EdgeAreas)
}

func TestResolveInvalidCoordinate(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	_, err := uc.Resolve(context.Background(),
		models.Coordinate{Latitude: 91, Longitude: 0}, models.ResolveNormal)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}

func TestResolveEmptyCatalog(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), nil)

	result, err := uc.Resolve(context.Background(), campusCenter, models.ResolveNormal)
	require.NoError(t, err)

	assert.Nil(t, result.PrimaryArea)
	assert.False(t, result.IsOnEdge)
}

func TestResolveFastMode(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	t.Run("inside nominal radius", func(t *testing.T) {
		result, err := uc.Resolve(context.Background(), eastOf(campusCenter, 100), models.ResolveFast)
		require.NoError(t, err)

		require.NotNil(t, result.PrimaryArea)
		assert.Equal(t, "sbit", result.PrimaryArea.Name)
		// Fast mode never reports edges
		assert.False(t, result.IsOnEdge)
		assert.Empty(t, result.EdgeAreas)
	})

	t.Run("just past nominal radius", func(t *testing.T) {
		result, err := uc.Resolve(context.Background(), northOf(campusCenter, 430), models.ResolveFast)
		require.NoError(t, err)
		assert.Nil(t, result.PrimaryArea)
	})

	t.Run("slack absorbs jitter", func(t *testing.T) {
		cfg := models.LocationConfig{EdgeBufferM: 50, FastSlackM: 50}
		ucSlack, _, _ := newTestUC(t, cfg, testAreas())

		result, err := ucSlack.Resolve(context.Background(), northOf(campusCenter, 430), models.ResolveFast)
		require.NoError(t, err)
		require.NotNil(t, result.PrimaryArea)
		assert.Equal(t, "sbit", result.PrimaryArea.Name)
	})
}

func TestReloadCatalogSwapsAtomically(t *testing.T) {
	repo := &fakeCatalogRepo{areas: testAreas()}
	uc := NewLocationUC(defaultCfg(), repo, &fakeLocationGW{}, &fakePresence{})

	count, err := uc.ReloadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Shrink the catalog and reload
	repo.areas = []models.Area{circleArea("pallri", models.Coordinate{Latitude: 28.97, Longitude: 77.14}, 350)}
	count, err = uc.ReloadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	result, err := uc.Resolve(context.Background(), campusCenter, models.ResolveNormal)
	require.NoError(t, err)
	assert.Nil(t, result.PrimaryArea)
}

func TestReloadCatalogErrorKeepsOldSnapshot(t *testing.T) {
	repo := &fakeCatalogRepo{areas: testAreas()}
	uc := NewLocationUC(defaultCfg(), repo, &fakeLocationGW{}, &fakePresence{})

	_, err := uc.ReloadCatalog(context.Background())
	require.NoError(t, err)

	repo.err = errors.New("db down")
	_, err = uc.ReloadCatalog(context.Background())
	assert.Error(t, err)

	// Classification still runs against the last good catalog
	result, err := uc.Resolve(context.Background(), campusCenter, models.ResolveNormal)
	require.NoError(t, err)
	require.NotNil(t, result.PrimaryArea)
	assert.Equal(t, "sbit", result.PrimaryArea.Name)
}

func TestAreasAndAreaLookup(t *testing.T) {
	uc, _, _ := newTestUC(t, defaultCfg(), testAreas())

	infos := uc.Areas(context.Background())
	assert.Len(t, infos, 2)
	assert.Equal(t, "sbit", infos[0].Name)
	assert.Equal(t, "circle", infos[0].Kind)

	info, err := uc.Area(context.Background(), "tdi")
	require.NoError(t, err)
	assert.Equal(t, "tdi", info.Name)

	_, err = uc.Area(context.Background(), "nope")
	assert.ErrorIs(t, err, models.ErrAreaNotFound)
}

func TestUpdateLocationPublishesAndRecords(t *testing.T) {
	uc, gw, presence := newTestUC(t, defaultCfg(), testAreas())

	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	update := models.GPSUpdate{
		UserID:    "user-1",
		DeviceID:  "device-1",
		Latitude:  campusCenter.Latitude,
		Longitude: campusCenter.Longitude,
		Timestamp: &ts,
	}

	result, err := uc.UpdateLocation(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, "sbit", result.PrimaryAreaName())

	require.Len(t, gw.events, 1)
	event := gw.events[0]
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "sbit", event.PrimaryArea)
	assert.Equal(t, ts, event.Timestamp)
	assert.NotEmpty(t, event.Geohash)

	require.Len(t, presence.pings, 1)
	assert.Equal(t, "sbit", presence.pings[0].areaName)
	assert.Equal(t, "device-1", presence.pings[0].deviceID)
}

func TestUpdateLocationToleratesPublishFailure(t *testing.T) {
	repo := &fakeCatalogRepo{areas: testAreas()}
	gw := &fakeLocationGW{err: errors.New("nsq down")}
	presence := &fakePresence{}
	uc := NewLocationUC(defaultCfg(), repo, gw, presence)
	_, err := uc.ReloadCatalog(context.Background())
	require.NoError(t, err)

	update := models.GPSUpdate{
		UserID:    "user-1",
		DeviceID:  "device-1",
		Latitude:  campusCenter.Latitude,
		Longitude: campusCenter.Longitude,
	}

	result, err := uc.UpdateLocation(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, "sbit", result.PrimaryAreaName())
}

func TestUpdateLocationInvalidCoordinate(t *testing.T) {
	uc, gw, _ := newTestUC(t, defaultCfg(), testAreas())

	update := models.GPSUpdate{UserID: "user-1", DeviceID: "device-1", Latitude: 120, Longitude: 77}
	_, err := uc.UpdateLocation(context.Background(), update)
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
	assert.Empty(t, gw.events)
}

func TestHandlePing(t *testing.T) {
	uc, _, presence := newTestUC(t, defaultCfg(), testAreas())

	t.Run("missing device id", func(t *testing.T) {
		update := models.GPSUpdate{UserID: "user-1", Latitude: campusCenter.Latitude, Longitude: campusCenter.Longitude}
		err := uc.HandlePing(context.Background(), update)
		assert.ErrorIs(t, err, models.ErrInvalidDevice)
	})

	t.Run("records fast classification", func(t *testing.T) {
		update := models.GPSUpdate{
			UserID:    "user-1",
			DeviceID:  "device-1",
			Latitude:  campusCenter.Latitude,
			Longitude: campusCenter.Longitude,
		}
		err := uc.HandlePing(context.Background(), update)
		require.NoError(t, err)

		require.NotEmpty(t, presence.pings)
		last := presence.pings[len(presence.pings)-1]
		assert.Equal(t, "sbit", last.areaName)
	})

	t.Run("outside campus records empty area", func(t *testing.T) {
		update := models.GPSUpdate{
			UserID:    "user-2",
			DeviceID:  "device-2",
			Latitude:  28.90,
			Longitude: 77.00,
		}
		err := uc.HandlePing(context.Background(), update)
		require.NoError(t, err)

		last := presence.pings[len(presence.pings)-1]
		assert.Empty(t, last.areaName)
	})
}

func edgeNames(result models.AreaClassification) []string {
	names := make([]string, 0, len(result.EdgeAreas))
	for _, a := range result.EdgeAreas {
		names = append(names, a.Name)
	}
	return names
}
