package usecase

import (
	"context"
	"sort"
	"time"

	"campusdrop/internal/pkg/logger"
	"campusdrop/internal/pkg/models"
	"campusdrop/internal/utils"
	"campusdrop/services/location"
)

// LocationUC implements area classification over an atomically swapped
// catalog index.
type LocationUC struct {
	cfg         models.LocationConfig
	catalogRepo location.CatalogRepo
	locationGW  location.LocationGW
	presence    location.PresenceRecorder
	index       *AreaIndex
}

// NewLocationUC creates a new location usecase
func NewLocationUC(
	cfg models.LocationConfig,
	catalogRepo location.CatalogRepo,
	locationGW location.LocationGW,
	presence location.PresenceRecorder,
) *LocationUC {
	return &LocationUC{
		cfg:         cfg,
		catalogRepo: catalogRepo,
		locationGW:  locationGW,
		presence:    presence,
		index:       NewAreaIndex(),
	}
}

// ReloadCatalog loads the area catalog from storage and swaps the index in
// one step. Returns the number of areas loaded.
func (uc *LocationUC) ReloadCatalog(ctx context.Context) (int, error) {
	areas, err := uc.catalogRepo.ListAreas(ctx)
	if err != nil {
		return 0, err
	}
	uc.index.Swap(areas)
	logger.Info("Area catalog reloaded", logger.Int("areas", len(areas)))
	return len(areas), nil
}

// Areas returns the wire representation of the current catalog snapshot.
func (uc *LocationUC) Areas(_ context.Context) []models.AreaInfo {
	areas := uc.index.Areas()
	out := make([]models.AreaInfo, 0, len(areas))
	for _, a := range areas {
		out = append(out, a.Info())
	}
	return out
}

// Area returns a single catalog entry by name.
func (uc *LocationUC) Area(_ context.Context, name string) (models.AreaInfo, error) {
	a, ok := uc.index.Area(name)
	if !ok {
		return models.AreaInfo{}, models.ErrAreaNotFound
	}
	return a.Info(), nil
}

// Resolve classifies a coordinate against the current catalog snapshot.
func (uc *LocationUC) Resolve(_ context.Context, c models.Coordinate, mode models.ResolveMode) (models.AreaClassification, error) {
	if err := c.Validate(); err != nil {
		return models.AreaClassification{}, err
	}

	var result models.AreaClassification
	if mode == models.ResolveFast {
		result = uc.resolveFast(c)
	} else {
		result = uc.resolveNormal(c)
	}
	result.Geohash = utils.EncodeLocation(c, utils.GeohashPrecision)
	return result, nil
}

// resolveNormal runs full containment plus the edge-buffer sweep.
func (uc *LocationUC) resolveNormal(c models.Coordinate) models.AreaClassification {
	var result models.AreaClassification

	containing := uc.index.ContainingAreas(c)
	if len(containing) > 0 {
		primary := containing[0]
		result.PrimaryArea = &primary.Area
		result.DistanceToPrimary = primary.DistanceM
	}

	result.EdgeAreas = uc.edgeAreas(c, result.PrimaryArea)
	result.IsOnEdge = len(result.EdgeAreas) > 0

	// Outside every area but inside some buffer: the nearest area is still
	// the answer, flagged as ambiguous.
	if result.PrimaryArea == nil && result.IsOnEdge {
		if nearest := uc.index.NearestAreas(c, 1); len(nearest) > 0 {
			result.PrimaryArea = &nearest[0].Area
			result.DistanceToPrimary = nearest[0].DistanceM
		}
	}
	return result
}

// edgeAreas collects the areas the point is ambiguous with. The primary area
// itself counts only when the point sits within the buffer of its own
// boundary; any other area counts when the point is within the buffer of it.
func (uc *LocationUC) edgeAreas(c models.Coordinate, primary *models.Area) []models.Area {
	buffer := uc.cfg.EdgeBufferM
	if buffer <= 0 {
		return nil
	}

	type edgeHit struct {
		area models.Area
		dist float64
	}
	var hits []edgeHit
	for _, a := range uc.index.Areas() {
		if primary != nil && a.Name == primary.Name {
			if d := a.Geometry.DistanceToBoundary(c); d <= buffer {
				hits = append(hits, edgeHit{area: a, dist: d})
			}
			continue
		}
		if a.Geometry.ContainsWithin(c, buffer) {
			hits = append(hits, edgeHit{area: a, dist: a.Geometry.DistanceToBoundary(c)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]models.Area, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.area)
	}
	return out
}

// resolveFast classifies by distance to each area's reference point only.
// No edge detection: background pings do not need it and the savings add up
// at ping volume.
func (uc *LocationUC) resolveFast(c models.Coordinate) models.AreaClassification {
	var (
		best     *models.Area
		bestDist float64
	)
	for _, a := range uc.index.Areas() {
		threshold := a.Geometry.NominalRadiusM() + uc.cfg.FastSlackM
		ref := a.Geometry.Reference()
		if within, certain := utils.QuickWithin(c, ref, threshold); certain && !within {
			continue
		}
		d := models.DistanceMeters(ref, c)
		if d > threshold {
			continue
		}
		if best == nil || d < bestDist {
			area := a
			best = &area
			bestDist = d
		}
	}

	var result models.AreaClassification
	if best != nil {
		result.PrimaryArea = best
		result.DistanceToPrimary = bestDist
	}
	return result
}

// UpdateLocation classifies a user GPS update, refreshes the user's presence
// record, and publishes the classified update. Presence and publish failures
// are logged but do not fail the update; the classification already
// succeeded.
func (uc *LocationUC) UpdateLocation(ctx context.Context, update models.GPSUpdate) (models.AreaClassification, error) {
	result, err := uc.Resolve(ctx, update.Coordinate(), models.ResolveNormal)
	if err != nil {
		return models.AreaClassification{}, err
	}

	seenAt := time.Now()
	if update.Timestamp != nil {
		seenAt = *update.Timestamp
	}

	if update.DeviceID != "" {
		if err := uc.presence.RecordPing(ctx, update.UserID, update.DeviceID, result.PrimaryAreaName(), seenAt); err != nil {
			logger.Warn("Failed to record presence for GPS update",
				logger.String("user_id", update.UserID),
				logger.Err(err))
		}
	}

	event := models.LocationUpdateEvent{
		UserID:      update.UserID,
		DeviceID:    update.DeviceID,
		Location:    update.Coordinate(),
		PrimaryArea: result.PrimaryAreaName(),
		IsOnEdge:    result.IsOnEdge,
		Geohash:     result.Geohash,
		Timestamp:   seenAt,
	}
	for _, a := range result.EdgeAreas {
		event.EdgeAreas = append(event.EdgeAreas, a.Name)
	}
	if err := uc.locationGW.PublishLocationUpdate(ctx, event); err != nil {
		logger.Error("Failed to publish location update",
			logger.String("user_id", update.UserID),
			logger.Err(err))
	}

	return result, nil
}

// HandlePing classifies a background connectivity ping in fast mode and
// refreshes the presence record. Pings without a device id are rejected.
func (uc *LocationUC) HandlePing(ctx context.Context, update models.GPSUpdate) error {
	if update.DeviceID == "" {
		return models.ErrInvalidDevice
	}

	result, err := uc.Resolve(ctx, update.Coordinate(), models.ResolveFast)
	if err != nil {
		return err
	}

	seenAt := time.Now()
	if update.Timestamp != nil {
		seenAt = *update.Timestamp
	}
	return uc.presence.RecordPing(ctx, update.UserID, update.DeviceID, result.PrimaryAreaName(), seenAt)
}
