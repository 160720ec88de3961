package usecase

import (
	"sort"
	"sync/atomic"

	"campusdrop/internal/pkg/models"
)

// catalogSnapshot is an immutable view of the area catalog. A reload builds
// a fresh snapshot and swaps the pointer; readers never see a partial state.
type catalogSnapshot struct {
	areas  []models.Area
	byName map[string]models.Area
}

// AreaIndex serves lock-free catalog reads against the latest snapshot.
type AreaIndex struct {
	snap atomic.Value // *catalogSnapshot
}

// NewAreaIndex creates an index holding an empty catalog.
func NewAreaIndex() *AreaIndex {
	ix := &AreaIndex{}
	ix.Swap(nil)
	return ix
}

// Swap replaces the catalog atomically. Areas are copied and kept sorted by
// name so lookups with equal distances resolve deterministically.
func (ix *AreaIndex) Swap(areas []models.Area) {
	snap := &catalogSnapshot{
		areas:  make([]models.Area, len(areas)),
		byName: make(map[string]models.Area, len(areas)),
	}
	copy(snap.areas, areas)
	sort.Slice(snap.areas, func(i, j int) bool {
		return snap.areas[i].Name < snap.areas[j].Name
	})
	for _, a := range snap.areas {
		snap.byName[a.Name] = a
	}
	ix.snap.Store(snap)
}

func (ix *AreaIndex) current() *catalogSnapshot {
	return ix.snap.Load().(*catalogSnapshot)
}

// Len returns the number of areas in the current snapshot.
func (ix *AreaIndex) Len() int {
	return len(ix.current().areas)
}

// Areas returns the areas of the current snapshot, sorted by name.
func (ix *AreaIndex) Areas() []models.Area {
	return ix.current().areas
}

// Area looks up a single area by name.
func (ix *AreaIndex) Area(name string) (models.Area, bool) {
	a, ok := ix.current().byName[name]
	return a, ok
}

// ContainingAreas returns every area whose geometry contains p, sorted by
// distance to the area's reference point with name as the tie-break.
func (ix *AreaIndex) ContainingAreas(p models.Coordinate) []models.AreaDistance {
	var out []models.AreaDistance
	for _, a := range ix.current().areas {
		if a.Geometry.Contains(p) {
			out = append(out, models.AreaDistance{
				Area:      a,
				DistanceM: models.DistanceMeters(a.Geometry.Reference(), p),
			})
		}
	}
	sortByDistance(out)
	return out
}

// NearestAreas returns up to limit areas ordered by distance from p to each
// area's reference point. limit <= 0 means no cap.
func (ix *AreaIndex) NearestAreas(p models.Coordinate, limit int) []models.AreaDistance {
	snap := ix.current()
	out := make([]models.AreaDistance, 0, len(snap.areas))
	for _, a := range snap.areas {
		out = append(out, models.AreaDistance{
			Area:      a,
			DistanceM: models.DistanceMeters(a.Geometry.Reference(), p),
		})
	}
	sortByDistance(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// sortByDistance orders by distance ascending; the input arrives sorted by
// name, and the stable sort preserves that order for equal distances.
func sortByDistance(ds []models.AreaDistance) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].DistanceM < ds[j].DistanceM
	})
}
