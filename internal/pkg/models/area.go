package models

import "math"

const (
	earthRadiusM = 6371000.0
	degToRad     = math.Pi / 180.0
	// metersPerDegree is the length of one degree of latitude.
	metersPerDegree = earthRadiusM * degToRad
)

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula.
func DistanceMeters(a, b Coordinate) float64 {
	lat1 := a.Latitude * degToRad
	lat2 := b.Latitude * degToRad
	dLat := (b.Latitude - a.Latitude) * degToRad
	dLon := (b.Longitude - a.Longitude) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Geometry is the containment capability of an area. Circle and Polygon are
// the two variants; the resolver never looks past this interface, so new
// geometry kinds can be added without touching it.
type Geometry interface {
	// Contains reports whether the point lies within the geometry.
	// Boundary inclusive.
	Contains(p Coordinate) bool

	// ContainsWithin reports whether the point lies within the geometry
	// inflated outward by bufferM meters.
	ContainsWithin(p Coordinate, bufferM float64) bool

	// DistanceToBoundary returns the distance in meters from the point to
	// the geometry's boundary, regardless of which side the point is on.
	DistanceToBoundary(p Coordinate) float64

	// Reference returns the geometry's single reference coordinate
	// (center for circles, vertex centroid for polygons).
	Reference() Coordinate

	// NominalRadiusM returns the coarse extent of the geometry in meters,
	// used by fast-mode classification.
	NominalRadiusM() float64
}

// Circle is an area bounded by a center point and a radius in meters.
type Circle struct {
	Center  Coordinate `json:"center"`
	RadiusM float64    `json:"radius_m"`
}

func (c Circle) Contains(p Coordinate) bool {
	return DistanceMeters(c.Center, p) <= c.RadiusM
}

func (c Circle) ContainsWithin(p Coordinate, bufferM float64) bool {
	return DistanceMeters(c.Center, p) <= c.RadiusM+bufferM
}

func (c Circle) DistanceToBoundary(p Coordinate) float64 {
	return math.Abs(DistanceMeters(c.Center, p) - c.RadiusM)
}

func (c Circle) Reference() Coordinate { return c.Center }

func (c Circle) NominalRadiusM() float64 { return c.RadiusM }

// Polygon is an area bounded by a closed ring of vertices. The ring is
// implicitly closed; the last vertex does not repeat the first.
type Polygon struct {
	Vertices []Coordinate `json:"vertices"`
}

// polygonBoundaryEpsM treats points this close to an edge as on the
// boundary, keeping containment boundary-inclusive despite float error.
const polygonBoundaryEpsM = 0.01

func (pg Polygon) Contains(p Coordinate) bool {
	if len(pg.Vertices) < 3 {
		return false
	}
	return pg.rayCast(p) || pg.DistanceToBoundary(p) <= polygonBoundaryEpsM
}

func (pg Polygon) ContainsWithin(p Coordinate, bufferM float64) bool {
	if len(pg.Vertices) < 3 {
		return false
	}
	return pg.rayCast(p) || pg.DistanceToBoundary(p) <= bufferM
}

func (pg Polygon) DistanceToBoundary(p Coordinate) float64 {
	min := math.Inf(1)
	n := len(pg.Vertices)
	for i := 0; i < n; i++ {
		d := pointToSegmentMeters(p, pg.Vertices[i], pg.Vertices[(i+1)%n])
		if d < min {
			min = d
		}
	}
	return min
}

func (pg Polygon) Reference() Coordinate {
	var lat, lon float64
	for _, v := range pg.Vertices {
		lat += v.Latitude
		lon += v.Longitude
	}
	n := float64(len(pg.Vertices))
	return Coordinate{Latitude: lat / n, Longitude: lon / n}
}

func (pg Polygon) NominalRadiusM() float64 {
	ref := pg.Reference()
	max := 0.0
	for _, v := range pg.Vertices {
		if d := DistanceMeters(ref, v); d > max {
			max = d
		}
	}
	return max
}

// rayCast runs the even-odd rule on raw lat/lng degrees. Campus-scale areas
// are far from the poles and the antimeridian, so the planar approximation
// holds.
func (pg Polygon) rayCast(p Coordinate) bool {
	inside := false
	n := len(pg.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := pg.Vertices[i], pg.Vertices[j]
		if (vi.Latitude > p.Latitude) != (vj.Latitude > p.Latitude) {
			crossLon := vi.Longitude + (p.Latitude-vi.Latitude)/
				(vj.Latitude-vi.Latitude)*(vj.Longitude-vi.Longitude)
			if p.Longitude < crossLon {
				inside = !inside
			}
		}
	}
	return inside
}

// pointToSegmentMeters projects onto a plane tangent at p and returns the
// distance from p to the segment a-b.
func pointToSegmentMeters(p, a, b Coordinate) float64 {
	ax, ay := planarMeters(p, a)
	bx, by := planarMeters(p, b)
	dx, dy := bx-ax, by-ay
	if dx == 0 && dy == 0 {
		return math.Hypot(ax, ay)
	}
	t := -(ax*dx + ay*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(ax+t*dx, ay+t*dy)
}

func planarMeters(origin, q Coordinate) (x, y float64) {
	x = (q.Longitude - origin.Longitude) * metersPerDegree *
		math.Cos(origin.Latitude*degToRad)
	y = (q.Latitude - origin.Latitude) * metersPerDegree
	return x, y
}

// Area is a named campus zone. Immutable once loaded into the index; a
// catalog reload replaces the whole index atomically.
type Area struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Geometry    Geometry `json:"-"`
}

// AreaDistance pairs an area with the distance from a query point to the
// area's reference coordinate.
type AreaDistance struct {
	Area      Area    `json:"area"`
	DistanceM float64 `json:"distance_m"`
}

// AreaInfo is the wire representation of an area for catalog reads.
type AreaInfo struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name,omitempty"`
	Kind        string     `json:"kind"`
	Center      Coordinate `json:"center"`
	RadiusM     float64    `json:"radius_m"`
}

// Info flattens the area's geometry into its wire representation.
func (a Area) Info() AreaInfo {
	info := AreaInfo{
		Name:        a.Name,
		DisplayName: a.DisplayName,
		Center:      a.Geometry.Reference(),
		RadiusM:     a.Geometry.NominalRadiusM(),
	}
	switch a.Geometry.(type) {
	case Circle:
		info.Kind = "circle"
	case Polygon:
		info.Kind = "polygon"
	default:
		info.Kind = "unknown"
	}
	return info
}
