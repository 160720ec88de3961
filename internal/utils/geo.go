package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"campusdrop/internal/pkg/models"
)

// GeohashPrecision yields ~150m cells, fine enough to group nearby
// updates without leaking precise positions downstream.
const GeohashPrecision uint = 7

// EncodeLocation converts a coordinate to a geohash string
func EncodeLocation(c models.Coordinate, precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// DecodeGeohash converts a geohash string to a coordinate
func DecodeGeohash(hash string) models.Coordinate {
	lat, lon := geohash.Decode(hash)
	return models.Coordinate{Latitude: lat, Longitude: lon}
}

// GetNeighbors returns the neighboring geohashes of a given geohash
func GetNeighbors(hash string) []string {
	return geohash.Neighbors(hash)
}

// QuickWithin is a cheap bounding-box prefilter for "is p within radiusM of
// center". certain=true means the answer is definitive either way;
// certain=false means p landed in the box corners and the caller must run the
// exact distance check.
func QuickWithin(p, center models.Coordinate, radiusM float64) (within, certain bool) {
	// One degree of longitude shrinks with latitude.
	latDeg := radiusM / metersPerLatDegree
	lonScale := math.Cos(center.Latitude * math.Pi / 180.0)
	if lonScale < 0.01 {
		lonScale = 0.01
	}
	lonDeg := radiusM / (metersPerLatDegree * lonScale)

	dLat := math.Abs(p.Latitude - center.Latitude)
	dLon := math.Abs(p.Longitude - center.Longitude)

	if dLat > latDeg || dLon > lonDeg {
		return false, true
	}
	// Inscribed box: inside it the point is within the radius for sure.
	inv := math.Sqrt2
	if dLat <= latDeg/inv && dLon <= lonDeg/inv {
		return true, true
	}
	return false, false
}

const metersPerLatDegree = 111194.9 // 6371000 * pi / 180
