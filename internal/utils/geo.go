package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/vietship/shiptrack/internal/pkg/models"
)

// EncodeLocation converts a coordinate to a geohash cell string. Used to
// tag out-of-region samples with a coarse cell for ops logging.
func EncodeLocation(c models.Coordinate, precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// DecodeGeohash converts a geohash string back to a coordinate
func DecodeGeohash(hash string) models.Coordinate {
	lat, lng := geohash.Decode(hash)
	return models.Coordinate{Latitude: lat, Longitude: lng}
}

// InRegion reports whether a coordinate lies inside the configured
// service region bounding box.
func InRegion(c models.Coordinate, region models.RegionConfig) bool {
	return c.Latitude >= region.MinLat && c.Latitude <= region.MaxLat &&
		c.Longitude >= region.MinLng && c.Longitude <= region.MaxLng
}

// CalculateDistance calculates the distance between two coordinates in
// kilometers using the Haversine formula
func CalculateDistance(p1, p2 models.Coordinate) float64 {
	// Earth's radius in kilometers
	const earthRadius = 6371.0

	lat1 := p1.Latitude * math.Pi / 180.0
	lon1 := p1.Longitude * math.Pi / 180.0
	lat2 := p2.Latitude * math.Pi / 180.0
	lon2 := p2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}
