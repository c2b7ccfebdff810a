package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vietship/shiptrack/internal/pkg/models"
)

func TestInRegion(t *testing.T) {
	region := models.RegionConfig{
		MinLat: 8.18,
		MaxLat: 23.39,
		MinLng: 102.14,
		MaxLng: 109.46,
	}

	assert.True(t, InRegion(models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}, region))
	assert.True(t, InRegion(models.Coordinate{Latitude: 21.0285, Longitude: 105.8542}, region))
	assert.False(t, InRegion(models.Coordinate{Latitude: 1.3521, Longitude: 103.8198}, region))
	assert.False(t, InRegion(models.Coordinate{Latitude: 10.8414, Longitude: 120.0}, region))
}

func TestGeohashRoundTrip(t *testing.T) {
	origin := models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}

	hash := EncodeLocation(origin, 7)
	assert.Len(t, hash, 7)

	decoded := DecodeGeohash(hash)
	assert.InDelta(t, origin.Latitude, decoded.Latitude, 0.001)
	assert.InDelta(t, origin.Longitude, decoded.Longitude, 0.001)
}

func TestCalculateDistance(t *testing.T) {
	thuDuc := models.Coordinate{Latitude: 10.8414, Longitude: 106.8101}
	district1 := models.Coordinate{Latitude: 10.7769, Longitude: 106.7009}

	distance := CalculateDistance(thuDuc, district1)
	assert.InDelta(t, 13.9, distance, 0.3)

	assert.Zero(t, CalculateDistance(thuDuc, thuDuc))
}
