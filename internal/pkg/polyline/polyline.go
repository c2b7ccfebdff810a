// Package polyline implements the Google encoded polyline algorithm used
// by the Goong Directions API for route geometry: signed coordinate deltas
// scaled by 1e5, zig-zag encoded, packed into 5-bit chunks offset by 63.
package polyline

import (
	"errors"
	"strings"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

// ErrMalformedGeometry is returned when an encoded string is truncated or
// contains a chunk sequence whose continuation bit never terminates.
var ErrMalformedGeometry = errors.New("malformed route geometry")

const (
	scale = 1e5
	// A delta of +/-180 degrees needs at most 7 chunks of 5 bits;
	// anything longer cannot be a valid coordinate delta.
	maxChunks = 7
)

// Decode converts an encoded geometry string into an ordered coordinate
// sequence. Malformed input fails with ErrMalformedGeometry and never
// yields a partial result.
func Decode(encoded string) ([]models.Coordinate, error) {
	var points []models.Coordinate
	var lat, lng int64

	index := 0
	for index < len(encoded) {
		dlat, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		lat += dlat
		index = next

		// A latitude delta without a matching longitude delta is truncation.
		if index >= len(encoded) {
			return nil, ErrMalformedGeometry
		}

		dlng, next, err := decodeDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		lng += dlng
		index = next

		points = append(points, models.Coordinate{
			Latitude:  float64(lat) / scale,
			Longitude: float64(lng) / scale,
		})
	}

	return points, nil
}

// decodeDelta reads one zig-zag encoded signed delta starting at index and
// returns the delta plus the index of the next unread byte.
func decodeDelta(encoded string, index int) (int64, int, error) {
	var result int64
	var shift uint
	chunks := 0

	for {
		if index >= len(encoded) {
			// Continuation bit promised more chunks than the string holds.
			return 0, 0, ErrMalformedGeometry
		}

		b := int64(encoded[index]) - 63
		if b < 0 {
			return 0, 0, ErrMalformedGeometry
		}
		index++
		chunks++
		if chunks > maxChunks {
			return 0, 0, ErrMalformedGeometry
		}

		result |= (b & 0x1f) << shift
		shift += 5

		if b < 0x20 {
			break
		}
	}

	// Zig-zag decode
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode converts an ordered coordinate sequence into the compact encoded
// representation. Encode(nil) is the empty string.
func Encode(points []models.Coordinate) string {
	var sb strings.Builder
	var prevLat, prevLng int64

	for _, p := range points {
		lat := int64(round(p.Latitude * scale))
		lng := int64(round(p.Longitude * scale))

		encodeDelta(&sb, lat-prevLat)
		encodeDelta(&sb, lng-prevLng)

		prevLat, prevLng = lat, lng
	}

	return sb.String()
}

func encodeDelta(sb *strings.Builder, delta int64) {
	// Zig-zag encode
	v := delta << 1
	if delta < 0 {
		v = ^v
	}

	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}

func round(v float64) float64 {
	if v < 0 {
		return v - 0.5
	}
	return v + 0.5
}
