package polyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietship/shiptrack/internal/pkg/models"
)

func TestDecode_KnownEncoding(t *testing.T) {
	// Reference example from the Google polyline algorithm docs.
	points, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, points[0].Longitude, 1e-5)
	assert.InDelta(t, 40.7, points[1].Latitude, 1e-5)
	assert.InDelta(t, -120.95, points[1].Longitude, 1e-5)
	assert.InDelta(t, 43.252, points[2].Latitude, 1e-5)
	assert.InDelta(t, -126.453, points[2].Longitude, 1e-5)
}

func TestEncode_KnownEncoding(t *testing.T) {
	points := []models.Coordinate{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}

	encoded := Encode(points)

	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)
}

func TestRoundTrip(t *testing.T) {
	original := []models.Coordinate{
		{Latitude: 10.8414, Longitude: 106.8101},
		{Latitude: 10.8423, Longitude: 106.8095},
		{Latitude: 10.8467, Longitude: 106.8042},
		{Latitude: -0.00001, Longitude: 0.00001},
		{Latitude: 0, Longitude: 0},
	}

	decoded, err := Decode(Encode(original))

	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.InDelta(t, original[i].Latitude, decoded[i].Latitude, 1e-5)
		assert.InDelta(t, original[i].Longitude, decoded[i].Longitude, 1e-5)
	}
}

func TestDecode_Empty(t *testing.T) {
	points, err := Decode("")

	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "truncated chunk sequence", encoded: "_p~iF~ps|U_ulL"[:13]},
		{name: "character below offset", encoded: "_p~iF\x1f"},
		{name: "missing longitude delta", encoded: "_p~iF"},
		{name: "unterminated chunk", encoded: "____________"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)

			assert.ErrorIs(t, err, ErrMalformedGeometry)
		})
	}
}
