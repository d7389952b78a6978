package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *int64
	}{
		{name: "plain seconds", input: "600s", want: int64Ptr(600)},
		{name: "zero", input: "0s", want: int64Ptr(0)},
		{name: "missing suffix", input: "600", want: nil},
		{name: "fractional", input: "12.5s", want: nil},
		{name: "suffix only", input: "s", want: nil},
		{name: "leading space", input: " 600s", want: nil},
		{name: "trailing garbage", input: "600sx", want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "nil", input: nil, want: nil},
		{name: "number", input: float64(600), want: nil},
		{name: "bool", input: true, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDurationSeconds(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalizeRecordRouteLevelFieldsWin(t *testing.T) {
	pair := decodePair(t, `{
		"origin_id": 101,
		"dest_id": "202",
		"response": {"routes": [{
			"duration": "600s",
			"distanceMeters": 1500,
			"polyline": {"encodedPolyline": "route_pl"},
			"legs": [{
				"duration": "500s",
				"distanceMeters": 1400,
				"polyline": {"encodedPolyline": "leg_pl"}
			}]
		}]}
	}`)

	n, ok := normalizeRecord(pair)
	require.True(t, ok)

	assert.Equal(t, "101", n.originID)
	assert.Equal(t, "202", n.destID)
	require.NotNil(t, n.durationSec)
	assert.Equal(t, int64(600), *n.durationSec)
	require.NotNil(t, n.distanceM)
	assert.Equal(t, 1500.0, *n.distanceM)
	require.NotNil(t, n.encodedPolyline)
	assert.Equal(t, "route_pl", *n.encodedPolyline)
}

func TestNormalizeRecordFallsBackToFirstLeg(t *testing.T) {
	pair := decodePair(t, `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [{
			"legs": [{
				"duration": "500s",
				"distanceMeters": 1400,
				"polyline": {"encodedPolyline": "leg_pl"}
			}]
		}]}
	}`)

	n, ok := normalizeRecord(pair)
	require.True(t, ok)

	require.NotNil(t, n.durationSec)
	assert.Equal(t, int64(500), *n.durationSec)
	require.NotNil(t, n.distanceM)
	assert.Equal(t, 1400.0, *n.distanceM)
	require.NotNil(t, n.encodedPolyline)
	assert.Equal(t, "leg_pl", *n.encodedPolyline)
}

func TestNormalizeRecordAllFieldsAbsent(t *testing.T) {
	pair := decodePair(t, `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [{"legs": [{}]}]}
	}`)

	n, ok := normalizeRecord(pair)
	require.True(t, ok)

	assert.Nil(t, n.durationSec)
	assert.Nil(t, n.distanceM)
	assert.Nil(t, n.encodedPolyline, "slim polyline is explicit null when absent")
}

func TestNormalizeRecordNoRoutes(t *testing.T) {
	for _, body := range []string{
		`{"origin_id": "1", "dest_id": "2", "response": {"routes": []}}`,
		`{"origin_id": "1", "dest_id": "2", "response": {}}`,
	} {
		_, ok := normalizeRecord(decodePair(t, body))
		assert.False(t, ok)
	}
}

func TestBuildMediumLegPolylineIsEmptyStringWhenAbsent(t *testing.T) {
	pair := decodePair(t, `{
		"origin_id": "1", "dest_id": "2",
		"response": {"routes": [{
			"duration": "60s",
			"legs": [{
				"duration": "60s",
				"startLocation": {"latLng": {"latitude": 59.91, "longitude": 10.75}},
				"endLocation": {"latLng": {"latitude": 59.92, "longitude": 10.76}}
			}]
		}]}
	}`)

	n, ok := normalizeRecord(pair)
	require.True(t, ok)

	m := buildMedium(n)
	require.NotNil(t, m.StartLat)
	assert.Equal(t, 59.91, *m.StartLat)
	require.NotNil(t, m.StartLon)
	assert.Equal(t, 10.75, *m.StartLon)
	require.Len(t, m.Legs, 1)
	assert.Equal(t, "", m.Legs[0].EncodedPolyline)
	require.NotNil(t, m.Legs[0].EndLat)
	assert.Equal(t, 59.92, *m.Legs[0].EndLat)
}

func decodePair(t *testing.T, body string) *cachedPair {
	t.Helper()
	var pair cachedPair
	require.NoError(t, json.Unmarshal([]byte(body), &pair))
	return &pair
}

func int64Ptr(v int64) *int64 { return &v }
