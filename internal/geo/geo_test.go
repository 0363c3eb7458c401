package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		record   map[string]any
		expected *Coordinates
	}{
		{"Mixed string and number", map[string]any{"latitude": "40.5", "longitude": -74}, &Coordinates{40.5, -74}},
		{"Short names", map[string]any{"lat": 51.5, "lng": -0.12}, &Coordinates{51.5, -0.12}},
		{"Nested location", map[string]any{"location": map[string]any{"lat": "10", "lon": "20"}}, &Coordinates{10, 20}},
		{"Nested coords", map[string]any{"coords": map[string]any{"latitude": 1.5, "longitude": 2.5}}, &Coordinates{1.5, 2.5}},
		{"Latitude out of range", map[string]any{"latitude": 200, "longitude": 0}, nil},
		{"Longitude out of range", map[string]any{"latitude": 0, "longitude": -181}, nil},
		{"Missing longitude", map[string]any{"latitude": 10}, nil},
		{"Unparseable", map[string]any{"latitude": "north", "longitude": "west"}, nil},
		{"Nil record", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCoordinates(tt.record))
		})
	}
}

func TestExtractCoordinates_FirstParseableCandidateWins(t *testing.T) {
	record := map[string]any{
		"latitude":  "",
		"lat":       "12.25",
		"longitude": nil,
		"location":  map[string]any{"longitude": 33},
	}
	assert.Equal(t, &Coordinates{12.25, 33}, ExtractCoordinates(record))
}

func TestExtractCoordinates_DecodedJSON(t *testing.T) {
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"location":{"latitude":"34.05","longitude":-118.24}}`), &record))
	assert.Equal(t, &Coordinates{34.05, -118.24}, ExtractCoordinates(record))
}

func TestNewCoordinates_RejectsNonFinite(t *testing.T) {
	assert.Nil(t, NewCoordinates(math.NaN(), 0))
	assert.Nil(t, NewCoordinates(0, math.Inf(1)))
	assert.NotNil(t, NewCoordinates(-90, 180))
}

func TestDistanceMiles(t *testing.T) {
	t.Run("Same point", func(t *testing.T) {
		d := DistanceMiles(&Coordinates{0, 0}, &Coordinates{0, 0})
		require.NotNil(t, d)
		assert.Equal(t, 0.0, *d)
	})

	t.Run("New York to Los Angeles", func(t *testing.T) {
		d := DistanceMiles(&Coordinates{40.7128, -74.0060}, &Coordinates{34.0522, -118.2437})
		require.NotNil(t, d)
		assert.InDelta(t, 2445, *d, 5)
	})

	t.Run("Rounded to one decimal", func(t *testing.T) {
		d := DistanceMiles(&Coordinates{40.7128, -74.0060}, &Coordinates{40.7306, -73.9352})
		require.NotNil(t, d)
		assert.Equal(t, math.Round(*d*10)/10, *d)
	})

	t.Run("Missing side", func(t *testing.T) {
		assert.Nil(t, DistanceMiles(nil, &Coordinates{0, 0}))
		assert.Nil(t, DistanceMiles(&Coordinates{0, 0}, nil))
	})
}

func TestDistanceMiles_Antipodes(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lng := -180.0; lng <= 180; lng += 7.5 {
			d := DistanceMiles(&Coordinates{lat, lng}, &Coordinates{-lat, lng + 180})
			require.NotNil(t, d, "lat=%v lng=%v", lat, lng)
			assert.InDelta(t, 12436.6, *d, 0.1, "lat=%v lng=%v", lat, lng)
		}
	}
}

func TestDistanceLabel(t *testing.T) {
	d := 12.3
	assert.Equal(t, "12.3 miles", DistanceLabel(&d))
	zero := 0.0
	assert.Equal(t, "0 miles", DistanceLabel(&zero))
	assert.Equal(t, "Distance unavailable", DistanceLabel(nil))
}
