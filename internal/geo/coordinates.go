package geo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coordinates is a validated latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Field spellings probed, in order, when reading coordinates from a raw record.
// Dotted paths descend into nested objects.
var (
	latitudeFields = []string{
		"latitude", "lat", "Latitude", "Lat",
		"location.latitude", "location.lat",
		"coords.latitude", "coords.lat",
	}
	longitudeFields = []string{
		"longitude", "lng", "lon", "long", "Longitude", "Lng",
		"location.longitude", "location.lng", "location.lon",
		"coords.longitude", "coords.lng", "coords.lon",
	}
)

// NewCoordinates validates a pair, returning nil when either value is not a
// finite number within [-90, 90] / [-180, 180].
func NewCoordinates(lat, lng float64) *Coordinates {
	if !isFinite(lat) || !isFinite(lng) {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &Coordinates{Latitude: lat, Longitude: lng}
}

// ExtractCoordinates reads coordinates out of a loosely-typed record. Values
// may be numbers or numeric strings, at the top level or under location.* or
// coords.*. The first candidate that parses to a finite number wins. Missing
// or out-of-range coordinates yield nil.
func ExtractCoordinates(record map[string]any) *Coordinates {
	if record == nil {
		return nil
	}
	lat, ok := probe(record, latitudeFields)
	if !ok {
		return nil
	}
	lng, ok := probe(record, longitudeFields)
	if !ok {
		return nil
	}
	return NewCoordinates(lat, lng)
}

func probe(record map[string]any, fields []string) (float64, bool) {
	for _, field := range fields {
		raw, ok := lookup(record, field)
		if !ok {
			continue
		}
		if v, ok := toFloat(raw); ok {
			return v, true
		}
	}
	return 0, false
}

func lookup(record map[string]any, path string) (any, bool) {
	var cur any = record
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func toFloat(raw any) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	return v, isFinite(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
