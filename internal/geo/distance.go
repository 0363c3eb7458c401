package geo

import (
	"math"
	"strconv"
)

const earthRadiusMiles = 3958.8

const unavailableLabel = "Distance unavailable"

// DistanceMiles is the great-circle distance between a and b in miles,
// rounded to one decimal. It returns nil when either side is missing.
func DistanceMiles(a, b *Coordinates) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	if !isFinite(d) {
		return nil
	}
	rounded := math.Round(d*10) / 10
	return &rounded
}

// DistanceLabel renders a distance for display.
func DistanceLabel(miles *float64) string {
	if miles == nil {
		return unavailableLabel
	}
	return strconv.FormatFloat(*miles, 'f', -1, 64) + " miles"
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	la1 := lat1 * math.Pi / 180.0
	la2 := lat2 * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(la1)*math.Cos(la2)
	// Rounding can push a just past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
