package util

import (
	"fmt"
	"math"

	"loca-server/models"
)

// EARTH_RADIUS_METERS is the mean Earth radius used for all spherical math.
const EARTH_RADIUS_METERS = 6371000.0

// CIRCLE_POLYGON_SEGMENTS is the number of bearing steps used when tracing
// a search-radius circle. The ring is closed, so it carries one extra vertex.
const CIRCLE_POLYGON_SEGMENTS = 64

// Haversine returns the great-circle distance in meters between two
// lat/lng points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EARTH_RADIUS_METERS * c
}

// FormatDistance renders meters for display: whole meters under 1km,
// kilometers with one decimal from 1km up.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// CirclePolygon traces a closed ring of equally spaced bearing points at
// the given radius around the center, using spherical trigonometry rather
// than a flat ellipse approximation. Coordinates are [lng, lat].
func CirclePolygon(lat, lng, radiusMeters float64) models.Polygon {
	points := make([][2]float64, 0, CIRCLE_POLYGON_SEGMENTS+1)
	latRad := lat * math.Pi / 180
	lngRad := lng * math.Pi / 180
	delta := radiusMeters / EARTH_RADIUS_METERS

	for i := 0; i <= CIRCLE_POLYGON_SEGMENTS; i++ {
		bearing := float64(i) / CIRCLE_POLYGON_SEGMENTS * 2 * math.Pi
		lat2 := math.Asin(
			math.Sin(latRad)*math.Cos(delta) +
				math.Cos(latRad)*math.Sin(delta)*math.Cos(bearing))
		lng2 := lngRad + math.Atan2(
			math.Sin(bearing)*math.Sin(delta)*math.Cos(latRad),
			math.Cos(delta)-math.Sin(latRad)*math.Sin(lat2))
		points = append(points, [2]float64{lng2 * 180 / math.Pi, lat2 * 180 / math.Pi})
	}

	return models.Polygon{
		Type:        "Polygon",
		Coordinates: [][][2]float64{points},
	}
}

// RoundCoord truncates a coordinate to the given number of decimals, used
// to widen cache keys so nearby requests share entries.
func RoundCoord(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}
