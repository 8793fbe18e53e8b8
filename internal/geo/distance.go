package geo

import (
	"math"

	"entregador/models"
)

const (
	// ArrivalRadiusMeters is how close the driver must be to count as at the address.
	ArrivalRadiusMeters = 30.0
	// EarthRadiusKm is Earth's mean radius in kilometers for Haversine calculation.
	EarthRadiusKm = 6371.0088
)

// MetersToKm converts meters to kilometers.
func MetersToKm(m float64) float64 {
	return m / 1000
}

// HaversineKm calculates the great-circle distance between two points
// on Earth in kilometers using the Haversine formula.
func HaversineKm(a, b models.Coordinates) float64 {
	const degToRad = math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * degToRad
	dLng := (b.Longitude - a.Longitude) * degToRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(a.Latitude*degToRad)*math.Cos(b.Latitude*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// IsWithinRadius checks if two coordinates are within radiusMeters of each other.
func IsWithinRadius(a, b models.Coordinates, radiusMeters float64) bool {
	return HaversineKm(a, b)*1000 <= radiusMeters
}

// PathKm is the length of the polyline start -> stops[0] -> ... -> stops[n-1].
// Stops are visited in the given order; no reordering is attempted.
func PathKm(start models.Coordinates, stops []models.Coordinates) float64 {
	total := 0.0
	prev := start
	for _, s := range stops {
		total += HaversineKm(prev, s)
		prev = s
	}
	return total
}
