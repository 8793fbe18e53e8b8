package geo

import (
	"math"
	"testing"

	"entregador/models"
)

func TestMetersToKm(t *testing.T) {
	if got := MetersToKm(1500); got != 1.5 {
		t.Fatalf("MetersToKm(1500) = %v, want 1.5", got)
	}
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	p := models.Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	d := HaversineKm(p, p)
	if d < 0 || d > 1e-9 {
		t.Fatalf("zero distance expected ~0, got %v", d)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Praça da Sé to Av. Paulista, roughly 2.6 km.
	a := models.Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	b := models.Coordinates{Latitude: -23.5615, Longitude: -46.6565}
	d := HaversineKm(a, b)
	if d < 2.4 || d > 2.8 {
		t.Fatalf("expected ~2.6km, got %v", d)
	}
}

func TestIsWithinRadius(t *testing.T) {
	a := models.Coordinates{Latitude: 0, Longitude: 0}
	b := models.Coordinates{Latitude: 0, Longitude: 0.0000001}
	if !IsWithinRadius(a, b, ArrivalRadiusMeters) {
		t.Fatalf("expected points to be within radius")
	}
	far := models.Coordinates{Latitude: 0, Longitude: 0.01}
	if IsWithinRadius(a, far, ArrivalRadiusMeters) {
		t.Fatalf("expected ~1.1km apart to be outside radius")
	}
}

func TestPathKm_SumsLegs(t *testing.T) {
	start := models.Coordinates{Latitude: -23.5505, Longitude: -46.6333}
	stops := []models.Coordinates{
		{Latitude: -23.5615, Longitude: -46.6565},
		{Latitude: -23.5580, Longitude: -46.6540},
	}
	want := HaversineKm(start, stops[0]) + HaversineKm(stops[0], stops[1])
	if got := PathKm(start, stops); math.Abs(got-want) > 1e-9 {
		t.Fatalf("PathKm = %v, want %v", got, want)
	}
	if got := PathKm(start, nil); got != 0 {
		t.Fatalf("empty path should be 0, got %v", got)
	}
}
