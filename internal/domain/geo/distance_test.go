package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKnownPair(t *testing.T) {
	// Dakar Plateau to the airport area, roughly 40km
	plateau := Point{Lat: 14.6708, Lng: -17.4395}
	aibd := Point{Lat: 14.6758, Lng: -17.0672}

	d := DistanceKm(plateau, aibd)
	assert.InDelta(t, 40.0, d, 1.5)
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 14.6928, Lng: -17.4467}
	d := DistanceKm(p, p)

	assert.False(t, math.IsNaN(d), "identical points must not produce NaN")
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestDistanceAntipodal(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 0, Lng: 180}

	d := DistanceKm(a, b)
	assert.False(t, math.IsNaN(d), "antipodal points must not produce NaN")
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 0.1)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Point{Lat: 14.6928, Lng: -17.4467}
	b := Point{Lat: 16.0179, Lng: -16.4896}

	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
}

func TestDistanceMonotonicAlongMeridian(t *testing.T) {
	// B between A and C on the same meridian: d(A,B) + d(B,C) ~ d(A,C)
	a := Point{Lat: 10, Lng: -17}
	b := Point{Lat: 12, Lng: -17}
	c := Point{Lat: 15, Lng: -17}

	ab := DistanceKm(a, b)
	bc := DistanceKm(b, c)
	ac := DistanceKm(a, c)

	assert.InDelta(t, ac, ab+bc, 1e-6)
	assert.Less(t, ab, ac)
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(14.69, -17.44))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.True(t, ValidCoordinate(90, -180))
	assert.False(t, ValidCoordinate(90.1, 0))
	assert.False(t, ValidCoordinate(-91, 0))
	assert.False(t, ValidCoordinate(0, 180.5))
	assert.False(t, ValidCoordinate(0, -181))
}
