// Package geo computes great-circle distances for proximity search.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lng float64
}

// ValidCoordinate reports whether lat/lng fall in the valid WGS84 ranges.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the spherical law of cosines. The cosine of the central
// angle is clamped to [-1, 1] before acos: float rounding on identical or
// antipodal points can push it slightly outside the range, which would yield
// NaN.
func DistanceKm(from, to Point) float64 {
	lat0 := radians(from.Lat)
	lat1 := radians(to.Lat)
	dLng := radians(to.Lng - from.Lng)

	cosAngle := math.Cos(lat0)*math.Cos(lat1)*math.Cos(dLng) +
		math.Sin(lat0)*math.Sin(lat1)

	return EarthRadiusKm * math.Acos(clamp(cosAngle, -1.0, 1.0))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
