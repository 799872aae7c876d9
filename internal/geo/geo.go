// Package geo computes great-circle distances between longitude/latitude
// points on a sphere.
package geo

import "math"

// EarthRadiusKm is the sphere radius used for every distance.
const EarthRadiusKm = 6370.0

// Decimals is the number of decimal places distances are rounded to.
const Decimals = 4

// Coord is a point in degrees.
type Coord struct {
	Lon float64
	Lat float64
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance in kilometers between a and
// b, rounded to Decimals places.
//
// It uses the haversine term
//
//	h = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//
// through the inverse cosine, d = R·acos(1 - 2h), so coincident points
// give acos(1) = 0. The argument is clamped to [-1, 1].
func Distance(a, b Coord) float64 {
	x1, y1 := Radians(a.Lon), Radians(a.Lat)
	x2, y2 := Radians(b.Lon), Radians(b.Lat)

	sx := math.Sin((x1 - x2) / 2)
	sy := math.Sin((y1 - y2) / 2)
	h := sy*sy + math.Cos(y1)*math.Cos(y2)*sx*sx

	return Round(EarthRadiusKm*math.Acos(clamp(1-2*h)), Decimals)
}

// Round rounds v to the given number of decimal places, half away from
// zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
