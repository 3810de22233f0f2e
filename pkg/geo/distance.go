package geo

import (
	"math"

	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	earthRadiusKM = 6371.0
)

// LengthFunc measures a linestring. Every metric sums consecutive segment lengths.
type LengthFunc func(ls orb.LineString) float64

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// HaversineLength returns the length of ls in meters.
func HaversineLength(ls orb.LineString) float64 {
	dist := 0.0
	for i := 1; i < len(ls); i++ {
		dist += CalculateHaversineDistance(ls[i-1].Lat(), ls[i-1].Lon(), ls[i].Lat(), ls[i].Lon())
	}
	return dist * 1000
}

// PlanarLength returns the euclidean length of ls in coordinate units (degrees for WGS84).
func PlanarLength(ls orb.LineString) float64 {
	return planar.Length(ls)
}
