package geo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// SphericalLength returns the great-circle length of ls in meters, measured on the s2 unit sphere.
func SphericalLength(ls orb.LineString) float64 {
	dist := 0.0
	for i := 1; i < len(ls); i++ {
		a := s2.LatLngFromDegrees(ls[i-1].Lat(), ls[i-1].Lon())
		b := s2.LatLngFromDegrees(ls[i].Lat(), ls[i].Lon())
		dist += a.Distance(b).Radians()
	}
	return dist * earthRadiusKM * 1000
}
