package geo

import (
	"errors"
	"math"

	"github.com/lintang-b-s/osmtopology/pkg/util"
	"github.com/paulmach/orb"
)

const (
	METRIC_HAVERSINE = "haversine"
	METRIC_SPHERICAL = "spherical"
	METRIC_PLANAR    = "planar"
)

var ErrInvalidCoordinate = errors.New("invalid WGS84 coordinate")

func LengthFuncByName(name string) (LengthFunc, error) {
	switch name {
	case METRIC_HAVERSINE, "":
		return HaversineLength, nil
	case METRIC_SPHERICAL:
		return SphericalLength, nil
	case METRIC_PLANAR:
		return PlanarLength, nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown length metric %q", name)
	}
}

// ValidateCoordinate checks that p is a finite lon/lat pair inside the WGS84 range.
func ValidateCoordinate(p orb.Point) error {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return util.WrapErrorf(nil, ErrInvalidCoordinate, "non finite coordinate (%v, %v)", lon, lat)
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return util.WrapErrorf(nil, ErrInvalidCoordinate, "coordinate (%v, %v) out of range", lon, lat)
	}
	return nil
}
