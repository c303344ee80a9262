package conversion

import (
	"math"

	cerrors "github.com/rouille/Cherenkov/errors"
)

// The depth profile follows the four layer parametrisation used by CORSIKA:
// depth = a + b exp(-altitude / c) in each layer, a linear decrease between
// 100 km and 112.8 km, and no matter above.
var (
	layerA = [4]float64{-1.865562e2, -9.49199e1, 6.1289e-1, 0.0}
	layerB = [4]float64{1.2226562e3, 1.1449069e3, 1.3055948e3, 5.401778e2}
	layerC = [4]float64{9.9418638, 8.7815355, 6.3614304, 7.7217016}
)

const (
	// MinAltitude is the lowest altitude covered by the depth model in km.
	MinAltitude = -5.801
	// TopAltitude is the altitude in km above which the depth is zero.
	TopAltitude = 112.8
	// LinearAltitude is the altitude in km where the exponential layers end.
	LinearAltitude = 100.0
	// LinearDepth is the depth in g/cm^2 where the linear regime begins.
	LinearDepth = 0.0012829199

	linearOffset = 1.128292e-2
	linearSlope  = 1e4
)

// altitudeLayer returns the exponential layer containing altitude, which
// must be in [MinAltitude, LinearAltitude).
func altitudeLayer(altitude float64) int {
	switch {
	case altitude >= 40:
		return 3
	case altitude >= 10:
		return 2
	case altitude >= 4:
		return 1
	default:
		return 0
	}
}

// depthLayer returns the exponential layer containing depth, which must be
// larger than LinearDepth.
func depthLayer(depth float64) int {
	switch {
	case depth <= 3.03950:
		return 3
	case depth <= 271.700:
		return 2
	case depth <= 631.100:
		return 1
	default:
		return 0
	}
}

// AltitudeToDepth returns the vertical atmospheric depth in g/cm^2 above the
// given altitude in km.
func AltitudeToDepth(altitude float64) (float64, error) {
	switch {
	case math.IsNaN(altitude) || altitude < MinAltitude:
		return 0, cerrors.Domain(
			"AltitudeToDepth", "altitude %g km lower than %g km",
			altitude, MinAltitude,
		)
	case altitude > TopAltitude:
		return 0, nil
	case altitude >= LinearAltitude:
		return linearOffset - altitude/linearSlope, nil
	}

	i := altitudeLayer(altitude)
	return layerA[i] + layerB[i]*math.Exp(-altitude/layerC[i]), nil
}

// DepthToAltitude returns the altitude in km above which the vertical
// atmospheric depth is depth g/cm^2. It inverts AltitudeToDepth.
func DepthToAltitude(depth float64) (float64, error) {
	switch {
	case math.IsNaN(depth) || depth < 0:
		return 0, cerrors.Domain(
			"DepthToAltitude", "atmospheric depth %g is negative", depth,
		)
	case depth <= LinearDepth:
		return linearSlope * (linearOffset - depth), nil
	}

	i := depthLayer(depth)
	return -layerC[i] * math.Log((depth-layerA[i])/layerB[i]), nil
}

// DepthToAltitudeAll applies DepthToAltitude to every element of depths.
func DepthToAltitudeAll(depths []float64) ([]float64, error) {
	out := make([]float64, len(depths))
	for i := range depths {
		var err error
		if out[i], err = DepthToAltitude(depths[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AltitudeToDepthAll applies AltitudeToDepth to every element of altitudes.
func AltitudeToDepthAll(altitudes []float64) ([]float64, error) {
	out := make([]float64, len(altitudes))
	for i := range altitudes {
		var err error
		if out[i], err = AltitudeToDepth(altitudes[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
