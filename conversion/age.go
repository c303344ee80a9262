package conversion

import (
	"math"

	cerrors "github.com/rouille/Cherenkov/errors"
)

// DepthToAge returns the shower age at slant depth x for a shower peaking at
// xMax. Both depths must be in the same units (g/cm^2 or radiation lengths).
//
//	s = 3 / (1 + 2 xMax / x) = 3 x / (x + 2 xMax)
func DepthToAge(x, xMax float64) (float64, error) {
	if !(x > 0) || math.IsInf(x, 0) {
		return 0, cerrors.Domain("DepthToAge", "depth must be positive and finite, got %g", x)
	}
	s := 3 * x / (x + 2*xMax)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return s, cerrors.Numerical(
			"DepthToAge", "age is %g for depth %g, xMax %g", s, x, xMax,
		)
	}
	return s, nil
}

// AgeToDepth is the inverse of DepthToAge. The age must be in (0, 3).
//
//	x = 2 xMax / (3 / s - 1) = 2 xMax s / (3 - s)
//
// The inverse is ill-conditioned as s approaches 3: a round trip through
// DepthToAge loses about log10(x / xMax) digits. The relative round trip
// error is below 8 eps (1 + x / xMax), so under 1e-12 for x <= 500 xMax.
func AgeToDepth(s, xMax float64) (float64, error) {
	if !(s > 0 && s < 3) {
		return 0, cerrors.Domain("AgeToDepth", "age must be in (0, 3), got %g", s)
	}
	return 2 * xMax * s / (3 - s), nil
}

// DepthToAgeAll applies DepthToAge to every element of xs. The first invalid
// depth aborts the conversion.
func DepthToAgeAll(xs []float64, xMax float64) ([]float64, error) {
	return mapAll(xs, xMax, DepthToAge)
}

// AgeToDepthAll applies AgeToDepth to every element of ss.
func AgeToDepthAll(ss []float64, xMax float64) ([]float64, error) {
	return mapAll(ss, xMax, AgeToDepth)
}

func mapAll(
	in []float64, param float64, f func(float64, float64) (float64, error),
) ([]float64, error) {
	out := make([]float64, len(in))
	for i := range in {
		var err error
		if out[i], err = f(in[i], param); err != nil {
			return nil, err
		}
	}
	return out, nil
}
