package interpolate

import (
	cerrors "github.com/rouille/Cherenkov/errors"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a piecewise linear interpolator over increasing knots.
//
// Points outside the knot range are extrapolated along the first or last
// segment rather than clamped. Callers that need to know when this happens
// should check InRange.
type Linear struct {
	xs, vals []float64
}

// NewLinear creates a linear interpolator for a sequence of increasing
// points, xs, which take on the values given by vals. The slices are not
// copied and must not be modified during the lifetime of the interpolator.
//
// Monotonicity of xs is not checked: unsorted knots give meaningless
// results, not an error.
func NewLinear(xs, vals []float64) (*Linear, error) {
	if len(xs) != len(vals) {
		return nil, cerrors.Precondition(
			"NewLinear", "len(xs) = %d, but len(vals) = %d",
			len(xs), len(vals),
		)
	} else if len(xs) < 2 {
		return nil, cerrors.Precondition(
			"NewLinear", "need at least 2 knots, got %d", len(xs),
		)
	}
	return &Linear{xs: xs, vals: vals}, nil
}

// search returns the index of the left knot of the segment used for x. The
// result is always in [0, len(xs) - 2].
func (lin *Linear) search(x float64) int {
	lo, hi := 0, len(lin.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if lin.xs[mid] > x {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// Eval returns the interpolated value at x.
func (lin *Linear) Eval(x float64) float64 {
	i1 := lin.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs[i1], lin.xs[i2]
	v1, v2 := lin.vals[i1], lin.vals[i2]
	if x == x2 {
		return v2
	}

	return v1 + ((v1-v2)/(x1-x2))*(x-x1)
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}

// InRange returns true if x lies within the knot range, i.e. if Eval(x) is an
// interpolation and not an extrapolation.
func (lin *Linear) InRange(x float64) bool {
	return x >= lin.xs[0] && x <= lin.xs[len(lin.xs)-1]
}

// Range returns the first and last knots.
func (lin *Linear) Range() (lo, hi float64) {
	return lin.xs[0], lin.xs[len(lin.xs)-1]
}

// Interpolate linearly interpolates the table (xs, ys) at u.
func Interpolate(xs, ys []float64, u float64) (float64, error) {
	lin, err := NewLinear(xs, ys)
	if err != nil {
		return 0, err
	}
	return lin.Eval(u), nil
}

// InterpolateAll linearly interpolates the table (xs, ys) at every point in
// us.
func InterpolateAll(xs, ys, us []float64) ([]float64, error) {
	lin, err := NewLinear(xs, ys)
	if err != nil {
		return nil, err
	}
	return lin.EvalAll(us), nil
}
