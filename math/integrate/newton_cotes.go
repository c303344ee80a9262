// Package integrate implements fixed-order quadrature over tabulated,
// equally spaced samples.
package integrate

import (
	"math"

	cerrors "github.com/rouille/Cherenkov/errors"
)

// MinPoints is the smallest table NewtonCotes5 accepts.
const MinPoints = 5

// NewtonCotes5 integrates the function tabulated by xs and ys with the
// composite five point Newton-Cotes formula (Bode's rule). xs must be
// equally spaced and increasing; only the spacing of the first interval is
// used.
//
// The n-1 intervals are covered by blocks of four. The leftover intervals are
// closed with the 3/8 rule and Simpson's rule:
//
//	(n-1) % 4 == 0: Bode blocks only.
//	(n-1) % 4 == 1: one block is dropped, its 5 intervals become 3/8 + Simpson.
//	(n-1) % 4 == 2: one block is dropped, its 6 intervals become 3/8 + 3/8.
//	(n-1) % 4 == 3: a trailing 3/8 segment.
func NewtonCotes5(xs, ys []float64) (float64, error) {
	n := len(xs)
	if n != len(ys) {
		return 0, cerrors.Precondition(
			"NewtonCotes5", "len(xs) = %d, but len(ys) = %d", n, len(ys),
		)
	} else if n < MinPoints {
		return 0, cerrors.Precondition(
			"NewtonCotes5", "need at least %d points, got %d", MinPoints, n,
		)
	}

	h := xs[1] - xs[0]
	if !(h > 0) {
		return 0, cerrors.Precondition(
			"NewtonCotes5", "xs must be increasing, first step is %g", h,
		)
	}

	blocks := (n - 1) / 4
	rest := (n - 1) - 4*blocks
	if rest == 1 || rest == 2 {
		blocks--
	}

	sum := 0.0
	for b := 0; b < blocks; b++ {
		sum += bode(h, ys[4*b:4*b+5])
	}

	switch rest {
	case 1:
		sum += threeEighths(h, ys[n-6:n-2])
		sum += simpson(h, ys[n-3:n])
	case 2:
		sum += threeEighths(h, ys[n-7:n-3])
		sum += threeEighths(h, ys[n-4:n])
	case 3:
		sum += threeEighths(h, ys[n-4:n])
	}

	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return sum, cerrors.Numerical("NewtonCotes5", "integral is %g", sum)
	}
	return sum, nil
}

// MustNewtonCotes5 is NewtonCotes5 for tables known to be valid. It panics
// otherwise.
func MustNewtonCotes5(xs, ys []float64) float64 {
	sum, err := NewtonCotes5(xs, ys)
	if err != nil {
		panic(err.Error())
	}
	return sum
}

func bode(h float64, y []float64) float64 {
	return 2 * h * (7*(y[0]+y[4]) + 32*(y[1]+y[3]) + 12*y[2]) / 45
}

func threeEighths(h float64, y []float64) float64 {
	return 3 * h * (y[0] + 3*y[1] + 3*y[2] + y[3]) / 8
}

func simpson(h float64, y []float64) float64 {
	return h * (y[0] + 4*y[1] + y[2]) / 3
}
