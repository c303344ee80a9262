// Package grid builds the sample grids used for quadrature and tabulation.
package grid

import (
	"gonum.org/v1/gonum/floats"

	cerrors "github.com/rouille/Cherenkov/errors"
)

// Bins returns count evenly spaced samples over [min, max]. If logarithmic
// is set the samples are evenly spaced in log(x), which requires min and
// max to be positive.
//
// The first and last samples are exactly min and max.
func Bins(count int, min, max float64, logarithmic bool) ([]float64, error) {
	if count < 0 {
		return nil, cerrors.Precondition("Bins", "negative count %d", count)
	}
	if logarithmic && (min <= 0 || max <= 0) {
		return nil, cerrors.Domain(
			"Bins", "logarithmic bins need positive bounds, got [%g, %g]",
			min, max,
		)
	}

	out := make([]float64, count)
	switch {
	case count == 0:
		return out, nil
	case count == 1:
		out[0] = min
		return out, nil
	case logarithmic:
		floats.LogSpan(out, min, max)
		out[0], out[count-1] = min, max
	default:
		floats.Span(out, min, max)
	}
	return out, nil
}

// MustBins is Bins for arguments known to be valid. It panics otherwise.
func MustBins(count int, min, max float64, logarithmic bool) []float64 {
	out, err := Bins(count, min, max, logarithmic)
	if err != nil {
		panic(err.Error())
	}
	return out
}
