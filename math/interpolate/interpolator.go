// Package interpolate evaluates tabulated functions between (and beyond)
// their knots.
package interpolate

// Interpolator is a tabulated one dimensional function.
type Interpolator interface {
	Eval(x float64) float64
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Linear{}
)
