package integrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/math/grid"
)

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps*math.Max(1, math.Abs(y))
}

func cubic(x float64) float64 { return 3*x*x*x - 2*x*x + x + 5 }

func cubicIntegral(lo, hi float64) float64 {
	f := func(x float64) float64 {
		return 0.75*x*x*x*x - 2*x*x*x/3 + 0.5*x*x + 5*x
	}
	return f(hi) - f(lo)
}

func TestLinearExact(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	sum, err := NewtonCotes5(xs, xs)
	require.NoError(t, err)
	assert.Equal(t, 8.0, sum)
}

func TestRemainderBranches(t *testing.T) {
	lo, hi := -1.5, 2.5
	exact := cubicIntegral(lo, hi)

	// (n - 1) % 4 cycles through 0, 1, 2, 3 twice.
	for n := 5; n <= 13; n++ {
		xs := grid.MustBins(n, lo, hi, false)
		ys := make([]float64, n)
		for i := range xs {
			ys[i] = cubic(xs[i])
		}

		sum, err := NewtonCotes5(xs, ys)
		require.NoError(t, err)
		if !almostEq(sum, exact, 1e-9) {
			t.Errorf("n = %d (rest %d): NewtonCotes5() = %.15g, expected %.15g",
				n, (n-1)%4, sum, exact)
		}
	}
}

func TestSmoothFunction(t *testing.T) {
	table := []struct {
		n      int
		lo, hi float64
		f      func(float64) float64
		exact  float64
	}{
		{101, 0, math.Pi, math.Sin, 2},
		{1000, 300e-7, 400e-7, func(x float64) float64 { return 1 / (x * x) },
			1/300e-7 - 1/400e-7},
		{180, 0, 1, math.Exp, math.E - 1},
	}

	for i, test := range table {
		xs := grid.MustBins(test.n, test.lo, test.hi, false)
		ys := make([]float64, len(xs))
		for j := range xs {
			ys[j] = test.f(xs[j])
		}
		sum, err := NewtonCotes5(xs, ys)
		require.NoError(t, err)
		if !almostEq(sum, test.exact, 1e-8) {
			t.Errorf("%d) NewtonCotes5() = %.12g, expected %.12g",
				i+1, sum, test.exact)
		}
	}
}

func TestPreconditions(t *testing.T) {
	_, err := NewtonCotes5([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)

	_, err = NewtonCotes5([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 2})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)

	_, err = NewtonCotes5([]float64{4, 3, 2, 1, 0}, []float64{0, 1, 2, 3, 4})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)

	_, err = NewtonCotes5(
		[]float64{0, 1, 2, 3, 4}, []float64{0, 1, math.NaN(), 3, 4},
	)
	assert.ErrorIs(t, err, cerrors.ErrNumerical)

	assert.Panics(t, func() { MustNewtonCotes5(nil, nil) })
}

func BenchmarkNewtonCotes5_1000(b *testing.B) {
	xs := grid.MustBins(1000, 300e-7, 400e-7, false)
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = 1 / (xs[i] * xs[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewtonCotes5(xs, ys)
	}
}
