package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/rouille/Cherenkov/errors"
)

func value(x float64) float64 {
	return 2*x + 3
}

func TestLinearKnots(t *testing.T) {
	xs := []float64{-5, -1, 0, 0.5, 2, 10, 80}
	ys := []float64{3, 1.205e-3, 7, -2, 1033, 0.9, 2e-5}

	lin, err := NewLinear(xs, ys)
	require.NoError(t, err)
	for i := range xs {
		assert.Equal(t, ys[i], lin.Eval(xs[i]), "knot %d", i)
		assert.True(t, lin.InRange(xs[i]))
	}
}

func TestLinearMidpoints(t *testing.T) {
	xs := []float64{0, 0.1, 0.3, 0.6, 1.0, 1.5}
	ys := make([]float64, len(xs))
	for i := range xs {
		ys[i] = value(xs[i])
	}

	lin, err := NewLinear(xs, ys)
	require.NoError(t, err)
	for i := 0; i < len(xs)-1; i++ {
		mid := (xs[i] + xs[i+1]) / 2
		assert.InDelta(t, (ys[i]+ys[i+1])/2, lin.Eval(mid), 1e-12, "segment %d", i)
	}
}

func TestLinearExtrapolates(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 30}
	lin, err := NewLinear(xs, ys)
	require.NoError(t, err)

	table := []struct {
		x, y    float64
		inRange bool
	}{
		{-1, -10, false},
		{3, 50, false},
		{2.5, 40, false},
		{1.5, 20, true},
	}

	for i, test := range table {
		if y := lin.Eval(test.x); math.Abs(y-test.y) > 1e-12 {
			t.Errorf("%d) Eval(%g) = %g, expected %g", i+1, test.x, y, test.y)
		}
		assert.Equal(t, test.inRange, lin.InRange(test.x), "%d) InRange", i+1)
	}

	lo, hi := lin.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestScalarMatchesBatch(t *testing.T) {
	xs := []float64{0, 2, 3, 7, 8}
	ys := []float64{1, -1, 4, 0, 2}
	us := []float64{-3, 0, 1, 2.5, 5, 7.9, 8, 12}

	batch, err := InterpolateAll(xs, ys, us)
	require.NoError(t, err)

	out := make([]float64, len(us))
	lin, _ := NewLinear(xs, ys)
	lin.EvalAll(us, out)

	for i, u := range us {
		scalar, err := Interpolate(xs, ys, u)
		require.NoError(t, err)
		assert.Equal(t, scalar, batch[i], "query %g", u)
		assert.Equal(t, scalar, out[i], "query %g", u)
	}
}

func TestLinearPreconditions(t *testing.T) {
	_, err := NewLinear([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)
	_, err = NewLinear([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)
	_, err = Interpolate(nil, nil, 0)
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)
	_, err = InterpolateAll([]float64{0}, []float64{0}, []float64{1})
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)
}

func BenchmarkLinearEval(b *testing.B) {
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i) * 0.1
	}
	lin, _ := NewLinear(xs, xs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lin.Eval(float64(i%1000) * 0.1)
	}
}
