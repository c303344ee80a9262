package shower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
)

func TestEnsembleDeterministic(t *testing.T) {
	c := EnsembleConfig{
		Energy: 1e18, Steps: 50, Count: 16, Seed: 100, Workers: 4,
	}
	a, err := GenerateEnsemble(c)
	require.NoError(t, err)
	c.Workers = 1
	b, err := GenerateEnsemble(c)
	require.NoError(t, err)

	require.Equal(t, 16, a.Len())
	for i := range a.Showers {
		_, neA, _ := a.Showers[i].Profile()
		_, neB, _ := b.Showers[i].Profile()
		assert.Equal(t, neA, neB, "shower %d", i)
		assert.Equal(t, uint64(100+i), a.Showers[i].Seed())
	}

	// Independent streams give independent first interactions.
	assert.NotEqual(t, a.Showers[0].T1(), a.Showers[1].T1())
}

func TestMeanProfile(t *testing.T) {
	ens, err := GenerateEnsemble(EnsembleConfig{
		Energy: 1e18, Steps: 40, Count: 5, Seed: 9,
	})
	require.NoError(t, err)

	T, mean, err := ens.MeanProfile()
	require.NoError(t, err)
	require.Len(t, mean, 40)
	assert.Equal(t, ens.Showers[0].Depths(), T)

	for j := range mean {
		sum := 0.0
		for _, s := range ens.Showers {
			_, ne, _ := s.Profile()
			sum += ne[j]
		}
		assert.InDelta(t, sum/5, mean[j], 1e-9*(1+sum))
	}

	_, _, err = (&Ensemble{}).MeanProfile()
	assert.ErrorIs(t, err, cerrors.ErrPrecondition)
}

func TestFirstInteractionHistogram(t *testing.T) {
	ens, err := GenerateEnsemble(EnsembleConfig{
		Energy: 1e18, Steps: 10, Count: 200, Seed: 1,
	})
	require.NoError(t, err)

	t1s := make([]float64, ens.Len())
	for i, s := range ens.Showers {
		t1s[i] = s.T1()
	}
	h, err := FirstInteractionHistogram(t1s, 50, 0, 40)
	require.NoError(t, err)
	assert.Len(t, h.Dividers, 51)
	assert.Len(t, h.Counts, 50)
	assert.Equal(t, 200.0, floats.Sum(h.Counts)+float64(h.Underflow+h.Overflow))

	_, err = FirstInteractionHistogram(t1s, 0, 0, 40)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
}

func TestEnsembleDomain(t *testing.T) {
	_, err := GenerateEnsemble(EnsembleConfig{Energy: 1e18, Steps: 10})
	assert.ErrorIs(t, err, cerrors.ErrDomain)
	_, err = GenerateEnsemble(EnsembleConfig{Energy: 1, Steps: 10, Count: 3})
	assert.ErrorIs(t, err, cerrors.ErrDomain)
}

func TestSampleFirstInteractions(t *testing.T) {
	a, err := SampleFirstInteractions(100000, 3)
	require.NoError(t, err)
	b, err := SampleFirstInteractions(100000, 3)
	require.NoError(t, err)
	require.Len(t, a, 100000)
	assert.Equal(t, a, b)

	// The standard error of the mean is 0.3% of Tint.
	assert.InEpsilon(t, conversion.Tint, stat.Mean(a, nil), 0.015)
	assert.True(t, floats.Min(a) > 0)

	table := []int{0, -1}
	for _, n := range table {
		_, err := SampleFirstInteractions(n, 3)
		assert.ErrorIs(t, err, cerrors.ErrDomain, "n = %d", n)
	}
}

func TestFirstInteractionHistogramSample(t *testing.T) {
	t1s, err := SampleFirstInteractions(100000, 11)
	require.NoError(t, err)

	table := []struct {
		bins   int
		lo, hi float64
	}{
		{50, 0, 40},
		{10, 5, 30},
		{1, 0, 100},
	}

	for i, test := range table {
		h, err := FirstInteractionHistogram(t1s, test.bins, test.lo, test.hi)
		require.NoError(t, err, "%d) %+v", i+1, test)
		assert.Len(t, h.Counts, test.bins)
		total := floats.Sum(h.Counts) + float64(h.Underflow+h.Overflow)
		assert.Equal(t, float64(len(t1s)), total, "%d) %+v", i+1, test)
	}

	_, err = FirstInteractionHistogram(t1s, 10, 40, 0)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
}
