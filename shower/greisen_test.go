package shower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/math/grid"
)

func TestGreisenAtMaximum(t *testing.T) {
	// At t = y the age is 1 and the exponent reduces to y.
	energy := 1e18
	y := math.Log(energy / conversion.Ec)

	ne, err := Greisen(y, energy)
	require.NoError(t, err)
	assert.InDelta(t, 1, ne/(0.31/math.Sqrt(y)*math.Exp(y)), 1e-12)
}

func TestGreisenPeak(t *testing.T) {
	energy := 1e15
	ts := grid.MustBins(400, 0.1, 40, false)
	ne, err := GreisenAll(ts, energy)
	require.NoError(t, err)

	iMax := 0
	for i := range ne {
		if ne[i] > ne[iMax] {
			iMax = i
		}
	}
	// The mean profile peaks near y = ln(E / Ec).
	y := math.Log(energy / conversion.Ec)
	assert.InDelta(t, y, ts[iMax], 0.5)

	for i := range ts {
		single, err := Greisen(ts[i], energy)
		require.NoError(t, err)
		assert.Equal(t, single, ne[i])
	}
}

func TestGreisenDomain(t *testing.T) {
	_, err := Greisen(1, 1e6)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
	_, err = Greisen(0, 1e18)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
	_, err = GreisenAll([]float64{1, -1}, 1e18)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
}

func TestElectronEnergySpectrum(t *testing.T) {
	energies := grid.MustBins(100, 1, 1e4, true)
	for _, age := range []float64{0.8, 1.0, 1.2} {
		spectrum, err := ElectronEnergySpectrum(energies, age)
		require.NoError(t, err)
		for i := range spectrum {
			assert.True(t, spectrum[i] > 0, "age %g, E = %g", age, energies[i])
		}
		// Falls off at high energy.
		assert.Less(t, spectrum[99], spectrum[50])
	}

	spectrum, err := ElectronEnergySpectrum([]float64{10}, 1)
	require.NoError(t, err)
	a0 := 0.145098 * math.Exp(6.20114-0.596851)
	expected := a0 * 10 / ((10 + 6.42522 - 1.53183) * (10 + 168.168 - 42.1368))
	assert.InDelta(t, 1, spectrum[0]/expected, 1e-12)

	_, err = ElectronEnergySpectrum([]float64{1, 0}, 1)
	assert.ErrorIs(t, err, cerrors.ErrDomain)
}
