package cherenkov

import (
	"math"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/math/grid"
	"github.com/rouille/Cherenkov/math/integrate"
	"github.com/rouille/Cherenkov/metrics"
)

// AngleBins is the number of angles, in degrees over [0, 180], at which
// the angular distribution is tabulated.
const AngleBins = 180

// Distribution is the angular distribution of Cherenkov photons around the
// shower axis at each depth of a shower. Density[i][j] is the probability
// per degree of emission at Angles[j] for the depth T[i].
type Distribution struct {
	T, Ages []float64
	Angles  []float64 // degrees
	Density [][]float64
	// Extrapolated and Starved have the same meaning as in Photons. A
	// starved row is all zeros.
	Extrapolated, Starved []bool
}

// AtAge returns the row of the first depth whose age exceeds s, along with
// that depth's index. ok is false if the shower never gets that old.
func (d *Distribution) AtAge(s float64) (row []float64, i int, ok bool) {
	for i, age := range d.Ages {
		if age > s {
			return d.Density[i], i, true
		}
	}
	return nil, -1, false
}

// AngularDensity evaluates the Nerling et al. (2006) dual exponential
// angular distribution at the given angles, in degrees, for a shower of the
// given age in a medium with refractive delta. The result is per degree
// and integrates to one over the angle grid.
func AngularDensity(angles []float64, age, delta float64) ([]float64, error) {
	if len(angles) < integrate.MinPoints {
		return nil, cerrors.Precondition(
			"AngularDensity", "need at least %d angles, got %d",
			integrate.MinPoints, len(angles),
		)
	}
	eth, err := EnergyThreshold(delta)
	if err != nil {
		return nil, err
	}

	a := 0.42489 + 0.58371*age - 0.082373*age*age
	b := 0.055108 - 0.095587*age + 0.056952*age*age
	thetaC := 0.62694 * math.Pow(eth, -0.60590)
	thetaCC := (10.509 - 4.9644*age) * thetaC

	rad := make([]float64, len(angles))
	out := make([]float64, len(angles))
	for j, deg := range angles {
		rad[j] = deg * conversion.DegToRad
		out[j] = a*math.Exp(-rad[j]/thetaC)/thetaC +
			b*math.Exp(-rad[j]/thetaCC)/thetaCC
	}

	norm, err := integrate.NewtonCotes5(rad, out)
	if err != nil {
		return nil, err
	}
	if norm == 0 {
		return nil, cerrors.Numerical(
			"AngularDensity", "distribution at age %g vanishes", age,
		)
	}
	for j := range out {
		out[j] *= conversion.DegToRad / norm
	}
	return out, nil
}

// AngularDistribution tabulates AngularDensity at every depth of the
// shower, using the local age and refractive delta.
func (e *Engine) AngularDistribution() (*Distribution, error) {
	defer metrics.ObserveStage("angular_distribution", metrics.Now())

	m, err := e.medium()
	if err != nil {
		return nil, err
	}

	d := &Distribution{
		T:            e.Depths(),
		Ages:         m.ages,
		Angles:       grid.MustBins(AngleBins, 0, 180, false),
		Density:      make([][]float64, len(e.t)),
		Extrapolated: make([]bool, len(e.t)),
		Starved:      make([]bool, len(e.t)),
	}

	for i, smp := range m.samples {
		d.Extrapolated[i] = smp.Extrapolated
		if !(smp.Delta > 0) {
			d.Starved[i] = true
			d.Density[i] = make([]float64, AngleBins)
			continue
		}
		if d.Density[i], err = AngularDensity(d.Angles, m.ages[i], smp.Delta); err != nil {
			return nil, err
		}
	}

	if n := count(d.Starved); n > 0 {
		metrics.Starved(n)
		log.Warnf("%d of %d shower depths have a non-positive refractive "+
			"delta, their angular rows are zero", n, len(d.Starved))
	}
	return d, nil
}
