// Package cherenkov computes the Cherenkov light emitted by the charged
// particles of an air shower: the number of photons produced at each depth
// and their angular distribution around the shower axis.
package cherenkov

import (
	"math"

	"github.com/rouille/Cherenkov/atmosphere"
	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/logging"
	"github.com/rouille/Cherenkov/math/grid"
	"github.com/rouille/Cherenkov/math/integrate"
	"github.com/rouille/Cherenkov/metrics"
	"github.com/rouille/Cherenkov/shower"
)

var log = logging.Named("cherenkov")

const (
	// WaveBins is the size of the wavelength grid of the yield integral.
	WaveBins = 1000
	// EnergyBins is the size of the electron energy grid.
	EnergyBins = 100
	// MinElectronEnergy and MaxElectronEnergy bound the electron energy
	// grid in MeV.
	MinElectronEnergy = 1.0
	MaxElectronEnergy = 1e4
)

// Engine computes Cherenkov emission for one generated shower in one
// atmosphere. It keeps its own copy of the shower profile, so regenerating
// the shower afterwards does not change the engine's results.
type Engine struct {
	atm              *atmosphere.Profile
	waveMin, waveMax float64
	// invWave2 is the integral of 1/lambda^2 over the wavelength band.
	invWave2 float64

	t, ne    []float64
	tmax     float64
	cosTheta float64
}

// New creates an engine for a generated shower, with photons emitted
// between waveMin and waveMax, in cm.
func New(
	atm *atmosphere.Profile, s *shower.Shower, waveMin, waveMax float64,
) (*Engine, error) {
	if atm == nil || atm.Len() < 2 {
		return nil, cerrors.Precondition(
			"cherenkov.New", "atmosphere needs at least two layers",
		)
	}
	if !(waveMin > 0 && waveMax > waveMin) {
		return nil, cerrors.Precondition(
			"cherenkov.New", "bad wavelength band [%g, %g] cm", waveMin, waveMax,
		)
	}

	t, ne, err := s.Profile()
	if err != nil {
		return nil, err
	}
	tmax, err := s.Tmax()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		atm: atm, waveMin: waveMin, waveMax: waveMax,
		t: t, ne: ne, tmax: tmax, cosTheta: s.Axis().Z,
	}

	waves := grid.MustBins(WaveBins, waveMin, waveMax, false)
	integrand := make([]float64, len(waves))
	for i, w := range waves {
		integrand[i] = 1 / (w * w)
	}
	if e.invWave2, err = integrate.NewtonCotes5(waves, integrand); err != nil {
		return nil, err
	}

	return e, nil
}

// EnergyThreshold returns the minimum energy in MeV of an electron emitting
// Cherenkov light in a medium with refractive index 1 + delta.
func EnergyThreshold(delta float64) (float64, error) {
	if !(delta > 0) {
		return 0, cerrors.Domain(
			"EnergyThreshold", "refractive delta %g is not positive", delta,
		)
	}
	return conversion.Me / math.Sqrt(2*delta), nil
}

// EnergyThresholds applies EnergyThreshold to every delta.
func EnergyThresholds(deltas []float64) ([]float64, error) {
	out := make([]float64, len(deltas))
	for i, d := range deltas {
		var err error
		if out[i], err = EnergyThreshold(d); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Yield returns the number of photons per g/cm^2 emitted in the engine's
// wavelength band by an electron of the given energy in MeV, in a medium
// of the given refractive delta and density in g/cm^3 (Nerling et al. 2006,
// Eq. 2). Electrons at or below threshold emit nothing.
func (e *Engine) Yield(energy, delta, density float64) (float64, error) {
	eth, err := EnergyThreshold(delta)
	if err != nil {
		return 0, err
	}
	if energy <= eth {
		return 0, nil
	}
	if !(density > 0) {
		return 0, cerrors.Domain("Yield", "density %g is not positive", density)
	}

	return (2 * math.Pi * conversion.Alpha / density) *
		(2*delta - conversion.Me*conversion.Me/(energy*energy)) * e.invWave2, nil
}

// Depths returns a copy of the shower's depth grid in radiation lengths.
func (e *Engine) Depths() []float64 { return append([]float64(nil), e.t...) }

// Photons is the number of Cherenkov photons produced along a shower.
type Photons struct {
	T  []float64 // radiation lengths
	Nc []float64 // photons per g/cm^2
	// Extrapolated marks depths whose altitude lies outside the
	// atmospheric table.
	Extrapolated []bool
	// Starved marks depths where too few electron energies were above
	// threshold (or the medium was unphysical) to integrate the yield.
	// Nc is zero there.
	Starved []bool
}

// medium is the state of the atmosphere at each depth of the shower.
type medium struct {
	ages    []float64
	samples []atmosphere.Sample
}

func (e *Engine) medium() (*medium, error) {
	m := &medium{ages: make([]float64, len(e.t))}

	alts := make([]float64, len(e.t))
	for i, t := range e.t {
		var err error
		if m.ages[i], err = conversion.DepthToAge(t, e.tmax); err != nil {
			return nil, err
		}
		if alts[i], err = conversion.DepthToAltitude(t * conversion.X0 * e.cosTheta); err != nil {
			return nil, err
		}
	}

	var err error
	if m.samples, err = e.atm.At(alts); err != nil {
		return nil, err
	}

	n := 0
	for _, s := range m.samples {
		if s.Extrapolated {
			n++
		}
	}
	if n > 0 {
		metrics.Extrapolated(n)
		log.Warnf("%d of %d shower depths lie outside the atmospheric table "+
			"and were linearly extrapolated", n, len(m.samples))
	}
	return m, nil
}

// TotalPhotons returns the number of photons produced at each depth of the
// shower: the yield folded with the electron energy spectrum at the local
// age, integrated over log energy, times the local number of electrons.
func (e *Engine) TotalPhotons() (*Photons, error) {
	defer metrics.ObserveStage("total_photons", metrics.Now())

	m, err := e.medium()
	if err != nil {
		return nil, err
	}

	energies := grid.MustBins(EnergyBins, MinElectronEnergy, MaxElectronEnergy, true)
	logEnergies := make([]float64, len(energies))
	for j, en := range energies {
		logEnergies[j] = math.Log(en)
	}

	p := &Photons{
		T:            e.Depths(),
		Nc:           make([]float64, len(e.t)),
		Extrapolated: make([]bool, len(e.t)),
		Starved:      make([]bool, len(e.t)),
	}

	xs := make([]float64, 0, len(energies))
	ys := make([]float64, 0, len(energies))
	for i := range e.t {
		smp := m.samples[i]
		p.Extrapolated[i] = smp.Extrapolated
		if !(smp.Delta > 0 && smp.Density > 0) {
			p.Starved[i] = true
			continue
		}

		spectrum, err := shower.ElectronEnergySpectrum(energies, m.ages[i])
		if err != nil {
			return nil, err
		}
		eth, _ := EnergyThreshold(smp.Delta)

		xs, ys = xs[:0], ys[:0]
		for j, en := range energies {
			if en <= eth {
				continue
			}
			y, err := e.Yield(en, smp.Delta, smp.Density)
			if err != nil {
				return nil, err
			}
			xs = append(xs, logEnergies[j])
			ys = append(ys, spectrum[j]*y)
		}

		if len(xs) < integrate.MinPoints {
			p.Starved[i] = true
			continue
		}
		perElectron, err := integrate.NewtonCotes5(xs, ys)
		if err != nil {
			return nil, err
		}
		p.Nc[i] = e.ne[i] * perElectron
	}

	if n := count(p.Starved); n > 0 {
		metrics.Starved(n)
		log.Warnf("%d of %d shower depths had too few electrons above "+
			"threshold, no photons counted there", n, len(p.Starved))
	}
	return p, nil
}

func count(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
