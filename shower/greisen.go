package shower

import (
	"math"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
)

// maxDepth returns y = ln(energy / Ec), the mean depth of shower maximum in
// radiation lengths for a primary of the given energy in eV.
func maxDepth(op string, energy float64) (float64, error) {
	y := math.Log(energy / conversion.Ec)
	if !(y > 0) || math.IsInf(y, 0) {
		return 0, cerrors.Domain(
			op, "energy %g eV must be finite and above the critical energy %g eV",
			energy, conversion.Ec,
		)
	}
	return y, nil
}

// Greisen returns the mean number of electrons and positrons at depth t (in
// radiation lengths) in a photon initiated shower of the given energy in eV
// (Greisen 1956).
//
//	Ne(t) = 0.31 / sqrt(y) exp(t (1 - 1.5 ln s)),  y = ln(E / Ec)
func Greisen(t, energy float64) (float64, error) {
	y, err := maxDepth("Greisen", energy)
	if err != nil {
		return 0, err
	}
	return greisen(t, y)
}

func greisen(t, y float64) (float64, error) {
	s, err := conversion.DepthToAge(t, y)
	if err != nil {
		return 0, err
	}
	return (0.31 / math.Sqrt(y)) * math.Exp(t*(1-1.5*math.Log(s))), nil
}

// GreisenAll evaluates Greisen at every depth in ts.
func GreisenAll(ts []float64, energy float64) ([]float64, error) {
	y, err := maxDepth("GreisenAll", energy)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(ts))
	for i, t := range ts {
		if out[i], err = greisen(t, y); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ElectronEnergySpectrum returns the normalised differential energy spectrum
// of shower electrons at the given age, evaluated at energies in MeV
// (Nerling et al. 2006). The parametrisation is only valid above 1 MeV;
// energies that are not positive are rejected.
func ElectronEnergySpectrum(energies []float64, age float64) ([]float64, error) {
	const (
		k0 = 0.145098
		k1 = 6.20114
		k2 = -0.596851
	)

	a1 := 6.42522 - 1.53183*age
	a2 := 168.168 - 42.1368*age
	a0 := k0 * math.Exp(k1*age+k2*age*age)

	out := make([]float64, len(energies))
	for i, e := range energies {
		if !(e > 0) {
			return nil, cerrors.Domain(
				"ElectronEnergySpectrum", "energy %g MeV is not positive", e,
			)
		}
		out[i] = a0 * e / ((e + a1) * math.Pow(e+a2, age))
	}
	return out, nil
}
