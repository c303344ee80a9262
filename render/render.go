// Package render draws the figures of a simulation run with matplotlib,
// through pyplot. Figures are queued as they are built and written to disk
// when Execute is called.
package render

import (
	"fmt"
	"math"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/rouille/Cherenkov/atmosphere"
	"github.com/rouille/Cherenkov/shower"
)

var (
	ageColors = []string{"g", "r", "k"}
	// ageFactors separate the angular curves of successive ages.
	ageFactors = []float64{0.25, 1, 4}
)

// Execute renders every queued figure.
func Execute() { plt.Execute() }

// Atmosphere draws altitude against each column of the profile and against
// the Cherenkov energy threshold. thresholds may be shorter than the
// profile; its altitudes are given by thresholdAlts.
func Atmosphere(dir string, p *atmosphere.Profile, thresholdAlts, thresholds []float64) {
	alts := p.Altitudes()

	columns := []struct {
		col    atmosphere.Column
		label  string
		max    float64
		suffix string
	}{
		{atmosphere.Density, `$\rho$ [g cm$^{-3}$]`, 2e-3, "density"},
		{atmosphere.Depth, `Atmospheric depth [g cm$^{-2}$]`, 1200, "depth"},
		{atmosphere.Delta, `$\delta$`, 3e-4, "delta"},
	}

	for _, c := range columns {
		plt.Figure()
		plt.Plot(p.Column(c.col), alts, "k", plt.LW(2))
		plt.XLabel(c.label, plt.FontSize(16))
		plt.YLabel("Altitude [km]", plt.FontSize(16))
		plt.XLim(0, c.max)
		plt.Grid(plt.Axis("both"))
		plt.SaveFig(path.Join(dir, fmt.Sprintf("atmosphere_%s.png", c.suffix)))
	}

	plt.Figure()
	plt.Plot(thresholds, thresholdAlts, "ok")
	plt.XLabel("Cherenkov energy threshold [MeV]", plt.FontSize(16))
	plt.YLabel("Altitude [km]", plt.FontSize(16))
	plt.XScale("log")
	plt.XLim(1, 1.5e5)
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.SaveFig(path.Join(dir, "atmosphere_threshold.png"))
}

// Spectra draws the electron energy spectra spectra[i] at ages[i].
func Spectra(dir string, energies, ages []float64, spectra [][]float64) {
	plt.Figure()
	for i := range spectra {
		plt.Plot(energies, spectra[i], "o", plt.C(ageColors[i%len(ageColors)]))
	}
	plt.Title(fmt.Sprintf("s = %s", joinAges(ages)))
	plt.XLabel("E [MeV]", plt.FontSize(16))
	plt.YLabel(`$1/N_e\ dN_e/d\ln E$`, plt.FontSize(16))
	plt.XScale("log")
	plt.XLim(1, 1e4)
	plt.YLim(0, 0.25)
	plt.SaveFig(path.Join(dir, "spectra.png"))
}

// Showers draws log10 of individual longitudinal profiles together with
// their mean and the Greisen profile.
func Showers(
	dir string, logEnergy float64, t []float64, profiles [][]float64,
	mean, greisenT, greisen []float64,
) {
	plt.Figure()
	for _, ne := range profiles {
		xs, ys := log10Positive(t, ne)
		plt.Plot(xs, ys, "k", plt.LW(1))
	}
	xs, ys := log10Positive(greisenT, greisen)
	plt.Plot(xs, ys, "o", plt.C("b"))
	xs, ys = log10Positive(t, mean)
	plt.Plot(xs, ys, "--", plt.LW(4), plt.C("r"))

	plt.Title(fmt.Sprintf(`$\log_{10}(E_0/{\rm eV}) = %.3g$`, logEnergy))
	plt.XLabel("T [radiation lengths]", plt.FontSize(16))
	plt.YLabel(`$\log_{10} N_e$`, plt.FontSize(16))
	plt.XLim(t[0], t[len(t)-1])
	plt.YLim(0, logEnergy-8)
	plt.SaveFig(path.Join(dir, "shower.png"))
}

// FirstInteraction draws the histogram of first interaction altitudes.
func FirstInteraction(dir string, h *shower.Histogram) {
	xs, ys := StepOutline(h.Dividers, h.Counts)

	plt.Figure()
	plt.Plot(xs, ys, "k", plt.LW(2))
	plt.XLabel("Altitude of first interaction [km]", plt.FontSize(16))
	plt.YLabel("Showers", plt.FontSize(16))
	plt.XLim(h.Dividers[0], h.Dividers[len(h.Dividers)-1])
	plt.SaveFig(path.Join(dir, "X1.png"))
}

// Photons draws the photon production of several showers against slant
// depth in g/cm^2.
func Photons(dir string, logEnergy, theta float64, x []float64, nc [][]float64) {
	max := 0.0
	plt.Figure()
	for _, row := range nc {
		plt.Plot(x, row, "k", plt.LW(2))
		for _, n := range row {
			max = math.Max(max, n)
		}
	}
	plt.Title(fmt.Sprintf(
		`$\log_{10}(E_0/{\rm eV}) = %.3g$, $\theta = %.3g^\circ$`, logEnergy, theta,
	))
	plt.XLabel(`X [g cm$^{-2}$]`, plt.FontSize(16))
	plt.YLabel(`$dN_\gamma/dX$ [g$^{-1}$ cm$^2$]`, plt.FontSize(16))
	plt.XLim(0, 1400)
	if max > 0 {
		plt.YLim(0, 1.5*max)
	}
	plt.SaveFig(path.Join(dir, "cherenkov.png"))
}

// Angular draws the angular distributions rows[i] at ages[i], scaled apart
// by factors of four.
func Angular(dir string, angles, ages []float64, rows [][]float64) {
	plt.Figure()
	for i, row := range rows {
		f := ageFactors[i%len(ageFactors)]
		scaled := make([]float64, len(row))
		for j := range row {
			scaled[j] = f * row[j]
		}
		plt.Plot(angles, scaled, "--", plt.LW(3), plt.C(ageColors[i%len(ageColors)]))
	}
	plt.Title(fmt.Sprintf("s = %s (x1/4, x1, x4)", joinAges(ages)))
	plt.XLabel("Angle to shower axis [deg]", plt.FontSize(16))
	plt.YLabel(`$1/N_\gamma\ dN_\gamma/d\theta$ [deg$^{-1}$]`, plt.FontSize(16))
	plt.YScale("log")
	plt.XLim(5, 60)
	plt.YLim(1e-5, 1)
	plt.SaveFig(path.Join(dir, "angle.png"))
}

// StepOutline returns the outline of a histogram with the given bin
// dividers and counts, suitable for drawing as a line.
func StepOutline(dividers []float64, counts []float64) (xs, ys []float64) {
	xs = make([]float64, 0, 2*len(counts)+2)
	ys = make([]float64, 0, 2*len(counts)+2)
	if len(counts) == 0 {
		return xs, ys
	}

	xs, ys = append(xs, dividers[0]), append(ys, 0)
	for i, c := range counts {
		xs = append(xs, dividers[i], dividers[i+1])
		ys = append(ys, c, c)
	}
	xs, ys = append(xs, dividers[len(counts)]), append(ys, 0)
	return xs, ys
}

// log10Positive returns the points with positive y, with y replaced by its
// base 10 logarithm.
func log10Positive(xs, ys []float64) (outX, outY []float64) {
	for i := range ys {
		if ys[i] > 0 {
			outX = append(outX, xs[i])
			outY = append(outY, math.Log10(ys[i]))
		}
	}
	return outX, outY
}

func joinAges(ages []float64) string {
	s := ""
	for i, a := range ages {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.1f", a)
	}
	return s
}
