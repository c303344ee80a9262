// Package atmosphere holds a tabulated atmospheric profile: density, depth
// and refractive index as a function of altitude.
package atmosphere

import (
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/logging"
	"github.com/rouille/Cherenkov/math/interpolate"
)

var log = logging.Named("atmosphere")

// Layer is a single row of an atmospheric table.
type Layer struct {
	Altitude float64 // km
	Density  float64 // g/cm^3
	Depth    float64 // g/cm^2
	Delta    float64 // refractive index - 1
}

// RefractiveIndex returns 1 + Delta.
func (l Layer) RefractiveIndex() float64 { return 1 + l.Delta }

// Column selects one of the tabulated quantities of a Profile.
type Column int

const (
	Altitude Column = iota
	Density
	Depth
	Delta
)

func (c Column) String() string {
	switch c {
	case Altitude:
		return "altitude"
	case Density:
		return "density"
	case Depth:
		return "depth"
	case Delta:
		return "delta"
	}
	return "unknown"
}

// Profile is an ordered, immutable sequence of layers. Interpolation over a
// Profile assumes altitudes are strictly increasing; this is not enforced.
type Profile struct {
	layers []Layer
	cols   [4][]float64
}

// New creates a profile from layers in the given order. The slice is copied.
func New(layers []Layer) (*Profile, error) {
	if len(layers) == 0 {
		return nil, cerrors.Domain("atmosphere.New", "no layers")
	}

	p := &Profile{layers: append([]Layer(nil), layers...)}
	for c := range p.cols {
		p.cols[c] = make([]float64, len(layers))
	}
	for i, l := range p.layers {
		p.cols[Altitude][i] = l.Altitude
		p.cols[Density][i] = l.Density
		p.cols[Depth][i] = l.Depth
		p.cols[Delta][i] = l.Delta
	}

	if !p.Monotonic() {
		log.Warnf(
			"altitudes of the %d layer profile are not strictly increasing, "+
				"interpolation results will be meaningless", len(layers),
		)
	}
	return p, nil
}

// FromColumns creates a profile from parallel column slices.
func FromColumns(altitudes, densities, depths, deltas []float64) (*Profile, error) {
	n := len(altitudes)
	if len(densities) != n || len(depths) != n || len(deltas) != n {
		return nil, cerrors.Precondition(
			"atmosphere.FromColumns", "column lengths %d, %d, %d, %d differ",
			n, len(densities), len(depths), len(deltas),
		)
	}

	layers := make([]Layer, n)
	for i := range layers {
		layers[i] = Layer{altitudes[i], densities[i], depths[i], deltas[i]}
	}
	return New(layers)
}

// Len returns the number of layers.
func (p *Profile) Len() int { return len(p.layers) }

// Layer returns the i-th layer in load order.
func (p *Profile) Layer(i int) Layer { return p.layers[i] }

// Column returns a copy of the requested column.
func (p *Profile) Column(c Column) []float64 {
	return append([]float64(nil), p.cols[c]...)
}

// Altitudes returns a copy of the altitude column in km.
func (p *Profile) Altitudes() []float64 { return p.Column(Altitude) }

// Densities returns a copy of the density column in g/cm^3.
func (p *Profile) Densities() []float64 { return p.Column(Density) }

// Depths returns a copy of the depth column in g/cm^2.
func (p *Profile) Depths() []float64 { return p.Column(Depth) }

// Deltas returns a copy of the refractive delta column.
func (p *Profile) Deltas() []float64 { return p.Column(Delta) }

// Monotonic returns true if the altitudes are strictly increasing.
func (p *Profile) Monotonic() bool {
	alts := p.cols[Altitude]
	for i := 1; i < len(alts); i++ {
		if !(alts[i] > alts[i-1]) {
			return false
		}
	}
	return true
}

// Interpolator returns a linear interpolator of column c as a function of
// altitude. A profile with a single layer cannot be interpolated.
func (p *Profile) Interpolator(c Column) (*interpolate.Linear, error) {
	return interpolate.NewLinear(p.cols[Altitude], p.cols[c])
}

// Sample is the state of the atmosphere at an altitude.
type Sample struct {
	Altitude, Density, Delta float64
	// Extrapolated is set when Altitude lies outside the tabulated range.
	Extrapolated bool
}

// At interpolates density and refractive delta at every altitude.
func (p *Profile) At(altitudes []float64) ([]Sample, error) {
	density, err := p.Interpolator(Density)
	if err != nil {
		return nil, err
	}
	delta, err := p.Interpolator(Delta)
	if err != nil {
		return nil, err
	}

	out := make([]Sample, len(altitudes))
	for i, alt := range altitudes {
		out[i] = Sample{
			Altitude:     alt,
			Density:      density.Eval(alt),
			Delta:        delta.Eval(alt),
			Extrapolated: !density.InRange(alt),
		}
	}
	return out, nil
}
