// Package shower generates the longitudinal profile of the electron and
// positron component of extensive air showers.
package shower

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/logging"
	"github.com/rouille/Cherenkov/math/grid"
	"github.com/rouille/Cherenkov/metrics"
)

var log = logging.Named("shower")

const (
	// MinDepth and MaxDepth bound the depth grid in radiation lengths.
	MinDepth = 0.1
	MaxDepth = 40.0
	// DefaultSteps is the grid size New uses when steps is zero.
	DefaultSteps = 800
	// MinSteps is the smallest depth grid a shower can have.
	MinSteps = 2
)

// State is the lifecycle state of a Shower.
type State int

const (
	// Initialized showers have a first interaction depth and a depth grid
	// but no profile.
	Initialized State = iota
	// Generated showers have a profile.
	Generated
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Generated:
		return "generated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Shower is a single air shower. It owns its random stream, so distinct
// showers can be generated concurrently.
type Shower struct {
	energy     float64 // eV
	theta, phi float64 // degrees
	y          float64

	src  rand.Source
	seed uint64

	t     []float64 // radiation lengths
	ne    []float64
	t1    float64
	tmax  float64
	state State
}

// Option configures a Shower at construction.
type Option func(*Shower)

// Seed makes the shower's random stream start from seed. Two showers built
// with the same arguments and seed generate identical profiles.
func Seed(seed uint64) Option {
	return func(s *Shower) {
		s.seed = seed
		s.src = rand.NewSource(seed)
	}
}

// Source makes the shower draw from src. The source must not be shared with
// a shower generated on another goroutine.
func Source(src rand.Source) Option {
	return func(s *Shower) { s.src = src }
}

// New creates a shower of the given energy in eV arriving from zenith angle
// theta and azimuth phi in degrees, with a depth grid of steps points between
// MinDepth and MaxDepth radiation lengths, or DefaultSteps points if steps is
// zero. The first interaction depth is drawn immediately; the profile is not
// generated until Generate is called.
func New(energy, theta, phi float64, steps int, opts ...Option) (*Shower, error) {
	y, err := maxDepth("shower.New", energy)
	if err != nil {
		return nil, err
	}
	if steps == 0 {
		steps = DefaultSteps
	}
	if steps < MinSteps {
		return nil, cerrors.Domain(
			"shower.New", "need at least 2 depth steps, got %d", steps,
		)
	}
	if math.IsNaN(theta) || theta < 0 || theta >= 90 {
		return nil, cerrors.Domain(
			"shower.New", "zenith angle %g must be in [0, 90) degrees", theta,
		)
	}

	s := &Shower{energy: energy, theta: theta, phi: phi, y: y}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		Seed(NewSeed())(s)
	}

	s.init(steps)
	return s, nil
}

// init draws the first interaction depth and builds the depth grid.
func (s *Shower) init(steps int) {
	s.t1 = firstInteraction(s.src).Rand()
	s.t = grid.MustBins(steps, MinDepth, MaxDepth, false)
	s.state = Initialized
}

// firstInteraction is the distribution of the first interaction depth in
// radiation lengths.
func firstInteraction(src rand.Source) distuv.Exponential {
	return distuv.Exponential{Rate: 1 / conversion.Tint, Src: src}
}

// Generate draws a longitudinal profile (Crewther & Protheroe 1990). Depths
// before the first interaction hold no particles. Beyond it, the number of
// particles is log-normally distributed around a corrected Greisen profile
// and a single normal deviate is shared by every depth, so a fluctuation
// shifts the whole profile rather than individual points.
//
// Calling Generate again replaces the profile with a fresh draw.
func (s *Shower) Generate() error {
	z := distuv.Normal{Mu: 0, Sigma: 1, Src: s.src}.Rand()

	ne := make([]float64, len(s.t))
	for i, t := range s.t {
		tp := t - s.t1
		if tp <= 0 {
			continue
		}

		age, err := conversion.DepthToAge(tp, s.y)
		if err != nil {
			return err
		}
		g, err := greisen(tp, s.y)
		if err != nil {
			return err
		}

		f := (0.88 + 0.146*age) * (1 - math.Exp(-3.84*age))
		n1 := (s.y / tp) * g * f
		sigma := 0.157 - 0.0048*s.y + 2.34*(age-1)*(age-1)
		mu := math.Log(n1) - sigma*sigma/2

		ne[i] = math.Exp(mu + sigma*z)
		if math.IsNaN(ne[i]) || math.IsInf(ne[i], 0) {
			return cerrors.Numerical(
				"Shower.Generate", "Ne = %g at T = %g", ne[i], t,
			)
		}
	}

	// The maximum is the last point where the profile still rises, which is
	// not necessarily the global maximum.
	iMax := 0
	for i := 1; i < len(ne); i++ {
		if ne[i] > ne[i-1] {
			iMax = i
		}
	}

	s.ne = ne
	s.tmax = s.t[iMax]
	s.state = Generated
	metrics.ShowerGenerated()

	log.Debugf("generated shower: E = %g eV, T1 = %.3f, Tmax = %.3f, z = %.3f",
		s.energy, s.t1, s.tmax, z)
	return nil
}

// Energy returns the primary energy in eV.
func (s *Shower) Energy() float64 { return s.energy }

// Direction returns the zenith and azimuth angles of the primary in degrees.
func (s *Shower) Direction() (theta, phi float64) { return s.theta, s.phi }

// Axis returns the unit vector pointing from the ground toward the arrival
// direction of the primary, with z pointing to the zenith.
func (s *Shower) Axis() r3.Vec {
	th, ph := s.theta*conversion.DegToRad, s.phi*conversion.DegToRad
	return r3.Vec{
		X: math.Sin(th) * math.Cos(ph),
		Y: math.Sin(th) * math.Sin(ph),
		Z: math.Cos(th),
	}
}

// Steps returns the number of points in the depth grid.
func (s *Shower) Steps() int { return len(s.t) }

// Seed returns the seed of the shower's random stream. It is zero if the
// stream was supplied with the Source option.
func (s *Shower) Seed() uint64 { return s.seed }

// State returns the lifecycle state.
func (s *Shower) State() State { return s.state }

// T1 returns the depth of the first interaction in radiation lengths.
func (s *Shower) T1() float64 { return s.t1 }

// Depths returns a copy of the depth grid in radiation lengths.
func (s *Shower) Depths() []float64 { return append([]float64(nil), s.t...) }

// Tmax returns the depth of the shower maximum in radiation lengths.
func (s *Shower) Tmax() (float64, error) {
	if s.state != Generated {
		return 0, s.notGenerated("Shower.Tmax")
	}
	return s.tmax, nil
}

// Profile returns copies of the depth grid and the number of particles at
// each depth.
func (s *Shower) Profile() (t, ne []float64, err error) {
	if s.state != Generated {
		return nil, nil, s.notGenerated("Shower.Profile")
	}
	return s.Depths(), append([]float64(nil), s.ne...), nil
}

func (s *Shower) notGenerated(op string) error {
	return cerrors.Precondition(op, "shower is %s, call Generate first", s.state)
}
