package shower

import (
	"runtime"
	"sort"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/rouille/Cherenkov/conversion"
	cerrors "github.com/rouille/Cherenkov/errors"
	"github.com/rouille/Cherenkov/math/grid"
)

// EnsembleConfig describes a set of showers sharing a primary.
type EnsembleConfig struct {
	Energy     float64 // eV
	Theta, Phi float64 // degrees
	Steps      int
	Count      int
	// Shower i is seeded with Seed + i. If Seed is zero a fresh seed is
	// drawn with NewSeed.
	Seed uint64
	// Workers bounds the number of showers generated at once. Zero means
	// runtime.NumCPU().
	Workers int
}

// Ensemble is a set of independently generated showers on a common depth
// grid.
type Ensemble struct {
	Showers []*Shower
}

// GenerateEnsemble creates and generates c.Count showers in parallel. Each
// shower has its own random stream, so the result only depends on c.
func GenerateEnsemble(c EnsembleConfig) (*Ensemble, error) {
	if c.Count < 1 {
		return nil, cerrors.Domain(
			"GenerateEnsemble", "need at least one shower, got %d", c.Count,
		)
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > c.Count {
		workers = c.Count
	}
	seed := c.Seed
	if seed == 0 {
		seed = NewSeed()
	}

	ens := &Ensemble{Showers: make([]*Shower, c.Count)}
	errs := make([]error, c.Count)
	jobs := make(chan int, c.Count)
	for i := 0; i < c.Count; i++ {
		jobs <- i
	}
	close(jobs)

	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				s, err := New(c.Energy, c.Theta, c.Phi, c.Steps, Seed(seed+uint64(i)))
				if err == nil {
					err = s.Generate()
				}
				ens.Showers[i], errs[i] = s, err
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("generated %d showers with %d workers", c.Count, workers)
	return ens, nil
}

// Len returns the number of showers.
func (ens *Ensemble) Len() int { return len(ens.Showers) }

// MeanProfile returns the depth grid and the mean number of particles at
// each depth over the ensemble.
func (ens *Ensemble) MeanProfile() (t, mean []float64, err error) {
	if len(ens.Showers) == 0 {
		return nil, nil, cerrors.Precondition("MeanProfile", "empty ensemble")
	}

	profiles := make([][]float64, len(ens.Showers))
	for i, s := range ens.Showers {
		if t, profiles[i], err = s.Profile(); err != nil {
			return nil, nil, err
		}
	}

	mean = make([]float64, len(t))
	column := make([]float64, len(profiles))
	for j := range mean {
		for i := range profiles {
			column[i] = profiles[i][j]
		}
		mean[j] = stat.Mean(column, nil)
	}
	return t, mean, nil
}

// Histogram is a binned count with out of range entries kept apart.
type Histogram struct {
	Dividers            []float64
	Counts              []float64
	Underflow, Overflow int
}

// SampleFirstInteractions draws n first interaction depths in radiation
// lengths from one random stream, without building showers. If seed is zero
// a fresh seed is drawn with NewSeed.
func SampleFirstInteractions(n int, seed uint64) ([]float64, error) {
	if n < 1 {
		return nil, cerrors.Domain(
			"SampleFirstInteractions", "need at least one sample, got %d", n,
		)
	}
	if seed == 0 {
		seed = NewSeed()
	}

	dist := firstInteraction(rand.NewSource(seed))
	t1s := make([]float64, n)
	for i := range t1s {
		t1s[i] = dist.Rand()
	}
	return t1s, nil
}

// FirstInteractionHistogram bins the altitudes in km of first interactions
// at depths t1s, in radiation lengths, of vertical showers. Each depth is
// converted to an altitude through T1 X0.
func FirstInteractionHistogram(t1s []float64, bins int, lo, hi float64) (*Histogram, error) {
	if bins < 1 || !(hi > lo) {
		return nil, cerrors.Domain(
			"FirstInteractionHistogram", "bad binning: %d bins over [%g, %g)",
			bins, lo, hi,
		)
	}

	h := &Histogram{}
	var err error
	if h.Dividers, err = grid.Bins(bins+1, lo, hi, false); err != nil {
		return nil, err
	}

	alts := make([]float64, 0, len(t1s))
	for _, t1 := range t1s {
		alt, err := conversion.DepthToAltitude(t1 * conversion.X0)
		if err != nil {
			return nil, err
		}
		switch {
		case alt < lo:
			h.Underflow++
		case alt >= hi:
			h.Overflow++
		default:
			alts = append(alts, alt)
		}
	}

	sort.Float64s(alts)
	h.Counts = stat.Histogram(nil, h.Dividers, alts, nil)
	return h, nil
}
