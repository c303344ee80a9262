package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/rouille/Cherenkov/conversion"
	"github.com/rouille/Cherenkov/logging"
	"github.com/rouille/Cherenkov/shower"
)

const (
	ExampleRunFile = `[Shower]

#######################
# Required Parameters #
#######################

# log10 of the primary energy in eV.
LogEnergy = 18

#######################
# Optional Parameters #
#######################

# Zenith and azimuth angles of the shower axis, in degrees. Theta must be in
# [0, 90).
Theta = 0
Phi = 0

# Number of points in the depth grid, which spans [0.1, 40] radiation lengths.
Steps = 50

# Number of showers generated in shower mode.
Count = 20

# Number of first interaction depths drawn for the first interaction
# histogram. These are sampled without generating showers.
FirstInteractions = 100000

# Seed of the first shower. Shower i uses Seed + i. If Seed is 0, a fresh
# seed is drawn for every run.
Seed = 0

[Cherenkov]

# Wavelength band of the emitted photons, in cm.
WaveMin = 300e-7
WaveMax = 400e-7

[Atmosphere]

# Whitespace separated table with the columns
# altitude [km] density [g/cm^3] depth [g/cm^2] delta
# in order of increasing altitude.
File = path/to/atmosphere.txt

[Output]

# Directory which output tables are written to.
Dir = .

# Set to true to also render figures with matplotlib.
Plot = false

# Set to true to write Prometheus metrics to Dir/cherenkov.prom.
Metrics = false

# One of panic, fatal, error, warn, info, debug.
LogLevel = info
`
)

type ShowerConfig struct {
	// Required
	LogEnergy float64

	// Optional
	Theta, Phi float64
	Steps      int
	Count      int
	Seed       int64

	FirstInteractions int
}

func (con *ShowerConfig) CheckInit() error {
	if con.LogEnergy == 0 {
		return fmt.Errorf("Need to specify LogEnergy in [Shower].")
	}

	energy := con.Energy()
	if energy <= conversion.Ec {
		return fmt.Errorf(
			"LogEnergy must be above the critical energy, log10(%g) = %.3f, "+
				"but is %g.", conversion.Ec, math.Log10(conversion.Ec), con.LogEnergy,
		)
	} else if con.Theta < 0 || con.Theta >= 90 {
		return fmt.Errorf(
			"Theta must be in range [0, 90), but is %g.", con.Theta,
		)
	} else if con.Steps < shower.MinSteps {
		return fmt.Errorf(
			"Steps must be at least %d, but is %d.", shower.MinSteps, con.Steps,
		)
	} else if con.Count < 1 {
		return fmt.Errorf("Count must be positive, but is %d.", con.Count)
	} else if con.FirstInteractions < 1 {
		return fmt.Errorf(
			"FirstInteractions must be positive, but is %d.",
			con.FirstInteractions,
		)
	} else if con.Seed < 0 {
		return fmt.Errorf("Seed must not be negative, but is %d.", con.Seed)
	}

	return nil
}

// Energy returns the primary energy in eV.
func (con *ShowerConfig) Energy() float64 { return math.Pow(10, con.LogEnergy) }

type CherenkovConfig struct {
	WaveMin, WaveMax float64
}

func (con *CherenkovConfig) CheckInit() error {
	if con.WaveMin <= 0 {
		return fmt.Errorf("WaveMin must be positive, but is %g.", con.WaveMin)
	} else if con.WaveMax <= con.WaveMin {
		return fmt.Errorf(
			"WaveMax must be larger than WaveMin = %g, but is %g.",
			con.WaveMin, con.WaveMax,
		)
	}
	return nil
}

type AtmosphereConfig struct {
	File string
}

func (con *AtmosphereConfig) CheckInit() error {
	if con.File == "" {
		return fmt.Errorf("Need to specify File in [Atmosphere].")
	}
	return nil
}

type OutputConfig struct {
	Dir      string
	Plot     bool
	Metrics  bool
	LogLevel string
}

func (con *OutputConfig) CheckInit() error {
	if con.Dir == "" {
		return fmt.Errorf("Need to specify Dir in [Output].")
	}

	con.LogLevel = strings.ToLower(con.LogLevel)
	for _, level := range logging.Levels {
		if level == con.LogLevel {
			return nil
		}
	}
	return fmt.Errorf(
		"LogLevel must be one of %s, but is '%s'.",
		strings.Join(logging.Levels, ", "), con.LogLevel,
	)
}

// RunConfig is the full configuration of a run.
type RunConfig struct {
	Shower     ShowerConfig
	Cherenkov  CherenkovConfig
	Atmosphere AtmosphereConfig
	Output     OutputConfig
}

// DefaultRunConfig returns a configuration holding every optional default.
// LogEnergy and the atmosphere file have no default.
func DefaultRunConfig() *RunConfig {
	con := &RunConfig{}
	con.Shower.Steps = 50
	con.Shower.Count = 20
	con.Shower.FirstInteractions = 100000
	con.Cherenkov.WaveMin = 300e-7
	con.Cherenkov.WaveMax = 400e-7
	con.Output.Dir = "."
	con.Output.LogLevel = "info"
	return con
}

// CheckInit validates every section.
func (con *RunConfig) CheckInit() error {
	if err := con.Shower.CheckInit(); err != nil {
		return err
	} else if err := con.Cherenkov.CheckInit(); err != nil {
		return err
	} else if err := con.Atmosphere.CheckInit(); err != nil {
		return err
	}
	return con.Output.CheckInit()
}

// ReadRunConfig reads fname on top of the defaults. The result is not yet
// validated, so flags can still override it before CheckInit is called.
func ReadRunConfig(fname string) (*RunConfig, error) {
	con := DefaultRunConfig()
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, err
	}
	return con, nil
}

// ParseRunConfig is ReadRunConfig for a configuration held in memory.
func ParseRunConfig(text string) (*RunConfig, error) {
	con := DefaultRunConfig()
	if err := gcfg.ReadStringInto(con, text); err != nil {
		return nil, err
	}
	return con, nil
}
