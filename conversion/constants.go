// Package conversion maps between shower age, atmospheric depth and
// altitude, and holds the physical constants shared by the shower and
// Cherenkov models.
package conversion

import (
	"math"
)

// DegToRad converts degrees to radians.
const DegToRad = math.Pi / 180

const (
	// Me is the electron mass in MeV.
	Me = 0.511
	// Alpha is the fine structure constant.
	Alpha = 0.007297352569
	// Ec is the critical energy in air in eV.
	Ec = 86e6
	// X0 is the radiation length in air in g/cm^2.
	X0 = 37.1
	// Tint is the mean photon interaction depth in radiation lengths.
	Tint = 9.0 / 7.0
)
