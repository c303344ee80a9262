package io

import (
	"fmt"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/rouille/Cherenkov/atmosphere"
	"github.com/rouille/Cherenkov/logging"
)

var log = logging.Named("io")

// AtmosphereColumns are the column indices of altitude, density, depth and
// refractive delta in an atmosphere table.
var AtmosphereColumns = []int{0, 1, 2, 3}

// ReadAtmosphere reads an atmospheric profile from a whitespace separated
// file with the columns altitude, density, depth and delta. Lines starting
// with '#' are comments.
//
// A malformed or incomplete record ends the table, as in atmosphere.Parse.
// The returned ParseInfo says whether that happened. The file is also read
// as a line oriented table and a warning is logged if the two readings
// disagree on the number of rows, which points at records split over lines
// or ragged rows.
func ReadAtmosphere(fname string) (*atmosphere.Profile, atmosphere.ParseInfo, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, atmosphere.ParseInfo{}, err
	}
	defer f.Close()

	p, info, err := atmosphere.Parse(f)
	if err != nil {
		return nil, info, fmt.Errorf("Atmosphere file '%s': %w", fname, err)
	}
	if info.Truncated {
		log.Warnf("Only the first %d rows of atmosphere file '%s' were "+
			"read: %s", info.Rows, fname, info.Reason)
	}

	cols, err := ReadColumns(fname, AtmosphereColumns...)
	if err != nil {
		log.Warnf("Atmosphere file '%s' is not a regular table: %s",
			fname, err.Error())
	} else if len(cols) > 0 && len(cols[0]) != info.Rows {
		log.Warnf("Atmosphere file '%s' has %d table rows, but %d records "+
			"were read.", fname, len(cols[0]), info.Rows)
	}

	return p, info, nil
}

// ReadColumns reads the columns with the given indices from a whitespace
// separated table, such as the ones written by WriteColumnsFile.
func ReadColumns(fname string, cols ...int) ([][]float64, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("No columns requested from '%s'.", fname)
	}
	return table.ReadTable(fname, cols, nil)
}
