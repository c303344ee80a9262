package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/rouille/Cherenkov/atmosphere"
	"github.com/rouille/Cherenkov/cherenkov"
	"github.com/rouille/Cherenkov/conversion"
	"github.com/rouille/Cherenkov/io"
	"github.com/rouille/Cherenkov/logging"
	"github.com/rouille/Cherenkov/math/grid"
	"github.com/rouille/Cherenkov/metrics"
	"github.com/rouille/Cherenkov/render"
	"github.com/rouille/Cherenkov/shower"
)

var (
	log = logging.Named("main")

	modes = []string{"atmosphere", "spectra", "shower", "cherenkov"}
	// ages at which spectra and angular distributions are reported.
	ages = []float64{0.8, 1.0, 1.2}
)

const (
	spectrumBins     = 100
	greisenBins      = 40
	firstInterBins   = 50
	firstInterMaxAlt = 40.0
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close stops profiling and closes the files inside FileGroup. Logging goes
// back to stderr.
func (fg *FileGroup) Close() error {
	var err error
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err = fg.prof.Close()
		fg.prof = nil
	}

	if fg.log != nil {
		logging.SetOutput(os.Stderr)
		if lerr := fg.log.Close(); err == nil {
			err = lerr
		}
		fg.log = nil
	}
	return err
}

func main() {
	var (
		mode, configPath, logPath, pprofPath, exampleConfig string
		threads                                             int
	)
	con := io.DefaultRunConfig()
	flags := &io.RunConfig{}

	flag.StringVar(&mode, "Mode", "",
		"Mode to run. One of "+strings.Join(modes, ", ")+".")
	flag.StringVar(&configPath, "Config", "",
		"Run configuration file. Flags override the values it sets.")
	flag.StringVar(&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Run'.")
	flag.StringVar(&logPath, "Log", "",
		"Location to write log statements to. Default is stderr.")
	flag.StringVar(&pprofPath, "PProf", "",
		"Location to write profile to. Default is no profiling.")
	flag.IntVar(&threads, "Threads", runtime.NumCPU(),
		"Number of showers generated at once.")

	flag.StringVar(&flags.Atmosphere.File, "Atmosphere", "",
		"Atmosphere table with columns altitude, density, depth, delta.")
	flag.Float64Var(&flags.Shower.LogEnergy, "LogEnergy", 0,
		"log10 of the primary energy in eV.")
	flag.Float64Var(&flags.Shower.Theta, "Theta", 0, "Zenith angle in degrees.")
	flag.Float64Var(&flags.Shower.Phi, "Phi", 0, "Azimuth angle in degrees.")
	flag.IntVar(&flags.Shower.Steps, "Steps", 0, "Points in the depth grid.")
	flag.IntVar(&flags.Shower.Count, "Count", 0, "Number of showers.")
	flag.IntVar(&flags.Shower.FirstInteractions, "FirstInteractions", 0,
		"Number of first interaction depths in the X1 histogram.")
	flag.Int64Var(&flags.Shower.Seed, "Seed", 0,
		"Seed of the first shower. 0 draws a fresh seed.")
	flag.StringVar(&flags.Output.Dir, "Out", "",
		"Directory which output tables and figures are written to.")
	flag.StringVar(&flags.Output.LogLevel, "LogLevel", "",
		"One of "+strings.Join(logging.Levels, ", ")+".")
	flag.BoolVar(&flags.Output.Plot, "Plot", false, "Render figures.")
	flag.BoolVar(&flags.Output.Metrics, "Metrics", false,
		"Write Prometheus metrics to the output directory.")

	flag.Parse()

	if exampleConfig != "" {
		if exampleConfig != "Run" {
			log.Fatal("Unrecognized 'ExampleConfig' argument. The only " +
				"recognized argument is 'Run'.")
		}
		fmt.Println(io.ExampleRunFile)
		return
	}

	if configPath != "" {
		var err error
		if con, err = io.ReadRunConfig(configPath); err != nil {
			log.Fatal(err.Error())
		}
	}
	overrideConfig(con, flags)

	if err := run(mode, con, logPath, pprofPath, threads); err != nil {
		log.Fatal(err.Error())
	}
}

// run executes mode. The log and profile files are closed before it returns,
// so the profile is complete even if the mode fails.
func run(mode string, con *io.RunConfig, logPath, pprofPath string, threads int) (err error) {
	fg, err := setupFiles(logPath, pprofPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fg.Close(); err == nil {
			err = cerr
		}
	}()

	if err := checkConfig(mode, con); err != nil {
		return err
	}
	if err := logging.SetLevel(con.Output.LogLevel); err != nil {
		return err
	}
	if err := os.MkdirAll(con.Output.Dir, 0755); err != nil {
		return err
	}

	switch mode {
	case "atmosphere":
		err = atmosphereMain(con)
	case "spectra":
		err = spectraMain(con)
	case "shower":
		err = showerMain(con, threads)
	case "cherenkov":
		err = cherenkovMain(con, threads)
	default:
		panic("Impossible")
	}
	if err != nil {
		return err
	}

	if con.Output.Plot {
		render.Execute()
	}
	if con.Output.Metrics {
		fname := path.Join(con.Output.Dir, "cherenkov.prom")
		if err := metrics.WriteTextfile(fname); err != nil {
			return err
		}
	}
	log.Infof("%s mode finished, output in %s", mode, con.Output.Dir)
	return nil
}

// overrideConfig copies every flag the user set into con.
func overrideConfig(con, flags *io.RunConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "Atmosphere":
			con.Atmosphere.File = flags.Atmosphere.File
		case "LogEnergy":
			con.Shower.LogEnergy = flags.Shower.LogEnergy
		case "Theta":
			con.Shower.Theta = flags.Shower.Theta
		case "Phi":
			con.Shower.Phi = flags.Shower.Phi
		case "Steps":
			con.Shower.Steps = flags.Shower.Steps
		case "Count":
			con.Shower.Count = flags.Shower.Count
		case "FirstInteractions":
			con.Shower.FirstInteractions = flags.Shower.FirstInteractions
		case "Seed":
			con.Shower.Seed = flags.Shower.Seed
		case "Out":
			con.Output.Dir = flags.Output.Dir
		case "LogLevel":
			con.Output.LogLevel = flags.Output.LogLevel
		case "Plot":
			con.Output.Plot = flags.Output.Plot
		case "Metrics":
			con.Output.Metrics = flags.Output.Metrics
		}
	})
}

// checkConfig validates the sections of con needed by mode and fails with
// a descriptive error if the mode is unknown.
func checkConfig(mode string, con *io.RunConfig) error {
	if err := con.Output.CheckInit(); err != nil {
		return err
	}

	switch mode {
	case "atmosphere":
		return con.Atmosphere.CheckInit()
	case "spectra":
		return nil
	case "shower":
		return con.Shower.CheckInit()
	case "cherenkov":
		return con.CheckInit()
	case "":
		return fmt.Errorf("No mode has been set. Use -Mode with one of %s.",
			strings.Join(modes, ", "))
	}
	return fmt.Errorf("Unrecognized mode '%s'. Recognized modes are %s.",
		mode, strings.Join(modes, ", "))
}

func setupFiles(logPath, pprofPath string) (*FileGroup, error) {
	fg := &FileGroup{}

	if logPath != "" {
		lf, err := os.Create(logPath)
		if err != nil {
			return nil, err
		}
		logging.SetOutput(lf)
		fg.log = lf
	}

	if pprofPath != "" {
		f, err := os.Create(pprofPath)
		if err != nil {
			fg.Close()
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			fg.Close()
			return nil, err
		}
		fg.prof = f
	}

	return fg, nil
}

func atmosphereMain(con *io.RunConfig) error {
	atm, _, err := io.ReadAtmosphere(con.Atmosphere.File)
	if err != nil {
		return err
	}
	atmosphereSummary(atm)
	if !atm.Monotonic() {
		log.Warnf("altitudes in '%s' are not strictly increasing",
			con.Atmosphere.File)
	}

	alts := []float64{}
	deltas := []float64{}
	for i := 0; i < atm.Len(); i++ {
		if l := atm.Layer(i); l.Delta > 0 {
			alts, deltas = append(alts, l.Altitude), append(deltas, l.Delta)
		}
	}
	thresholds, err := cherenkov.EnergyThresholds(deltas)
	if err != nil {
		return err
	}

	dir := con.Output.Dir
	err = io.WriteColumnsFile(path.Join(dir, "atmosphere.txt"),
		[]string{"altitude", "density", "depth", "delta"},
		atm.Altitudes(), atm.Densities(), atm.Depths(), atm.Deltas(),
	)
	if err != nil {
		return err
	}
	err = io.WriteColumnsFile(path.Join(dir, "threshold.txt"),
		[]string{"altitude", "threshold"}, alts, thresholds,
	)
	if err != nil {
		return err
	}

	if con.Output.Plot {
		render.Atmosphere(dir, atm, alts, thresholds)
	}
	return nil
}

func spectraMain(con *io.RunConfig) error {
	energies := grid.MustBins(spectrumBins, cherenkov.MinElectronEnergy,
		cherenkov.MaxElectronEnergy, true)

	spectra := make([][]float64, len(ages))
	for i, age := range ages {
		var err error
		spectra[i], err = shower.ElectronEnergySpectrum(energies, age)
		if err != nil {
			return err
		}
	}

	err := io.WriteColumnsFile(path.Join(con.Output.Dir, "spectra.txt"),
		[]string{"energy", "s=0.8", "s=1.0", "s=1.2"},
		energies, spectra[0], spectra[1], spectra[2],
	)
	if err != nil {
		return err
	}

	if con.Output.Plot {
		render.Spectra(con.Output.Dir, energies, ages, spectra)
	}
	return nil
}

func generateEnsemble(con *io.RunConfig, threads int) (*shower.Ensemble, error) {
	defer metrics.ObserveStage("ensemble", metrics.Now())

	sc := con.Shower
	ens, err := shower.GenerateEnsemble(shower.EnsembleConfig{
		Energy: sc.Energy(), Theta: sc.Theta, Phi: sc.Phi,
		Steps: sc.Steps, Count: sc.Count, Seed: uint64(sc.Seed),
		Workers: threads,
	})
	if err != nil {
		return nil, err
	}

	log.Infof("generated %d showers, first seed %d",
		ens.Len(), ens.Showers[0].Seed())
	return ens, nil
}

func showerMain(con *io.RunConfig, threads int) error {
	ens, err := generateEnsemble(con, threads)
	if err != nil {
		return err
	}

	t, mean, err := ens.MeanProfile()
	if err != nil {
		return err
	}
	greisenT := grid.MustBins(greisenBins, shower.MinDepth, shower.MaxDepth, false)
	greisen, err := shower.GreisenAll(greisenT, con.Shower.Energy())
	if err != nil {
		return err
	}
	hist, err := firstInteractionHistogram(con)
	if err != nil {
		return err
	}

	profiles := make([][]float64, ens.Len())
	header := []string{"T", "mean"}
	cols := [][]float64{t, mean}
	for i, s := range ens.Showers {
		if _, profiles[i], err = s.Profile(); err != nil {
			return err
		}
		header = append(header, fmt.Sprintf("Ne_%d", i))
		cols = append(cols, profiles[i])
	}

	dir := con.Output.Dir
	if err := io.WriteColumnsFile(path.Join(dir, "profile.txt"), header, cols...); err != nil {
		return err
	}
	err = io.WriteColumnsFile(path.Join(dir, "greisen.txt"),
		[]string{"T", "Ne"}, greisenT, greisen)
	if err != nil {
		return err
	}
	err = io.WriteColumnsFile(path.Join(dir, "X1.txt"),
		[]string{"altitude_low", "altitude_high", "count"},
		hist.Dividers[:len(hist.Counts)], hist.Dividers[1:], hist.Counts)
	if err != nil {
		return err
	}

	if con.Output.Plot {
		render.Showers(dir, con.Shower.LogEnergy, t, profiles, mean, greisenT, greisen)
		render.FirstInteraction(dir, hist)
	}
	return nil
}

// firstInteractionHistogram bins a sample of first interaction altitudes
// drawn without generating showers. A fixed Seed gives the sample the first
// seed after the ensemble's.
func firstInteractionHistogram(con *io.RunConfig) (*shower.Histogram, error) {
	defer metrics.ObserveStage("first_interactions", metrics.Now())

	seed := uint64(con.Shower.Seed)
	if seed != 0 {
		seed += uint64(con.Shower.Count)
	}
	t1s, err := shower.SampleFirstInteractions(con.Shower.FirstInteractions, seed)
	if err != nil {
		return nil, err
	}

	hist, err := shower.FirstInteractionHistogram(t1s, firstInterBins, 0, firstInterMaxAlt)
	if err != nil {
		return nil, err
	}
	if hist.Underflow+hist.Overflow > 0 {
		log.Infof("%d of %d first interactions below 0 km and %d above %g km",
			hist.Underflow, len(t1s), hist.Overflow, firstInterMaxAlt)
	}
	return hist, nil
}

func cherenkovMain(con *io.RunConfig, threads int) error {
	atm, _, err := io.ReadAtmosphere(con.Atmosphere.File)
	if err != nil {
		return err
	}
	atmosphereSummary(atm)
	ens, err := generateEnsemble(con, threads)
	if err != nil {
		return err
	}

	var (
		x      []float64
		nc     = make([][]float64, ens.Len())
		header = []string{"X"}
		dist   *cherenkov.Distribution
	)
	for i, s := range ens.Showers {
		e, err := cherenkov.New(atm, s, con.Cherenkov.WaveMin, con.Cherenkov.WaveMax)
		if err != nil {
			return err
		}

		if i == 0 {
			if dist, err = e.AngularDistribution(); err != nil {
				return err
			}
		}

		p, err := e.TotalPhotons()
		if err != nil {
			return err
		}
		nc[i] = p.Nc
		header = append(header, fmt.Sprintf("Nc_%d", i))

		if x == nil {
			x = make([]float64, len(p.T))
			for j, t := range p.T {
				x[j] = t * conversion.X0
			}
		}
		log.Debugf("shower %d/%d done", i+1, ens.Len())
	}

	dir := con.Output.Dir
	cols := append([][]float64{x}, nc...)
	if err := io.WriteColumnsFile(path.Join(dir, "cherenkov.txt"), header, cols...); err != nil {
		return err
	}
	err = io.WriteMatrixFile(path.Join(dir, "angular.txt"), "T",
		dist.T, dist.Angles, dist.Density)
	if err != nil {
		return err
	}

	if con.Output.Plot {
		render.Photons(dir, con.Shower.LogEnergy, con.Shower.Theta, x, nc)

		rows := [][]float64{}
		found := []float64{}
		for _, age := range ages {
			if row, _, ok := dist.AtAge(age); ok {
				rows, found = append(rows, row), append(found, age)
			} else {
				log.Warnf("the first shower never reaches age %g", age)
			}
		}
		render.Angular(dir, dist.Angles, found, rows)
	}
	return nil
}

// atmosphereSummary logs the tabulated range of an atmosphere.
func atmosphereSummary(atm *atmosphere.Profile) {
	alts := atm.Altitudes()
	log.Infof("atmosphere has %d layers between %g and %g km",
		atm.Len(), alts[0], alts[len(alts)-1])
}
