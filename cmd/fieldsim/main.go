package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldsim/internal/analysis"
	"github.com/san-kum/fieldsim/internal/config"
	"github.com/san-kum/fieldsim/internal/export"
	"github.com/san-kum/fieldsim/internal/fdtd"
	"github.com/san-kum/fieldsim/internal/grid"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/sim"
	"github.com/san-kum/fieldsim/internal/viz"
)

var (
	configFile string
	preset     string
	quiet      bool

	dt    float64
	dx    float64
	steps int

	plot      bool
	outDir    string
	svgScale  float64
	frameRate int
	cols      int
	rows      int
	sweepDts  []float64
	magnitude float64
	potExp    float64

	logger = log.New(os.Stderr, "fieldsim: ", 0)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldsim",
		Short: "2-D FDTD field simulator with point charges",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				logger.SetOutput(io.Discard)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scenario")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress logs")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	rootCmd.PersistentFlags().Float64Var(&dx, "dx", config.DefaultDx, "cell size")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", config.DefaultSteps, "ticks to run")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless and report metrics",
		RunE:  runScenario,
	}
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot probe and energy series")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal simulation",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&cols, "cols", 80, "field view width in terminal cells")
	liveCmd.Flags().IntVar(&rows, "rows", 30, "field view height in terminal cells")
	liveCmd.Flags().Float64Var(&magnitude, "magnitude", config.DefaultMagnitude, "pulse and charge magnitude")
	liveCmd.Flags().Float64Var(&potExp, "potential-exponent", viz.DefaultExponent, "potential colour exponent")

	cflCmd := &cobra.Command{
		Use:   "cfl [dt dx]",
		Short: "classify a time and space step pair",
		Args:  cobra.RangeArgs(0, 2),
		RunE:  runCFL,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %d charges, %d pulses, %d steps\n", name, len(cfg.Charges), len(cfg.Pulses), cfg.Steps)
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "run a scenario and write Ez CSV, probe CSV, summary JSON and field-line SVG",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	exportCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg pixels per cell")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the scenario once per dt and compare stability",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{1, 2, 3, 4, 5, 6}, "time steps to compare")

	rootCmd.AddCommand(runCmd, liveCmd, cflCmd, presetsCmd, exportCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, file, environment and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("dx") {
		cfg.Dx = dx
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// energyTrace records the field energy after every tick.
type energyTrace struct {
	values []float64
}

func (e *energyTrace) OnStep(g *grid.Grid, tick fdtd.Tick) {
	e.values = append(e.values, metrics.Energy(g))
}

type scenario struct {
	cfg    *config.Config
	sim    *sim.Simulation
	probe  *metrics.Probe
	energy *energyTrace
	result *sim.Result
}

func runConfigured(cmd *cobra.Command) (*scenario, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	sc := &scenario{cfg: cfg, sim: s, energy: &energyTrace{}}
	s.AddMetric(metrics.NewFieldEnergy())
	s.AddMetric(metrics.NewPeakAmplitude())
	if cfg.Probe != nil {
		sc.probe = metrics.NewProbe(cfg.Probe.X, cfg.Probe.Y)
		s.AddMetric(sc.probe)
	}
	s.AddObserver(sc.energy)

	nx, ny := s.Dims()
	report := s.CFLStatus()
	logger.Printf("grid %dx%d, %d charges, %s", nx, ny, len(s.Charges()), report)
	if !report.Status.Safe() {
		logger.Printf("warning: step pair is %s", report.Status)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Printf("running %d steps...", cfg.Steps)
	start := time.Now()
	result, err := s.Run(ctx, cfg.RunConfig())
	if result != nil {
		logger.Printf("completed %d steps in %v", result.StepsTaken, time.Since(start))
	}
	sc.result = result
	return sc, err
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := runConfigured(cmd)
	if err != nil && sc == nil {
		return err
	}
	if err != nil {
		logger.Printf("run stopped: %v", err)
	}

	r := sc.result
	fmt.Printf("steps: %d\n", r.StepsTaken)
	fmt.Printf("time:  %.2f\n", r.Time)
	fmt.Printf("%s\n", r.CFL)
	fmt.Println("\nmetrics:")
	for _, name := range []string{"energy", "peak_ez", "probe"} {
		if v, ok := r.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, v)
		}
	}

	if sc.probe != nil {
		if f := analysis.DominantFrequency(sc.probe.Series(), sc.cfg.Dt); f > 0 {
			fmt.Printf("  dominant frequency: %.5f (period %.2f)\n", f, 1/f)
		}
	}

	if plot {
		if sc.probe != nil && len(sc.probe.Series()) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(sc.probe.Series(), asciigraph.Height(10), asciigraph.Width(70),
				asciigraph.Caption(fmt.Sprintf("Ez at (%d, %d)", sc.cfg.Probe.X, sc.cfg.Probe.Y))))
		}
		if len(sc.energy.values) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(sc.energy.values, asciigraph.Height(8), asciigraph.Width(70),
				asciigraph.Caption("field energy")))
		}
	}
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}

	settings := viz.DefaultSettings()
	settings.FPS = frameRate
	settings.Cols = cols
	settings.Rows = rows
	settings.Density = cfg.FieldLineDensity
	settings.Magnitude = magnitude
	settings.PotentialExponent = potExp
	settings.EraseRadius = cfg.EraseRadius
	settings.SelectRadius = cfg.SelectRadius
	return viz.Run(s, settings)
}

func runCFL(cmd *cobra.Command, args []string) error {
	var report metrics.CFLReport
	switch len(args) {
	case 2:
		d, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid dt: %w", err)
		}
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid dx: %w", err)
		}
		report = metrics.AnalyzeCFL(d, x)
	case 0:
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		report = cfg.CFL()
	default:
		return fmt.Errorf("expected both dt and dx")
	}

	fmt.Printf("dt=%g dx=%g\n%s\n", report.Dt, report.Dx, report)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	sc, err := runConfigured(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	snap := sc.sim.Snapshot()
	if err := writeFile(filepath.Join(outDir, "ez.csv"), func(w io.Writer) error {
		return export.WriteFieldCSV(w, snap.Ez)
	}); err != nil {
		return err
	}

	if sc.probe != nil {
		if err := writeFile(filepath.Join(outDir, "probe.csv"), func(w io.Writer) error {
			return export.WriteSeriesCSV(w, "ez", sc.probe.Times(), sc.probe.Series())
		}); err != nil {
			return err
		}
	}

	charges := sc.sim.Charges()
	if err := writeFile(filepath.Join(outDir, "summary.json"), func(w io.Writer) error {
		return export.WriteSummaryJSON(w, export.NewSummary(sc.result, charges))
	}); err != nil {
		return err
	}

	lines := sc.sim.TraceFieldLines(sc.cfg.FieldLineDensity)
	svg := export.FieldLinesToSVG(lines, charges, snap.NX, snap.NY, svgScale)
	if err := os.WriteFile(filepath.Join(outDir, "fieldlines.svg"), []byte(svg), 0644); err != nil {
		return err
	}

	logger.Printf("exported to %s", outDir)
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.CheckFinite = true

	params := make([]sim.Params, len(sweepDts))
	for i, d := range sweepDts {
		params[i] = sim.Params{Dt: d, Dx: cfg.Dx}
	}

	build := func(p sim.Params) (*sim.Simulation, error) {
		c := cfg.Clone()
		c.Dt, c.Dx = p.Dt, p.Dx
		s, err := c.Build()
		if err != nil {
			return nil, err
		}
		s.AddMetric(metrics.NewPeakAmplitude())
		return s, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Printf("sweeping %d step pairs, %d steps each", len(params), cfg.Steps)
	results, err := sim.Sweep(ctx, build, params, cfg.RunConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tDX\tCFL\tSTATUS\tSTEPS\tPEAK |EZ|\tDIVERGED")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%g\t%.3f\t%s\t%d\t%.4g\t%v\n",
			r.Params.Dt, r.Params.Dx, r.CFL.Number, r.CFL.Status, r.StepsTaken, r.Metrics["peak_ez"], len(r.Errors) > 0)
	}
	return w.Flush()
}
