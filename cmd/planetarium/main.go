package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/planetarium/internal/analysis"
	"github.com/san-kum/planetarium/internal/automation"
	"github.com/san-kum/planetarium/internal/config"
	"github.com/san-kum/planetarium/internal/experiment"
	"github.com/san-kum/planetarium/internal/export"
	"github.com/san-kum/planetarium/internal/gui"
	"github.com/san-kum/planetarium/internal/integrators"
	"github.com/san-kum/planetarium/internal/physics"
	"github.com/san-kum/planetarium/internal/sim"
	"github.com/san-kum/planetarium/internal/storage"
	"github.com/san-kum/planetarium/internal/tui"
	"github.com/san-kum/planetarium/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	timeStep   float64
	trailCap   int
	autoOrbit  bool
	// headless runs
	ticks int
	every int
	watch bool
	// run inspection
	body      string
	phaseBody string
	outFile   string
	svgWidth  int
	svgHeight int
	// sweeps
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	sweepDays  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "planetarium",
		Short:             "sun-anchored planetary orbit simulator",
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".planetarium", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", config.DefaultSystem, "system preset")
	pf.BoolVar(&debug, "debug", false, "write a debug log to planetarium.log")
	pf.Float64Var(&timeStep, "time-step", config.DefaultTimeStep, "seconds simulated per tick")
	pf.IntVar(&trailCap, "trail", 0, "trail points kept per body (0 keeps all)")
	pf.BoolVar(&autoOrbit, "auto-orbit", false, "give resting planets a circular orbit")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the planetarium in the terminal",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, recorded to the data directory",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 24*365, "ticks to simulate")
	runCmd.Flags().IntVar(&every, "every", 24, "record every n ticks")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print a character view while running")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to the sun over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&body, "body", "", "body to plot (default: all planets)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "draw the recorded orbit of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&phaseBody, "body", "earth", "body to draw")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&body, "body", "", "also plot the power spectrum of this body")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render recorded orbits to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default: <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Bodies()), p.Description)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of recorded runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare integration error across time steps",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 600, "smallest time step (s)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 24*3600, "largest time step (s)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of time steps")
	sweepCmd.Flags().Float64Var(&sweepDays, "days", 365, "simulated days per run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		RunE:  benchSystem,
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd, exportSVGCmd,
		presetsCmd, scenarioCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging discards log output unless --debug is set; the terminal
// belongs to the views.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if _, err := tea.LogToFile("planetarium.log", "planetarium"); err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

// loadConfig layers flags over the config file over the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.System = preset
		cfg.Bodies = nil
	}
	if flags.Changed("time-step") {
		cfg.TimeStep = timeStep
	}
	if flags.Changed("trail") {
		cfg.TrailCapacity = trailCap
	}
	if flags.Changed("auto-orbit") {
		cfg.AutoOrbit = autoOrbit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Build()
	if err != nil {
		return err
	}

	s := sim.New(reg, integrators.NewSemiImplicitEuler())
	return viz.RunLive(s, viz.Options{FPS: cfg.FPS, StepIncrement: cfg.StepIncrement})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, ticks, every)
	if err := exp.Setup(); err != nil {
		return err
	}
	if watch {
		r := tui.NewLiveRenderer(os.Stdout, 30)
		r.Start()
		defer r.Stop()
		exp.GetSimulator().AddObserver(r)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %d ticks...\n", cfg.System, ticks)
	start := time.Now()
	out, runErr := exp.Run(ctx)
	if out == nil || out.Result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	runID, err := st.Save(out.Metadata, out.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (%s simulated)\n", out.Result.Ticks, viz.FormatElapsed(out.Result.Elapsed))
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"energy_drift", "radius_drift", "momentum_drift"} {
		fmt.Fprintf(w, "  %s\t%.3e\n", name, out.Result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tTICKS\tSTEP\tSIMULATED\tENERGY DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fs\t%s\t%.2e\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.TimeStep,
			viz.FormatElapsed(run.Elapsed),
			run.Metrics["energy_drift"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

// planets lists the bodies worth plotting: the requested one, or every
// body whose separation ever left zero.
func planets(samples []storage.Sample) []string {
	if body != "" {
		return []string{body}
	}
	var out []string
	for _, name := range storage.BodyNames(samples) {
		for _, v := range storage.Separations(samples, name) {
			if v != 0 {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n\n", meta.System)

	for _, name := range planets(samples) {
		seps := storage.Separations(samples, name)
		if len(seps) < 2 {
			return fmt.Errorf("body %q: not enough samples to plot", name)
		}
		// the first capture precedes any tick and carries no separation
		data := make([]float64, 0, len(seps))
		for _, v := range seps[1:] {
			data = append(data, v/physics.AU)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" distance to sun (AU)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func bodyPath(samples []storage.Sample, name string) ([]analysis.Point, []float64) {
	path := storage.ForBody(samples, name)
	points := make([]analysis.Point, len(path))
	times := make([]float64, len(path))
	for i, s := range path {
		points[i] = analysis.Point{X: s.X / physics.AU, Y: s.Y / physics.AU}
		times[i] = s.Time
	}
	return points, times
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	points, _ := bodyPath(samples, phaseBody)
	if len(points) == 0 {
		return fmt.Errorf("body %q not in run %s", phaseBody, meta.ID)
	}

	fmt.Printf("orbit of %s (%s), x/y in AU\n\n", phaseBody, meta.ID)
	fmt.Print(analysis.PathToASCII(points, 60, 30))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("orbital analysis: %s\n", meta.ID)
	fmt.Printf("system: %s\n\n", meta.System)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMEAN DIST\tFFT PERIOD\tCROSSING PERIOD")
	for _, name := range planets(samples) {
		path := storage.ForBody(samples, name)
		if len(path) < 3 {
			continue
		}
		seps := storage.Separations(samples, name)[1:]
		sampleDt := path[2].Time - path[1].Time

		var mean float64
		for _, v := range seps {
			mean += v
		}
		mean /= float64(len(seps))

		points, times := bodyPath(samples, name)
		fmt.Fprintf(w, "%s\t%.3f AU\t%s\t%s\n", name, mean/physics.AU,
			days(analysis.DominantPeriod(seps, sampleDt)),
			days(analysis.CrossingPeriod(points, times)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if body == "" {
		return nil
	}
	seps := storage.Separations(samples, body)
	if len(seps) < 9 {
		return fmt.Errorf("body %q: not enough samples for a spectrum", body)
	}
	padded := make([]float64, 1)
	for len(padded) < len(seps)-1 {
		padded = make([]float64, len(padded)*2)
	}
	copy(padded, seps[1:])
	ps := analysis.PowerSpectrum(padded)

	fmt.Println()
	fmt.Println(asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+body+" distance)"),
	))
	return nil
}

func days(seconds float64) string {
	if seconds == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f d", seconds/(24*physics.HourSeconds))
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	svg := export.TrailsToSVG(samples, meta.Colors, svgWidth, svgHeight)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	results, err := automation.RunScenario(ctx, scenario, base, os.Stdout)
	for _, r := range results {
		meta := r.Outcome.Metadata
		if r.Step.SaveAs != "" {
			meta.System = r.Step.SaveAs
		}
		runID, saveErr := st.Save(meta, r.Outcome.Samples)
		if saveErr != nil {
			return saveErr
		}
		fmt.Printf("  saved %s (energy drift %.2e)\n", runID, meta.Metrics["energy_drift"])
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.TimeStepSweep{
		From:     sweepFrom,
		To:       sweepTo,
		NumSteps: sweepSteps,
		Span:     sweepDays * 24 * physics.HourSeconds,
	}
	results, err := automation.RunSweep(ctx, sweep, base, io.Discard)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTICKS\tENERGY DRIFT\tRADIUS DRIFT\tMOMENTUM DRIFT")
	for _, r := range results {
		fmt.Fprintf(w, "%.0fs\t%d\t%.3e\t%.3e\t%.3e\n", r.TimeStep, r.Ticks,
			r.Metrics["energy_drift"], r.Metrics["radius_drift"], r.Metrics["momentum_drift"])
	}
	return w.Flush()
}

func benchSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", cfg.System)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tTRAIL\tTIME\tTICKS/SEC")

	for _, n := range []int{1000, 10000, 100000} {
		for _, trail := range []int{0, 1000} {
			c := *cfg
			c.TrailCapacity = trail
			reg, err := c.Build()
			if err != nil {
				return err
			}
			s := sim.New(reg, integrators.NewSemiImplicitEuler())

			start := time.Now()
			if _, err := s.Run(context.Background(), n); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, trail, elapsed, float64(n)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
