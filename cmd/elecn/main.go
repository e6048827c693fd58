package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/analysis"
	"github.com/tyl-create/elec-n/internal/export"
	"github.com/tyl-create/elec-n/internal/grid"
	"github.com/tyl-create/elec-n/internal/metrics"
	"github.com/tyl-create/elec-n/internal/scene"
	"github.com/tyl-create/elec-n/internal/sim"
	"github.com/tyl-create/elec-n/internal/storage"
	"github.com/tyl-create/elec-n/internal/tui"
	"github.com/tyl-create/elec-n/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt            float64
	duration      float64
	damping       float64
	kConst        float64
	containRadius float64

	plotSource int
	sourceIdx  int
	axisName   string

	probeAt  string
	snapStep float64
	extent   float64

	seedsPerSource int
	svgOut         string
	outFile        string
)

// main registers the elecn commands and flags; with no subcommand it opens
// the interactive scene picker. Exits with status 1 on command errors.
func main() {
	rootCmd := &cobra.Command{
		Use:   "elecn",
		Short: "electrostatic charge sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunPicker()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".elecn", "run archive directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and archive the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().Float64Var(&containRadius, "contain", 20.0, "containment metric radius")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded coordinate tracks",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotSource, "source", -1, "source index (-1 for all)")
	plotCmd.Flags().StringVar(&axisName, "axis", "x", "axis to plot (x, y, z, vx, vy, vz)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of one source",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&sourceIdx, "source", 0, "source index")
	phaseCmd.Flags().StringVar(&axisName, "axis", "x", "position axis (x, y, z)")

	fieldCmd := &cobra.Command{
		Use:   "field [scene]",
		Short: "sample the field of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fieldProbe,
	}
	addSceneFlags(fieldCmd)
	fieldCmd.Flags().StringVar(&probeAt, "at", "", "probe one point, as x,y,z")
	fieldCmd.Flags().Float64Var(&snapStep, "snap", 0, "snap the probe point to this grid step")
	fieldCmd.Flags().Float64Var(&extent, "extent", 4.0, "half-width of the field map")

	linesCmd := &cobra.Command{
		Use:   "lines [scene]",
		Short: "trace field lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceLines,
	}
	addSceneFlags(linesCmd)
	linesCmd.Flags().IntVar(&seedsPerSource, "seeds", 0, "seeds per source (0 for default)")
	linesCmd.Flags().StringVar(&svgOut, "svg", "", "write the lines to an SVG file instead")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "watch a scene evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded track",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&sourceIdx, "source", 0, "source index")
	analyzeCmd.Flags().StringVar(&axisName, "axis", "x", "axis to analyze")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark the integrator on a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSceneFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listScenePresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene] [damping...]",
		Short: "run one scene under several damping values",
		Args:  cobra.MinimumNArgs(2),
		RunE:  sweepDamping,
	}
	addSceneFlags(sweepCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump recorded frames as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "dump a full run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render recorded trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGRun,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, fieldCmd, linesCmd,
		liveCmd, analyzeCmd, benchCmd, presetsCmd, sweepCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "built-in scene name")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "scene config file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", scene.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", scene.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&damping, "damping", scene.DefaultDamping, "velocity damping per step")
	cmd.Flags().Float64Var(&kConst, "k", scene.DefaultK, "coulomb constant")
}

// resolveScene picks the scene for a command: an explicit config file wins,
// then a named preset (positional or --preset), then the dipole default.
// Flags the user actually set override whatever the scene brought along.
func resolveScene(cmd *cobra.Command, args []string) (*scene.Config, error) {
	name := preset
	if len(args) > 0 {
		name = args[0]
	}

	var cfg *scene.Config
	switch {
	case configFile != "":
		loaded, err := scene.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		cfg = loaded
	case name != "":
		p := scene.GetPreset(name)
		if p == nil {
			return nil, fmt.Errorf("unknown scene %q (available: %s)",
				name, strings.Join(scene.ListPresets(), ", "))
		}
		// Copy so flag overrides never leak into the shared preset table.
		c := *p
		cfg = &c
	default:
		c := *scene.GetPreset("dipole")
		cfg = &c
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("k") {
		cfg.K = kConst
	}
	return cfg, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	sources, err := cfg.Build()
	if err != nil {
		return err
	}

	eval := cfg.Evaluator()
	runner := sim.New(cfg.Integrator())
	runner.AddMetric(metrics.NewEnergy(eval))
	runner.AddMetric(metrics.NewDrift(eval))
	runner.AddMetric(metrics.NewMomentum())
	runner.AddMetric(metrics.NewMaxSpeed())
	runner.AddMetric(metrics.NewContainment(containRadius))

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()

	result, err := runner.Run(context.Background(), sources, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if probes := cfg.ProbePoints(); len(probes) > 0 && len(result.Frames) > 0 {
		final := result.Frames[len(result.Frames)-1].Sources
		fmt.Println("\nprobes (final frame):")
		for _, p := range probes {
			_, mag := eval.FieldAt(p, final)
			fmt.Printf("  (%.3g, %.3g, %.3g)  |E|=%.6f  V=%.6f\n",
				p.X, p.Y, p.Z, mag, eval.PotentialAt(p, final))
		}
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tCREATED\tDURATION\tDT\tDAMPING\tSOURCES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4gs\t%.3g\t%d\n",
			run.ID,
			run.Scene,
			run.Created().Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Damping,
			run.SourceCount,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	axis, err := analysis.ParseAxis(axisName)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("scene: %s\n", cfg.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	first, last := 0, len(frames[0].Sources)
	if plotSource >= 0 {
		first, last = plotSource, plotSource+1
	}
	if last-first > 4 {
		last = first + 4
	}

	for i := first; i < last; i++ {
		data, err := analysis.Track(frames, i, axis)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("source %d  %s(t)", i, axis)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	axis, err := analysis.ParseAxis(axisName)
	if err != nil {
		return err
	}

	portrait, err := analysis.PhasePortrait(frames, sourceIdx, axis)
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s\n", args[0])
	fmt.Printf("scene: %s\n", cfg.Name)
	fmt.Printf("source %d: %s vs v%s\n\n", sourceIdx, axis, axis)
	fmt.Println(portrait.ASCII(70, 20))

	return nil
}

func fieldProbe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	sources, err := cfg.Build()
	if err != nil {
		return err
	}
	eval := cfg.Evaluator()

	if probeAt != "" {
		p, err := parseVec(probeAt)
		if err != nil {
			return err
		}
		if snapStep > 0 {
			if p, err = grid.Snap(p, snapStep); err != nil {
				return err
			}
		}
		e, mag := eval.FieldAt(p, sources)
		fmt.Printf("point: (%.4g, %.4g, %.4g)\n", p.X, p.Y, p.Z)
		fmt.Printf("E: (%.6g, %.6g, %.6g)  |E|: %.6g\n", e.X, e.Y, e.Z, mag)
		fmt.Printf("V: %.6g\n", eval.PotentialAt(p, sources))
		return nil
	}

	fmt.Printf("field map: %s (z=0 slice, extent ±%.3g)\n\n", cfg.Name, extent)
	fmt.Println(viz.FieldMap(eval, sources, extent, 64, 24))

	if probes := cfg.ProbePoints(); len(probes) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROBE\t|E|\tV")
		for _, p := range probes {
			_, mag := eval.FieldAt(p, sources)
			fmt.Fprintf(w, "(%.3g, %.3g, %.3g)\t%.6f\t%.6f\n",
				p.X, p.Y, p.Z, mag, eval.PotentialAt(p, sources))
		}
		return w.Flush()
	}
	return nil
}

func traceLines(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	sources, err := cfg.Build()
	if err != nil {
		return err
	}
	eval := cfg.Evaluator()

	opt := viz.DefaultTraceOptions()
	if seedsPerSource > 0 {
		opt.SeedsPerSource = seedsPerSource
	}
	lines := viz.TraceFieldLines(eval, sources, opt)

	if svgOut != "" {
		svg := export.FieldLinesSVG(lines, sources, 800, 600)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("traced %d field lines -> %s\n", len(lines), svgOut)
		return nil
	}

	wf := viz.BuildSceneWireframe(sources, 0)
	for _, line := range lines {
		wf.AddPolyline(line, false)
	}
	canvas := viz.NewCanvas(80, 28)
	viz.Render(canvas, wf, viz.NewCamera())
	fmt.Println(canvas.String())
	fmt.Printf("traced %d field lines\n", len(lines))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && preset == "" && configFile == "" {
		return tui.RunPicker()
	}
	cfg, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	return tui.RunLive(cfg)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	axis, err := analysis.ParseAxis(axisName)
	if err != nil {
		return err
	}
	series, err := analysis.Track(frames, sourceIdx, axis)
	if err != nil {
		return err
	}

	spectrum := analysis.PowerSpectrum(series, cfg.Dt)
	if len(spectrum.Power) < 2 {
		return fmt.Errorf("not enough samples for a spectrum")
	}

	fmt.Printf("frequency analysis: %s\n", args[0])
	fmt.Printf("scene: %s\n", cfg.Name)
	fmt.Printf("source %d, axis %s\n\n", sourceIdx, axis)

	window := len(spectrum.Power) / 4
	if window < 2 {
		window = len(spectrum.Power)
	}
	graph := asciigraph.Plot(spectrum.Power[:window],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)

	freq, power := spectrum.Dominant()
	fmt.Printf("\ndominant frequency: %.3f hz (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1/freq)
	}

	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}
	sources, err := cfg.Build()
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	steps := []float64{0.001, 0.005, 0.02}

	fmt.Printf("benchmarking %s (%d sources)\n\n", cfg.Name, len(sources))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range steps {
			runner := sim.New(cfg.Integrator())

			start := time.Now()
			result, err := runner.Run(context.Background(), sources, sim.Config{Dt: step, Duration: dur})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.1fs\t%.4gs\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed.Round(time.Microsecond),
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func listScenePresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCES\tDURATION\tDT\tDAMPING")
	for _, name := range scene.ListPresets() {
		cfg := scene.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.1fs\t%.4gs\t%.3g\n",
			name, len(cfg.Sources), cfg.Duration, cfg.Dt, cfg.Damping)
	}
	return w.Flush()
}

func sweepDamping(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScene(cmd, args[:1])
	if err != nil {
		return err
	}

	dampings := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad damping %q: %w", arg, err)
		}
		dampings = append(dampings, v)
	}

	sources, err := cfg.Build()
	if err != nil {
		return err
	}
	eval := cfg.Evaluator()

	sweep := sim.NewSweep(cfg.Integrator(), func() []metrics.Metric {
		return []metrics.Metric{metrics.NewEnergy(eval), metrics.NewMaxSpeed()}
	})

	fmt.Printf("sweeping damping on %s (dt=%.4g, duration=%.1fs)\n\n", cfg.Name, cfg.Dt, cfg.Duration)
	start := time.Now()
	results, err := sweep.Run(context.Background(), sources, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}, dampings)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAMPING\tSTEPS\tENERGY\tMAX_SPEED")
	for i, res := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%.6f\t%.6f\n",
			dampings[i], res.StepsTaken, res.Metrics["energy"], res.Metrics["max_speed"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d runs in %v\n", len(results), elapsed)
	return nil
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	_, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteFrames(os.Stdout, frames)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(args[0])
	if err != nil {
		return err
	}
	cfg, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	result := &sim.Result{Frames: frames, Metrics: meta.Metrics, StepsTaken: meta.Steps}
	return storage.ExportJSONStdout(cfg, result)
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	_, frames, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.SceneSVG(frames, 800, 600)
	if outFile == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func parseVec(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		out[i] = v
	}
	return r3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
}
