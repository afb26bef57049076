package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/integrii/flaggy"

	"emberlife/src/config"
	"emberlife/src/telemetry"
	"emberlife/src/universe"
	"emberlife/src/view"
)

//EnvOptions are the options of the program itself, not of the simulation
type EnvOptions struct {
	configPath  string
	writeConfig string
	interactive bool
	template    string
	logPath     string
	verbose     bool
}

//overrides are flag values applied on top of the loaded configuration when set
type overrides struct {
	width    int
	height   int
	interval time.Duration
	maxSteps int
	seed     int64
	census   string
	stable   bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	eo, ov := initOptions()

	cfg, err := config.Load(eo.configPath)
	if err != nil {
		return err
	}
	ov.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if eo.writeConfig != "" {
		return cfg.WriteYAML(eo.writeConfig)
	}

	logFile, err := initLogger(eo)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	census, err := telemetry.NewCensusWriter(cfg.Census.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := census.Close(); err != nil {
			slog.Warn("closing census", "err", err)
		}
	}()

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	uo := cfg.Options()
	if ov.interval > 0 {
		uo.Interval = ov.interval
	}
	u := universe.NewBaseUniverse(&uo, stateCh)
	defer u.Close()
	for _, tmpl := range cfg.Templates {
		u.AddTemplate(tmpl)
	}
	if census != nil {
		u.RegisterViewer(census)
	}

	slog.Info("starting",
		"width", uo.Width, "height", uo.Height,
		"interval", uo.Interval, "max_steps", uo.MaxSteps,
		"seed", uo.Noise.Seed, "interactive", eo.interactive)

	if eo.interactive {
		return runInteractive(u, cfg, eo)
	}
	return runHeadless(u, eo, stateCh)
}

//runInteractive seeds the grid, then leaves the setup phase and the run to the terminal UI
func runInteractive(u universe.Universe, cfg *config.Config, eo *EnvOptions) error {
	v, err := view.NewViewTerminal(cfg.InitialViewport())
	if err != nil {
		return err
	}
	u.RegisterViewer(v)
	settle(u, eo)
	v.Start()
	return nil
}

//runHeadless runs until the universe finishes or the process is interrupted
func runHeadless(u universe.Universe, eo *EnvOptions, stateCh chan universe.Status) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := view.NewConsoleOut(os.Stdout)
	u.RegisterViewer(c)
	settle(u, eo)
	c.Start()
	u.Run()

	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == universe.RunningStateFinished {
				slog.Info("finished", "iteration", st.IterationNum, "census", st.Census)
				return nil
			}
		case <-ctx.Done():
			st := u.Status()
			slog.Info("interrupted", "iteration", st.IterationNum, "live_cells", st.LiveCells)
			return nil
		}
	}
}

//settle populates the universe with the template or, by default, the noise landscape
func settle(u universe.Universe, eo *EnvOptions) {
	if eo.template == "" {
		u.Seed(u.Options().Noise)
		return
	}
	o := u.Options()
	if err := u.SettleTemplate(eo.template, o.Width/2, o.Height/2); err != nil {
		slog.Warn("falling back to noise seeding", "err", err)
		u.Seed(o.Noise)
	}
}

//initLogger logs to stderr in headless mode; the terminal UI owns the screen,
//so interactive mode logs only when a log file is given
func initLogger(eo *EnvOptions) (*os.File, error) {
	level := slog.LevelInfo
	if eo.verbose {
		level = slog.LevelDebug
	}
	var (
		w    io.Writer = os.Stderr
		file *os.File
	)
	if eo.logPath != "" {
		f, err := os.OpenFile(eo.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w, file = f, f
	} else if eo.interactive {
		w = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return file, nil
}

func (ov overrides) apply(cfg *config.Config) {
	if ov.width > 0 {
		cfg.Grid.Width = ov.width
	}
	if ov.height > 0 {
		cfg.Grid.Height = ov.height
	}
	if ov.maxSteps > 0 {
		cfg.Simulation.MaxSteps = ov.maxSteps
	}
	if ov.seed != 0 {
		cfg.Noise.Seed = ov.seed
	}
	if ov.census != "" {
		cfg.Census.Path = ov.census
	}
	if ov.stable {
		cfg.Simulation.StopWhenStable = true
	}
}

func initOptions() (eo *EnvOptions, ov *overrides) {
	eo = &EnvOptions{}
	ov = &overrides{}
	templateNames := make([]string, 0, len(universe.BuiltinTemplates))
	for _, t := range universe.BuiltinTemplates {
		templateNames = append(templateNames, t.Name)
	}

	flaggy.SetName("emberlife")
	flaggy.SetDescription("Conway's Game of Life with fading cells")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "YAML configuration file, merged over the built-in defaults")
	flaggy.String(&eo.writeConfig, "", "writeConfig", "Write the effective configuration to this file and exit")
	flaggy.Int(&ov.width, "x", "width", "Width of a simulation field")
	flaggy.Int(&ov.height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&ov.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&ov.maxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Int64(&ov.seed, "", "seed", "Noise seed of the initial landscape")
	flaggy.Bool(&ov.stable, "", "stopWhenStable", "Finish once a generation changes nothing")
	flaggy.String(&ov.census, "", "census", "Write the per-generation census to this CSV file")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.String(&eo.template, "t", "template", "Settle with a template instead of noise ["+strings.Join(templateNames, "|")+"]")
	flaggy.String(&eo.logPath, "", "log", "Append logs to this file")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Debug logging")

	flaggy.Parse()
	return
}
