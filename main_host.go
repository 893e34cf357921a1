package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"donut/app"
	"donut/hal"
	"donut/internal/buildinfo"

	"github.com/google/shlex"
)

// optsEnv holds extra command-line arguments, parsed before the real ones.
const optsEnv = "DONUT_OPTS"

func main() {
	args, err := withEnvArgs(os.Args[1:], os.Getenv(optsEnv))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(run(args))
}

// withEnvArgs prepends the shell-split contents of env to args.
func withEnvArgs(args []string, env string) ([]string, error) {
	if env == "" {
		return args, nil
	}
	extra, err := shlex.Split(env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", optsEnv, err)
	}
	return append(extra, args...), nil
}

type options struct {
	headless hal.HeadlessConfig
	window   bool
	color    bool
	logPath  string
	version  bool
	app      app.Config
}

func parseFlags(args []string) (options, error) {
	o := options{app: app.DefaultConfig()}
	fs := flag.NewFlagSet("donut", flag.ContinueOnError)

	fs.BoolVar(&o.headless.Enabled, "headless", false, "Print frames as plain text instead of taking over the terminal.")
	fs.IntVar(&o.headless.Hz, "hz", 60, "Tick rate of the runner loop.")
	fs.Uint64Var(&o.headless.Ticks, "ticks", 0, "Stop after N runner ticks (0 = run forever).")
	fs.BoolVar(&o.window, "window", false, "Open a desktop window instead of using the terminal.")
	fs.BoolVar(&o.color, "color", false, "Terminal mode: keep the default palette instead of grayscale.")
	fs.Float64Var(&o.app.Inner, "inner", o.app.Inner, "Inner radius of the torus.")
	fs.Float64Var(&o.app.Outer, "outer", o.app.Outer, "Outer radius of the torus.")
	fs.IntVar(&o.app.Width, "width", 0, "Grid columns (0 = fit; headless default 80).")
	fs.IntVar(&o.app.Height, "height", 0, "Grid rows (0 = fit; headless default 40).")
	fs.IntVar(&o.app.Workers, "workers", o.app.Workers, "Goroutines per frame (0 or 1 = render on the loop).")
	fs.StringVar(&o.app.Solver, "solver", o.app.Solver, "Quartic solver: ferrari or companion.")
	fs.StringVar(&o.app.Ramp, "ramp", o.app.Ramp, "Glyph ramp, dimmest first.")
	fs.BoolVar(&o.app.Shade, "shade", false, "Start in shaded mode.")
	fs.IntVar(&o.app.FPS, "fps", o.app.FPS, "Frames per second.")
	fs.IntVar(&o.app.Frames, "frames", 0, "Stop after N frames (0 = run forever).")
	fs.StringVar(&o.logPath, "log", "", "Append log lines to this file.")
	fs.BoolVar(&o.version, "version", false, "Print version and exit.")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.version {
		return o, nil
	}
	if o.headless.Enabled && o.window {
		return o, fmt.Errorf("%w: -headless and -window are exclusive", app.ErrInvalidConfig)
	}
	return o, o.app.Validate()
}

func run(args []string) int {
	o, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if o.version {
		fmt.Println(buildinfo.String())
		return 0
	}

	// Headless logs go to stderr next to the frames; terminal and window
	// mode only log when asked to.
	var logw io.Writer
	if o.headless.Enabled {
		logw = os.Stderr
	}
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		logw = f
	}

	newApp := func(h hal.HAL) func() error { return app.New(h, o.app) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case o.window:
		err = hal.RunWindow(newApp, hal.WindowConfig{Log: logw})
	case o.headless.Enabled:
		o.headless.Cols, o.headless.Rows = o.app.Width, o.app.Height
		o.headless.Log = logw
		err = hal.RunHeadless(ctx, newApp, o.headless)
	default:
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{
			Hz:    o.headless.Hz,
			Ticks: o.headless.Ticks,
			Log:   logw,
			Color: o.color,
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
