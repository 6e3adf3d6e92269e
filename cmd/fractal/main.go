// Command fractal is an interactive GPU fractal explorer.
//
// Usage:
//
//	fractal [flags]
//
// WASD pans, the up and down arrows zoom, the left and right arrows change
// the iteration budget. Bindings can be overridden in a TOML file passed
// with -config.
//
// With -headless the viewer renders a fixed number of frames offscreen and
// writes the last one as a PNG:
//
//	fractal -headless -frames 120 -hold zoom_in,pan_right -out zoom.png
//
// Add -software to render on the CPU when no Vulkan device is available.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/config"
	"github.com/gogpu/fractal/input"
	"github.com/gogpu/fractal/render"
)

type options struct {
	configPath string
	pipeline   string
	width      int
	height     int
	verbose    bool

	headless    bool
	software    bool
	frames      int
	hold        string
	out         string
	supersample int
}

// settings is the resolved configuration shared by both hosts.
type settings struct {
	cfg      config.Config
	pipeline fractal.Pipeline
	keymap   input.Keymap
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	flag.StringVar(&opts.pipeline, "pipeline", "", "pipeline variant: quad or compute")
	flag.IntVar(&opts.width, "width", 0, "window or image width")
	flag.IntVar(&opts.height, "height", 0, "window or image height")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.BoolVar(&opts.headless, "headless", false, "render offscreen and write a PNG")
	flag.BoolVar(&opts.software, "software", false, "headless: render on the CPU instead of the GPU")
	flag.IntVar(&opts.frames, "frames", 60, "headless: number of frames to render")
	flag.StringVar(&opts.hold, "hold", "", "headless: comma-separated axes held for the whole run")
	flag.StringVar(&opts.out, "out", "fractal.png", "headless: output file")
	flag.IntVar(&opts.supersample, "supersample", 1, "headless: render at N times the size and downscale")
	flag.Parse()

	s, err := resolve(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fractal: %v\n", err)
		os.Exit(2)
	}

	level, _ := s.cfg.LogLevel()
	if opts.verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := render.ValidateShaders(s.pipeline); err != nil {
		fractal.Logger().Error("shader validation failed", "err", err)
		os.Exit(1)
	}

	if opts.headless {
		err = runHeadless(s, opts)
	} else {
		err = runWindow(s)
	}
	if err != nil {
		fractal.Logger().Error("fractal failed", "err", err)
		os.Exit(1)
	}
}

// resolve loads the configuration file and applies the flags that were set
// on the command line on top of it.
func resolve(opts options) (settings, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return settings{}, err
		}
	}
	if opts.pipeline != "" {
		cfg.PipelineName = opts.pipeline
	}
	if opts.width != 0 {
		cfg.Window.Width = opts.width
	}
	if opts.height != 0 {
		cfg.Window.Height = opts.height
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}
	if opts.headless && (opts.frames < 1 || opts.supersample < 1) {
		return settings{}, fmt.Errorf("-frames and -supersample must be at least 1")
	}

	p, _ := cfg.Pipeline()
	km, _ := cfg.Keymap()
	return settings{cfg: cfg, pipeline: p, keymap: km}, nil
}

// parseHold returns the axes named in a comma-separated list.
func parseHold(list string) ([]input.Axis, error) {
	var axes []input.Axis
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		a, err := input.ParseAxis(name)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}
