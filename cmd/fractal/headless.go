package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/gogpu/gputypes"
	_ "github.com/gogpu/wgpu/hal/vulkan" // Register the Vulkan backend.

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/frame"
	"github.com/gogpu/fractal/input"
	"github.com/gogpu/fractal/render"
	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/fractal/view"
)

// headlessStep is the simulated interval between headless frames.
const headlessStep = time.Second / 60

// snapshotTarget is a surface.Target whose last frame can be read back.
type snapshotTarget interface {
	surface.Target
	Capabilities() surface.Capabilities
	Image(width, height int) (*image.RGBA, error)
}

// openHeadless returns the offscreen target and renderer for a headless
// run: the Vulkan device with the configured pipeline, or the CPU
// rasterizer when software is set. The GPU renderer is created for the
// target's negotiated format, which for OffscreenTarget is fixed.
func openHeadless(s settings, software bool) (snapshotTarget, render.Renderer, func(), error) {
	if software {
		r := render.NewSoftwareRenderer()
		return surface.NewImageTarget(), r, r.Destroy, nil
	}

	dev, err := render.OpenDevice(gputypes.BackendVulkan)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w (use -software to render without a GPU)", err)
	}
	target := surface.NewOffscreenTarget(dev.Device, dev.Queue)
	format := target.Capabilities().Formats[0]
	r, err := render.New(s.pipeline, dev.Device, dev.Queue, format)
	if err != nil {
		dev.Close()
		return nil, nil, nil, err
	}
	cleanup := func() {
		r.Destroy()
		target.Destroy()
		dev.Close()
	}
	return target, r, cleanup, nil
}

// stepClock advances by a fixed step on every reading.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func runHeadless(s settings, opts options) error {
	axes, err := parseHold(opts.hold)
	if err != nil {
		return err
	}

	target, r, cleanup, err := openHeadless(s, opts.software)
	if err != nil {
		return err
	}
	defer cleanup()

	width, height := s.cfg.Size()
	scale := uint32(opts.supersample)
	cfg, err := surface.Negotiate(target.Capabilities(), width*scale, height*scale)
	if err != nil {
		return err
	}
	mgr, err := surface.NewManager(target, cfg)
	if err != nil {
		return err
	}

	tracker := input.NewTracker(s.keymap)
	clock := &stepClock{t: time.Unix(0, 0), step: headlessStep}
	d, err := frame.NewDriver(frame.AppState{
		View:    view.Default(),
		Input:   tracker,
		Surface: mgr,
	}, r, frame.WithClock(clock.Now))
	if err != nil {
		return err
	}

	for _, a := range axes {
		key, ok := s.keymap.KeyFor(a)
		if !ok {
			return fmt.Errorf("-hold %s: no key bound to the axis", a)
		}
		d.Handle(frame.KeyEvent{Key: key, Pressed: true})
	}

	for i := 0; i < opts.frames; i++ {
		if d.Handle(frame.RedrawEvent{}) == frame.Exiting {
			return errors.New("render loop stopped on a fatal error")
		}
	}

	stats := d.Stats()
	if stats.Frames == 0 {
		return errors.New("no frame was presented")
	}
	img, err := target.Image(int(width), int(height))
	if err != nil {
		return err
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	v := d.View()
	fractal.Logger().Info("snapshot written",
		"path", opts.out,
		"size", fmt.Sprintf("%dx%d", width, height),
		"supersample", opts.supersample,
		"frames", stats.Frames,
		"skipped", stats.Skipped,
		"position", fmt.Sprintf("(%g, %g)", v.Position.X, v.Position.Y),
		"zoom", v.Zoom,
		"quality", v.Quality)
	return nil
}
