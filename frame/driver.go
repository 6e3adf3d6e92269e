// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/input"
	"github.com/gogpu/fractal/render"
	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/fractal/view"
)

// Driver errors.
var (
	// ErrNoSurface is returned by NewDriver without a surface manager.
	ErrNoSurface = errors.New("frame: nil surface manager")

	// ErrNoRenderer is returned by NewDriver without a renderer.
	ErrNoRenderer = errors.New("frame: nil renderer")

	// ErrExiting is returned by RenderFrame once the driver has stopped.
	ErrExiting = errors.New("frame: driver is exiting")
)

// AppState is everything the viewer mutates between frames.
type AppState struct {
	View    view.State
	Input   *input.Tracker
	Surface *surface.Manager
}

// Stats counts frame outcomes.
type Stats struct {
	// Frames is the number of presented frames.
	Frames uint64

	// Skipped is the number of redraw ticks that did not present.
	Skipped uint64

	// Reconfigures is the number of surface reconfigurations, from resizes
	// and from recovered losses.
	Reconfigures uint64
}

// Driver is the viewer's state machine.
//
// Driver is NOT safe for concurrent use. All events must be delivered from
// the goroutine running the platform event loop.
type Driver struct {
	app      AppState
	renderer render.Renderer
	state    State

	now     func() time.Time
	last    time.Time
	notice  io.Writer
	printer *message.Printer

	stats Stats
}

// NewDriver creates a running driver. A nil app.Input gets a tracker with
// the default keymap.
func NewDriver(app AppState, r render.Renderer, opts ...DriverOption) (*Driver, error) {
	if app.Surface == nil {
		return nil, ErrNoSurface
	}
	if r == nil {
		return nil, ErrNoRenderer
	}
	if app.Input == nil {
		app.Input = input.NewTracker(nil)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.notice == nil {
		o.notice = os.Stdout
	}
	return &Driver{
		app:      app,
		renderer: r,
		state:    Running,
		now:      o.now,
		notice:   o.notice,
		printer:  message.NewPrinter(o.language),
	}, nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// View returns the current camera.
func (d *Driver) View() view.State {
	return d.app.View
}

// Input returns the key tracker.
func (d *Driver) Input() *input.Tracker {
	return d.app.Input
}

// Surface returns the surface manager.
func (d *Driver) Surface() *surface.Manager {
	return d.app.Surface
}

// Stats returns the frame counters.
func (d *Driver) Stats() Stats {
	s := d.stats
	s.Reconfigures = d.app.Surface.Reconfigures()
	return s
}

// Handle applies ev and returns the resulting state. It never fails:
// errors are classified and logged here.
func (d *Driver) Handle(ev Event) State {
	if d.state == Exiting {
		return d.state
	}
	switch ev := ev.(type) {
	case KeyEvent:
		d.app.Input.OnKey(ev.Key, ev.Pressed)
	case ResizeEvent:
		d.resize(ev.Width, ev.Height)
	case CloseEvent:
		d.exit("close requested")
	case RedrawEvent:
		d.redraw()
	}
	return d.state
}

func (d *Driver) resize(width, height uint32) {
	err := d.app.Surface.Reconfigure(width, height)
	if err == nil {
		return
	}
	if surface.Classify(err) == surface.ActionFatalExit {
		fractal.Logger().Error("frame: fatal reconfigure failure", "err", err)
		d.exit("fatal reconfigure failure")
		return
	}
	fractal.Logger().Error("frame: reconfigure failed, keeping previous surface",
		"width", width,
		"height", height,
		"err", err)
}

func (d *Driver) redraw() {
	now := d.now()
	var dt float32
	if !d.last.IsZero() {
		dt = float32(now.Sub(d.last).Seconds())
	}
	d.last = now

	err := d.RenderFrame(dt)
	if err == nil {
		return
	}
	d.stats.Skipped++
	switch action := d.app.Surface.HandlePresentationError(err); action {
	case surface.ActionFatalExit:
		fractal.Logger().Error("frame: fatal presentation error", "err", err)
		d.exit("fatal presentation error")
	case surface.ActionReconfigure:
		fractal.Logger().Debug("frame: surface recovered, retrying next tick", "err", err)
	default:
		fractal.Logger().Error("frame: frame skipped", "action", action.String(), "err", err)
	}
}

func (d *Driver) exit(reason string) {
	d.state = Exiting
	s := d.Stats()
	fractal.Logger().Info("frame: exiting",
		"reason", reason,
		"frames", s.Frames,
		"skipped", s.Skipped,
		"reconfigures", s.Reconfigures)
}

// RenderFrame advances the view by dt seconds and renders one frame.
//
// The view parameters are uploaded before the frame is acquired, so a
// failed acquire leaves the latest state on the GPU for the retry. If
// acquire fails nothing is recorded. If drawing fails the acquired frame
// is discarded. A surface with zero area integrates but renders nothing.
func (d *Driver) RenderFrame(dt float32) error {
	if d.state == Exiting {
		return ErrExiting
	}

	width, height := d.app.Surface.Size()
	if d.app.View.Integrate(dt, d.app.Input.Axes(), width, height) {
		d.printer.Fprintf(d.notice, "max iterations: %d\n", d.app.View.Quality)
	}
	if d.app.Surface.Config().Empty() {
		d.stats.Skipped++
		return nil
	}

	params := d.app.View.Encode()
	if err := d.renderer.Upload(params[:]); err != nil {
		return fmt.Errorf("upload view: %w", err)
	}

	f, err := d.app.Surface.Acquire()
	if err != nil {
		return fmt.Errorf("acquire frame: %w", err)
	}
	if err := d.renderer.Draw(f); err != nil {
		d.app.Surface.Discard(f)
		return fmt.Errorf("draw frame: %w", err)
	}
	if err := d.app.Surface.Present(f); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	d.stats.Frames++
	return nil
}
