package main

import (
	"errors"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/frame"
	"github.com/gogpu/fractal/input"
	"github.com/gogpu/fractal/render"
	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/fractal/view"
)

// hostTarget adapts the swapchain image gogpu hands to each draw callback
// as a surface.Target. gogpu owns the swapchain: it reconfigures it on
// resize and presents after the callback returns, so Configure only records
// the configuration and Present releases the frame.
type hostTarget struct {
	cfg surface.Config

	view          hal.TextureView
	width, height uint32
}

// update records the image for the current draw callback. A nil or
// released view leaves the target without an image.
func (t *hostTarget) update(tv *wgpu.TextureView, width, height uint32) {
	t.view = nil
	if tv != nil {
		t.view = tv.HalTextureView()
	}
	t.width, t.height = width, height
}

func (t *hostTarget) Configure(cfg surface.Config) error {
	t.cfg = cfg
	return nil
}

func (t *hostTarget) Acquire() (*surface.Frame, error) {
	if t.view == nil {
		return nil, surface.ErrLost
	}
	if t.width != t.cfg.Width || t.height != t.cfg.Height {
		return nil, surface.ErrOutdated
	}
	return &surface.Frame{
		View:   t.view,
		Width:  t.width,
		Height: t.height,
		Format: t.cfg.Format,
	}, nil
}

func (t *hostTarget) Present(f *surface.Frame) error {
	if f == nil {
		return surface.ErrOutdated
	}
	t.view = nil
	return nil
}

func (t *hostTarget) Discard(*surface.Frame) {
	t.view = nil
}

// windowHost connects gogpu's callbacks to the frame driver. The driver is
// created on the first draw callback, once the device exists.
type windowHost struct {
	app     *gogpu.App
	s       settings
	tracker *input.Tracker
	target  *hostTarget

	driver   *frame.Driver
	renderer render.Renderer
	failed   bool
}

func runWindow(s settings) error {
	w, h := s.cfg.Size()
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(s.cfg.Window.Title).
		WithSize(int(w), int(h)).
		WithContinuousRender(true))

	host := &windowHost{
		app:     app,
		s:       s,
		tracker: input.NewTracker(s.keymap),
		target:  &hostTarget{},
	}

	app.OnDraw(host.draw)
	events := app.EventSource()
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		host.handle(frame.KeyEvent{Key: key, Pressed: true})
	})
	events.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		host.handle(frame.KeyEvent{Key: key, Pressed: false})
	})
	app.OnClose(func() {
		if host.driver != nil {
			host.driver.Handle(frame.CloseEvent{})
		}
		if host.renderer != nil {
			host.renderer.Destroy()
		}
	})

	return app.Run()
}

// handle forwards ev to the driver. Keys that arrive before the driver
// exists go straight to the tracker it will be built with.
func (h *windowHost) handle(ev frame.Event) {
	if h.driver == nil {
		if k, ok := ev.(frame.KeyEvent); ok {
			h.tracker.OnKey(k.Key, k.Pressed)
		}
		return
	}
	if h.driver.Handle(ev) == frame.Exiting {
		h.quit()
	}
}

func (h *windowHost) draw(dc *gogpu.Context) {
	if h.failed {
		return
	}
	width, height := dc.SurfaceSize()
	if width == 0 || height == 0 {
		return
	}
	if h.driver == nil {
		if err := h.start(width, height); err != nil {
			h.failed = true
			fractal.Logger().Error("fractal: renderer setup failed", "err", err)
			h.quit()
			return
		}
	}

	if cw, ch := h.driver.Surface().Size(); cw != width || ch != height {
		h.handle(frame.ResizeEvent{Width: width, Height: height})
	}
	h.target.update(dc.SurfaceView(), width, height)
	h.handle(frame.RedrawEvent{})
}

// start shares gogpu's device with the renderer and builds the driver.
func (h *windowHost) start(width, height uint32) error {
	provider := h.app.GPUContextProvider()
	if provider == nil {
		return errors.New("gogpu exposes no GPU context")
	}
	device, queue, format, err := render.HandleDevice(provider)
	if err != nil {
		return err
	}
	cfg, err := surface.Negotiate(surface.Capabilities{
		Formats: []gputypes.TextureFormat{format},
	}, width, height)
	if err != nil {
		return err
	}
	mgr, err := surface.NewManager(h.target, cfg)
	if err != nil {
		return err
	}

	r, err := render.New(h.s.pipeline, device, queue, cfg.Format)
	if err != nil {
		return err
	}
	d, err := frame.NewDriver(frame.AppState{
		View:    view.Default(),
		Input:   h.tracker,
		Surface: mgr,
	}, r)
	if err != nil {
		r.Destroy()
		return err
	}

	info := provider.AdapterInfo()
	fractal.Logger().Info("fractal: renderer ready",
		"adapter", info.Name,
		"pipeline", h.s.pipeline.String(),
		"format", cfg.Format.String(),
		"width", width,
		"height", height)

	h.renderer = r
	h.driver = d
	return nil
}

// quit stops the event loop. gogpu releases GPU resources on the way out.
func (h *windowHost) quit() {
	h.app.Quit()
}
