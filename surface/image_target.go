// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// ImageTarget is a Target backed by CPU images. Frames carry an
// *image.RGBA in Frame.Native and no GPU view, so only renderers that draw
// on the CPU can use it.
//
// ImageTarget is double buffered: Present swaps the drawn image to the
// front, where Image reads it.
//
// ImageTarget is NOT safe for concurrent use.
type ImageTarget struct {
	cfg Config

	back, front *image.RGBA
	generation  uint64
	acquired    bool
}

// ImageFrame is the Frame.Native value of ImageTarget frames.
type ImageFrame struct {
	// Image is the buffer to draw into.
	Image *image.RGBA

	generation uint64
}

// NewImageTarget creates an unconfigured image target.
func NewImageTarget() *ImageTarget {
	return &ImageTarget{}
}

// Capabilities returns what the image target can be configured with.
func (t *ImageTarget) Capabilities() Capabilities {
	return Capabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm},
		AlphaModes:   []AlphaMode{AlphaOpaque},
		PresentModes: []PresentMode{PresentImmediate},
	}
}

// Configure allocates the back buffer for cfg. The front buffer keeps the
// last presented frame.
func (t *ImageTarget) Configure(cfg Config) error {
	if cfg.Empty() {
		return fmt.Errorf("surface: image configure %dx%d: %w", cfg.Width, cfg.Height, ErrOutdated)
	}
	t.back = image.NewRGBA(image.Rect(0, 0, int(cfg.Width), int(cfg.Height)))
	t.cfg = cfg
	t.generation++
	t.acquired = false
	return nil
}

// Acquire returns the back buffer as the next frame.
func (t *ImageTarget) Acquire() (*Frame, error) {
	if t.back == nil {
		return nil, ErrLost
	}
	t.acquired = true
	return &Frame{
		Width:  t.cfg.Width,
		Height: t.cfg.Height,
		Format: t.cfg.Format,
		Native: &ImageFrame{Image: t.back, generation: t.generation},
	}, nil
}

// Present moves the drawn image to the front.
func (t *ImageTarget) Present(f *Frame) error {
	if f == nil || !t.acquired {
		return ErrNoFrame
	}
	t.acquired = false
	native, ok := f.Native.(*ImageFrame)
	if !ok || native.generation != t.generation {
		return fmt.Errorf("surface: frame predates the current configuration: %w", ErrOutdated)
	}
	front := t.front
	t.front = t.back
	if front == nil || front.Bounds() != t.back.Bounds() {
		front = image.NewRGBA(t.back.Bounds())
	}
	t.back = front
	return nil
}

// Discard drops an acquired frame.
func (t *ImageTarget) Discard(*Frame) {
	t.acquired = false
}

// Image returns the last presented frame scaled to width x height. A
// non-positive size returns the frame at its native size.
func (t *ImageTarget) Image(width, height int) (*image.RGBA, error) {
	return snapshot(t.front, width, height)
}

// snapshot returns a copy of src scaled to width x height.
func snapshot(src *image.RGBA, width, height int) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrNoFrame
	}
	b := src.Bounds()
	if width <= 0 || height <= 0 || (width == b.Dx() && height == b.Dy()) {
		out := image.NewRGBA(b)
		copy(out.Pix, src.Pix)
		return out, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), src, b, draw.Src, nil)
	return out, nil
}
