// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is a presentable image source, such as a window swapchain or an
// offscreen texture.
//
// Target is NOT safe for concurrent use. All calls happen on the event
// loop goroutine.
type Target interface {
	// Configure (re)builds the target for cfg. Frames acquired before the
	// call must not be presented after it.
	Configure(cfg Config) error

	// Acquire returns the image to render the next frame into.
	Acquire() (*Frame, error)

	// Present hands a rendered frame to the display.
	Present(f *Frame) error

	// Discard releases an acquired frame without presenting it.
	Discard(f *Frame)
}

// Frame is one acquired presentable image.
type Frame struct {
	// View is the render attachment for the frame.
	View hal.TextureView

	// Width and Height are the frame size in pixels.
	Width, Height uint32

	// Format is the pixel format of View.
	Format gputypes.TextureFormat

	// Native is target-specific state needed to present or discard.
	Native any
}
