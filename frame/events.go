// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import "github.com/gogpu/gpucontext"

// Event is an input or lifecycle notification delivered by the host.
type Event interface {
	isEvent()
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key     gpucontext.Key
	Pressed bool
}

// ResizeEvent reports a new drawable size in pixels. It is also sent for
// scale-factor changes.
type ResizeEvent struct {
	Width, Height uint32
}

// CloseEvent reports that the user asked to close the window.
type CloseEvent struct{}

// RedrawEvent is the per-refresh tick that renders one frame.
type RedrawEvent struct{}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (CloseEvent) isEvent()  {}
func (RedrawEvent) isEvent() {}
