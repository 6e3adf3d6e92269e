// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package view holds the camera into the fractal plane and advances it
// from held input axes.
//
// The camera is a [State]: a center position, an extent derived from the
// scalar zoom level and the window aspect ratio, and an iteration budget.
// [State.Encode] produces the 24-byte uniform block consumed by the GPU
// kernels.
package view

// Camera defaults and rates.
const (
	// DefaultZoom is the initial scalar zoom level. It yields an extent of
	// (2, 2) on a square window.
	DefaultZoom = 2.0

	// MaxZoom is the widest zoom level; zooming out stops here.
	MaxZoom = 4.0

	// MinZoom keeps the zoom level positive when a long frame multiplies
	// it by a negative factor. Deeper zoom is beyond float32 precision.
	MinZoom = 1e-6

	// DefaultQuality is the initial iteration budget.
	DefaultQuality = 100

	// PanRate is the pan speed in extents per second at the current zoom.
	PanRate = 0.5

	// ZoomRate is the relative zoom speed per second.
	ZoomRate = 0.75
)

// Vec2 is a 2D point or size in fractal-plane units.
type Vec2 struct {
	X, Y float32
}

// State is the camera into the fractal plane.
//
// Extent is always derived from Zoom and the window aspect ratio by
// Integrate; it is stored so the encoded block needs no further input.
type State struct {
	// Position is the center of the view.
	Position Vec2

	// Extent is the visible half-size per axis.
	Extent Vec2

	// Quality is the iteration budget passed to the kernel.
	Quality uint32

	// Zoom is the scalar zoom level the extent is derived from.
	Zoom float32
}

// Default returns the startup camera: centered on the origin, zoom 2.0
// with extent (2, 2), and an iteration budget of 100.
func Default() State {
	return State{
		Position: Vec2{0, 0},
		Extent:   Vec2{DefaultZoom, DefaultZoom},
		Quality:  DefaultQuality,
		Zoom:     DefaultZoom,
	}
}
