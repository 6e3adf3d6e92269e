// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"math"

	"github.com/gogpu/fractal/input"
)

// Integrate advances the camera by dt seconds with the given axes held,
// for a window of width x height pixels. It reports whether the iteration
// budget changed.
//
// Steps, in order:
//  1. vertical pan by sign(up, down) * dt * zoom * PanRate
//  2. horizontal pan by sign(right, left) * dt * zoom * PanRate
//  3. zoom by sign(out, in) * dt * zoom * ZoomRate, clamped to MaxZoom
//  4. extent = zoom scaled by width and height over the longest side
//  5. quality stepped by sign(quality up, quality down), floor-clamped at zero
//
// Speeds scale with the zoom level so navigation is uniform at any depth.
// A negative dt is treated as zero. A zero-area window keeps the previous
// extent.
func (s *State) Integrate(dt float32, axes input.Axes, width, height uint32) bool {
	if dt < 0 || math.IsNaN(float64(dt)) {
		dt = 0
	}

	s.Position.Y += axes.Sign(input.AxisPanUp, input.AxisPanDown) * dt * s.Zoom * PanRate
	s.Position.X += axes.Sign(input.AxisPanRight, input.AxisPanLeft) * dt * s.Zoom * PanRate

	s.Zoom += axes.Sign(input.AxisZoomOut, input.AxisZoomIn) * dt * s.Zoom * ZoomRate
	s.Zoom = min(s.Zoom, MaxZoom)
	s.Zoom = max(s.Zoom, MinZoom)

	s.fitExtent(width, height)

	return s.stepQuality(int64(axes.Sign(input.AxisQualityUp, input.AxisQualityDown)))
}

// fitExtent derives the extent from the zoom level so the longest window
// side spans the full zoom.
func (s *State) fitExtent(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	longest := max(width, height)
	s.Extent.X = s.Zoom * (float32(width) / float32(longest))
	s.Extent.Y = s.Zoom * (float32(height) / float32(longest))
}

func (s *State) stepQuality(step int64) bool {
	if step == 0 {
		return false
	}
	q := int64(s.Quality) + step
	q = max(q, 0)
	q = min(q, math.MaxUint32)
	changed := uint32(q) != s.Quality
	s.Quality = uint32(q)
	return changed
}
