// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAxis is returned by ParseAxis for unrecognized axis names.
var ErrUnknownAxis = errors.New("input: unknown axis")

// Axis is one logical direction the user can hold.
type Axis int

// The eight axes, in pairs of opposing directions.
const (
	AxisPanUp Axis = iota
	AxisPanDown
	AxisPanRight
	AxisPanLeft
	AxisZoomIn
	AxisZoomOut
	AxisQualityUp
	AxisQualityDown

	// AxisCount is the number of axes.
	AxisCount
)

var axisNames = [AxisCount]string{
	AxisPanUp:       "pan_up",
	AxisPanDown:     "pan_down",
	AxisPanRight:    "pan_right",
	AxisPanLeft:     "pan_left",
	AxisZoomIn:      "zoom_in",
	AxisZoomOut:     "zoom_out",
	AxisQualityUp:   "quality_up",
	AxisQualityDown: "quality_down",
}

// String returns the axis name as used in configuration files.
func (a Axis) String() string {
	if a < 0 || a >= AxisCount {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Valid reports whether a names one of the eight axes.
func (a Axis) Valid() bool {
	return a >= 0 && a < AxisCount
}

// ParseAxis returns the axis with the given configuration name.
func ParseAxis(name string) (Axis, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range axisNames {
		if s == n {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
}

// Axes is the set of held axes. The zero value has nothing held.
type Axes [AxisCount]bool

// Held reports whether a is currently held.
func (s Axes) Held(a Axis) bool {
	if !a.Valid() {
		return false
	}
	return s[a]
}

// Sign resolves a pair of opposing axes: +1 if only pos is held, -1 if
// only neg is held, and 0 if both or neither are held.
func (s Axes) Sign(pos, neg Axis) float32 {
	switch p, n := s.Held(pos), s.Held(neg); {
	case p && !n:
		return 1
	case n && !p:
		return -1
	default:
		return 0
	}
}

// Any reports whether at least one axis is held.
func (s Axes) Any() bool {
	for _, held := range s {
		if held {
			return true
		}
	}
	return false
}
