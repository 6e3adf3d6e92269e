// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import "fmt"

// State is the driver's lifecycle state.
type State int

const (
	// Running accepts events and renders on redraw.
	Running State = iota

	// Exiting is terminal. Every later event is ignored.
	Exiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Exiting:
		return "Exiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
