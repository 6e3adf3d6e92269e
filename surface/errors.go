// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Presentation failures. Targets wrap backend errors with these so that
// Classify can sort them.
var (
	// ErrLost means the surface must be configured again before use.
	ErrLost = errors.New("surface: lost")

	// ErrOutdated means the surface no longer matches the window, usually
	// after a resize that has not been applied yet.
	ErrOutdated = errors.New("surface: outdated")

	// ErrOutOfMemory means the device ran out of memory. It is fatal.
	ErrOutOfMemory = errors.New("surface: out of memory")

	// ErrTimeout means a frame could not be acquired in time.
	ErrTimeout = errors.New("surface: timeout")
)

// ErrNoTarget is returned by NewManager when given a nil Target.
var ErrNoTarget = errors.New("surface: nil target")

// Action is what the frame driver does about a failed frame.
type Action int

const (
	// ActionNone means the frame succeeded.
	ActionNone Action = iota

	// ActionReconfigure means the surface was rebuilt from the last good
	// configuration; the next tick retries.
	ActionReconfigure

	// ActionFatalExit means the render loop must stop. Out of memory
	// (ErrOutOfMemory, hal.ErrDeviceOutOfMemory) and a lost device
	// (hal.ErrDeviceLost) are fatal; the swapchain cannot be rebuilt
	// without a new device.
	ActionFatalExit

	// ActionLogAndContinue means the frame is skipped and the next tick
	// retries.
	ActionLogAndContinue
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionReconfigure:
		return "Reconfigure"
	case ActionFatalExit:
		return "FatalExit"
	case ActionLogAndContinue:
		return "LogAndContinue"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Classify maps a frame error onto an Action. A nil error is ActionNone.
// The matching hal sentinels are recognized as well, so backend errors can
// be passed through unwrapped. A lost device is fatal.
func Classify(err error) Action {
	switch {
	case err == nil:
		return ActionNone
	case errors.Is(err, ErrLost), errors.Is(err, ErrOutdated),
		errors.Is(err, hal.ErrSurfaceLost), errors.Is(err, hal.ErrSurfaceOutdated):
		return ActionReconfigure
	case errors.Is(err, ErrOutOfMemory), errors.Is(err, hal.ErrDeviceOutOfMemory),
		errors.Is(err, hal.ErrDeviceLost):
		return ActionFatalExit
	default:
		return ActionLogAndContinue
	}
}
