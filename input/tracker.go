// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "github.com/gogpu/gpucontext"

// Tracker turns key press and release events into held axes.
//
// An axis is held while any key bound to it is down, so with two keys on
// one axis releasing one of them leaves the axis held. Repeated presses
// of a key count once. Unbound keys are ignored.
//
// Tracker is NOT safe for concurrent use. It is driven from the event
// loop goroutine.
type Tracker struct {
	keymap Keymap
	down   map[gpucontext.Key]bool
	axes   Axes
}

// NewTracker creates a tracker using km. A nil keymap uses DefaultKeymap.
func NewTracker(km Keymap) *Tracker {
	if km == nil {
		km = DefaultKeymap()
	}
	return &Tracker{keymap: km, down: make(map[gpucontext.Key]bool)}
}

// OnKey records a key transition and reports whether the key is bound.
func (t *Tracker) OnKey(key gpucontext.Key, pressed bool) bool {
	axis, ok := t.keymap[key]
	if !ok || !axis.Valid() {
		return false
	}
	if pressed {
		t.down[key] = true
		t.axes[axis] = true
		return true
	}
	delete(t.down, key)
	t.axes[axis] = t.anyDown(axis)
	return true
}

// anyDown reports whether some held key is bound to axis.
func (t *Tracker) anyDown(axis Axis) bool {
	for k := range t.down {
		if t.keymap[k] == axis {
			return true
		}
	}
	return false
}

// Axes returns a snapshot of the held axes.
func (t *Tracker) Axes() Axes {
	return t.axes
}

// Keymap returns the keymap the tracker resolves keys with.
func (t *Tracker) Keymap() Keymap {
	return t.keymap
}
