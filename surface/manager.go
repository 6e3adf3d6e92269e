// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/fractal"
)

// Manager owns the active surface configuration and the target it is
// applied to.
//
// The configuration changes only through Reconfigure (resize and scale
// changes) and HandlePresentationError (recoverable loss). Manager is NOT
// safe for concurrent use.
type Manager struct {
	target       Target
	cfg          Config
	reconfigures uint64
}

// NewManager configures target with cfg and returns a manager for it.
// A zero-area cfg is recorded but not applied until a non-empty resize
// arrives.
func NewManager(target Target, cfg Config) (*Manager, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	m := &Manager{target: target, cfg: cfg}
	if cfg.Empty() {
		return m, nil
	}
	if err := target.Configure(cfg); err != nil {
		return nil, fmt.Errorf("surface: initial configure %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	return m, nil
}

// Config returns the last configuration applied to the target.
func (m *Manager) Config() Config {
	return m.cfg
}

// Size returns the configured width and height.
func (m *Manager) Size() (width, height uint32) {
	return m.cfg.Width, m.cfg.Height
}

// Reconfigures returns how many times the target was configured after
// creation.
func (m *Manager) Reconfigures() uint64 {
	return m.reconfigures
}

// Reconfigure applies a new size. A zero width or height is ignored so
// that minimized windows never produce a zero-area surface. On failure
// the previous configuration is kept.
func (m *Manager) Reconfigure(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	next := m.cfg
	next.Width = width
	next.Height = height
	if err := m.target.Configure(next); err != nil {
		return fmt.Errorf("surface: configure %dx%d: %w", width, height, err)
	}
	m.cfg = next
	m.reconfigures++
	fractal.Logger().Debug("surface: reconfigured",
		"width", width,
		"height", height,
		"format", m.cfg.Format,
		"present_mode", m.cfg.PresentMode.String())
	return nil
}

// HandlePresentationError classifies a failed frame. For ActionReconfigure
// the target is rebuilt from the last good configuration before
// returning; if that rebuild fails the frame is treated as skipped and the
// next failure retries it.
func (m *Manager) HandlePresentationError(err error) Action {
	action := Classify(err)
	if action != ActionReconfigure {
		return action
	}
	if m.cfg.Empty() {
		return action
	}
	fractal.Logger().Warn("surface: presentation lost, reconfiguring", "err", err)
	if cerr := m.target.Configure(m.cfg); cerr != nil {
		fractal.Logger().Error("surface: reconfigure after loss failed", "err", cerr)
		return ActionLogAndContinue
	}
	m.reconfigures++
	return action
}

// Acquire returns the next frame from the target. Acquiring from a
// zero-area configuration reports ErrOutdated.
func (m *Manager) Acquire() (*Frame, error) {
	if m.cfg.Empty() {
		return nil, ErrOutdated
	}
	return m.target.Acquire()
}

// Present presents f on the target.
func (m *Manager) Present(f *Frame) error {
	return m.target.Present(f)
}

// Discard releases f without presenting it.
func (m *Manager) Discard(f *Frame) {
	if f != nil {
		m.target.Discard(f)
	}
}
