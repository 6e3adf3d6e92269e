// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"
)

func testConfig(w, h uint32) Config {
	return Config{
		Width:       w,
		Height:      h,
		Format:      gputypes.TextureFormatBGRA8UnormSrgb,
		AlphaMode:   AlphaOpaque,
		PresentMode: PresentFifo,
	}
}

func TestNewManagerNilTarget(t *testing.T) {
	_, err := NewManager(nil, testConfig(800, 600))
	if !errors.Is(err, ErrNoTarget) {
		t.Fatalf("NewManager(nil) error = %v, want ErrNoTarget", err)
	}
}

func TestNewManagerConfigures(t *testing.T) {
	ft := &fakeTarget{}
	m, err := NewManager(ft, testConfig(800, 600))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if len(ft.configs) != 1 {
		t.Fatalf("Configure calls = %d, want 1", len(ft.configs))
	}
	if w, h := m.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d, want 800x600", w, h)
	}
	if m.Reconfigures() != 0 {
		t.Errorf("Reconfigures() = %d, want 0", m.Reconfigures())
	}
}

func TestNewManagerEmptyConfigDeferred(t *testing.T) {
	ft := &fakeTarget{}
	m, err := NewManager(ft, testConfig(0, 0))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if len(ft.configs) != 0 {
		t.Errorf("Configure calls = %d, want 0 for empty config", len(ft.configs))
	}
	if _, err := m.Acquire(); !errors.Is(err, ErrOutdated) {
		t.Errorf("Acquire on empty config error = %v, want ErrOutdated", err)
	}
}

func TestNewManagerConfigureError(t *testing.T) {
	boom := errors.New("boom")
	ft := &fakeTarget{configureErr: []error{boom}}
	if _, err := NewManager(ft, testConfig(800, 600)); !errors.Is(err, boom) {
		t.Fatalf("NewManager error = %v, want wrapped boom", err)
	}
}

func TestManagerReconfigure(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		wantW, wantH  uint32
		wantCalls     int
	}{
		{"grow", 1024, 768, 1024, 768, 2},
		{"shrink", 320, 200, 320, 200, 2},
		{"zero width ignored", 0, 600, 800, 600, 1},
		{"zero height ignored", 800, 0, 800, 600, 1},
		{"minimized ignored", 0, 0, 800, 600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTarget{}
			m, err := NewManager(ft, testConfig(800, 600))
			if err != nil {
				t.Fatalf("NewManager: %v", err)
			}
			if err := m.Reconfigure(tt.width, tt.height); err != nil {
				t.Fatalf("Reconfigure: %v", err)
			}
			if w, h := m.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
			if len(ft.configs) != tt.wantCalls {
				t.Errorf("Configure calls = %d, want %d", len(ft.configs), tt.wantCalls)
			}
			if m.Config().Format != gputypes.TextureFormatBGRA8UnormSrgb {
				t.Errorf("Format changed to %v", m.Config().Format)
			}
		})
	}
}

func TestManagerReconfigureFailureKeepsConfig(t *testing.T) {
	boom := errors.New("boom")
	ft := &fakeTarget{configureErr: []error{nil, boom}}
	m, err := NewManager(ft, testConfig(800, 600))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.Reconfigure(1024, 768); !errors.Is(err, boom) {
		t.Fatalf("Reconfigure error = %v, want boom", err)
	}
	if w, h := m.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d after failed reconfigure, want 800x600", w, h)
	}
	if m.Reconfigures() != 0 {
		t.Errorf("Reconfigures() = %d, want 0", m.Reconfigures())
	}
}

func TestManagerHandlePresentationError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       Action
		wantConfig bool
	}{
		{"nil", nil, ActionNone, false},
		{"lost", ErrLost, ActionReconfigure, true},
		{"outdated", fmt.Errorf("acquire: %w", ErrOutdated), ActionReconfigure, true},
		{"out of memory", ErrOutOfMemory, ActionFatalExit, false},
		{"timeout", ErrTimeout, ActionLogAndContinue, false},
		{"other", errors.New("driver hiccup"), ActionLogAndContinue, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTarget{}
			m, err := NewManager(ft, testConfig(800, 600))
			if err != nil {
				t.Fatalf("NewManager: %v", err)
			}
			if err := m.Reconfigure(640, 480); err != nil {
				t.Fatalf("Reconfigure: %v", err)
			}
			before := len(ft.configs)

			if got := m.HandlePresentationError(tt.err); got != tt.want {
				t.Errorf("HandlePresentationError(%v) = %v, want %v", tt.err, got, tt.want)
			}

			configured := len(ft.configs) > before
			if configured != tt.wantConfig {
				t.Fatalf("configured = %v, want %v", configured, tt.wantConfig)
			}
			if configured {
				last := ft.configs[len(ft.configs)-1]
				if last != testConfig(640, 480) {
					t.Errorf("rebuilt with %+v, want last good config", last)
				}
			}
		})
	}
}

func TestManagerHandlePresentationErrorRebuildFails(t *testing.T) {
	ft := &fakeTarget{configureErr: []error{nil, errors.New("still lost")}}
	m, err := NewManager(ft, testConfig(800, 600))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if got := m.HandlePresentationError(ErrLost); got != ActionLogAndContinue {
		t.Errorf("HandlePresentationError = %v, want LogAndContinue", got)
	}
	if m.Reconfigures() != 0 {
		t.Errorf("Reconfigures() = %d, want 0", m.Reconfigures())
	}
	// The next loss retries the rebuild.
	if got := m.HandlePresentationError(ErrLost); got != ActionReconfigure {
		t.Errorf("second HandlePresentationError = %v, want Reconfigure", got)
	}
}

func TestManagerAcquirePresent(t *testing.T) {
	ft := &fakeTarget{}
	m, err := NewManager(ft, testConfig(800, 600))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	f, err := m.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if f.Width != 800 || f.Height != 600 {
		t.Errorf("frame size = %dx%d, want 800x600", f.Width, f.Height)
	}
	if err := m.Present(f); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if ft.presented != 1 {
		t.Errorf("presented = %d, want 1", ft.presented)
	}

	m.Discard(nil)
	if ft.discarded != 0 {
		t.Errorf("Discard(nil) reached the target")
	}
	m.Discard(f)
	if ft.discarded != 1 {
		t.Errorf("discarded = %d, want 1", ft.discarded)
	}
}
