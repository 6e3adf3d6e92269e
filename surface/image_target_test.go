// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestImageTargetUnconfigured(t *testing.T) {
	target := NewImageTarget()
	if _, err := target.Acquire(); !errors.Is(err, ErrLost) {
		t.Errorf("Acquire err = %v, want ErrLost", err)
	}
	if _, err := target.Image(0, 0); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Image err = %v, want ErrNoFrame", err)
	}
	if err := target.Configure(Config{}); !errors.Is(err, ErrOutdated) {
		t.Errorf("Configure(empty) err = %v, want ErrOutdated", err)
	}
}

func TestImageTargetPresent(t *testing.T) {
	target := NewImageTarget()
	cfg, err := Negotiate(target.Capabilities(), 4, 2)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if cfg.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", cfg.Format)
	}
	if err := target.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	f, err := target.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if f.View != nil {
		t.Error("image frame has a GPU view")
	}
	native := f.Native.(*ImageFrame)
	red := color.RGBA{R: 255, A: 255}
	native.Image.SetRGBA(3, 1, red)
	if err := target.Present(f); err != nil {
		t.Fatalf("Present: %v", err)
	}

	img, err := target.Image(0, 0)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.RGBAAt(3, 1); got != red {
		t.Errorf("pixel = %v, want %v", got, red)
	}

	// The next frame draws into the other buffer.
	f2, _ := target.Acquire()
	if f2.Native.(*ImageFrame).Image == native.Image {
		t.Error("second frame reuses the presented buffer")
	}
	target.Discard(f2)
	if err := target.Present(f2); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Present after Discard err = %v, want ErrNoFrame", err)
	}

	scaled, err := target.Image(2, 1)
	if err != nil {
		t.Fatalf("Image(2, 1): %v", err)
	}
	if b := scaled.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("scaled bounds = %v, want 2x1", b)
	}
}

func TestImageTargetStaleFrame(t *testing.T) {
	target := NewImageTarget()
	cfg := Config{Width: 8, Height: 8, Format: gputypes.TextureFormatRGBA8Unorm}
	if err := target.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	f, _ := target.Acquire()
	cfg.Width = 16
	if err := target.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	target.acquired = true
	if err := target.Present(f); !errors.Is(err, ErrOutdated) {
		t.Errorf("Present(stale) err = %v, want ErrOutdated", err)
	}
}
