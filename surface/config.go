// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrNoFormats is returned by Negotiate when the target advertises no
// texture formats.
var ErrNoFormats = errors.New("surface: no supported formats")

// PresentMode controls how presented frames are queued for display.
type PresentMode int

const (
	// PresentFifo waits for vertical blank. Always supported.
	PresentFifo PresentMode = iota

	// PresentMailbox replaces the queued frame with the newest one.
	PresentMailbox

	// PresentImmediate presents without waiting, allowing tearing.
	PresentImmediate
)

// String returns the present mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentFifo:
		return "Fifo"
	case PresentMailbox:
		return "Mailbox"
	case PresentImmediate:
		return "Immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// AlphaMode controls how the compositor treats frame alpha.
type AlphaMode int

const (
	// AlphaOpaque ignores alpha.
	AlphaOpaque AlphaMode = iota

	// AlphaPremultiplied expects premultiplied color.
	AlphaPremultiplied

	// AlphaPostmultiplied expects straight color.
	AlphaPostmultiplied

	// AlphaInherit leaves the choice to the platform.
	AlphaInherit
)

// String returns the alpha mode name.
func (m AlphaMode) String() string {
	switch m {
	case AlphaOpaque:
		return "Opaque"
	case AlphaPremultiplied:
		return "Premultiplied"
	case AlphaPostmultiplied:
		return "Postmultiplied"
	case AlphaInherit:
		return "Inherit"
	default:
		return fmt.Sprintf("AlphaMode(%d)", int(m))
	}
}

// Config is the negotiated presentation configuration.
type Config struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	AlphaMode   AlphaMode
	PresentMode PresentMode
}

// Empty reports whether the configuration has zero area.
func (c Config) Empty() bool {
	return c.Width == 0 || c.Height == 0
}

// Capabilities lists what a target supports, in the target's order of
// preference.
type Capabilities struct {
	Formats      []gputypes.TextureFormat
	AlphaModes   []AlphaMode
	PresentModes []PresentMode
}

// Negotiate picks a configuration for a width x height target: the first
// sRGB format if any, otherwise the first format, and the first advertised
// alpha and present modes. Missing alpha or present modes fall back to
// AlphaOpaque and PresentFifo.
func Negotiate(caps Capabilities, width, height uint32) (Config, error) {
	if len(caps.Formats) == 0 {
		return Config{}, ErrNoFormats
	}
	cfg := Config{
		Width:       width,
		Height:      height,
		Format:      caps.Formats[0],
		AlphaMode:   AlphaOpaque,
		PresentMode: PresentFifo,
	}
	for _, f := range caps.Formats {
		if IsSRGB(f) {
			cfg.Format = f
			break
		}
	}
	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	if len(caps.PresentModes) > 0 {
		cfg.PresentMode = caps.PresentModes[0]
	}
	return cfg, nil
}

// IsSRGB reports whether f stores color in the sRGB transfer function.
func IsSRGB(f gputypes.TextureFormat) bool {
	return f.IsSrgb()
}
