// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the viewer configuration from a TOML file.
//
// Every field is optional; a missing file section keeps its default. Key
// bindings are sparse overrides applied on top of the default keymap:
//
//	pipeline = "compute"
//	log_level = "debug"
//
//	[window]
//	width = 1280
//	height = 720
//
//	[keys]
//	i = "zoom_in"
//	o = "zoom_out"
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/input"
)

// Configuration errors.
var (
	// ErrInvalidWindow is returned for a non-positive window size.
	ErrInvalidWindow = errors.New("config: window size must be positive")

	// ErrUnknownField is returned for keys the schema does not define.
	ErrUnknownField = errors.New("config: unknown field")

	// ErrInvalidLogLevel is returned for unrecognized log levels.
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// Window holds the initial window settings.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Config is the decoded configuration file.
type Config struct {
	PipelineName string            `toml:"pipeline"`
	LogLevelName string            `toml:"log_level"`
	Window       Window            `toml:"window"`
	Keys         map[string]string `toml:"keys"`
}

// Default returns the built-in configuration: quad pipeline, info logging,
// an 800x600 window and no key overrides.
func Default() Config {
	return Config{
		PipelineName: fractal.PipelineQuad.String(),
		LogLevelName: "info",
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "fractal",
		},
	}
}

// Load reads and validates the file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return finish(cfg, md)
}

// Decode parses TOML text on top of Default and validates the result.
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, k := range undecoded {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field, reporting the first problem found.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if _, err := c.Pipeline(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.Keymap(); err != nil {
		return err
	}
	return nil
}

// Pipeline returns the selected pipeline variant.
func (c Config) Pipeline() (fractal.Pipeline, error) {
	return fractal.ParsePipeline(c.PipelineName)
}

// LogLevel returns the slog level named by log_level. An empty name is
// info.
func (c Config) LogLevel() (slog.Level, error) {
	if strings.TrimSpace(c.LogLevelName) == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevelName)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevelName)
	}
	return l, nil
}

// Keymap returns the default keymap with the [keys] overrides applied.
// Overrides are applied in key-name order so errors are reported
// deterministically.
func (c Config) Keymap() (input.Keymap, error) {
	km := input.DefaultKeymap()
	if len(c.Keys) == 0 {
		return km, nil
	}
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(input.Keymap, len(c.Keys))
	for _, name := range names {
		key, err := input.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("config: keys: %w", err)
		}
		axis, err := input.ParseAxis(c.Keys[name])
		if err != nil {
			return nil, fmt.Errorf("config: keys.%s: %w", name, err)
		}
		overrides[key] = axis
	}
	return km.Override(overrides), nil
}

// Size returns the window size as surface dimensions.
func (c Config) Size() (width, height uint32) {
	return uint32(max(c.Window.Width, 0)), uint32(max(c.Window.Height, 0))
}
