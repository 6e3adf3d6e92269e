// Package fractal renders an interactively explorable escape-time fractal
// on the GPU using gogpu/wgpu.
//
// # Overview
//
// The viewer keeps a camera into the complex plane (position, extent and an
// iteration budget), advances it every display refresh from the keys the
// user is holding, uploads it to the GPU as a 24-byte uniform block and
// presents one frame per redraw tick.
//
// # Architecture
//
// The module is organized into:
//   - view: camera state, its binary encoding and per-frame integration
//   - input: key events mapped onto eight held axes
//   - surface: presentation target configuration and failure classification
//   - render: quad (fragment) and compute pipeline variants
//   - frame: the frame driver state machine tying the above together
//   - config: TOML configuration and keymap overrides
//
// The windowed and headless hosts live in cmd/fractal.
//
// # Motion Model
//
// Pan and zoom speeds scale with the current zoom level, so navigation
// feels the same at every depth. All motion is integrated over elapsed
// wall-clock time and is independent of the frame rate.
//
// # Logging
//
// The library is silent by default. Call [SetLogger] to route diagnostics
// to a [log/slog] logger.
package fractal

// Version is the current version of the module.
const Version = "0.1.0"
