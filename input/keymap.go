// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gpucontext"
)

// ErrUnknownKey is returned by ParseKey for unrecognized key names.
var ErrUnknownKey = errors.New("input: unknown key")

// Keymap binds keys to axes. Several keys may drive the same axis.
type Keymap map[gpucontext.Key]Axis

// DefaultKeymap returns the standard bindings: WASD pans, the up and down
// arrows zoom in and out, the right and left arrows raise and lower the
// iteration budget.
func DefaultKeymap() Keymap {
	return Keymap{
		gpucontext.KeyW:     AxisPanUp,
		gpucontext.KeyS:     AxisPanDown,
		gpucontext.KeyD:     AxisPanRight,
		gpucontext.KeyA:     AxisPanLeft,
		gpucontext.KeyUp:    AxisZoomIn,
		gpucontext.KeyDown:  AxisZoomOut,
		gpucontext.KeyRight: AxisQualityUp,
		gpucontext.KeyLeft:  AxisQualityDown,
	}
}

// Clone returns an independent copy of km.
func (km Keymap) Clone() Keymap {
	out := make(Keymap, len(km))
	for k, a := range km {
		out[k] = a
	}
	return out
}

// Override returns a copy of km with every binding in overrides applied.
// A key rebound to a new axis replaces its previous binding; keys that
// previously drove the overridden axes stay bound.
func (km Keymap) Override(overrides Keymap) Keymap {
	out := km.Clone()
	for k, a := range overrides {
		out[k] = a
	}
	return out
}

// KeyFor returns a key bound to a. When several keys drive a, the one with
// the lowest name is returned so the result is stable.
func (km Keymap) KeyFor(a Axis) (gpucontext.Key, bool) {
	var names []string
	byName := make(map[string]gpucontext.Key)
	for k, axis := range km {
		if axis != a {
			continue
		}
		n := KeyName(k)
		names = append(names, n)
		byName[n] = k
	}
	if len(names) == 0 {
		return 0, false
	}
	sort.Strings(names)
	return byName[names[0]], true
}

// keyNames maps configuration names onto key codes.
var keyNames = map[string]gpucontext.Key{
	"a": gpucontext.KeyA, "b": gpucontext.KeyB, "c": gpucontext.KeyC,
	"d": gpucontext.KeyD, "e": gpucontext.KeyE, "f": gpucontext.KeyF,
	"g": gpucontext.KeyG, "h": gpucontext.KeyH, "i": gpucontext.KeyI,
	"j": gpucontext.KeyJ, "k": gpucontext.KeyK, "l": gpucontext.KeyL,
	"m": gpucontext.KeyM, "n": gpucontext.KeyN, "o": gpucontext.KeyO,
	"p": gpucontext.KeyP, "q": gpucontext.KeyQ, "r": gpucontext.KeyR,
	"s": gpucontext.KeyS, "t": gpucontext.KeyT, "u": gpucontext.KeyU,
	"v": gpucontext.KeyV, "w": gpucontext.KeyW, "x": gpucontext.KeyX,
	"y": gpucontext.KeyY, "z": gpucontext.KeyZ,

	"up":    gpucontext.KeyUp,
	"down":  gpucontext.KeyDown,
	"left":  gpucontext.KeyLeft,
	"right": gpucontext.KeyRight,
	"space": gpucontext.KeySpace,
}

// ParseKey returns the key with the given configuration name, such as
// "w", "up" or "space". Matching is case-insensitive.
func ParseKey(name string) (gpucontext.Key, error) {
	if k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyName returns the configuration name of k, or a numeric placeholder
// for keys that have none.
func KeyName(k gpucontext.Key) string {
	for n, key := range keyNames {
		if key == k {
			return n
		}
	}
	return fmt.Sprintf("key(%d)", int(k))
}
