// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package view

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrBlockSize is returned by Decode for a block that is not ParamsSize
// bytes long.
var ErrBlockSize = errors.New("view: uniform block has the wrong size")

// ParamsSize is the size in bytes of the encoded view block.
//
// Layout (little-endian):
//
//	offset  0: position.x (f32)
//	offset  4: position.y (f32)
//	offset  8: extent.x   (f32)
//	offset 12: extent.y   (f32)
//	offset 16: quality    (u32)
//	offset 20: padding    (4 zero bytes, uniform alignment)
const ParamsSize = 24

// Encode returns the uniform block for s. It is pure and deterministic.
func (s State) Encode() [ParamsSize]byte {
	var b [ParamsSize]byte
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(s.Position.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(s.Position.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(s.Extent.X))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(s.Extent.Y))
	binary.LittleEndian.PutUint32(b[16:], s.Quality)
	return b
}

// AppendEncode appends the uniform block for s to dst.
func (s State) AppendEncode(dst []byte) []byte {
	b := s.Encode()
	return append(dst, b[:]...)
}

// Decode parses a uniform block produced by Encode. Zoom is not part of the
// block; it is recovered as the larger extent component.
func Decode(b []byte) (State, error) {
	if len(b) != ParamsSize {
		return State{}, fmt.Errorf("%w: %d bytes", ErrBlockSize, len(b))
	}
	s := State{
		Position: Vec2{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		},
		Extent: Vec2{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
		},
		Quality: binary.LittleEndian.Uint32(b[16:]),
	}
	s.Zoom = max(s.Extent.X, s.Extent.Y)
	return s, nil
}
