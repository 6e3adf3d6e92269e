// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws the fractal with one of two GPU pipeline variants,
// or on the CPU with [SoftwareRenderer].
//
// # Key Principle
//
// The renderer RECEIVES a GPU device, it does NOT own the window. In the
// windowed host the device is shared with gogpu through [SharedDevice];
// the headless host opens its own with [OpenDevice]. [SoftwareRenderer]
// needs no device and draws into surface.ImageTarget frames.
//
// # Variants
//
//   - QuadRenderer: an indexed viewport quad (indices 0,1,2,3,2,1) whose
//     fragment shader evaluates the fractal per pixel
//   - ComputeRenderer: a compute pass over a fixed 8x8x8 workgroup grid
//     writing a pixel buffer, then a full-screen copy to the frame
//
// Both read the 24-byte view block produced by view.State.Encode from a
// uniform buffer at group 0, binding 0.
//
// # Frame Protocol
//
//	r.Upload(params)   // before the frame is acquired
//	f, _ := target.Acquire()
//	r.Draw(f)          // records and submits, does not present
//	target.Present(f)
//
// Shaders are embedded WGSL and can be checked ahead of time with
// [ValidateShaders].
package render
