// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// createFrame creates a render attachment of the given size on device.
func createFrame(t *testing.T, device hal.Device, w, h uint32) *surface.Frame {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_frame",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "test_frame_view"})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return &surface.Frame{
		View:   view,
		Width:  w,
		Height: h,
		Format: gputypes.TextureFormatBGRA8Unorm,
	}
}

// readBuffer returns the first n bytes of a noop buffer.
func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, n uint64) []byte {
	t.Helper()
	m, err := device.MapBuffer(buf, 0, n)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(m.Ptr), n))
	if err := device.UnmapBuffer(buf); err != nil {
		t.Fatalf("UnmapBuffer: %v", err)
	}
	return out
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
