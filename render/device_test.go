// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type halProvider struct {
	device any
	queue  any
}

func (p halProvider) HalDevice() any { return p.device }
func (p halProvider) HalQueue() any  { return p.queue }

type wgpuDevice struct {
	device hal.Device
	queue  hal.Queue
}

func (d wgpuDevice) HalDevice() hal.Device { return d.device }
func (d wgpuDevice) HalQueue() hal.Queue   { return d.queue }

func TestSharedDeviceTyped(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	gotDev, gotQueue, err := SharedDevice(wgpuDevice{device: device, queue: queue})
	if err != nil {
		t.Fatalf("SharedDevice: %v", err)
	}
	if gotDev != device || gotQueue != queue {
		t.Error("SharedDevice returned a different device or queue")
	}
	if _, _, err := SharedDevice(wgpuDevice{}); !errors.Is(err, ErrNoHalDevice) {
		t.Errorf("released device: err = %v, want ErrNoHalDevice", err)
	}
}

func TestSharedDevice(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	gotDev, gotQueue, err := SharedDevice(halProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("SharedDevice: %v", err)
	}
	if gotDev != device || gotQueue != queue {
		t.Error("SharedDevice returned a different device or queue")
	}

	tests := []struct {
		name     string
		provider any
	}{
		{"not a provider", struct{}{}},
		{"nil", nil},
		{"wrong device type", halProvider{device: "gpu", queue: queue}},
		{"nil queue", halProvider{device: device, queue: hal.Queue(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := SharedDevice(tt.provider); !errors.Is(err, ErrNoHalDevice) {
				t.Errorf("SharedDevice error = %v, want ErrNoHalDevice", err)
			}
		})
	}
}

func TestOpenDevice(t *testing.T) {
	// The noop backend registers itself as BackendEmpty.
	d, err := OpenDevice(gputypes.BackendEmpty)
	if err != nil {
		t.Fatalf("OpenDevice(noop): %v", err)
	}
	if d.Device == nil || d.Queue == nil {
		t.Fatal("expected device and queue")
	}
	d.Close()
	d.Close()
	if d.Device != nil {
		t.Error("expected device released after Close")
	}
}

func TestOpenDeviceMissingBackend(t *testing.T) {
	if _, err := OpenDevice(gputypes.Backend(200)); !errors.Is(err, hal.ErrBackendNotFound) {
		t.Errorf("OpenDevice(200) error = %v, want ErrBackendNotFound", err)
	}
}

// fakeHandle is a host GPU context whose Device is a wgpu-style device.
type fakeHandle struct {
	device gpucontext.Device
}

func (h fakeHandle) Device() gpucontext.Device   { return h.device }
func (h fakeHandle) Queue() gpucontext.Queue     { return nil }
func (h fakeHandle) Adapter() gpucontext.Adapter { return nil }
func (h fakeHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8UnormSrgb
}
func (h fakeHandle) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

func TestHandleDevice(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	gotDev, gotQueue, format, err := HandleDevice(fakeHandle{device: wgpuDevice{device: device, queue: queue}})
	if err != nil {
		t.Fatalf("HandleDevice: %v", err)
	}
	if gotDev != device || gotQueue != queue {
		t.Error("HandleDevice returned a different device or queue")
	}
	if format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("format = %v, want BGRA8UnormSrgb", format)
	}

	if _, _, _, err := HandleDevice(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("HandleDevice(nil) err = %v, want ErrNilDevice", err)
	}
	if _, _, _, err := HandleDevice(fakeHandle{device: "not a device"}); !errors.Is(err, ErrNoHalDevice) {
		t.Errorf("HandleDevice(opaque) err = %v, want ErrNoHalDevice", err)
	}
}
