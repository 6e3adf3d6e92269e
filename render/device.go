// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/fractal"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device errors.
var (
	// ErrNilDevice is returned when a renderer is created without a device
	// or queue.
	ErrNilDevice = errors.New("render: nil device or queue")

	// ErrNoHalDevice is returned by SharedDevice when the provider does not
	// expose hal types.
	ErrNoHalDevice = errors.New("render: provider does not expose a hal device")

	// ErrNoAdapter is returned by OpenDevice when the backend reports no
	// adapters.
	ErrNoAdapter = errors.New("render: no GPU adapters found")
)

// DeviceHandle is the host's GPU context. The windowed host receives one
// from gogpu and shares its device with the renderer.
type DeviceHandle = gpucontext.DeviceProvider

// HalProvider is implemented by hosts that expose their hal device and
// queue for sharing.
type HalProvider interface {
	HalDevice() any
	HalQueue() any
}

// halDeviceSource is implemented by *wgpu.Device, which is what gogpu
// hands out through its DeviceProvider.
type halDeviceSource interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// SharedDevice extracts the hal device and queue from a host provider or
// a wgpu device. The caller does not own the returned device.
func SharedDevice(provider any) (hal.Device, hal.Queue, error) {
	if src, ok := provider.(halDeviceSource); ok {
		device, queue := src.HalDevice(), src.HalQueue()
		if device == nil || queue == nil {
			return nil, nil, fmt.Errorf("%w: device released", ErrNoHalDevice)
		}
		return device, queue, nil
	}
	hp, ok := provider.(HalProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrNoHalDevice, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHalDevice, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHalDevice, hp.HalQueue())
	}
	return device, queue, nil
}

// HandleDevice returns the hal device and queue behind a host GPU context
// together with the host's preferred surface format. The handle itself
// may expose them, or its Device may be a *wgpu.Device.
func HandleDevice(h DeviceHandle) (hal.Device, hal.Queue, gputypes.TextureFormat, error) {
	if h == nil {
		return nil, nil, gputypes.TextureFormatUndefined, ErrNilDevice
	}
	device, queue, err := SharedDevice(h)
	if err != nil {
		device, queue, err = SharedDevice(h.Device())
	}
	if err != nil {
		return nil, nil, gputypes.TextureFormatUndefined, err
	}
	return device, queue, h.SurfaceFormat(), nil
}

// Device is a GPU device opened by this package. Unlike a shared device it
// must be closed by its owner.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// Info describes the selected adapter.
	Info gputypes.AdapterInfo

	instance hal.Instance
}

// OpenDevice opens a device on the given backend, preferring a discrete or
// integrated GPU over other adapter types. The backend must be registered,
// usually by a blank import such as github.com/gogpu/wgpu/hal/vulkan.
func OpenDevice(backend gputypes.Backend) (*Device, error) {
	b, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("render: backend %v: %w", backend, hal.ErrBackendNotFound)
	}
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	fractal.Logger().Info("render: device opened",
		"backend", backend.String(),
		"adapter", selected.Info.Name)
	return &Device{
		Device:   openDev.Device,
		Queue:    openDev.Queue,
		Info:     selected.Info,
		instance: instance,
	}, nil
}

// Close waits for outstanding work and releases the device.
func (d *Device) Close() {
	if d.Device != nil {
		if err := d.Device.WaitIdle(); err != nil {
			fractal.Logger().Warn("render: wait idle on close", "err", err)
		}
		d.Device.Destroy()
		d.Device = nil
		d.Queue = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
