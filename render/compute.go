// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DispatchGrid is the fixed workgroup count of the compute pass. Each
// workgroup is 8x8x1 threads; the shader strides over targets larger than
// the 64x64x8 invocation grid.
var DispatchGrid = [3]uint32{8, 8, 8}

// dimsSize is the byte size of the target-size uniform (u32 width,
// u32 height, 8 bytes padding).
const dimsSize = 16

// ComputeRenderer evaluates the fractal in a compute pass into a storage
// buffer of packed RGBA8 pixels, then copies that buffer to the frame with
// a full-screen pass.
//
// The storage buffer and both bind groups follow the frame size; they are
// recreated when a frame of a different size is drawn.
type ComputeRenderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	computeShader hal.ShaderModule
	blitShader    hal.ShaderModule

	computeLayout     hal.BindGroupLayout
	blitLayout        hal.BindGroupLayout
	computePipeLayout hal.PipelineLayout
	blitPipeLayout    hal.PipelineLayout
	computePipeline   hal.ComputePipeline
	blitPipeline      hal.RenderPipeline

	viewBuf hal.Buffer
	dimsBuf hal.Buffer

	// Per-size resources.
	pixelBuf     hal.Buffer
	computeGroup hal.BindGroup
	blitGroup    hal.BindGroup
	width        uint32
	height       uint32

	sub       submitter
	destroyed bool
}

// NewComputeRenderer creates the compute and blit pipelines for frames of
// the given format.
func NewComputeRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*ComputeRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	r := &ComputeRenderer{
		device: device,
		queue:  queue,
		format: format,
		sub:    submitter{device: device, queue: queue},
	}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	fractal.Logger().Debug("render: compute pipeline created",
		"format", format.String(),
		"grid", DispatchGrid)
	return r, nil
}

func (r *ComputeRenderer) init() error {
	var err error
	if r.computeShader, err = createShader(r.device, "fractal_compute", computeShaderSource); err != nil {
		return err
	}
	if r.blitShader, err = createShader(r.device, "fractal_blit", blitShaderSource); err != nil {
		return err
	}

	r.computeLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "compute_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create compute layout: %w", err)
	}

	r.blitLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "blit_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create blit layout: %w", err)
	}

	r.computePipeLayout, err = r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "compute_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.computeLayout},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline layout: %w", err)
	}
	r.blitPipeLayout, err = r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "blit_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.blitLayout},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline layout: %w", err)
	}

	r.computePipeline, err = r.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "fractal_compute_pipeline",
		Layout: r.computePipeLayout,
		Compute: hal.ComputeState{
			Module:     r.computeShader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}

	if err := r.createBlitPipeline(r.format); err != nil {
		return err
	}

	if r.viewBuf, err = createUniform(r.device, "compute_view", paramsBufferSize); err != nil {
		return err
	}
	if r.dimsBuf, err = createUniform(r.device, "compute_dims", dimsSize); err != nil {
		return err
	}
	return nil
}

func (r *ComputeRenderer) createBlitPipeline(format gputypes.TextureFormat) error {
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fractal_blit_pipeline",
		Layout: r.blitPipeLayout,
		Vertex: hal.VertexState{
			Module:     r.blitShader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     r.blitShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline: %w", err)
	}
	if r.blitPipeline != nil {
		r.device.DestroyRenderPipeline(r.blitPipeline)
	}
	r.blitPipeline = pipeline
	r.format = format
	return nil
}

// ensureTarget sizes the pixel buffer and bind groups for a w x h frame.
func (r *ComputeRenderer) ensureTarget(w, h uint32) error {
	if r.pixelBuf != nil && r.width == w && r.height == h {
		return nil
	}
	// The old buffer may still be read by the previous frame.
	r.sub.drain()
	r.destroyTarget()

	size := uint64(w) * uint64(h) * 4
	pixelBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "compute_pixels",
		Size:  size,
		Usage: gputypes.BufferUsageStorage,
	})
	if err != nil {
		return fmt.Errorf("create pixel buffer %dx%d: %w", w, h, err)
	}
	r.pixelBuf = pixelBuf

	viewBinding := gputypes.BufferBinding{Buffer: r.viewBuf.NativeHandle(), Size: paramsBufferSize}
	dimsBinding := gputypes.BufferBinding{Buffer: r.dimsBuf.NativeHandle(), Size: dimsSize}
	pixelBinding := gputypes.BufferBinding{Buffer: r.pixelBuf.NativeHandle(), Size: size}

	r.computeGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "compute_bind",
		Layout: r.computeLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: viewBinding},
			{Binding: 1, Resource: dimsBinding},
			{Binding: 2, Resource: pixelBinding},
		},
	})
	if err != nil {
		return fmt.Errorf("create compute bind group: %w", err)
	}
	r.blitGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "blit_bind",
		Layout: r.blitLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: pixelBinding},
			{Binding: 1, Resource: dimsBinding},
		},
	})
	if err != nil {
		return fmt.Errorf("create blit bind group: %w", err)
	}

	var dims [dimsSize]byte
	binary.LittleEndian.PutUint32(dims[0:], w)
	binary.LittleEndian.PutUint32(dims[4:], h)
	if err := r.queue.WriteBuffer(r.dimsBuf, 0, dims[:]); err != nil {
		return fmt.Errorf("write dims buffer: %w", err)
	}

	r.width, r.height = w, h
	fractal.Logger().Debug("render: compute target resized", "width", w, "height", h)
	return nil
}

// Size returns the dimensions the pixel buffer is allocated for.
func (r *ComputeRenderer) Size() (width, height uint32) {
	return r.width, r.height
}

// Upload writes the 24-byte view block to the uniform buffer.
func (r *ComputeRenderer) Upload(params []byte) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := checkParams(params); err != nil {
		return err
	}
	if err := r.queue.WriteBuffer(r.viewBuf, 0, params); err != nil {
		return fmt.Errorf("write compute view buffer: %w", err)
	}
	return nil
}

// Draw dispatches the compute pass over the frame and copies the result
// into f.
func (r *ComputeRenderer) Draw(f *surface.Frame) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if f == nil || f.View == nil || f.Width == 0 || f.Height == 0 {
		return ErrNilFrame
	}
	if f.Format != r.format && f.Format != gputypes.TextureFormatUndefined {
		if err := r.createBlitPipeline(f.Format); err != nil {
			return err
		}
	}
	if err := r.ensureTarget(f.Width, f.Height); err != nil {
		return err
	}
	return r.sub.submit("compute_frame", func(enc hal.CommandEncoder) {
		cp := enc.BeginComputePass(&hal.ComputePassDescriptor{Label: "fractal_compute_pass"})
		cp.SetPipeline(r.computePipeline)
		cp.SetBindGroup(0, r.computeGroup, nil)
		cp.Dispatch(DispatchGrid[0], DispatchGrid[1], DispatchGrid[2])
		cp.End()

		rp := enc.BeginRenderPass(colorPass("fractal_blit_pass", f))
		rp.SetPipeline(r.blitPipeline)
		rp.SetBindGroup(0, r.blitGroup, nil)
		rp.Draw(3, 1, 0, 0)
		rp.End()
	})
}

func (r *ComputeRenderer) destroyTarget() {
	if r.blitGroup != nil {
		r.device.DestroyBindGroup(r.blitGroup)
		r.blitGroup = nil
	}
	if r.computeGroup != nil {
		r.device.DestroyBindGroup(r.computeGroup)
		r.computeGroup = nil
	}
	if r.pixelBuf != nil {
		r.device.DestroyBuffer(r.pixelBuf)
		r.pixelBuf = nil
	}
	r.width, r.height = 0, 0
}

// Destroy releases all GPU resources held by the renderer.
func (r *ComputeRenderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.sub.drain()
	r.destroyTarget()
	for _, b := range []hal.Buffer{r.viewBuf, r.dimsBuf} {
		if b != nil {
			r.device.DestroyBuffer(b)
		}
	}
	r.viewBuf, r.dimsBuf = nil, nil
	if r.blitPipeline != nil {
		r.device.DestroyRenderPipeline(r.blitPipeline)
		r.blitPipeline = nil
	}
	if r.computePipeline != nil {
		r.device.DestroyComputePipeline(r.computePipeline)
		r.computePipeline = nil
	}
	for _, l := range []hal.PipelineLayout{r.blitPipeLayout, r.computePipeLayout} {
		if l != nil {
			r.device.DestroyPipelineLayout(l)
		}
	}
	r.blitPipeLayout, r.computePipeLayout = nil, nil
	for _, l := range []hal.BindGroupLayout{r.blitLayout, r.computeLayout} {
		if l != nil {
			r.device.DestroyBindGroupLayout(l)
		}
	}
	r.blitLayout, r.computeLayout = nil, nil
	for _, m := range []hal.ShaderModule{r.blitShader, r.computeShader} {
		if m != nil {
			r.device.DestroyShaderModule(m)
		}
	}
	r.blitShader, r.computeShader = nil, nil
}
