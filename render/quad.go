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

// QuadIndices are the two triangles of the viewport quad. The vertex
// shader derives the corner positions from the vertex index.
var QuadIndices = [6]uint16{0, 1, 2, 3, 2, 1}

// QuadRenderer draws a viewport-filling quad whose fragment shader
// evaluates the fractal for every pixel.
//
// GPU objects are created once in NewQuadRenderer. Only the render
// pipeline is rebuilt, and only if a frame arrives in a different format.
type QuadRenderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	viewLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	viewBuf   hal.Buffer
	indexBuf  hal.Buffer
	bindGroup hal.BindGroup

	sub       submitter
	destroyed bool
}

// NewQuadRenderer creates the quad pipeline for frames of the given format.
func NewQuadRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*QuadRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	r := &QuadRenderer{
		device: device,
		queue:  queue,
		format: format,
		sub:    submitter{device: device, queue: queue},
	}
	if err := r.init(); err != nil {
		r.Destroy()
		return nil, err
	}
	fractal.Logger().Debug("render: quad pipeline created", "format", format.String())
	return r, nil
}

func (r *QuadRenderer) init() error {
	shader, err := createShader(r.device, "quad_shader", quadShaderSource)
	if err != nil {
		return err
	}
	r.shader = shader

	viewLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_view_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create quad view layout: %w", err)
	}
	r.viewLayout = viewLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.viewLayout},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	if err := r.createPipeline(r.format); err != nil {
		return err
	}

	viewBuf, err := createUniform(r.device, "quad_view", paramsBufferSize)
	if err != nil {
		return err
	}
	r.viewBuf = viewBuf

	indexBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_index",
		Size:  uint64(len(QuadIndices) * 2),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create quad index buffer: %w", err)
	}
	r.indexBuf = indexBuf

	indexBytes := make([]byte, 0, len(QuadIndices)*2)
	for _, i := range QuadIndices {
		indexBytes = binary.LittleEndian.AppendUint16(indexBytes, i)
	}
	if err := r.queue.WriteBuffer(r.indexBuf, 0, indexBytes); err != nil {
		return fmt.Errorf("write quad index buffer: %w", err)
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "quad_view_bind",
		Layout: r.viewLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.viewBuf.NativeHandle(),
				Offset: 0,
				Size:   paramsBufferSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create quad bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

func (r *QuadRenderer) createPipeline(format gputypes.TextureFormat) error {
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
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
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
	}
	r.pipeline = pipeline
	r.format = format
	return nil
}

// Upload writes the 24-byte view block to the uniform buffer.
func (r *QuadRenderer) Upload(params []byte) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := checkParams(params); err != nil {
		return err
	}
	if err := r.queue.WriteBuffer(r.viewBuf, 0, params); err != nil {
		return fmt.Errorf("write quad view buffer: %w", err)
	}
	return nil
}

// Draw clears f to black and draws the indexed quad over it.
func (r *QuadRenderer) Draw(f *surface.Frame) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if f == nil || f.View == nil {
		return ErrNilFrame
	}
	if f.Format != r.format && f.Format != gputypes.TextureFormatUndefined {
		if err := r.createPipeline(f.Format); err != nil {
			return err
		}
	}
	return r.sub.submit("quad_frame", func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(colorPass("quad_pass", f))
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
		rp.DrawIndexed(uint32(len(QuadIndices)), 1, 0, 0, 0)
		rp.End()
	})
}

// Destroy releases all GPU resources held by the renderer.
func (r *QuadRenderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.sub.drain()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.indexBuf != nil {
		r.device.DestroyBuffer(r.indexBuf)
		r.indexBuf = nil
	}
	if r.viewBuf != nil {
		r.device.DestroyBuffer(r.viewBuf)
		r.viewBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.viewLayout != nil {
		r.device.DestroyBindGroupLayout(r.viewLayout)
		r.viewLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
