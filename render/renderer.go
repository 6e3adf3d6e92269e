// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/fractal/view"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Renderer errors.
var (
	// ErrParamsSize is returned by Upload when the parameter block is not
	// exactly view.ParamsSize bytes.
	ErrParamsSize = errors.New("render: parameter block size mismatch")

	// ErrNilFrame is returned by Draw for a nil frame or a frame without a
	// view.
	ErrNilFrame = errors.New("render: nil frame")

	// ErrDestroyed is returned after Destroy.
	ErrDestroyed = errors.New("render: renderer destroyed")
)

// Renderer turns the uploaded view parameters into one frame.
//
// Upload must be called before the frame is acquired so the parameters
// reach the GPU ahead of the draw that reads them. Draw records and
// submits the GPU work for the frame but does not present it.
//
// Thread Safety: Renderers are NOT thread-safe. All calls happen on the
// event loop goroutine.
type Renderer interface {
	// Upload replaces the view parameter block read by the next Draw.
	Upload(params []byte) error

	// Draw renders the fractal into f.
	Draw(f *surface.Frame) error

	// Destroy releases all GPU resources. Safe to call more than once.
	Destroy()
}

// New creates the renderer for pipeline p. The choice is final: the
// variant cannot be changed without creating a new renderer.
func New(p fractal.Pipeline, device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (Renderer, error) {
	switch p {
	case fractal.PipelineQuad:
		r, err := NewQuadRenderer(device, queue, format)
		if err != nil {
			return nil, err
		}
		return r, nil
	case fractal.PipelineCompute:
		r, err := NewComputeRenderer(device, queue, format)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %v", fractal.ErrUnknownPipeline, p)
	}
}

// paramsBufferSize is the uniform buffer allocation for the view block,
// rounded up to the 16-byte uniform alignment.
const paramsBufferSize = (view.ParamsSize + 15) &^ 15

// checkParams validates an uploaded parameter block.
func checkParams(params []byte) error {
	if len(params) != view.ParamsSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrParamsSize, len(params), view.ParamsSize)
	}
	return nil
}

// createUniform allocates a uniform buffer that can be rewritten each frame.
func createUniform(device hal.Device, label string, size uint64) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	return buf, nil
}

// createShader compiles an embedded WGSL source into a shader module.
func createShader(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("%s shader source is empty", label)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", label, err)
	}
	return module, nil
}

// clearBlack is the load color of every frame.
var clearBlack = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

// colorPass describes a single-attachment render pass that clears f.
func colorPass(label string, f *surface.Frame) *hal.RenderPassDescriptor {
	return &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       f.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearBlack,
		}},
	}
}
