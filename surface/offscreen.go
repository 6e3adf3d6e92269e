// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoFrame is returned by Present and Image when no frame is available.
var ErrNoFrame = errors.New("surface: no frame")

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// OffscreenTarget is a Target backed by a GPU texture instead of a window.
// Every presented frame is read back to CPU memory, so the last frame can
// be retrieved with Image. It is used for headless rendering.
//
// OffscreenTarget is NOT safe for concurrent use.
type OffscreenTarget struct {
	device hal.Device
	queue  hal.Queue

	cfg  Config
	tex  hal.Texture
	view hal.TextureView

	// generation counts Configure calls; acquired frames carry it in
	// Frame.Native.
	generation uint64
	acquired   bool
	image      *image.RGBA
}

// NewOffscreenTarget creates an unconfigured offscreen target on device.
func NewOffscreenTarget(device hal.Device, queue hal.Queue) *OffscreenTarget {
	return &OffscreenTarget{device: device, queue: queue}
}

// Capabilities returns what the offscreen target can be configured with.
func (t *OffscreenTarget) Capabilities() Capabilities {
	return Capabilities{
		Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
		AlphaModes:   []AlphaMode{AlphaOpaque},
		PresentModes: []PresentMode{PresentFifo},
	}
}

// Configure recreates the backing texture for cfg.
func (t *OffscreenTarget) Configure(cfg Config) error {
	if cfg.Empty() {
		return fmt.Errorf("surface: offscreen configure %dx%d: %w", cfg.Width, cfg.Height, ErrOutdated)
	}
	t.destroyTexture()

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label: "offscreen_color",
		Size: hal.Extent3D{
			Width:              cfg.Width,
			Height:             cfg.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		t.device.DestroyTexture(tex)
		return fmt.Errorf("create offscreen texture view: %w", err)
	}

	t.tex = tex
	t.view = view
	t.cfg = cfg
	t.generation++
	t.acquired = false
	return nil
}

// Acquire returns the offscreen texture as the next frame.
func (t *OffscreenTarget) Acquire() (*Frame, error) {
	if t.view == nil {
		return nil, ErrLost
	}
	t.acquired = true
	return &Frame{
		View:   t.view,
		Width:  t.cfg.Width,
		Height: t.cfg.Height,
		Format: t.cfg.Format,
		Native: t.generation,
	}, nil
}

// Present copies the rendered frame back to CPU memory.
func (t *OffscreenTarget) Present(f *Frame) error {
	if f == nil || !t.acquired {
		return ErrNoFrame
	}
	t.acquired = false
	if gen, ok := f.Native.(uint64); !ok || gen != t.generation {
		return fmt.Errorf("surface: frame predates the current configuration: %w", ErrOutdated)
	}
	img, err := t.readback()
	if err != nil {
		return err
	}
	t.image = img
	return nil
}

// Discard drops an acquired frame.
func (t *OffscreenTarget) Discard(*Frame) {
	t.acquired = false
}

// Image returns the last presented frame scaled to width x height. A
// non-positive size returns the frame at its native size.
func (t *OffscreenTarget) Image(width, height int) (*image.RGBA, error) {
	return snapshot(t.image, width, height)
}

// Destroy releases the backing texture.
func (t *OffscreenTarget) Destroy() {
	t.destroyTexture()
	t.image = nil
}

func (t *OffscreenTarget) destroyTexture() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// readback copies the texture into a staging buffer, waits for the queue to
// drain and converts the BGRA rows into an RGBA image.
func (t *OffscreenTarget) readback() (*image.RGBA, error) {
	w, h := t.cfg.Width, t.cfg.Height
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer t.device.DestroyBuffer(staging)

	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	encoded := false
	defer func() {
		if !encoded {
			encoder.DiscardEncoding()
		}
	}()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	encoded = true
	defer t.device.FreeCommandBuffer(cmdBuf)

	if _, err := t.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return nil, fmt.Errorf("submit readback: %w", err)
	}
	if err := t.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for readback: %w", err)
	}

	mapping, err := t.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	data := make([]byte, size)
	copy(data, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := t.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := 0; row < int(h); row++ {
		src := data[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		bgraToRGBA(dst, src, t.cfg.Format)
	}
	return img, nil
}

// bgraToRGBA copies one row of pixels, swapping red and blue for BGRA
// formats.
func bgraToRGBA(dst, src []byte, format gputypes.TextureFormat) {
	swap := format == gputypes.TextureFormatBGRA8Unorm || format == gputypes.TextureFormatBGRA8UnormSrgb
	for i := 0; i+3 < len(src); i += 4 {
		if swap {
			dst[i+0] = src[i+2]
			dst[i+2] = src[i+0]
		} else {
			dst[i+0] = src[i+0]
			dst[i+2] = src[i+2]
		}
		dst[i+1] = src[i+1]
		dst[i+3] = src[i+3]
	}
}
