// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"

	"github.com/gogpu/fractal/surface"
	"github.com/gogpu/fractal/view"
)

// SoftwareRenderer evaluates the same escape-time kernel as the GPU
// variants on the CPU. It draws into surface.ImageTarget frames and is used
// for headless runs without a GPU and as a reference in tests.
//
// Rows are split into bands rendered in parallel.
//
// Example:
//
//	target := surface.NewImageTarget()
//	r := render.NewSoftwareRenderer()
//	d, _ := frame.NewDriver(frame.AppState{View: view.Default(), Surface: mgr}, r)
type SoftwareRenderer struct {
	params    view.State
	uploaded  bool
	destroyed bool
}

// NewSoftwareRenderer creates a CPU renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Upload decodes the view parameter block.
func (r *SoftwareRenderer) Upload(params []byte) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := checkParams(params); err != nil {
		return err
	}
	s, err := view.Decode(params)
	if err != nil {
		return err
	}
	r.params = s
	r.uploaded = true
	return nil
}

// Draw renders into the image carried by an ImageTarget frame.
func (r *SoftwareRenderer) Draw(f *surface.Frame) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if f == nil {
		return ErrNilFrame
	}
	native, ok := f.Native.(*surface.ImageFrame)
	if !ok || native.Image == nil {
		return fmt.Errorf("%w: frame has no CPU image (%T)", ErrNilFrame, f.Native)
	}
	if !r.uploaded {
		r.params = view.Default()
	}
	Rasterize(native.Image, r.params)
	return nil
}

// Destroy marks the renderer unusable.
func (r *SoftwareRenderer) Destroy() {
	r.destroyed = true
}

// Rasterize evaluates the fractal for every pixel of img.
func Rasterize(img *image.RGBA, s view.State) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	bands := min(runtime.GOMAXPROCS(0), h)
	rows := (h + bands - 1) / bands
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += rows {
		y1 := min(y0+rows, h)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				ny := 1 - (float32(y)+0.5)/float32(h)*2
				for x := 0; x < w; x++ {
					nx := (float32(x)+0.5)/float32(w)*2 - 1
					cx := s.Position.X + nx*s.Extent.X*0.5
					cy := s.Position.Y + ny*s.Extent.Y*0.5
					img.SetRGBA(b.Min.X+x, b.Min.Y+y, shade(escape(cx, cy, s.Quality), s.Quality))
				}
			}
		}()
	}
	wg.Wait()
}

// escape returns the number of iterations before z leaves the radius-2
// disk, capped at limit.
func escape(cx, cy float32, limit uint32) uint32 {
	var zx, zy float32
	var i uint32
	for i < limit && zx*zx+zy*zy <= 4 {
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
		i++
	}
	return i
}

// palettePhase offsets the cosine palette per channel.
var palettePhase = [3]float64{0, 0.33, 0.67}

// shade maps an iteration count to the cosine palette. Points that never
// escape are black.
func shade(n, limit uint32) color.RGBA {
	if n >= limit {
		return color.RGBA{A: 255}
	}
	t := float64(n) / float64(max(limit, 1))
	var c [3]uint8
	for i, phase := range palettePhase {
		v := 0.5 + 0.5*math.Cos(2*math.Pi*(t*4+phase))
		c[i] = uint8(math.Min(math.Max(v, 0), 1)*255 + 0.5)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}
