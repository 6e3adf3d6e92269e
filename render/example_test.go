// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"fmt"
	"image"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/render"
	"github.com/gogpu/fractal/view"
)

func ExampleShaders() {
	for _, p := range []fractal.Pipeline{fractal.PipelineQuad, fractal.PipelineCompute} {
		for _, s := range render.Shaders(p) {
			fmt.Printf("%s: %s\n", p, s.Name)
		}
	}
	// Output:
	// quad: quad
	// compute: compute
	// compute: blit
}

func ExampleRasterize() {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	render.Rasterize(img, view.Default())

	// The origin is inside the set and renders black.
	fmt.Println(img.RGBAAt(4, 4))
	// Output:
	// {0 0 0 255}
}
