// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/fractal"
	"github.com/gogpu/naga"
)

// WGSL sources for both pipeline variants.

//go:embed shaders/quad.wgsl
var quadShaderSource string

//go:embed shaders/compute.wgsl
var computeShaderSource string

//go:embed shaders/blit.wgsl
var blitShaderSource string

// Shader is an embedded WGSL program.
type Shader struct {
	Name   string
	Source string
}

// Shaders returns the WGSL programs used by pipeline p.
func Shaders(p fractal.Pipeline) []Shader {
	switch p {
	case fractal.PipelineQuad:
		return []Shader{{Name: "quad", Source: quadShaderSource}}
	case fractal.PipelineCompute:
		return []Shader{
			{Name: "compute", Source: computeShaderSource},
			{Name: "blit", Source: blitShaderSource},
		}
	default:
		return nil
	}
}

// ValidateShaders compiles the WGSL programs of pipeline p with naga so
// that shader errors surface before a window is opened.
func ValidateShaders(p fractal.Pipeline) error {
	shaders := Shaders(p)
	if shaders == nil {
		return fmt.Errorf("%w: %v", fractal.ErrUnknownPipeline, p)
	}
	for _, s := range shaders {
		if _, err := naga.Compile(s.Source); err != nil {
			return fmt.Errorf("render: validate %s shader: %w", s.Name, err)
		}
	}
	return nil
}
