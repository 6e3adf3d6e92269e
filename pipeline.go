package fractal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPipeline is returned by ParsePipeline for unrecognized names.
var ErrUnknownPipeline = errors.New("fractal: unknown pipeline")

// Pipeline selects the GPU strategy used to produce each frame.
// The choice is made once at startup and cannot change at runtime.
type Pipeline int

const (
	// PipelineQuad draws a viewport quad whose fragment shader evaluates
	// the fractal per pixel.
	PipelineQuad Pipeline = iota

	// PipelineCompute evaluates the fractal in a compute pass over a fixed
	// 8x8x8 workgroup grid, then copies the result to the frame.
	PipelineCompute
)

// String returns the pipeline name as accepted by ParsePipeline.
func (p Pipeline) String() string {
	switch p {
	case PipelineQuad:
		return "quad"
	case PipelineCompute:
		return "compute"
	default:
		return fmt.Sprintf("Pipeline(%d)", int(p))
	}
}

// ParsePipeline returns the pipeline named s. Matching is case-insensitive.
func ParsePipeline(s string) (Pipeline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quad", "fragment", "":
		return PipelineQuad, nil
	case "compute":
		return PipelineCompute, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPipeline, s)
	}
}
