package fractal

import (
	"errors"
	"testing"
)

func TestPipelineString(t *testing.T) {
	tests := []struct {
		name string
		p    Pipeline
		want string
	}{
		{"Quad", PipelineQuad, "quad"},
		{"Compute", PipelineCompute, "compute"},
		{"Unknown", Pipeline(99), "Pipeline(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("Pipeline(%d).String() = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestParsePipeline(t *testing.T) {
	tests := []struct {
		in      string
		want    Pipeline
		wantErr bool
	}{
		{"quad", PipelineQuad, false},
		{"", PipelineQuad, false},
		{"Fragment", PipelineQuad, false},
		{" COMPUTE ", PipelineCompute, false},
		{"raytrace", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePipeline(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPipeline) {
					t.Fatalf("ParsePipeline(%q) error = %v, want ErrUnknownPipeline", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePipeline(%q) = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePipeline(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePipelineRoundTrip(t *testing.T) {
	for _, p := range []Pipeline{PipelineQuad, PipelineCompute} {
		got, err := ParsePipeline(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePipeline(%q) = %v, %v; want %v", p.String(), got, err, p)
		}
	}
}
