package fluid

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Pipeline owns every grid field of a simulation session and advances them
// one frame at a time. Step is not safe for concurrent use; the per-cell work
// it dispatches is.
type Pipeline struct {
	cfg     Config
	fields  *fieldSet
	backend backend

	// generation bumps at the start of every frame and invalidates views.
	generation atomic.Uint64
	frames     uint64
	dropped    uint64
}

// NewPipeline validates cfg and allocates zeroed fields for it.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var be backend
	switch strings.ToLower(cfg.Backend) {
	case BackendOpenCL:
		cl, err := newOpenCLBackend(cfg.GridResolution, cfg.ForceScale)
		if err != nil {
			return nil, fmt.Errorf("initializing OpenCL backend: %w", err)
		}
		be = cl
	default:
		be = newCPUBackend(cfg)
	}
	return newPipelineWithBackend(cfg, be), nil
}

func newPipelineWithBackend(cfg Config, be backend) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fields:  newFieldSet(cfg.GridResolution),
		backend: be,
	}
}

// DeviceName reports the compute device behind a device backend, or "" on
// the CPU.
func (p *Pipeline) DeviceName() string {
	if d, ok := p.backend.(interface{ DeviceName() string }); ok {
		return d.DeviceName()
	}
	return ""
}

// Size reports the grid resolution.
func (p *Pipeline) Size() int { return p.fields.size }

// BackendName reports which backend executes the passes.
func (p *Pipeline) BackendName() string { return p.backend.name() }

// Step runs one full frame: injection, velocity and density advection,
// divergence, the Jacobi pressure solve and projection. A frame the backend
// fails is dropped whole; the fields keep the previous frame's state and the
// returned error matches ErrDeviceTransient.
func (p *Pipeline) Step(params SimParams) error {
	if int(params.GridResolution) != p.fields.size {
		return &ConfigError{
			Field:  "grid resolution",
			Value:  params.GridResolution,
			Reason: fmt.Sprintf("pipeline was built for %d", p.fields.size),
		}
	}
	p.generation.Add(1)
	if err := p.backend.frame(p.fields, params); err != nil {
		p.dropped++
		return err
	}
	p.frames++
	return nil
}

// Density returns a read-only view of the density field, valid until the
// next Step or Reset.
func (p *Pipeline) Density() DensityView {
	return DensityView{
		field: p.fields.density.Front(),
		gen:   p.generation.Load(),
		live:  &p.generation,
	}
}

// Frames reports how many frames completed.
func (p *Pipeline) Frames() uint64 { return p.frames }

// Dropped reports how many frames the backend failed.
func (p *Pipeline) Dropped() uint64 { return p.dropped }

// Reset zeroes every field.
func (p *Pipeline) Reset() {
	p.generation.Add(1)
	p.fields.clear()
}

// Close releases the backend's workers or device resources.
func (p *Pipeline) Close() {
	p.backend.close()
}
