package fluid

import (
	"math"
	"strings"
)

const (
	// BackendCPU runs every pass on the host worker pool.
	BackendCPU = "cpu"
	// BackendOpenCL runs every pass as an OpenCL kernel. Requires -tags opencl.
	BackendOpenCL = "opencl"

	maxGridResolution = 4096
)

// Vec2 is a grid-space position or displacement.
type Vec2 struct {
	X, Y float32
}

// ForcingDescriptor is one frame's pointer sample, consumed by source injection.
type ForcingDescriptor struct {
	Active   bool
	Position Vec2
	Delta    Vec2
}

// SimParams is the immutable per-frame parameter block handed to every pass.
type SimParams struct {
	GridResolution   uint32
	PointerActive    bool
	JacobiIterations uint32
	Timestep         float32
	// Viscosity is carried for completeness; no pass applies diffusion.
	Viscosity        float32
	Dissipation      float32
	ForcingStrength  float32
	PointerPosition  Vec2
	PointerDelta     Vec2
	ForcingRadius    float32
}

// Forcing returns the pointer part of the block.
func (p SimParams) Forcing() ForcingDescriptor {
	return ForcingDescriptor{
		Active:   p.PointerActive,
		Position: p.PointerPosition,
		Delta:    p.PointerDelta,
	}
}

// Config holds the session settings a Pipeline is built from and the fixed
// defaults each frame's SimParams are refreshed from.
type Config struct {
	GridResolution   int
	JacobiIterations int
	Timestep         float32
	Viscosity        float32
	Dissipation      float32
	ForcingStrength  float32
	ForcingRadius    float32
	// ForceScale multiplies the pointer delta before it is added to velocity.
	ForceScale       float32
	// Workers selects the CPU dispatcher: a persistent pool of that many
	// goroutines when positive, a bounded errgroup per pass when zero.
	Workers          int
	Backend          string
}

// DefaultConfig returns a 256×256 session with 20 Jacobi iterations.
func DefaultConfig() Config {
	return Config{
		GridResolution:   256,
		JacobiIterations: 20,
		Timestep:         1,
		Viscosity:        0,
		Dissipation:      0.995,
		ForcingStrength:  1,
		ForcingRadius:    6,
		ForceScale:       1,
		Workers:          0,
		Backend:          BackendCPU,
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate reports the first invalid setting as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.GridResolution <= 0:
		return &ConfigError{Field: "grid resolution", Value: c.GridResolution, Reason: "must be positive"}
	case c.GridResolution > maxGridResolution:
		return &ConfigError{Field: "grid resolution", Value: c.GridResolution, Reason: "exceeds 4096"}
	case c.JacobiIterations <= 0:
		return &ConfigError{Field: "jacobi iterations", Value: c.JacobiIterations, Reason: "must be positive"}
	case !finite(c.Timestep) || c.Timestep < 0:
		return &ConfigError{Field: "timestep", Value: c.Timestep, Reason: "must be finite and non-negative"}
	case !finite(c.Dissipation) || c.Dissipation < 0 || c.Dissipation > 1:
		return &ConfigError{Field: "dissipation", Value: c.Dissipation, Reason: "must lie in [0, 1]"}
	case !finite(c.Viscosity) || c.Viscosity < 0:
		return &ConfigError{Field: "viscosity", Value: c.Viscosity, Reason: "must be finite and non-negative"}
	case !finite(c.ForcingStrength):
		return &ConfigError{Field: "forcing strength", Value: c.ForcingStrength, Reason: "must be finite"}
	case !finite(c.ForcingRadius) || c.ForcingRadius < 0:
		return &ConfigError{Field: "forcing radius", Value: c.ForcingRadius, Reason: "must be finite and non-negative"}
	case !finite(c.ForceScale):
		return &ConfigError{Field: "force scale", Value: c.ForceScale, Reason: "must be finite"}
	case c.Workers < 0:
		return &ConfigError{Field: "workers", Value: c.Workers, Reason: "must not be negative"}
	}
	switch strings.ToLower(c.Backend) {
	case BackendCPU, BackendOpenCL:
	default:
		return &ConfigError{Field: "backend", Value: c.Backend, Reason: `must be "cpu" or "opencl"`}
	}
	return nil
}

// Params builds this frame's parameter block from the fixed settings and the
// latest pointer sample.
func (c Config) Params(f ForcingDescriptor) SimParams {
	return SimParams{
		GridResolution:   uint32(c.GridResolution),
		PointerActive:    f.Active,
		JacobiIterations: uint32(c.JacobiIterations),
		Timestep:         c.Timestep,
		Viscosity:        c.Viscosity,
		Dissipation:      c.Dissipation,
		ForcingStrength:  c.ForcingStrength,
		PointerPosition:  f.Position,
		PointerDelta:     f.Delta,
		ForcingRadius:    c.ForcingRadius,
	}
}
