package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FrameStats summarises the fields after the last completed frame.
type FrameStats struct {
	Frame        uint64
	DensitySum   float64
	DensityMax   float64
	DivergenceL2 float64
	MaxSpeed     float64
}

// scalarValues decodes a scalar field into dst.
func scalarValues(f *GridField, dst []float64) []float64 {
	dst = dst[:0]
	n := f.size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dst = append(dst, float64(f.Scalar(x, y)))
		}
	}
	return dst
}

// divergenceValues evaluates the discrete divergence of vel at every cell
// with the same stencil the solver uses.
func divergenceValues(vel *GridField, dst []float64) []float64 {
	dst = dst[:0]
	n := vel.size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dst = append(dst, float64(cellDivergence(vel, x, y)))
		}
	}
	return dst
}

func speedValues(vel *GridField, dst []float64) []float64 {
	dst = dst[:0]
	n := vel.size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			vx, vy := vel.Vector(x, y)
			dst = append(dst, math.Hypot(float64(vx), float64(vy)))
		}
	}
	return dst
}

// Stats measures the current fields. It walks the whole grid and is meant for
// periodic diagnostics, not every frame.
func (p *Pipeline) Stats() FrameStats {
	n := p.fields.size
	buf := make([]float64, 0, n*n)
	st := FrameStats{Frame: p.frames}

	buf = scalarValues(p.fields.density.Front(), buf)
	st.DensitySum = floats.Sum(buf)
	st.DensityMax = floats.Max(buf)

	buf = divergenceValues(p.fields.velocity.Front(), buf)
	st.DivergenceL2 = floats.Norm(buf, 2)

	buf = speedValues(p.fields.velocity.Front(), buf)
	st.MaxSpeed = floats.Max(buf)
	return st
}
