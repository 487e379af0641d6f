package fluid

import "math"

// falloffEpsilon keeps the Gaussian denominator positive for a zero radius.
const falloffEpsilon = 1e-4

// fieldSet is every grid the solver owns.
type fieldSet struct {
	size       int
	velocity   *DoubleBuffer
	density    *DoubleBuffer
	pressure   *DoubleBuffer
	divergence *GridField
}

func newFieldSet(size int) *fieldSet {
	return &fieldSet{
		size:       size,
		velocity:   NewDoubleBuffer(size),
		density:    NewDoubleBuffer(size),
		pressure:   NewDoubleBuffer(size),
		divergence: NewGridField(size),
	}
}

func (fs *fieldSet) clear() {
	fs.velocity.Clear()
	fs.density.Clear()
	fs.pressure.Clear()
	fs.divergence.Clear()
}

// falloff is the Gaussian weight of a cell at squared distance d2 from the
// pointer.
func falloff(d2, radius float32) float32 {
	return float32(math.Exp(float64(-d2 / (radius*radius + falloffEpsilon))))
}

// injectRows adds dye and pointer momentum in place. Each cell only touches
// itself, so no scratch buffer is needed.
func injectRows(vel, dens *GridField, p SimParams, forceScale float32, y0, y1 int) {
	n := vel.size
	px, py := p.PointerPosition.X, p.PointerPosition.Y
	dx, dy := p.PointerDelta.X*forceScale, p.PointerDelta.Y*forceScale
	for y := y0; y < y1; y++ {
		ry := float32(y) - py
		for x := 0; x < n; x++ {
			rx := float32(x) - px
			w := falloff(rx*rx+ry*ry, p.ForcingRadius)
			dens.SetScalar(x, y, dens.Scalar(x, y)+p.ForcingStrength*w)
			vx, vy := vel.Vector(x, y)
			vel.SetVector(x, y, vx+dx*w, vy+dy*w)
		}
	}
}

// advectVelocityRows traces each cell back along src by one timestep and
// writes the dissipated sample of src into dst.
func advectVelocityRows(src, dst *GridField, dt, dissipation float32, y0, y1 int) {
	n := src.size
	for y := y0; y < y1; y++ {
		for x := 0; x < n; x++ {
			vx, vy := src.Vector(x, y)
			sx, sy := sampleVector(src, float32(x)-vx*dt, float32(y)-vy*dt)
			dst.SetVector(x, y, sx*dissipation, sy*dissipation)
		}
	}
}

// advectDensityRows moves density along vel, reading src and writing dst.
func advectDensityRows(vel, src, dst *GridField, dt, dissipation float32, y0, y1 int) {
	n := src.size
	for y := y0; y < y1; y++ {
		for x := 0; x < n; x++ {
			vx, vy := vel.Vector(x, y)
			d := sampleScalar(src, float32(x)-vx*dt, float32(y)-vy*dt)
			dst.SetScalar(x, y, d*dissipation)
		}
	}
}

// divergenceRows stores the central-difference divergence of vel and zeroes
// both pressure buffers so the solve starts from a zero guess.
func divergenceRows(vel, div, p0, p1 *GridField, y0, y1 int) {
	n := vel.size
	for y := y0; y < y1; y++ {
		for x := 0; x < n; x++ {
			div.SetScalar(x, y, cellDivergence(vel, x, y))
		}
	}
	p0.clearRows(y0, y1)
	p1.clearRows(y0, y1)
}

func cellDivergence(vel *GridField, x, y int) float32 {
	east, _ := vectorClamped(vel, x+1, y)
	west, _ := vectorClamped(vel, x-1, y)
	_, north := vectorClamped(vel, x, y+1)
	_, south := vectorClamped(vel, x, y-1)
	return 0.5 * ((east - west) + (north - south))
}

// jacobiRows performs one relaxation sweep of ∇²p = div from src into dst.
func jacobiRows(src, div, dst *GridField, y0, y1 int) {
	n := src.size
	for y := y0; y < y1; y++ {
		for x := 0; x < n; x++ {
			l := scalarClamped(src, x-1, y)
			r := scalarClamped(src, x+1, y)
			b := scalarClamped(src, x, y-1)
			t := scalarClamped(src, x, y+1)
			dst.SetScalar(x, y, (l+r+b+t-div.Scalar(x, y))*0.25)
		}
	}
}

// projectRows subtracts the pressure gradient from vel in place. Only the
// pressure field is read across cells.
func projectRows(pressure, vel *GridField, y0, y1 int) {
	n := vel.size
	for y := y0; y < y1; y++ {
		for x := 0; x < n; x++ {
			gx := scalarClamped(pressure, x+1, y) - scalarClamped(pressure, x-1, y)
			gy := scalarClamped(pressure, x, y+1) - scalarClamped(pressure, x, y-1)
			vx, vy := vel.Vector(x, y)
			vel.SetVector(x, y, vx-0.5*gx, vy-0.5*gy)
		}
	}
}
