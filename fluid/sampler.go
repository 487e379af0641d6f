package fluid

import "math"

// ClampCell constrains v to the valid cell range [0, n-1].
func ClampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}

// clampCoord constrains a real coordinate to [0, n-1]. NaN maps to 0 so a
// poisoned velocity never produces an out-of-range index.
func clampCoord(v float32, n int) float32 {
	hi := float32(n - 1)
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > hi:
		return hi
	}
	return v
}

// ReadClamped returns the cell at (x, y) after edge clamping.
func ReadClamped(f *GridField, x, y int) Texel {
	return f.At(ClampCell(x, f.size), ClampCell(y, f.size))
}

func scalarClamped(f *GridField, x, y int) float32 {
	return f.Scalar(ClampCell(x, f.size), ClampCell(y, f.size))
}

func vectorClamped(f *GridField, x, y int) (float32, float32) {
	return f.Vector(ClampCell(x, f.size), ClampCell(y, f.size))
}

// bilinearTap holds the four clamped cell offsets around a sample point and
// its fractional position inside that quad.
type bilinearTap struct {
	o00, o10, o01, o11 int
	fx, fy             float32
}

func (f *GridField) tap(x, y float32) bilinearTap {
	x = clampCoord(x, f.size)
	y = clampCoord(y, f.size)
	fx0 := float32(math.Floor(float64(x)))
	fy0 := float32(math.Floor(float64(y)))
	x0, y0 := int(fx0), int(fy0)
	x1 := ClampCell(x0+1, f.size)
	y1 := ClampCell(y0+1, f.size)
	return bilinearTap{
		o00: f.offset(x0, y0),
		o10: f.offset(x1, y0),
		o01: f.offset(x0, y1),
		o11: f.offset(x1, y1),
		fx:  x - fx0,
		fy:  y - fy0,
	}
}

func (f *GridField) blend(t bilinearTap, c int) float32 {
	a := fromHalf(f.data[t.o00+c])
	b := fromHalf(f.data[t.o10+c])
	d := fromHalf(f.data[t.o01+c])
	e := fromHalf(f.data[t.o11+c])
	top := a + (b-a)*t.fx
	bottom := d + (e-d)*t.fx
	return top + (bottom-top)*t.fy
}

// SampleClamped bilinearly interpolates f at a real-valued grid coordinate.
// Coordinates outside the grid are clamped first, so sampling off the edge
// repeats the edge value.
func SampleClamped(f *GridField, x, y float32) Texel {
	t := f.tap(x, y)
	var out Texel
	for c := 0; c < channels; c++ {
		out[c] = f.blend(t, c)
	}
	return out
}

func sampleScalar(f *GridField, x, y float32) float32 {
	return f.blend(f.tap(x, y), 0)
}

func sampleVector(f *GridField, x, y float32) (float32, float32) {
	t := f.tap(x, y)
	return f.blend(t, 0), f.blend(t, 1)
}
