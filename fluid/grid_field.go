package fluid

// channels is the number of half-precision samples stored per cell. Only the
// first one (scalars) or two (vectors) carry data; the rest is padding kept
// for parity with the device texture layout.
const channels = 4

// Texel is one decoded grid cell.
type Texel [channels]float32

// GridField is a square N×N array of 4-channel half-precision cells. Its shape
// is fixed at construction. Reads and writes take in-range integer coordinates;
// neighbour and off-grid access goes through the clamped sampler.
type GridField struct {
	size int
	data []uint16
}

// NewGridField allocates a zeroed size×size field.
func NewGridField(size int) *GridField {
	return &GridField{
		size: size,
		data: make([]uint16, size*size*channels),
	}
}

// Size reports the grid resolution N.
func (f *GridField) Size() int { return f.size }

func (f *GridField) offset(x, y int) int {
	return (y*f.size + x) * channels
}

// At decodes every channel of the cell at (x, y).
func (f *GridField) At(x, y int) Texel {
	o := f.offset(x, y)
	return Texel{
		fromHalf(f.data[o]),
		fromHalf(f.data[o+1]),
		fromHalf(f.data[o+2]),
		fromHalf(f.data[o+3]),
	}
}

// Set stores t at (x, y), rounding each channel to half precision.
func (f *GridField) Set(x, y int, t Texel) {
	o := f.offset(x, y)
	for c := 0; c < channels; c++ {
		f.data[o+c] = toHalf(t[c])
	}
}

// Scalar reads channel 0 of the cell at (x, y).
func (f *GridField) Scalar(x, y int) float32 {
	return fromHalf(f.data[f.offset(x, y)])
}

// SetScalar writes channel 0 of the cell at (x, y).
func (f *GridField) SetScalar(x, y int, v float32) {
	f.data[f.offset(x, y)] = toHalf(v)
}

// Vector reads channels 0 and 1 of the cell at (x, y).
func (f *GridField) Vector(x, y int) (float32, float32) {
	o := f.offset(x, y)
	return fromHalf(f.data[o]), fromHalf(f.data[o+1])
}

// SetVector writes channels 0 and 1 of the cell at (x, y).
func (f *GridField) SetVector(x, y int, vx, vy float32) {
	o := f.offset(x, y)
	f.data[o] = toHalf(vx)
	f.data[o+1] = toHalf(vy)
}

// Clear zeroes every cell.
func (f *GridField) Clear() {
	clear(f.data)
}

// clearRows zeroes rows [y0, y1).
func (f *GridField) clearRows(y0, y1 int) {
	clear(f.data[f.offset(0, y0):f.offset(0, y1)])
}

// CopyFrom overwrites f with the contents of src. Both fields must share a size.
func (f *GridField) CopyFrom(src *GridField) {
	if src.size != f.size {
		panic("fluid: CopyFrom between fields of different size")
	}
	copy(f.data, src.data)
}

// raw exposes the backing half-precision words for device transfers.
func (f *GridField) raw() []uint16 { return f.data }
