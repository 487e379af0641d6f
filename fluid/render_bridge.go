package fluid

import "fmt"

// DensityView exposes the density field to a display pass without allowing
// writes. It is valid from the end of one frame until the next one starts.
type DensityView struct {
	field *GridField
	gen   uint64
	live  interface{ Load() uint64 }
}

// Valid reports whether no frame has started since the view was taken.
func (v DensityView) Valid() bool {
	return v.field != nil && v.live != nil && v.live.Load() == v.gen
}

// Size reports the grid resolution, or 0 for a zero view.
func (v DensityView) Size() int {
	if v.field == nil {
		return 0
	}
	return v.field.size
}

// At reads the density at an in-range cell. Check Valid first.
func (v DensityView) At(x, y int) float32 {
	return v.field.Scalar(x, y)
}

// Fill decodes the whole field row by row into dst, which needs room for
// Size()² values.
func (v DensityView) Fill(dst []float32) error {
	if !v.Valid() {
		return ErrStaleView
	}
	n := v.field.size
	if len(dst) < n*n {
		return fmt.Errorf("density buffer holds %d values, need %d", len(dst), n*n)
	}
	for i := 0; i < n*n; i++ {
		dst[i] = fromHalf(v.field.data[i*channels])
	}
	return nil
}
