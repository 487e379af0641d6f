package fluid

import "testing"

func TestGridFieldStartsZeroed(t *testing.T) {
	f := NewGridField(8)
	if f.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", f.Size())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if f.At(x, y) != (Texel{}) {
				t.Fatalf("cell (%d,%d) = %v, want zero", x, y, f.At(x, y))
			}
		}
	}
}

func TestGridFieldStoresHalfPrecision(t *testing.T) {
	f := NewGridField(3)
	f.SetScalar(1, 2, 0.1)
	if got, want := f.Scalar(1, 2), fromHalf(0x2e66); got != want {
		t.Errorf("Scalar = %g, want %g", got, want)
	}
	f.SetVector(2, 0, 1.5, -0.25)
	vx, vy := f.Vector(2, 0)
	if vx != 1.5 || vy != -0.25 {
		t.Errorf("Vector = (%g,%g), want (1.5,-0.25)", vx, vy)
	}
	f.Set(0, 0, Texel{1, 2, 3, 4})
	if got := f.At(0, 0); got != (Texel{1, 2, 3, 4}) {
		t.Errorf("At = %v", got)
	}
	if got := f.At(1, 0); got != (Texel{}) {
		t.Errorf("neighbouring cell changed to %v", got)
	}
}

func TestGridFieldClearRows(t *testing.T) {
	f := NewGridField(4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			f.SetScalar(x, y, 1)
		}
	}
	f.clearRows(1, 3)
	for y := 0; y < 4; y++ {
		want := float32(1)
		if y == 1 || y == 2 {
			want = 0
		}
		for x := 0; x < 4; x++ {
			if got := f.Scalar(x, y); got != want {
				t.Errorf("cell (%d,%d) = %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestDoubleBufferSwapAndCopy(t *testing.T) {
	b := NewDoubleBuffer(4)
	front := b.Front()
	b.Back().SetScalar(2, 2, 3)
	b.Swap()
	if b.Front().Scalar(2, 2) != 3 {
		t.Fatalf("front after swap = %g, want 3", b.Front().Scalar(2, 2))
	}
	if b.Back() != front {
		t.Fatalf("swap did not hand the old front to the back")
	}

	b.Back().SetScalar(0, 0, 7)
	held := b.Front()
	b.CommitCopy()
	if held != b.Front() || held.Scalar(0, 0) != 7 {
		t.Errorf("CommitCopy moved handles or lost data")
	}

	b.Clear()
	if b.Front().Scalar(2, 2) != 0 || b.Back().Scalar(0, 0) != 0 {
		t.Errorf("Clear left data behind")
	}
}
