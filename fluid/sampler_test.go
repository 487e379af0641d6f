package fluid

import "testing"

func patternField(n int) *GridField {
	f := NewGridField(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f.Set(x, y, Texel{float32(x + 10*y), float32(x*x) - float32(y), 0, 0})
		}
	}
	return f
}

func TestSampleClampedOutOfRangeMatchesClampedPoint(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16} {
		f := patternField(n)
		hi := float32(n - 1)
		points := [][2]float32{
			{-1, -1}, {-100, 0.5}, {0.5, -3.25}, {hi + 0.5, 0},
			{hi + 7.75, hi + 7.75}, {1e6, -1e6}, {-0.001, hi + 0.001},
			{0.3, 0.6}, {hi / 2, hi / 3},
		}
		for _, pt := range points {
			cx, cy := clampCoord(pt[0], n), clampCoord(pt[1], n)
			got := SampleClamped(f, pt[0], pt[1])
			want := SampleClamped(f, cx, cy)
			if got != want {
				t.Errorf("n=%d sample(%g,%g) = %v, clamped sample(%g,%g) = %v",
					n, pt[0], pt[1], got, cx, cy, want)
			}
		}
	}
}

func TestSampleClampedRepeatsEdge(t *testing.T) {
	f := patternField(6)
	for y := 0; y < 6; y++ {
		if got, want := SampleClamped(f, -4, float32(y)), f.At(0, y); got != want {
			t.Errorf("left of row %d = %v, want %v", y, got, want)
		}
		if got, want := SampleClamped(f, 40, float32(y)), f.At(5, y); got != want {
			t.Errorf("right of row %d = %v, want %v", y, got, want)
		}
	}
	if got, want := ReadClamped(f, -3, 9), f.At(0, 5); got != want {
		t.Errorf("ReadClamped(-3,9) = %v, want %v", got, want)
	}
}

func TestSampleClampedBilinearWeights(t *testing.T) {
	f := NewGridField(2)
	f.SetScalar(0, 0, 0)
	f.SetScalar(1, 0, 1)
	f.SetScalar(0, 1, 2)
	f.SetScalar(1, 1, 3)
	cases := []struct {
		x, y, want float32
	}{
		{0, 0, 0},
		{1, 1, 3},
		{0.25, 0, 0.25},
		{0, 0.5, 1},
		{0.5, 0.5, 1.5},
		{0.75, 0.25, 1.25},
	}
	for _, c := range cases {
		if got := SampleClamped(f, c.x, c.y)[0]; got != c.want {
			t.Errorf("sample(%g,%g) = %g, want %g", c.x, c.y, got, c.want)
		}
		if got := sampleScalar(f, c.x, c.y); got != c.want {
			t.Errorf("sampleScalar(%g,%g) = %g, want %g", c.x, c.y, got, c.want)
		}
	}
}

func TestSampleIntegerPointIsExact(t *testing.T) {
	f := patternField(5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			vx, vy := sampleVector(f, float32(x), float32(y))
			wx, wy := f.Vector(x, y)
			if vx != wx || vy != wy {
				t.Errorf("sample at cell (%d,%d) = (%g,%g), want (%g,%g)", x, y, vx, vy, wx, wy)
			}
		}
	}
}

func TestClampCell(t *testing.T) {
	cases := []struct{ v, n, want int }{
		{-1, 4, 0}, {0, 4, 0}, {3, 4, 3}, {4, 4, 3}, {99, 1, 0},
	}
	for _, c := range cases {
		if got := ClampCell(c.v, c.n); got != c.want {
			t.Errorf("ClampCell(%d,%d) = %d, want %d", c.v, c.n, got, c.want)
		}
	}
}
