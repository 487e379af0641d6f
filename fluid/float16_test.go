package fluid

import (
	"math"
	"testing"
)

func TestHalfRoundTripsEveryPattern(t *testing.T) {
	for i := 0; i <= 0xffff; i++ {
		h := uint16(i)
		if h&0x7c00 == 0x7c00 && h&0x03ff != 0 {
			continue // NaN payloads are canonicalised
		}
		if got := toHalf(fromHalf(h)); got != h {
			t.Fatalf("round trip of %#04x gave %#04x", h, got)
		}
	}
}

func TestToHalfKnownValues(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-2, 0xc000},
		{0.1, 0x2e66},
		{65504, 0x7bff},
		{65519, 0x7bff},
		{65520, 0x7c00},
		{float32(math.Inf(-1)), 0xfc00},
		{1.0 / (1 << 24), 0x0001},
		{1.0 / (1 << 25), 0x0000},
		{1.5 / (1 << 24), 0x0002},
		{1e-8, 0x0000},
	}
	for _, c := range cases {
		if got := toHalf(c.in); got != c.want {
			t.Errorf("toHalf(%g) = %#04x, want %#04x", c.in, got, c.want)
		}
	}
	if got := fromHalf(toHalf(float32(math.NaN()))); got == got {
		t.Errorf("NaN did not survive half storage, got %g", got)
	}
}

func TestQuantizeRelativeError(t *testing.T) {
	for v := float32(-1); v <= 1; v += 0.0137 {
		if v == 0 {
			continue
		}
		q := quantize(v)
		rel := math.Abs(float64(q-v)) / math.Abs(float64(v))
		if rel > 1.0/2048 {
			t.Errorf("quantize(%g) = %g, relative error %g", v, q, rel)
		}
	}
}
