package fluid

import (
	"errors"
	"testing"
)

func TestDensityViewLifetime(t *testing.T) {
	cfg := testConfig(4, 0)
	p := newTestPipeline(t, cfg)
	pulse := cfg.Params(ForcingDescriptor{Active: true, Position: Vec2{X: 2, Y: 1}})
	if err := p.Step(pulse); err != nil {
		t.Fatalf("Step: %v", err)
	}

	view := p.Density()
	if !view.Valid() || view.Size() != 4 {
		t.Fatalf("fresh view: valid=%v size=%d", view.Valid(), view.Size())
	}
	buf := make([]float32, 16)
	if err := view.Fill(buf); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if buf[1*4+2] != 1 || view.At(2, 1) != 1 {
		t.Errorf("pulse centre reads %g / %g, want 1", buf[1*4+2], view.At(2, 1))
	}
	if err := view.Fill(make([]float32, 3)); err == nil {
		t.Errorf("Fill accepted a short buffer")
	}

	if err := p.Step(cfg.Params(ForcingDescriptor{})); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if view.Valid() {
		t.Errorf("view still valid after the next frame")
	}
	if err := view.Fill(buf); !errors.Is(err, ErrStaleView) {
		t.Errorf("Fill on stale view = %v, want ErrStaleView", err)
	}
	if !p.Density().Valid() {
		t.Errorf("new view is not valid")
	}
}

func TestZeroDensityView(t *testing.T) {
	var v DensityView
	if v.Valid() || v.Size() != 0 {
		t.Errorf("zero view: valid=%v size=%d", v.Valid(), v.Size())
	}
	if err := v.Fill(nil); !errors.Is(err, ErrStaleView) {
		t.Errorf("Fill on zero view = %v", err)
	}
}
