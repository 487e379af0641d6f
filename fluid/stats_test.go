package fluid

import (
	"math"
	"testing"
)

func TestStatsAfterPulse(t *testing.T) {
	cfg := testConfig(4, 0)
	cfg.Timestep = 0
	p := newTestPipeline(t, cfg)
	params := cfg.Params(ForcingDescriptor{Active: true, Position: Vec2{X: 1, Y: 1}, Delta: Vec2{X: 1}})
	params.JacobiIterations = 0
	if err := p.Step(params); err != nil {
		t.Fatalf("Step: %v", err)
	}
	st := p.Stats()

	var want float64
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			d2 := float64((x-1)*(x-1) + (y-1)*(y-1))
			want += math.Exp(-d2 / (1 + falloffEpsilon))
		}
	}
	if st.Frame != 1 {
		t.Errorf("Frame = %d, want 1", st.Frame)
	}
	if math.Abs(st.DensitySum-want) > 1e-2 {
		t.Errorf("DensitySum = %g, want %g", st.DensitySum, want)
	}
	if st.DensityMax != 1 || st.MaxSpeed != 1 {
		t.Errorf("DensityMax/MaxSpeed = %g/%g, want 1/1", st.DensityMax, st.MaxSpeed)
	}
	if st.DivergenceL2 <= 0 {
		t.Errorf("a one-sided push should leave divergence, got %g", st.DivergenceL2)
	}
}
