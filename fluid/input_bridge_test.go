package fluid

import "testing"

func TestInputBridgeSample(t *testing.T) {
	b := NewInputBridge(0.5, 0.5)
	steps := []struct {
		name string
		ev   *PointerEvent
		want ForcingDescriptor
	}{
		{
			name: "first hover has no delta",
			ev:   &PointerEvent{X: 20, Y: 40},
			want: ForcingDescriptor{Position: Vec2{X: 10, Y: 20}},
		},
		{
			name: "press and drag",
			ev:   &PointerEvent{X: 26, Y: 36, Pressed: true},
			want: ForcingDescriptor{Active: true, Position: Vec2{X: 13, Y: 18}, Delta: Vec2{X: 3, Y: -2}},
		},
		{
			name: "held still",
			ev:   &PointerEvent{X: 26, Y: 36, Pressed: true},
			want: ForcingDescriptor{Active: true, Position: Vec2{X: 13, Y: 18}},
		},
		{
			name: "no event keeps position",
			ev:   nil,
			want: ForcingDescriptor{Position: Vec2{X: 13, Y: 18}},
		},
		{
			name: "release",
			ev:   &PointerEvent{X: 30, Y: 36},
			want: ForcingDescriptor{Position: Vec2{X: 15, Y: 18}},
		},
	}
	for _, s := range steps {
		if got := b.Sample(s.ev); got != s.want {
			t.Errorf("%s: Sample = %+v, want %+v", s.name, got, s.want)
		}
	}
	if got := b.Position(); got != (Vec2{X: 15, Y: 18}) {
		t.Errorf("Position = %+v", got)
	}
}

func TestInputBridgeFeedsParams(t *testing.T) {
	b := NewInputBridge(1, 1)
	b.Sample(&PointerEvent{X: 4, Y: 4})
	cfg := DefaultConfig()
	p := cfg.Params(b.Sample(&PointerEvent{X: 5, Y: 2, Pressed: true}))
	if !p.PointerActive || p.PointerPosition != (Vec2{X: 5, Y: 2}) || p.PointerDelta != (Vec2{X: 1, Y: -2}) {
		t.Errorf("Params = %+v", p)
	}
	if p.Forcing() != (ForcingDescriptor{Active: true, Position: Vec2{X: 5, Y: 2}, Delta: Vec2{X: 1, Y: -2}}) {
		t.Errorf("Forcing = %+v", p.Forcing())
	}
}
