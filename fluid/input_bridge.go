package fluid

// PointerEvent is one raw pointer sample in window coordinates.
type PointerEvent struct {
	X, Y    float64
	Pressed bool
}

// InputBridge turns pointer samples into per-frame forcing descriptors. The
// last known grid position is the only state it carries between frames.
type InputBridge struct {
	scaleX, scaleY float64
	last           Vec2
	hasLast        bool
}

// NewInputBridge maps window coordinates to grid space by the given factors.
func NewInputBridge(scaleX, scaleY float64) *InputBridge {
	return &InputBridge{scaleX: scaleX, scaleY: scaleY}
}

// Sample converts ev into this frame's forcing. A nil event means nothing
// happened since the last frame: forcing is inactive with zero delta and the
// previous position is kept.
func (b *InputBridge) Sample(ev *PointerEvent) ForcingDescriptor {
	if ev == nil {
		return ForcingDescriptor{Position: b.last}
	}
	pos := Vec2{X: float32(ev.X * b.scaleX), Y: float32(ev.Y * b.scaleY)}
	var delta Vec2
	if b.hasLast {
		delta = Vec2{X: pos.X - b.last.X, Y: pos.Y - b.last.Y}
	}
	b.last = pos
	b.hasLast = true
	if !ev.Pressed {
		return ForcingDescriptor{Position: pos}
	}
	return ForcingDescriptor{Active: true, Position: pos, Delta: delta}
}

// Position returns the last known grid-space pointer position.
func (b *InputBridge) Position() Vec2 { return b.last }
