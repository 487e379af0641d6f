package fluid

// DoubleBuffer pairs two same-sized fields. Front holds the authoritative
// state at every pass boundary; passes that read neighbours write Back and
// then Swap.
type DoubleBuffer struct {
	front *GridField
	back  *GridField
}

// NewDoubleBuffer allocates a zeroed front/back pair.
func NewDoubleBuffer(size int) *DoubleBuffer {
	return &DoubleBuffer{
		front: NewGridField(size),
		back:  NewGridField(size),
	}
}

// Front returns the current state.
func (b *DoubleBuffer) Front() *GridField { return b.front }

// Back returns the scratch field the next pass writes into.
func (b *DoubleBuffer) Back() *GridField { return b.back }

// Swap hands ownership of the freshly written back field to the front.
func (b *DoubleBuffer) Swap() {
	b.front, b.back = b.back, b.front
}

// CommitCopy copies back into front without swapping handles, for callers
// that hold on to the front pointer.
func (b *DoubleBuffer) CommitCopy() {
	b.front.CopyFrom(b.back)
}

// Clear zeroes both halves.
func (b *DoubleBuffer) Clear() {
	b.front.Clear()
	b.back.Clear()
}
