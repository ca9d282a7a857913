package loop

import (
	"sync"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// InputBuffer collects input between ticks. Producers (keyboard, SSH
// session) write to it from their own goroutines; the loop drains it once
// per tick.
type InputBuffer struct {
	mu    sync.Mutex
	frame core.InputFrame
}

// NewInputBuffer returns an empty buffer.
func NewInputBuffer() *InputBuffer {
	return &InputBuffer{frame: core.NewInputFrame()}
}

// Press records an action.
func (b *InputBuffer) Press(a core.Action) {
	b.mu.Lock()
	b.frame.Set(a)
	b.mu.Unlock()
}

// Type records a typed character.
func (b *InputBuffer) Type(r rune) {
	b.mu.Lock()
	b.frame.Type(r)
	b.mu.Unlock()
}

// Choose records a digit choice; the latest one wins.
func (b *InputBuffer) Choose(n int) {
	b.mu.Lock()
	b.frame.Choice = n
	b.mu.Unlock()
}

// Click records a pointer click; the latest one wins.
func (b *InputBuffer) Click(x, y int) {
	b.mu.Lock()
	b.frame.Click(x, y)
	b.mu.Unlock()
}

// Merge folds a whole frame into the buffer.
func (b *InputBuffer) Merge(f core.InputFrame) {
	b.mu.Lock()
	b.frame.Merge(f)
	b.mu.Unlock()
}

// Drain returns everything collected since the last Drain and empties the
// buffer. Opposite directions pressed in the same tick cancel out.
func (b *InputBuffer) Drain() core.InputFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.frame.Clone()
	b.frame.Clear()

	if out.Has(core.ActionLeft) && out.Has(core.ActionRight) {
		delete(out.Actions, core.ActionLeft)
		delete(out.Actions, core.ActionRight)
	}
	if out.Has(core.ActionUp) && out.Has(core.ActionDown) {
		delete(out.Actions, core.ActionUp)
		delete(out.Actions, core.ActionDown)
	}
	return out
}
