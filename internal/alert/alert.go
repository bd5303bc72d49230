// Package alert sounds the audible dungeon alert.
package alert

import (
	"fmt"
	"io"
	"sync"
)

// Sink fires an audible alert. Implementations must not block for long; the
// alert is fired from a buffered dispatcher handler.
type Sink interface {
	Alert() error
}

// Func adapts a function to Sink.
type Func func() error

// Alert calls f.
func (f Func) Alert() error { return f() }

// Nop is a Sink that does nothing.
type Nop struct{}

// Alert does nothing.
func (Nop) Alert() error { return nil }

// Bell rings the terminal bell by writing BEL to w.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Alert writes a single BEL character.
func (b *Bell) Alert() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.w.Write([]byte{'\a'}); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}
