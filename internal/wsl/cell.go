package wsl

import (
	"sync/atomic"
)

const (
	stateUncomputed uint32 = iota
	stateComputing
	stateCommitted
)

// Cell holds a value computed at most once for the life of the process.
//
// The first caller of Get moves the cell from uncomputed to computing and runs
// compute. Every other caller, concurrent or later, blocks until the value is
// committed and then observes that same value. Nothing is ever recomputed.
type Cell[T any] struct {
	state atomic.Uint32
	done  chan struct{}
	value T
}

// NewCell returns an uncomputed cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{done: make(chan struct{})}
}

// Get returns the committed value, running compute first if nobody has yet.
//
// If compute panics the zero value is committed before the panic propagates,
// so waiters are released and later callers see the zero value.
func (c *Cell[T]) Get(compute func() T) T {
	if c.state.Load() == stateCommitted {
		return c.value
	}

	if c.state.CompareAndSwap(stateUncomputed, stateComputing) {
		committed := false
		defer func() {
			if !committed {
				var zero T
				c.value = zero
				c.state.Store(stateCommitted)
				close(c.done)
			}
		}()

		c.value = compute()
		c.state.Store(stateCommitted)
		committed = true
		close(c.done)
		return c.value
	}

	<-c.done
	return c.value
}

// Committed reports whether a value has been stored.
func (c *Cell[T]) Committed() bool {
	return c.state.Load() == stateCommitted
}
