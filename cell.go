package weft

import "sync"

// cellState is the explicit three-state model of a scoped cache cell. A
// separate tag, rather than a sentinel value, is what lets a legitimately
// zero-valued result be told apart from an uninitialized cell.
type cellState uint8

const (
	cellEmpty cellState = iota
	cellInProgress
	cellDone
)

// Cell is the runtime caching contract emitted for scoped bindings: one
// cell per scoped binding per live component instance, guaranteeing
// at-most-once construction under concurrent first access.
//
// Get is the single atomic get-or-initialize operation. While a
// computation is in progress, other goroutines block until it completes.
// A computation participating in a legal deferred-dependency cycle can
// call Publish with its latest partial value; a Get arriving while the
// cell is in progress then returns that partial value instead of blocking,
// which is what keeps re-entrant access from deadlocking on itself.
//
// The zero Cell is ready to use.
type Cell[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state cellState

	value T

	hasPartial bool
	partial    T
}

// Get returns the cell's value, running init to produce it if the cell is
// empty. Exactly one successful init runs per cell; a failed init leaves
// the cell empty so a later Get retries.
func (c *Cell[T]) Get(init func() (T, error)) (T, error) {
	c.mu.Lock()
	for {
		switch c.state {
		case cellDone:
			v := c.value
			c.mu.Unlock()
			return v, nil

		case cellInProgress:
			if c.hasPartial {
				v := c.partial
				c.mu.Unlock()
				return v, nil
			}
			if c.cond == nil {
				c.cond = sync.NewCond(&c.mu)
			}
			c.cond.Wait()
			// Re-examine: the computation finished or failed.

		case cellEmpty:
			c.state = cellInProgress
			c.mu.Unlock()

			value, err := init()

			c.mu.Lock()
			if err != nil {
				c.state = cellEmpty
				c.hasPartial = false
				if c.cond != nil {
					c.cond.Broadcast()
				}
				c.mu.Unlock()
				var zero T
				return zero, err
			}
			c.value = value
			c.state = cellDone
			c.hasPartial = false
			if c.cond != nil {
				c.cond.Broadcast()
			}
			c.mu.Unlock()
			return value, nil
		}
	}
}

// Publish records a partial value while the cell's computation is in
// progress. Meant to be called from inside init when the binding is part
// of a deferred-dependency cycle, so re-entrant reads observe the latest
// published value.
func (c *Cell[T]) Publish(partial T) {
	c.mu.Lock()
	if c.state == cellInProgress {
		c.partial = partial
		c.hasPartial = true
		if c.cond != nil {
			c.cond.Broadcast()
		}
	}
	c.mu.Unlock()
}

// Peek returns the completed value without initializing. The second result
// is false while the cell is empty or in progress, even if the completed
// value would be the zero value of T.
func (c *Cell[T]) Peek() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != cellDone {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Done reports whether the cell holds a completed value.
func (c *Cell[T]) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == cellDone
}
