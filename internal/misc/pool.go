package misc

import "sync"

// Resetter is implemented by values whose state can be cleared for reuse.
type Resetter interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool for Resetter values.
type Pool[T Resetter] struct {
	p sync.Pool
}

// NewPool creates a Pool that mints fresh values with newFn.
func NewPool[T Resetter](newFn func() T) *Pool[T] {
	pl := &Pool[T]{}
	pl.p.New = func() any {
		if newFn != nil {
			return newFn()
		}
		var zero T
		return zero
	}
	return pl
}

// Get retrieves a value from the pool.
func (pl *Pool[T]) Get() T {
	obj := pl.p.Get()
	if v, ok := obj.(T); ok {
		return v
	}
	var zero T
	return zero
}

// Put resets v and returns it to the pool.
func (pl *Pool[T]) Put(v T) {
	v.Reset()
	pl.p.Put(v)
}
