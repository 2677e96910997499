package engine

import "sync"

// Fresh is a mutable cell read at call time, so long running operations see
// the latest value set by the host rather than the value at start.
type Fresh[T any] struct {
	mux   sync.RWMutex
	value T
}

// NewFresh creates a cell holding value.
func NewFresh[T any](value T) *Fresh[T] {
	return &Fresh[T]{value: value}
}

func (f *Fresh[T]) Get() T {
	f.mux.RLock()
	defer f.mux.RUnlock()
	return f.value
}

func (f *Fresh[T]) Set(value T) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.value = value
}
