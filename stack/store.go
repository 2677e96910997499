package stack

import (
	"log/slog"
	"sync"
)

// Listener observes every state produced by a dispatch.
type Listener func(state State)

// Store owns the interaction stack and is its only writer.
type Store struct {
	mux       sync.Mutex
	state     State
	reducer   *Reducer
	listeners map[int]Listener
	nextID    int
	logger    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(s *Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithInitialState seeds the store.
func WithInitialState(state State) StoreOption {
	return func(s *Store) {
		s.state = state.Clone()
	}
}

// NewStore creates a store driven by reducer.
func NewStore(reducer *Reducer, options ...StoreOption) *Store {
	ret := &Store{reducer: reducer, listeners: map[int]Listener{}, logger: slog.Default()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Dispatch applies action and returns the resulting state.
func (s *Store) Dispatch(action Action) State {
	s.mux.Lock()
	next := s.reducer.Reduce(s.state, action)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mux.Unlock()

	s.logger.Debug("frame stack transition",
		"action", string(action.Type),
		"item", action.Item.ID,
		"depth", len(next.Items),
		"initialized", next.Session.Initialized)
	snapshot := next.Clone()
	for _, listener := range listeners {
		listener(snapshot)
	}
	return snapshot
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state.Clone()
}

// Subscribe registers listener and returns a function removing it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mux.Lock()
	defer s.mux.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return func() {
		s.mux.Lock()
		defer s.mux.Unlock()
		delete(s.listeners, id)
	}
}
