package pending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/viant/frames/internal/collection"
)

// ErrNotFound indicates an unknown or already settled pending id.
var ErrNotFound = errors.New("pending not found")

// ErrCancelled is the cancellation cause of a waiter whose pending was cancelled.
var ErrCancelled = errors.New("pending cancelled")

// Manager coordinates creation, completion and cancellation of typed pendings.
type Manager[T any] struct {
	Store   Store[T]
	Now     func() time.Time
	cancels *collection.SyncMap[string, context.CancelCauseFunc]
}

// NewManager creates a manager backed by store, or a MemoryStore when store is nil.
func NewManager[T any](store Store[T]) *Manager[T] {
	if store == nil {
		store = NewMemoryStore[T]()
	}
	return &Manager[T]{Store: store, Now: time.Now, cancels: collection.NewSyncMap[string, context.CancelCauseFunc]()}
}

// Create stores a new pending and returns a context that is cancelled when the
// pending is cancelled. The caller must Complete or Cancel the entry.
func (m *Manager[T]) Create(ctx context.Context, spec Spec[T]) (context.Context, Pending[T], error) {
	p := Pending[T]{
		ID:        uuid.NewString(),
		Namespace: spec.Namespace,
		Kind:      spec.Kind,
		Resource:  spec.Resource,
		CreatedAt: m.Now(),
		Data:      spec.Data,
	}
	if err := m.Store.Put(ctx, p); err != nil {
		return ctx, p, err
	}
	waitCtx, cancel := context.WithCancelCause(ctx)
	m.cancels.Put(p.ID, cancel)
	return waitCtx, p, nil
}

// Complete removes and returns the pending entry for the given id.
func (m *Manager[T]) Complete(ctx context.Context, id string) (Pending[T], error) {
	p, ok, err := m.Store.Complete(ctx, id)
	if cancel, has := m.cancels.Take(id); has {
		cancel(nil)
	}
	if err != nil {
		return p, err
	}
	if !ok {
		return p, ErrNotFound
	}
	return p, nil
}

// Cancel removes the entry and aborts its waiter.
func (m *Manager[T]) Cancel(ctx context.Context, id string) (Pending[T], error) {
	p, ok, err := m.Store.Cancel(ctx, id)
	if cancel, has := m.cancels.Take(id); has {
		cancel(ErrCancelled)
	}
	if err != nil {
		return p, err
	}
	if !ok {
		return p, ErrNotFound
	}
	return p, nil
}

// List returns entries of a namespace.
func (m *Manager[T]) List(ctx context.Context, namespace string) ([]Pending[T], error) {
	return m.Store.ListNamespace(ctx, namespace)
}

// CancelNamespace cancels every entry of a namespace.
func (m *Manager[T]) CancelNamespace(ctx context.Context, namespace string) ([]string, error) {
	ids, err := m.Store.ClearNamespace(ctx, namespace)
	for _, id := range ids {
		if cancel, has := m.cancels.Take(id); has {
			cancel(ErrCancelled)
		}
	}
	return ids, err
}
