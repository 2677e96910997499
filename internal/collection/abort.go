package collection

import (
	"context"
	"sync/atomic"
)

type abortHandle struct {
	id     uint64
	cancel context.CancelFunc
}

// Aborts keeps one cancellable context per logical source. Starting a new
// context for a source cancels the previous one.
type Aborts struct {
	handles *SyncMap[string, abortHandle]
	seq     atomic.Uint64
}

func NewAborts() *Aborts {
	return &Aborts{handles: NewSyncMap[string, abortHandle]()}
}

// Start derives a context for source, aborting any in-flight one. The returned
// release func cancels the context and forgets it unless it has been superseded.
func (a *Aborts) Start(ctx context.Context, source string) (context.Context, func()) {
	ret, cancel := context.WithCancel(ctx)
	handle := abortHandle{id: a.seq.Add(1), cancel: cancel}
	if prev, ok := a.handles.Swap(source, handle); ok {
		prev.cancel()
	}
	release := func() {
		cancel()
		a.handles.mux.Lock()
		if current, ok := a.handles.m[source]; ok && current.id == handle.id {
			delete(a.handles.m, source)
		}
		a.handles.mux.Unlock()
	}
	return ret, release
}

// Abort cancels the in-flight context of source.
func (a *Aborts) Abort(source string) bool {
	handle, ok := a.handles.Take(source)
	if ok {
		handle.cancel()
	}
	return ok
}

// AbortAll cancels every in-flight context.
func (a *Aborts) AbortAll() {
	a.handles.Range(func(source string, _ abortHandle) bool {
		a.Abort(source)
		return true
	})
}
