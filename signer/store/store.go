package store

import (
	"context"
	"sync"
	"time"
)

// Credential is a persisted signer key.
type Credential struct {
	Algorithm string    `json:"algorithm"`
	Subject   string    `json:"subject,omitempty"`
	Key       []byte    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a pluggable persistence layer for signer credentials.
type Store interface {
	Lookup(ctx context.Context, name string) (*Credential, bool, error)
	Put(ctx context.Context, name string, credential *Credential) error
	Delete(ctx context.Context, name string) error
}

type memoryStore struct {
	mu          sync.RWMutex
	credentials map[string]*Credential
}

func (m *memoryStore) Lookup(_ context.Context, name string) (*Credential, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	credential, ok := m.credentials[name]
	return credential, ok, nil
}

func (m *memoryStore) Put(_ context.Context, name string, credential *Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[name] = credential
	return nil
}

func (m *memoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.credentials, name)
	return nil
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{credentials: map[string]*Credential{}}
}
