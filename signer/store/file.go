package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// FileStore keeps one JSON document per credential under a base URL.
type FileStore struct {
	mu      sync.Mutex
	baseURL string
	fs      afs.Service
}

// NewFileStore creates a Store rooted at baseURL.
func NewFileStore(baseURL string) *FileStore {
	return &FileStore{baseURL: baseURL, fs: afs.New()}
}

func (f *FileStore) location(name string) string {
	return url.Join(f.baseURL, name+".json")
}

func (f *FileStore) Lookup(ctx context.Context, name string) (*Credential, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	URL := f.location(name)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, false, fmt.Errorf("failed to download credential %v: %w", name, err)
	}
	ret := &Credential{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, false, fmt.Errorf("failed to decode credential %v: %w", name, err)
	}
	return ret, true, nil
}

func (f *FileStore) Put(ctx context.Context, name string, credential *Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.MarshalIndent(credential, "", "  ")
	if err != nil {
		return err
	}
	return f.fs.Upload(ctx, f.location(name), 0o600, bytes.NewReader(data))
}

func (f *FileStore) Delete(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	URL := f.location(name)
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return err
	}
	return f.fs.Delete(ctx, URL)
}
