package storage

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	invoicingapp "github.com/faktura/backend/internal/application/invoicing"
	"github.com/faktura/backend/internal/domain/shared"
)

var _ invoicingapp.DocumentStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in process memory. It backs local
// development when no bucket is configured; presigned URLs point at BaseURL
// and are not served by anything.
type MemoryObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "http://localhost:9000/faktura",
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of data under key
func (m *MemoryObjectStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// Get returns a copy of the object under key
func (m *MemoryObjectStorage) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errKeyRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return append([]byte(nil), obj.data...), nil
}

// PresignUpload returns a fake upload URL
func (m *MemoryObjectStorage) PresignUpload(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return m.presign(key, expiresIn)
}

// PresignDownload returns a fake download URL
func (m *MemoryObjectStorage) PresignDownload(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return m.presign(key, expiresIn)
}

func (m *MemoryObjectStorage) presign(key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errKeyRequired
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn).UTC()
	q := url.Values{"expires": {expiresAt.Format(time.RFC3339)}}
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + key + "?" + q.Encode(), expiresAt, nil
}

// Exists reports whether key is stored
func (m *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errKeyRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Delete removes key; deleting a missing key succeeds
func (m *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errKeyRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Keys lists stored keys with the given prefix in lexical order
func (m *MemoryObjectStorage) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
