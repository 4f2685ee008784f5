package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	prefix string
	values map[string][]byte
}

// NewMemoryStore returns a process-local Store. Values are kept JSON encoded so
// reads never alias the caller's slices or maps.
func NewMemoryStore(prefix string) Store {
	return &memoryStore{
		prefix: prefix,
		values: map[string][]byte{},
	}
}

func (m *memoryStore) Get(_ context.Context, key string, value any) error {
	m.mu.RLock()
	raw, ok := m.values[m.prefix+key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	if str, isStr := value.(*string); isStr {
		*str = string(raw)

		return nil
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return &DecodeError{Key: key, Err: err}
	}

	return nil
}

func (m *memoryStore) Set(_ context.Context, key string, value any) error {
	var raw []byte

	switch v := value.(type) {
	case string:
		raw = []byte(v)
	default:
		var err error

		raw, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal store value: %w", err)
		}
	}

	m.mu.Lock()
	m.values[m.prefix+key] = raw
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, m.prefix+key)
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.values {
		if strings.HasPrefix(key, m.prefix) {
			delete(m.values, key)
		}
	}

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
