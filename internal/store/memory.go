package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process Store for tests and single-node development.
// Values round-trip through JSON so readers always get their own copy, the
// same isolation a real backend gives.
type Memory struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{data: map[string]json.RawMessage{}}
}

func memKey(namespace, key string) string {
	return namespace + "\x00" + key
}

func (m *Memory) Get(_ context.Context, namespace, key string, dest any) error {
	m.mu.RLock()
	raw, ok := m.data[memKey(namespace, key)]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s/%s: %w", namespace, key, ErrKeyNotFound)
	}
	return json.Unmarshal(raw, dest)
}

func (m *Memory) Set(_ context.Context, namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[memKey(namespace, key)] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetBatch(_ context.Context, entries []Entry) error {
	// Marshal everything before taking the lock so a failure writes nothing.
	raws := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		raw, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		raws[i] = raw
	}
	m.mu.Lock()
	for i, e := range entries {
		m.data[memKey(e.Namespace, e.Key)] = raws[i]
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	delete(m.data, memKey(namespace, key))
	m.mu.Unlock()
	return nil
}
