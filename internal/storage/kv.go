// Package storage provides the durable key-value media the stores persist
// their snapshots into.
package storage

import (
	"errors"
	"sync"
)

// KV is a synchronous key-value medium. Get reports ok=false for a key that
// was never written.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

var ErrClosed = errors.New("storage closed")

// Memory is a process-local KV. Nothing survives a restart.
type Memory struct {
	mu     sync.Mutex
	items  map[string][]byte
	closed bool
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.items[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
