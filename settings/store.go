// Package settings persists the handful of scalar values the game remembers
// between runs, currently the edited floor offsets.
package settings

import (
	"errors"
	"fmt"
	"sync"
)

const (
	KeyFloorPositionX = "floorPositionX"
	KeyFloorPositionY = "floorPositionY"
)

var ErrClosed = errors.New("settings: store closed")

// Store is a string-keyed float store. Get reports ok=false for missing keys.
type Store interface {
	Get(key string) (float64, bool, error)
	Set(key string, v float64) error
	Close() error
}

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]float64
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]float64)}
}

func (m *MemoryStore) Get(key string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key string, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = v
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Default locations used by Open when no path is given.
const (
	DefaultYAMLPath  = "floorknight-settings.yaml"
	DefaultBadgerDir = "floorknight-settings"
)

// Open returns the store named by kind ("yaml", "badger" or "memory").
// An empty kind selects yaml.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", "yaml":
		if path == "" {
			path = DefaultYAMLPath
		}
		return NewYAMLStore(path)
	case "badger":
		if path == "" {
			path = DefaultBadgerDir
		}
		return NewBadgerStore(path)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("settings: unknown store kind %q", kind)
}
