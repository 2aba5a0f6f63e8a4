package store

import (
	"context"
	"sort"
	"sync"

	"github.com/dshills/graphgen-go/node"
)

// MemStore is an in-memory Store.
//
// Definitions live in a map guarded by a read-write mutex. Use it for
// testing, prototyping, and single-session tooling; contents are lost when
// the process exits.
type MemStore struct {
	mu   sync.RWMutex
	defs map[string]node.Definition
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{defs: make(map[string]node.Definition)}
}

// Save stores a copy of the definition under name.
func (m *MemStore) Save(_ context.Context, name string, def node.Definition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Copy the payload so later caller mutations cannot corrupt the store.
	data := make([]byte, len(def.Data))
	copy(data, def.Data)
	m.defs[name] = node.Definition{Kind: def.Kind, Data: data}
	return nil
}

// Load retrieves the definition saved under name.
func (m *MemStore) Load(_ context.Context, name string) (node.Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.defs[name]
	if !ok {
		return node.Definition{}, ErrNotFound
	}
	data := make([]byte, len(def.Data))
	copy(data, def.Data)
	return node.Definition{Kind: def.Kind, Data: data}, nil
}

// List returns all saved names in lexical order.
func (m *MemStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.defs))
	for name := range m.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the definition saved under name.
func (m *MemStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.defs[name]; !ok {
		return ErrNotFound
	}
	delete(m.defs, name)
	return nil
}
