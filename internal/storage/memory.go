package storage

import "sync"

// MemoryBackend is an in-process Backend used by tests. FailNext, when set,
// makes the next Set call return that error once.
type MemoryBackend struct {
	mu       sync.Mutex
	data     map[string][]byte
	FailNext error
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Get returns the bytes stored under key, nil if absent
func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set replaces the bytes stored under key
func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return err
	}
	out := make([]byte, len(value))
	copy(out, value)
	m.data[key] = out
	return nil
}

// Delete removes key
func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close is a no-op
func (m *MemoryBackend) Close() error {
	return nil
}
