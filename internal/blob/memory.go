package blob

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Storage for tests and local development.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, pathHint string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[pathHint] = cp
	return fmt.Sprintf("mem://%s", pathHint), nil
}

// Get returns a stored object, for assertions.
func (m *Memory) Get(pathHint string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[pathHint]
	return data, ok
}

// Len reports how many objects have been stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
