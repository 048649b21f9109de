package blob

import (
	"context"
	"sync"
)

// Memory keeps the blob in process memory. Nothing survives a restart.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
