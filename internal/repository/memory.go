package repository

import "sync"

// Memory is an in-memory RecordStore used by tests and by components that
// run without a database connection.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
	// FailWrites makes SaveRecord return ErrWriteFailed, simulating a full
	// or unavailable store.
	FailWrites bool
}

// ErrWriteFailed is returned by Memory when FailWrites is set.
var ErrWriteFailed = errWriteFailed{}

type errWriteFailed struct{}

func (errWriteFailed) Error() string { return "record store write failed" }

// NewMemory creates an empty in-memory record store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) LoadRecord(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (m *Memory) SaveRecord(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	m.records[key] = copied
	return nil
}
