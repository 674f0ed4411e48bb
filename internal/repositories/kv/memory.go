package kv

import (
	"context"
	"errors"
	"sync"
)

// memoryStore keeps values for the lifetime of the process only
type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-process store
func NewMemory() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[input.Key]
	if !ok {
		return nil, ErrNotFound
	}
	return &GetOutput{Value: append([]byte(nil), value...)}, nil
}

func (m *memoryStore) Put(_ context.Context, input *PutInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[input.Key] = append([]byte(nil), input.Value...)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateKey(input.Key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, input.Key)
	return nil
}
