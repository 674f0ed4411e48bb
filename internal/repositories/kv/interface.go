package kv

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/KirkDiggler/dutch/internal/repositories/kv Store

import (
	"context"
)

// Store is a durable key-value backend
type Store interface {
	// Get reads the value stored under a key, ErrNotFound when absent
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Put writes a value under a key, replacing any previous value
	Put(ctx context.Context, input *PutInput) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, input *DeleteInput) error
}
