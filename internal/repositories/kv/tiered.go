package kv

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ResolveFunc picks the value to serve when both tiers hold key
type ResolveFunc func(key string, primary, fallback []byte) []byte

// TieredConfig holds configuration for a primary store backed by a fallback
type TieredConfig struct {
	// Primary is tried first for every operation
	Primary Store

	// Fallback takes over whenever Primary fails
	Fallback Store

	// Resolve chooses between the tiers when both hold a key, optional.
	// Without it the fallback value wins.
	Resolve ResolveFunc

	Logger *zap.Logger
}

// tieredStore prefers the primary store and degrades to the fallback
// on any primary failure other than a missing key. A successful primary
// write clears the fallback copy, so a fallback value is newer than the
// primary one it sits beside.
type tieredStore struct {
	primary  Store
	fallback Store
	resolve  ResolveFunc
	logger   *zap.Logger
}

// NewTiered creates a store over a primary and a fallback tier
func NewTiered(cfg *TieredConfig) (*tieredStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Primary == nil {
		return nil, errors.New("primary store cannot be nil")
	}

	if cfg.Fallback == nil {
		return nil, errors.New("fallback store cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	resolve := cfg.Resolve
	if resolve == nil {
		resolve = preferFallback
	}

	return &tieredStore{
		primary:  cfg.Primary,
		fallback: cfg.Fallback,
		resolve:  resolve,
		logger:   logger,
	}, nil
}

func preferFallback(_ string, _, fallback []byte) []byte {
	return fallback
}

// Get reads both tiers. A value only one tier holds is returned as is;
// when both hold one the resolver decides.
func (t *tieredStore) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	key := keyOf(input)

	primaryOut, primaryErr := t.primary.Get(ctx, input)
	if primaryErr != nil && !errors.Is(primaryErr, ErrNotFound) {
		t.logger.Warn("primary store read failed, using fallback",
			zap.String("key", key),
			zap.Error(primaryErr),
		)
	}

	fallbackOut, fallbackErr := t.fallback.Get(ctx, input)
	if fallbackErr != nil && !errors.Is(fallbackErr, ErrNotFound) {
		t.logger.Warn("fallback store read failed",
			zap.String("key", key),
			zap.Error(fallbackErr),
		)
	}

	switch {
	case primaryErr == nil && fallbackErr == nil:
		return &GetOutput{Value: t.resolve(key, primaryOut.Value, fallbackOut.Value)}, nil
	case primaryErr == nil:
		return primaryOut, nil
	case fallbackErr == nil:
		return fallbackOut, nil
	case errors.Is(primaryErr, ErrNotFound) && errors.Is(fallbackErr, ErrNotFound):
		return nil, ErrNotFound
	}

	return nil, fmt.Errorf("all store tiers failed: %w", errors.Join(primaryErr, fallbackErr))
}

// Put writes to the primary and clears the fallback copy; the fallback
// takes the value only when the primary write fails.
func (t *tieredStore) Put(ctx context.Context, input *PutInput) error {
	err := t.primary.Put(ctx, input)
	if err == nil {
		if delErr := t.fallback.Delete(ctx, &DeleteInput{Key: input.Key}); delErr != nil {
			t.logger.Warn("failed to clear fallback copy",
				zap.String("key", input.Key),
				zap.Error(delErr),
			)
		}
		return nil
	}

	t.logger.Warn("primary store write failed, using fallback",
		zap.String("key", keyOfPut(input)),
		zap.Error(err),
	)

	if fbErr := t.fallback.Put(ctx, input); fbErr != nil {
		return fmt.Errorf("all store tiers failed: %w", errors.Join(err, fbErr))
	}
	return nil
}

// Delete removes the key from both tiers. Any tier failing is an error,
// since a surviving copy would be read back.
func (t *tieredStore) Delete(ctx context.Context, input *DeleteInput) error {
	primaryErr := t.primary.Delete(ctx, input)
	fallbackErr := t.fallback.Delete(ctx, input)

	switch {
	case primaryErr != nil && fallbackErr != nil:
		return fmt.Errorf("all store tiers failed: %w", errors.Join(primaryErr, fallbackErr))
	case primaryErr != nil:
		return fmt.Errorf("primary store delete failed: %w", primaryErr)
	case fallbackErr != nil:
		return fmt.Errorf("fallback store delete failed: %w", fallbackErr)
	}
	return nil
}

func keyOf(input *GetInput) string {
	if input == nil {
		return ""
	}
	return input.Key
}

func keyOfPut(input *PutInput) string {
	if input == nil {
		return ""
	}
	return input.Key
}
