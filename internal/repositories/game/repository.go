package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/models"
	"github.com/KirkDiggler/dutch/internal/repositories/kv"
)

// Config holds configuration for the game repository
type Config struct {
	// Store is the storage backend, usually a tiered store
	Store kv.Store

	// Logger receives warnings for storage failures and corrupt data
	Logger *zap.Logger
}

// repository implements the Repository interface over a key-value store
type repository struct {
	store  kv.Store
	logger *zap.Logger

	// mu serializes saves so lastSequence only moves forward
	mu           sync.Mutex
	lastSequence uint64
}

// New creates a game repository on top of a key-value store
func New(cfg *Config) (*repository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Store == nil {
		return nil, errors.New("store cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &repository{
		store:  cfg.Store,
		logger: logger,
	}, nil
}

// SaveGame writes the game under the canonical key
func (r *repository) SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error) {
	if input == nil || input.Game == nil {
		return nil, errors.New("input and game cannot be nil")
	}

	data, err := encodeGame(input.Game, input.Sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if input.Sequence != 0 && input.Sequence <= r.lastSequence {
		r.logger.Debug("skipping stale save",
			zap.Uint64("sequence", input.Sequence),
			zap.Uint64("last_sequence", r.lastSequence),
		)
		return &SaveGameOutput{Skipped: true}, nil
	}

	if err := r.store.Put(ctx, &kv.PutInput{Key: canonicalKey, Value: data}); err != nil {
		r.logger.Warn("failed to save game",
			zap.String("key", canonicalKey),
			zap.String("game_id", input.Game.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if input.Sequence > r.lastSequence {
		r.lastSequence = input.Sequence
	}

	return &SaveGameOutput{}, nil
}

// LoadGame reads the canonical key, then each legacy key in order
func (r *repository) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	data, found := r.read(ctx, canonicalKey)
	if found {
		game, sequence, err := decodeGame(data)
		if err != nil {
			r.logger.Warn("saved game is corrupt, ignoring it",
				zap.String("key", canonicalKey),
				zap.Error(err),
			)
			return &LoadGameOutput{Status: LoadStatusMalformed}, nil
		}

		r.observeSequence(sequence)
		return &LoadGameOutput{
			Status:   LoadStatusOK,
			Game:     game,
			Sequence: sequence,
		}, nil
	}

	status := LoadStatusAbsent
	for _, key := range legacyKeys {
		data, found := r.read(ctx, key)
		if !found {
			continue
		}

		game, _, err := decodeGame(data)
		if err != nil {
			r.logger.Warn("legacy saved game is corrupt, ignoring it",
				zap.String("key", key),
				zap.Error(err),
			)
			status = LoadStatusMalformed
			continue
		}

		r.migrate(ctx, key, game)
		return &LoadGameOutput{
			Status:   LoadStatusOK,
			Game:     game,
			Migrated: true,
		}, nil
	}

	return &LoadGameOutput{Status: status}, nil
}

// ClearGame removes the canonical key and all legacy keys
func (r *repository) ClearGame(ctx context.Context, input *ClearGameInput) error {
	var clearErr error
	for _, key := range append([]string{canonicalKey}, legacyKeys...) {
		if err := r.store.Delete(ctx, &kv.DeleteInput{Key: key}); err != nil {
			r.logger.Warn("failed to clear saved game",
				zap.String("key", key),
				zap.Error(err),
			)
			if key == canonicalKey {
				clearErr = fmt.Errorf("%w: %v", ErrPersistence, err)
			}
		}
	}
	return clearErr
}

// read returns the value under key; storage failures count as not found
func (r *repository) read(ctx context.Context, key string) ([]byte, bool) {
	out, err := r.store.Get(ctx, &kv.GetInput{Key: key})
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			r.logger.Warn("failed to read saved game",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return out.Value, true
}

// migrate re-saves a legacy game under the canonical key and drops the
// legacy key. The legacy key stays when the re-save fails so the next
// load can retry.
func (r *repository) migrate(ctx context.Context, legacyKey string, game *models.Game) {
	data, err := encodeGame(game, 0)
	if err != nil {
		r.logger.Warn("failed to encode migrated game", zap.Error(err))
		return
	}

	if err := r.store.Put(ctx, &kv.PutInput{Key: canonicalKey, Value: data}); err != nil {
		r.logger.Warn("failed to store migrated game",
			zap.String("legacy_key", legacyKey),
			zap.Error(err),
		)
		return
	}

	if err := r.store.Delete(ctx, &kv.DeleteInput{Key: legacyKey}); err != nil {
		r.logger.Warn("failed to delete legacy key",
			zap.String("legacy_key", legacyKey),
			zap.Error(err),
		)
	}

	r.logger.Info("migrated legacy saved game",
		zap.String("legacy_key", legacyKey),
		zap.Int("players", len(game.Players)),
		zap.Int("rounds", len(game.RoundHistory)),
	)
}

func (r *repository) observeSequence(sequence uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sequence > r.lastSequence {
		r.lastSequence = sequence
	}
}
