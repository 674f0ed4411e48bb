package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dutch/internal/models"
)

const (
	// Key prefixes for Redis
	archivedGameKeyPrefix = "history:game:"
	archiveIndexKey       = "history:games"
)

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// ArchiveGame stores the game and indexes it by end time
func (r *redisRepository) ArchiveGame(ctx context.Context, input *ArchiveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal archived game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, archivedGameKeyPrefix+input.Game.ID, gameJSON, 0)
	pipe.ZAdd(ctx, archiveIndexKey, redis.Z{
		Score:  float64(input.Game.EndedAt.UnixNano()),
		Member: input.Game.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

// ListGames returns archived games newest first
func (r *redisRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	gameIDs, err := r.client.ZRevRange(ctx, archiveIndexKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list archived game IDs: %w", err)
	}

	if len(gameIDs) == 0 {
		return &ListGamesOutput{
			Games: []*models.ArchivedGame{},
		}, nil
	}

	// Fetch all games in one round trip
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(gameIDs))
	for i, gameID := range gameIDs {
		commands[i] = pipe.Get(ctx, archivedGameKeyPrefix+gameID)
	}

	// A missing game surfaces as redis.Nil on its own command
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get archived games: %w", err)
	}

	games := make([]*models.ArchivedGame, 0, len(gameIDs))
	for i, cmd := range commands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Index entry without a game
				continue
			}
			return nil, fmt.Errorf("failed to get archived game %s: %w", gameIDs[i], err)
		}

		var game models.ArchivedGame
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal archived game %s: %w", gameIDs[i], err)
		}

		games = append(games, &game)
	}

	return &ListGamesOutput{
		Games: games,
	}, nil
}

// ClearHistory removes every archived game and the index
func (r *redisRepository) ClearHistory(ctx context.Context, input *ClearHistoryInput) error {
	gameIDs, err := r.client.ZRange(ctx, archiveIndexKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list archived game IDs: %w", err)
	}

	keys := make([]string, 0, len(gameIDs)+1)
	for _, gameID := range gameIDs {
		keys = append(keys, archivedGameKeyPrefix+gameID)
	}
	keys = append(keys, archiveIndexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}
