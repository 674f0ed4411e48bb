package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dutch/internal/repositories/game Repository

import (
	"context"
)

// Repository persists the single saved game of a device
type Repository interface {
	// SaveGame writes the game under the canonical key
	SaveGame(ctx context.Context, input *SaveGameInput) (*SaveGameOutput, error)

	// LoadGame reads the saved game, migrating a legacy save when needed.
	// Missing, unreadable and malformed data are reported through the
	// output status, never as an error.
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)

	// ClearGame removes the saved game and every legacy copy
	ClearGame(ctx context.Context, input *ClearGameInput) error
}
