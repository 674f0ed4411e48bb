package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/dutch/internal/repositories/history Repository

import (
	"context"
)

// Repository defines the interface for finished game archives
type Repository interface {
	// ArchiveGame stores the summary of an ended game
	ArchiveGame(ctx context.Context, input *ArchiveGameInput) error

	// ListGames returns archived games, most recently ended first
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// ClearHistory removes every archived game
	ClearHistory(ctx context.Context, input *ClearHistoryInput) error
}
