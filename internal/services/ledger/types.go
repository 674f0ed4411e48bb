package ledger

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/common/clock"
	"github.com/KirkDiggler/dutch/internal/common/uuid"
	"github.com/KirkDiggler/dutch/internal/models"
	gameRepo "github.com/KirkDiggler/dutch/internal/repositories/game"
	historyRepo "github.com/KirkDiggler/dutch/internal/repositories/history"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

const (
	// MinPlayers is the smallest table a game can start with
	MinPlayers = 2

	// DefaultMaxPlayers caps the table when no limit is configured
	DefaultMaxPlayers = 10
)

// Config holds configuration for the ledger service
type Config struct {
	// DefaultScoreLimit applies when CreateGame gets no limit, models.DefaultScoreLimit when zero
	DefaultScoreLimit int

	// MaxPlayers per game, DefaultMaxPlayers when zero
	MaxPlayers int

	// Repository dependencies
	GameRepo gameRepo.Repository

	// HistoryRepo is optional; without it ended games are not archived
	HistoryRepo historyRepo.Repository

	// Service dependencies
	Statistics    *statistics.Engine
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger
}

// LoadGameInput contains parameters for restoring the saved game
type LoadGameInput struct {
}

// LoadGameOutput contains the restored game
type LoadGameOutput struct {
	// Found is true when a saved game was restored
	Found bool

	// Status is the raw outcome of reading storage
	Status gameRepo.LoadStatus

	Game       *models.Game
	Statistics *statistics.Output
}

// CreateGameInput contains parameters for creating a game
type CreateGameInput struct {
	// PlayerNames in seating order
	PlayerNames []string

	// ScoreLimit overrides the configured default when positive
	ScoreLimit int
}

// CreateGameOutput contains the created game
type CreateGameOutput struct {
	Game       *models.Game
	Statistics *statistics.Output

	// Persisted is false when the save failed and the game lives only in memory
	Persisted bool
}

type GetGameInput struct {
}

type GetGameOutput struct {
	Game       *models.Game
	Statistics *statistics.Output
}

// AddRoundInput contains one round of scores
type AddRoundInput struct {
	// Scores are index-aligned with the players of the game
	Scores []int

	// DutchPlayerID is the player who called Dutch, optional
	DutchPlayerID string
}

// AddRoundOutput contains the game after the round
type AddRoundOutput struct {
	Game       *models.Game
	Statistics *statistics.Output

	// RoundWinnerID is the player with the unique lowest score, empty on a tie
	RoundWinnerID string

	// GameOver mirrors Game.IsGameOver after the round
	GameOver bool

	Persisted bool
}

type UndoLastRoundInput struct {
}

type UndoLastRoundOutput struct {
	Game       *models.Game
	Statistics *statistics.Output

	// Removed is the round that was taken back
	Removed *models.RoundRecord

	Persisted bool
}

// ContinueGameInput contains the amount to raise the score limit by
type ContinueGameInput struct {
	AdditionalLimit int
}

type ContinueGameOutput struct {
	Game       *models.Game
	Statistics *statistics.Output
	Persisted  bool
}

type ResetGameInput struct {
}

type ResetGameOutput struct {
	// Archived is true when the ended game was added to the history
	Archived bool

	// Persisted is false when the saved copy could not be removed
	Persisted bool
}

type HasActiveGameInput struct {
}

type HasActiveGameOutput struct {
	Active bool
}

type ListHistoryInput struct {
	Limit int
}

type ListHistoryOutput struct {
	Games []*models.ArchivedGame
}

type ClearHistoryInput struct {
}
