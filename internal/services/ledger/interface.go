package ledger

import "context"

// Service owns the current game and is its only mutation surface
type Service interface {
	// LoadGame restores the saved game, if any, as the current game
	LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error)

	// CreateGame starts a fresh game from the setup player names
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// GetGame returns the current game and its statistics
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// AddRound appends one round of scores atomically
	AddRound(ctx context.Context, input *AddRoundInput) (*AddRoundOutput, error)

	// UndoLastRound removes the most recent round
	UndoLastRound(ctx context.Context, input *UndoLastRoundInput) (*UndoLastRoundOutput, error)

	// ContinueGame raises the score limit of the current game
	ContinueGame(ctx context.Context, input *ContinueGameInput) (*ContinueGameOutput, error)

	// ResetGame ends the current game and clears the saved copy
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// HasActiveGame reports whether a game is in progress
	HasActiveGame(ctx context.Context, input *HasActiveGameInput) (*HasActiveGameOutput, error)

	// ListHistory returns archived games, newest first
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)

	// ClearHistory removes all archived games
	ClearHistory(ctx context.Context, input *ClearHistoryInput) error
}
