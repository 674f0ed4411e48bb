package ledger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/common/clock"
	"github.com/KirkDiggler/dutch/internal/common/uuid"
	"github.com/KirkDiggler/dutch/internal/models"
	gameRepo "github.com/KirkDiggler/dutch/internal/repositories/game"
	historyRepo "github.com/KirkDiggler/dutch/internal/repositories/history"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

// service implements the Service interface
type service struct {
	defaultScoreLimit int
	maxPlayers        int
	gameRepo          gameRepo.Repository
	historyRepo       historyRepo.Repository
	stats             *statistics.Engine
	clock             clock.Clock
	uuidGenerator     uuid.UUID
	logger            *zap.Logger

	// mu guards the current game; saves run under it so they reach the
	// repository in mutation order
	mu       sync.Mutex
	game     *models.Game
	sequence uint64
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		defaultScoreLimit: models.DefaultScoreLimit,
		maxPlayers:        DefaultMaxPlayers,
		gameRepo:          cfg.GameRepo,
		historyRepo:       cfg.HistoryRepo,
		stats:             cfg.Statistics,
		clock:             cfg.Clock,
		uuidGenerator:     cfg.UUIDGenerator,
		logger:            cfg.Logger,
	}

	if cfg.DefaultScoreLimit > 0 {
		s.defaultScoreLimit = cfg.DefaultScoreLimit
	}
	if cfg.MaxPlayers > 0 {
		s.maxPlayers = cfg.MaxPlayers
	}
	if s.stats == nil {
		s.stats = statistics.New(nil)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	return s, nil
}

// LoadGame restores the saved game as the current game
func (s *service) LoadGame(ctx context.Context, input *LoadGameInput) (*LoadGameOutput, error) {
	out, err := s.gameRepo.LoadGame(ctx, &gameRepo.LoadGameInput{})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if out.Status != gameRepo.LoadStatusOK || out.Game == nil {
		return &LoadGameOutput{Status: out.Status}, nil
	}

	game := out.Game
	minted := game.ID == ""
	if minted {
		game.ID = s.uuidGenerator.NewUUID()
	}

	s.game = game
	if out.Sequence > s.sequence {
		s.sequence = out.Sequence
	}

	// Store the new id so the next start sees the same game
	if minted {
		s.save(ctx)
	}

	s.logger.Info("restored saved game",
		zap.String("game_id", game.ID),
		zap.Int("rounds", game.RoundCount()),
		zap.Bool("migrated", out.Migrated),
	)

	return &LoadGameOutput{
		Found:      true,
		Status:     out.Status,
		Game:       game.Clone(),
		Statistics: s.stats.Compute(game),
	}, nil
}

// CreateGame starts a fresh game, replacing any current one
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrValidation)
	}

	if len(input.PlayerNames) < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d players, got %d", ErrValidation, MinPlayers, len(input.PlayerNames))
	}

	if len(input.PlayerNames) > s.maxPlayers {
		return nil, fmt.Errorf("%w: at most %d players, got %d", ErrValidation, s.maxPlayers, len(input.PlayerNames))
	}

	if input.ScoreLimit < 0 {
		return nil, fmt.Errorf("%w: score limit cannot be negative", ErrValidation)
	}

	limit := s.defaultScoreLimit
	if input.ScoreLimit > 0 {
		limit = input.ScoreLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game := &models.Game{
		ID:            s.uuidGenerator.NewUUID(),
		Players:       make([]*models.Player, len(input.PlayerNames)),
		RoundHistory:  []*models.RoundRecord{},
		ScoreLimit:    limit,
		GameStartTime: s.clock.Now(),
	}
	for i, name := range input.PlayerNames {
		game.Players[i] = &models.Player{
			ID:     s.uuidGenerator.NewUUID(),
			Name:   models.NormalizePlayerName(name, i),
			Rounds: []models.RoundEntry{},
		}
	}
	game.Recompute()

	// A new game ends the previous one
	if s.game != nil {
		s.archive(ctx, s.game)
	}

	s.game = game
	persisted := s.save(ctx)

	return &CreateGameOutput{
		Game:       game.Clone(),
		Statistics: s.stats.Compute(game),
		Persisted:  persisted,
	}, nil
}

// GetGame returns the current game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, ErrNoActiveGame
	}

	return &GetGameOutput{
		Game:       s.game.Clone(),
		Statistics: s.stats.Compute(s.game),
	}, nil
}

// AddRound validates and appends a round. The current game is untouched
// when validation fails.
func (s *service) AddRound(ctx context.Context, input *AddRoundInput) (*AddRoundOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, ErrNoActiveGame
	}

	next, err := applyRound(s.game, input.Scores, input.DutchPlayerID)
	if err != nil {
		return nil, err
	}

	s.game = next
	persisted := s.save(ctx)

	output := &AddRoundOutput{
		Game:       next.Clone(),
		Statistics: s.stats.Compute(next),
		GameOver:   next.IsGameOver,
		Persisted:  persisted,
	}
	if winner, ok := statistics.RoundWinner(input.Scores); ok {
		output.RoundWinnerID = next.Players[winner].ID
	}

	return output, nil
}

// UndoLastRound removes the latest round from the history and every player
func (s *service) UndoLastRound(ctx context.Context, input *UndoLastRoundInput) (*UndoLastRoundOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, ErrNoActiveGame
	}

	next, removed, err := undoRound(s.game)
	if err != nil {
		return nil, err
	}

	s.game = next
	persisted := s.save(ctx)

	return &UndoLastRoundOutput{
		Game:       next.Clone(),
		Statistics: s.stats.Compute(next),
		Removed:    removed,
		Persisted:  persisted,
	}, nil
}

// ContinueGame raises the score limit
func (s *service) ContinueGame(ctx context.Context, input *ContinueGameInput) (*ContinueGameOutput, error) {
	if input == nil || input.AdditionalLimit <= 0 {
		return nil, fmt.Errorf("%w: additional limit must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return nil, ErrNoActiveGame
	}

	next := s.game.Clone()
	next.ScoreLimit += input.AdditionalLimit
	next.Recompute()

	s.game = next
	persisted := s.save(ctx)

	return &ContinueGameOutput{
		Game:       next.Clone(),
		Statistics: s.stats.Compute(next),
		Persisted:  persisted,
	}, nil
}

// ResetGame archives the current game if it has rounds and clears storage
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	output := &ResetGameOutput{Persisted: true}
	if s.game != nil {
		output.Archived = s.archive(ctx, s.game)
	}
	s.game = nil

	if err := s.gameRepo.ClearGame(ctx, &gameRepo.ClearGameInput{}); err != nil {
		s.logger.Warn("failed to clear saved game", zap.Error(err))
		output.Persisted = false
	}

	return output, nil
}

// HasActiveGame reports whether a game is in progress
func (s *service) HasActiveGame(ctx context.Context, input *HasActiveGameInput) (*HasActiveGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &HasActiveGameOutput{
		Active: s.game != nil && !s.game.IsGameOver,
	}, nil
}

// ListHistory returns archived games
func (s *service) ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	if s.historyRepo == nil {
		return &ListHistoryOutput{Games: []*models.ArchivedGame{}}, nil
	}

	limit := 0
	if input != nil {
		limit = input.Limit
	}

	out, err := s.historyRepo.ListGames(ctx, &historyRepo.ListGamesInput{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	return &ListHistoryOutput{Games: out.Games}, nil
}

// ClearHistory removes all archived games
func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) error {
	if s.historyRepo == nil {
		return nil
	}

	if err := s.historyRepo.ClearHistory(ctx, &historyRepo.ClearHistoryInput{}); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// save writes the current game; a failure leaves the game in memory only.
// Callers hold s.mu.
func (s *service) save(ctx context.Context) bool {
	s.sequence++
	_, err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game:     s.game,
		Sequence: s.sequence,
	})
	if err != nil {
		s.logger.Warn("failed to persist game, continuing in memory",
			zap.String("game_id", s.game.ID),
			zap.Uint64("sequence", s.sequence),
			zap.Error(err),
		)
		return false
	}
	return true
}

// archive stores a summary of a game that has at least one round
func (s *service) archive(ctx context.Context, game *models.Game) bool {
	if s.historyRepo == nil || game.RoundCount() == 0 {
		return false
	}

	summary := summarize(game, s.stats.Compute(game), s.clock.Now())
	if err := s.historyRepo.ArchiveGame(ctx, &historyRepo.ArchiveGameInput{Game: summary}); err != nil {
		s.logger.Warn("failed to archive game",
			zap.String("game_id", game.ID),
			zap.Error(err),
		)
		return false
	}
	return true
}
