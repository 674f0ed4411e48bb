package ledger

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/dutch/internal/models"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

// applyRound returns a copy of game with one more round
func applyRound(game *models.Game, scores []int, dutchPlayerID string) (*models.Game, error) {
	if len(scores) != len(game.Players) {
		return nil, fmt.Errorf("%w: got %d scores for %d players", ErrValidation, len(scores), len(game.Players))
	}

	for i, score := range scores {
		if score < 0 {
			return nil, fmt.Errorf("%w: score %d for player %s is negative", ErrValidation, score, game.Players[i].ID)
		}
	}

	if dutchPlayerID != "" && game.PlayerIndex(dutchPlayerID) < 0 {
		return nil, fmt.Errorf("%w: dutch caller %q is not in the game", ErrValidation, dutchPlayerID)
	}

	next := game.Clone()
	for i, p := range next.Players {
		p.Rounds = append(p.Rounds, models.RoundEntry{
			Score:   scores[i],
			IsDutch: p.ID == dutchPlayerID,
		})
	}
	next.RoundHistory = append(next.RoundHistory, &models.RoundRecord{
		Scores:        append([]int{}, scores...),
		DutchPlayerID: dutchPlayerID,
	})
	next.Recompute()

	return next, nil
}

// undoRound returns a copy of game without its latest round
func undoRound(game *models.Game) (*models.Game, *models.RoundRecord, error) {
	if game.RoundCount() == 0 {
		return nil, nil, ErrEmptyHistory
	}

	next := game.Clone()
	last := len(next.RoundHistory) - 1
	removed := next.RoundHistory[last]

	next.RoundHistory = next.RoundHistory[:last]
	for _, p := range next.Players {
		p.Rounds = p.Rounds[:len(p.Rounds)-1]
	}
	next.Recompute()

	return next, removed, nil
}

// summarize builds the archive entry for a game ending at endedAt
func summarize(game *models.Game, stats *statistics.Output, endedAt time.Time) *models.ArchivedGame {
	summary := &models.ArchivedGame{
		ID:           game.ID,
		Players:      make([]*models.ArchivedPlayer, 0, len(game.Players)),
		RoundsPlayed: game.RoundCount(),
		ScoreLimit:   game.ScoreLimit,
		StartedAt:    game.GameStartTime,
		EndedAt:      endedAt,
	}

	for _, standing := range stats.Standings {
		idx := game.PlayerIndex(standing.PlayerID)
		summary.Players = append(summary.Players, &models.ArchivedPlayer{
			ID:         standing.PlayerID,
			Name:       standing.PlayerName,
			TotalScore: standing.TotalScore,
			Rank:       standing.Rank,
			DutchCount: stats.Players[idx].DutchCount,
		})
	}

	if len(summary.Players) > 0 {
		summary.WinnerID = summary.Players[0].ID
		summary.WinnerName = summary.Players[0].Name
	}

	return summary
}
