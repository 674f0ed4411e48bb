package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/dutch/internal/models"
)

const (
	// canonicalKey holds the current save
	canonicalKey = "dutch:game:v2"
)

// legacyKeys are read in priority order when the canonical key is absent
var legacyKeys = []string{
	"dutch-game-state",
	"dutchGameState",
	"gameState",
}

// legacyGame is the v1 save: per-player score lists and the indexes of
// the rounds in which that player called Dutch.
type legacyGame struct {
	Players []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Scores      []int  `json:"scores"`
		DutchRounds []int  `json:"dutchRounds"`
	} `json:"players"`
	ScoreLimit int   `json:"scoreLimit"`
	StartedAt  int64 `json:"startedAt"`
}

func decodeLegacyGame(data []byte) (*models.Game, error) {
	var doc legacyGame
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: legacy: %v", ErrCorruptData, err)
	}

	if len(doc.Players) == 0 {
		return nil, fmt.Errorf("%w: legacy save has no players", ErrCorruptData)
	}
	if doc.StartedAt <= 0 {
		return nil, fmt.Errorf("%w: legacy save has no start time", ErrCorruptData)
	}

	rounds := len(doc.Players[0].Scores)
	limit := doc.ScoreLimit
	if limit == 0 {
		limit = models.DefaultScoreLimit
	}

	game := &models.Game{
		Players:       make([]*models.Player, len(doc.Players)),
		RoundHistory:  make([]*models.RoundRecord, rounds),
		ScoreLimit:    limit,
		GameStartTime: time.UnixMilli(doc.StartedAt).UTC(),
	}
	for r := range game.RoundHistory {
		game.RoundHistory[r] = &models.RoundRecord{Scores: make([]int, len(doc.Players))}
	}

	for i, lp := range doc.Players {
		if len(lp.Scores) != rounds {
			return nil, fmt.Errorf("%w: legacy player %d has %d scores, want %d", ErrCorruptData, i, len(lp.Scores), rounds)
		}

		id := strings.TrimSpace(lp.ID)
		if id == "" {
			id = fmt.Sprintf("player-%d", i+1)
		}

		player := &models.Player{
			ID:     id,
			Name:   models.NormalizePlayerName(lp.Name, i),
			Rounds: make([]models.RoundEntry, rounds),
		}
		for r, score := range lp.Scores {
			player.Rounds[r].Score = score
			game.RoundHistory[r].Scores[i] = score
		}
		for _, r := range lp.DutchRounds {
			if r < 0 || r >= rounds {
				return nil, fmt.Errorf("%w: legacy dutch round %d out of range", ErrCorruptData, r)
			}
			if game.RoundHistory[r].DutchPlayerID != "" {
				return nil, fmt.Errorf("%w: legacy round %d has two dutch callers", ErrCorruptData, r)
			}
			player.Rounds[r].IsDutch = true
			game.RoundHistory[r].DutchPlayerID = id
		}
		game.Players[i] = player
	}

	if err := validateGame(game); err != nil {
		return nil, err
	}
	return game, nil
}
