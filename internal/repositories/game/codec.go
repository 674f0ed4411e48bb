package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/dutch/internal/models"
)

// formatVersion is written with every save
const formatVersion = 2

type savedGame struct {
	Version       int           `json:"version"`
	Sequence      uint64        `json:"sequence"`
	ID            string        `json:"id"`
	Players       []savedPlayer `json:"players"`
	RoundHistory  []savedRound  `json:"roundHistory"`
	ScoreLimit    int           `json:"scoreLimit"`
	GameStartTime string        `json:"gameStartTime"`
	IsGameOver    bool          `json:"isGameOver"`
}

type savedPlayer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	TotalScore int          `json:"totalScore"`
	Rounds     []savedEntry `json:"rounds"`
}

type savedEntry struct {
	Score   int  `json:"score"`
	IsDutch bool `json:"isDutch"`
}

type savedRound struct {
	Scores        []int   `json:"scores"`
	DutchPlayerID *string `json:"dutchPlayerId"`
}

func encodeGame(game *models.Game, sequence uint64) ([]byte, error) {
	doc := savedGame{
		Version:       formatVersion,
		Sequence:      sequence,
		ID:            game.ID,
		Players:       make([]savedPlayer, len(game.Players)),
		RoundHistory:  make([]savedRound, len(game.RoundHistory)),
		ScoreLimit:    game.ScoreLimit,
		GameStartTime: game.GameStartTime.UTC().Format(time.RFC3339Nano),
		IsGameOver:    game.IsGameOver,
	}

	for i, p := range game.Players {
		entries := make([]savedEntry, len(p.Rounds))
		for j, r := range p.Rounds {
			entries[j] = savedEntry{Score: r.Score, IsDutch: r.IsDutch}
		}
		doc.Players[i] = savedPlayer{
			ID:         p.ID,
			Name:       p.Name,
			TotalScore: p.TotalScore,
			Rounds:     entries,
		}
	}

	for i, r := range game.RoundHistory {
		round := savedRound{Scores: append([]int{}, r.Scores...)}
		if r.DutchPlayerID != "" {
			id := r.DutchPlayerID
			round.DutchPlayerID = &id
		}
		doc.RoundHistory[i] = round
	}

	return json.Marshal(doc)
}

// decodeGame accepts the current format and the legacy v1 format
func decodeGame(data []byte) (*models.Game, uint64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	if _, ok := fields["roundHistory"]; !ok {
		game, err := decodeLegacyGame(data)
		return game, 0, err
	}

	var doc savedGame
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	if doc.Version != 0 && doc.Version != formatVersion {
		return nil, 0, fmt.Errorf("%w: unsupported version %d", ErrCorruptData, doc.Version)
	}

	started, err := time.Parse(time.RFC3339Nano, doc.GameStartTime)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: game start time: %v", ErrCorruptData, err)
	}

	game := &models.Game{
		ID:            doc.ID,
		Players:       make([]*models.Player, len(doc.Players)),
		RoundHistory:  make([]*models.RoundRecord, len(doc.RoundHistory)),
		ScoreLimit:    doc.ScoreLimit,
		GameStartTime: started.UTC(),
	}

	for i, p := range doc.Players {
		rounds := make([]models.RoundEntry, len(p.Rounds))
		for j, r := range p.Rounds {
			rounds[j] = models.RoundEntry{Score: r.Score, IsDutch: r.IsDutch}
		}
		game.Players[i] = &models.Player{
			ID:         p.ID,
			Name:       p.Name,
			Rounds:     rounds,
			TotalScore: p.TotalScore,
		}
	}

	for i, r := range doc.RoundHistory {
		record := &models.RoundRecord{Scores: append([]int{}, r.Scores...)}
		if r.DutchPlayerID != nil {
			record.DutchPlayerID = *r.DutchPlayerID
		}
		game.RoundHistory[i] = record
	}

	// Stored totals must already agree with the rounds
	stored := make([]int, len(game.Players))
	for i, p := range game.Players {
		stored[i] = p.TotalScore
	}
	if err := validateGame(game); err != nil {
		return nil, 0, err
	}
	for i, p := range game.Players {
		if p.TotalScore != stored[i] {
			return nil, 0, fmt.Errorf("%w: player %s total %d does not match rounds (%d)", ErrCorruptData, p.ID, stored[i], p.TotalScore)
		}
	}

	return game, doc.Sequence, nil
}

// validateGame checks the ledger invariants and recomputes derived fields
func validateGame(game *models.Game) error {
	if len(game.Players) < 2 {
		return fmt.Errorf("%w: %d players", ErrCorruptData, len(game.Players))
	}
	if game.ScoreLimit <= 0 {
		return fmt.Errorf("%w: score limit %d", ErrCorruptData, game.ScoreLimit)
	}

	seen := make(map[string]bool, len(game.Players))
	for _, p := range game.Players {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: missing or duplicate player id %q", ErrCorruptData, p.ID)
		}
		seen[p.ID] = true
		if len(p.Rounds) != len(game.RoundHistory) {
			return fmt.Errorf("%w: player %s has %d rounds, history has %d", ErrCorruptData, p.ID, len(p.Rounds), len(game.RoundHistory))
		}
	}

	for r, record := range game.RoundHistory {
		if len(record.Scores) != len(game.Players) {
			return fmt.Errorf("%w: round %d has %d scores", ErrCorruptData, r, len(record.Scores))
		}
		if record.DutchPlayerID != "" && !seen[record.DutchPlayerID] {
			return fmt.Errorf("%w: round %d dutch caller %q is not a player", ErrCorruptData, r, record.DutchPlayerID)
		}
		for i, p := range game.Players {
			entry := p.Rounds[r]
			if entry.Score < 0 || entry.Score != record.Scores[i] {
				return fmt.Errorf("%w: round %d score mismatch for player %s", ErrCorruptData, r, p.ID)
			}
			if entry.IsDutch != (record.DutchPlayerID == p.ID) {
				return fmt.Errorf("%w: round %d dutch flag mismatch for player %s", ErrCorruptData, r, p.ID)
			}
		}
	}

	game.Recompute()
	return nil
}

// NewerSave is a kv.ResolveFunc for tiered stores holding saved games.
// The copy with the higher sequence wins; a copy that fails to decode
// loses to one that decodes, and ties go to the primary.
func NewerSave(_ string, primary, fallback []byte) []byte {
	_, primarySeq, primaryErr := decodeGame(primary)
	_, fallbackSeq, fallbackErr := decodeGame(fallback)

	switch {
	case primaryErr != nil && fallbackErr == nil:
		return fallback
	case primaryErr == nil && fallbackErr == nil && fallbackSeq > primarySeq:
		return fallback
	}
	return primary
}
