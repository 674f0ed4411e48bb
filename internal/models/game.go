package models

import (
	"time"
)

const (
	// DefaultScoreLimit is the total score that ends a game unless configured otherwise
	DefaultScoreLimit = 100

	// MaxPlayerNameLength is the longest display name kept for a player, in characters
	MaxPlayerNameLength = 20
)

// Game is the score ledger for one game played on a single device
type Game struct {
	// ID is the opaque identifier of the game
	ID string `json:"id"`

	// Players in seating order, fixed once the game starts
	Players []*Player `json:"players"`

	// RoundHistory holds one record per completed round, index-aligned with Players
	RoundHistory []*RoundRecord `json:"roundHistory"`

	// ScoreLimit ends the game when any total reaches it
	ScoreLimit int `json:"scoreLimit"`

	// GameStartTime is set once when the game is created
	GameStartTime time.Time `json:"gameStartTime"`

	// IsGameOver is true while any player's total is at or above ScoreLimit
	IsGameOver bool `json:"isGameOver"`
}

// Recompute rebuilds every running total from the player rounds and
// re-derives IsGameOver from the current score limit.
func (g *Game) Recompute() {
	over := false
	for _, p := range g.Players {
		total := 0
		for _, r := range p.Rounds {
			total += r.Score
		}
		p.TotalScore = total
		if total >= g.ScoreLimit {
			over = true
		}
	}
	g.IsGameOver = over
}

// PlayerIndex returns the seat of the player with the given id, or -1
func (g *Game) PlayerIndex(playerID string) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// RoundCount is the number of completed rounds
func (g *Game) RoundCount() int {
	return len(g.RoundHistory)
}

// Clone returns a deep copy so callers can mutate it without touching g
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}

	c := &Game{
		ID:            g.ID,
		Players:       make([]*Player, len(g.Players)),
		RoundHistory:  make([]*RoundRecord, len(g.RoundHistory)),
		ScoreLimit:    g.ScoreLimit,
		GameStartTime: g.GameStartTime,
		IsGameOver:    g.IsGameOver,
	}
	for i, p := range g.Players {
		c.Players[i] = &Player{
			ID:         p.ID,
			Name:       p.Name,
			Rounds:     append([]RoundEntry{}, p.Rounds...),
			TotalScore: p.TotalScore,
		}
	}
	for i, r := range g.RoundHistory {
		c.RoundHistory[i] = &RoundRecord{
			Scores:        append([]int{}, r.Scores...),
			DutchPlayerID: r.DutchPlayerID,
		}
	}
	return c
}
