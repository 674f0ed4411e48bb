package models

import (
	"time"
)

// ArchivedGame is the summary kept once a game has been ended
type ArchivedGame struct {
	// ID is the id of the game that was archived
	ID string `json:"id"`

	// Players in final rank order
	Players []*ArchivedPlayer `json:"players"`

	// WinnerID is the rank 1 player
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`

	RoundsPlayed int `json:"roundsPlayed"`
	ScoreLimit   int `json:"scoreLimit"`

	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// ArchivedPlayer is a player's final line in an archived game
type ArchivedPlayer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalScore int    `json:"totalScore"`
	Rank       int    `json:"rank"`
	DutchCount int    `json:"dutchCount"`
}
