package models

// RoundEntry is one player's result for a single round
type RoundEntry struct {
	// Score is the points taken this round, never negative
	Score int `json:"score"`

	// IsDutch is true when this player called Dutch this round
	IsDutch bool `json:"isDutch"`
}

// RoundRecord is the per-round snapshot across all players
type RoundRecord struct {
	// Scores is index-aligned with Game.Players
	Scores []int `json:"scores"`

	// DutchPlayerID is the player who called Dutch, empty when nobody did
	DutchPlayerID string `json:"dutchPlayerId,omitempty"`
}
