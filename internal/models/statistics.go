package models

// PlayerStatistics is derived from a player's rounds and never stored as source of truth
type PlayerStatistics struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`

	// AverageScore is the rounded mean round score, 0 without rounds
	AverageScore int `json:"averageScore"`

	// BestRound is the lowest round score, nil without rounds
	BestRound *int `json:"bestRound"`

	// WorstRound is the highest round score, nil without rounds
	WorstRound *int `json:"worstRound"`

	DutchCount int `json:"dutchCount"`

	// Rank is the 1-based position by ascending total score
	Rank int `json:"rank"`

	// RoundsWon counts rounds where this player alone had the lowest score
	RoundsWon int `json:"roundsWon"`

	// WinStreak is the number of trailing rounds at or under the good round threshold
	WinStreak int `json:"winStreak"`

	// ConsistencyScore is the population standard deviation over the recent window
	ConsistencyScore float64 `json:"consistencyScore"`

	// ImprovementRate is the previous round score minus the last one
	ImprovementRate int `json:"improvementRate"`
}

// GameStatistics aggregates across all players of a game
type GameStatistics struct {
	TotalRounds  int     `json:"totalRounds"`
	TotalPlayers int     `json:"totalPlayers"`
	AverageScore float64 `json:"averageScore"`

	// BestTotal and WorstTotal are the lowest and highest running totals
	BestTotal  int `json:"bestTotal"`
	WorstTotal int `json:"worstTotal"`

	TotalDutchCalls int `json:"totalDutchCalls"`

	// BestRound and WorstRound span every score in the history, nil without rounds
	BestRound  *int `json:"bestRound"`
	WorstRound *int `json:"worstRound"`
}

// Standing is one row of the ranked table
type Standing struct {
	Rank       int    `json:"rank"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TotalScore int    `json:"totalScore"`
}
