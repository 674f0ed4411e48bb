package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Player represents a participant in a game
type Player struct {
	// ID is stable for the lifetime of the game
	ID string `json:"id"`

	// Name is the display name of the player, not necessarily unique
	Name string `json:"name"`

	// Rounds holds the player's entry for every completed round, append-only
	Rounds []RoundEntry `json:"rounds"`

	// TotalScore is always the sum of Rounds[*].Score
	TotalScore int `json:"totalScore"`
}

// NormalizePlayerName trims name, substitutes "Player N" for an empty one
// (seat is zero-based) and cuts it to MaxPlayerNameLength characters.
func NormalizePlayerName(name string, seat int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Player %d", seat+1)
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxPlayerNameLength]))
	}
	return name
}
