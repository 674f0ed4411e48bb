package api

import (
	"github.com/KirkDiggler/dutch/internal/models"
	"github.com/KirkDiggler/dutch/internal/services/messaging"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

type createGameRequest struct {
	Players    []string `json:"players"`
	ScoreLimit int      `json:"scoreLimit,omitempty"`
}

type addRoundRequest struct {
	Scores        []int  `json:"scores"`
	DutchPlayerID string `json:"dutchPlayerId,omitempty"`
}

type continueGameRequest struct {
	AdditionalLimit int `json:"additionalLimit"`
}

type notice struct {
	Title   string                `json:"title,omitempty"`
	Message string                `json:"message"`
	Tone    messaging.MessageTone `json:"tone,omitempty"`
}

// gameView is the response body for every operation returning the game
type gameView struct {
	Game             *models.Game               `json:"game"`
	PlayerStatistics []*models.PlayerStatistics `json:"playerStatistics"`
	GameStatistics   *models.GameStatistics     `json:"gameStatistics"`
	Standings        []*models.Standing         `json:"standings"`
	Persisted        bool                       `json:"persisted"`
	RoundWinnerID    string                     `json:"roundWinnerId,omitempty"`
	Notice           *notice                    `json:"notice,omitempty"`
}

type activeView struct {
	Active bool `json:"active"`
}

type resetView struct {
	Archived  bool    `json:"archived"`
	Persisted bool    `json:"persisted"`
	Notice    *notice `json:"notice,omitempty"`
}

type historyView struct {
	Games []*models.ArchivedGame `json:"games"`
}

type errorView struct {
	Error  string  `json:"error"`
	Notice *notice `json:"notice,omitempty"`
}

func newGameView(game *models.Game, stats *statistics.Output, persisted bool) *gameView {
	view := &gameView{
		Game:      game,
		Persisted: persisted,
	}
	if stats != nil {
		view.PlayerStatistics = stats.Players
		view.GameStatistics = stats.Game
		view.Standings = stats.Standings
	}
	return view
}
