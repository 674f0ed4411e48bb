package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dutch/internal/models"
)

const validDoc = `{
	"version": 2,
	"players": [
		{"id": "a", "name": "A", "totalScore": 5, "rounds": [{"score": 5, "isDutch": true}]},
		{"id": "b", "name": "B", "totalScore": 7, "rounds": [{"score": 7, "isDutch": false}]}
	],
	"roundHistory": [{"scores": [5, 7], "dutchPlayerId": "a"}],
	"scoreLimit": 100,
	"gameStartTime": "2025-04-05T10:00:00Z",
	"isGameOver": false
}`

func TestDecodeValidDocument(t *testing.T) {
	game, _, err := decodeGame([]byte(validDoc))
	require.NoError(t, err)
	assert.Equal(t, 5, game.Players[0].TotalScore)
	assert.Equal(t, "a", game.RoundHistory[0].DutchPlayerID)
}

func TestDecodeRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "one player",
			doc: `{"players":[{"id":"a","rounds":[]}],"roundHistory":[],"scoreLimit":100,
				"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "total does not match rounds",
			doc: `{"players":[{"id":"a","totalScore":9,"rounds":[{"score":5}]},{"id":"b","totalScore":7,"rounds":[{"score":7}]}],
				"roundHistory":[{"scores":[5,7]}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "history and rounds disagree",
			doc: `{"players":[{"id":"a","totalScore":5,"rounds":[{"score":5}]},{"id":"b","totalScore":7,"rounds":[{"score":7}]}],
				"roundHistory":[{"scores":[5,8]}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "two dutch flags in a round",
			doc: `{"players":[{"id":"a","totalScore":5,"rounds":[{"score":5,"isDutch":true}]},{"id":"b","totalScore":7,"rounds":[{"score":7,"isDutch":true}]}],
				"roundHistory":[{"scores":[5,7],"dutchPlayerId":"a"}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "unknown dutch caller",
			doc: `{"players":[{"id":"a","totalScore":5,"rounds":[{"score":5}]},{"id":"b","totalScore":7,"rounds":[{"score":7}]}],
				"roundHistory":[{"scores":[5,7],"dutchPlayerId":"zed"}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "negative score",
			doc: `{"players":[{"id":"a","totalScore":-5,"rounds":[{"score":-5}]},{"id":"b","totalScore":7,"rounds":[{"score":7}]}],
				"roundHistory":[{"scores":[-5,7]}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "duplicate player id",
			doc: `{"players":[{"id":"a","rounds":[]},{"id":"a","rounds":[]}],"roundHistory":[],"scoreLimit":100,
				"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "bad start time",
			doc: `{"players":[{"id":"a","rounds":[]},{"id":"b","rounds":[]}],"roundHistory":[],"scoreLimit":100,
				"gameStartTime":"yesterday"}`,
		},
		{
			name: "unknown version",
			doc: `{"version":7,"players":[{"id":"a","rounds":[]},{"id":"b","rounds":[]}],"roundHistory":[],"scoreLimit":100,
				"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "zero score limit",
			doc: `{"players":[{"id":"a","rounds":[]},{"id":"b","rounds":[]}],"roundHistory":[],"scoreLimit":0,
				"gameStartTime":"2025-04-05T10:00:00Z"}`,
		},
		{
			name: "legacy uneven scores",
			doc:  `{"players":[{"name":"A","scores":[1,2]},{"name":"B","scores":[1]}],"startedAt":1743847200000}`,
		},
		{
			name: "legacy two dutch callers",
			doc:  `{"players":[{"name":"A","scores":[1],"dutchRounds":[0]},{"name":"B","scores":[1],"dutchRounds":[0]}],"startedAt":1743847200000}`,
		},
		{
			name: "legacy missing start",
			doc:  `{"players":[{"name":"A","scores":[1]},{"name":"B","scores":[1]}]}`,
		},
		{
			name: "not an object",
			doc:  `"hello"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := decodeGame([]byte(tc.doc))
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestDecodeIgnoresStoredGameOverFlag(t *testing.T) {
	// isGameOver is derived from totals and the limit
	doc := `{"players":[{"id":"a","totalScore":100,"rounds":[{"score":100}]},{"id":"b","totalScore":0,"rounds":[{"score":0}]}],
		"roundHistory":[{"scores":[100,0]}],"scoreLimit":100,"gameStartTime":"2025-04-05T10:00:00Z","isGameOver":false}`

	game, _, err := decodeGame([]byte(doc))
	require.NoError(t, err)
	assert.True(t, game.IsGameOver)
}

func TestNewerSavePicksHigherSequence(t *testing.T) {
	g := &models.Game{
		ID: "test-game-id",
		Players: []*models.Player{
			{ID: "a", Name: "Alice", Rounds: []models.RoundEntry{}},
			{ID: "b", Name: "Bob", Rounds: []models.RoundEntry{}},
		},
		RoundHistory:  []*models.RoundRecord{},
		ScoreLimit:    100,
		GameStartTime: time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC),
	}

	older, err := encodeGame(g, 3)
	require.NoError(t, err)
	newer, err := encodeGame(g, 4)
	require.NoError(t, err)
	corrupt := []byte(`{"roundHistory":`)

	assert.Equal(t, newer, NewerSave(canonicalKey, older, newer))
	assert.Equal(t, newer, NewerSave(canonicalKey, newer, older))
	assert.Equal(t, older, NewerSave(canonicalKey, older, older))
	assert.Equal(t, older, NewerSave(canonicalKey, corrupt, older))
	assert.Equal(t, older, NewerSave(canonicalKey, older, corrupt))
}
