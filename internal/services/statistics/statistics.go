// Package statistics derives read-only standings and per-player metrics
// from a game ledger. Every function here is pure: the same game always
// yields the same result and the game is never modified.
package statistics

import (
	"math"
	"sort"

	"github.com/KirkDiggler/dutch/internal/models"
)

const (
	// DefaultWindow is the number of most recent rounds used for consistency
	DefaultWindow = 3

	// DefaultGoodRoundThreshold is the highest round score that still extends a streak
	DefaultGoodRoundThreshold = 15
)

// Config holds the tunable constants of the engine
type Config struct {
	// Window is the rolling window for consistency, DefaultWindow when zero
	Window int

	// GoodRoundThreshold bounds a streak round, DefaultGoodRoundThreshold when zero
	GoodRoundThreshold int
}

// Engine computes statistics with a fixed set of constants
type Engine struct {
	window    int
	threshold int
}

// Output is everything derived from one game state
type Output struct {
	// Players is index-aligned with Game.Players
	Players []*models.PlayerStatistics

	Game *models.GameStatistics

	// Standings lists players by rank
	Standings []*models.Standing
}

// New creates an engine, filling in defaults for unset values
func New(cfg *Config) *Engine {
	e := &Engine{
		window:    DefaultWindow,
		threshold: DefaultGoodRoundThreshold,
	}
	if cfg != nil {
		if cfg.Window > 0 {
			e.window = cfg.Window
		}
		if cfg.GoodRoundThreshold > 0 {
			e.threshold = cfg.GoodRoundThreshold
		}
	}
	return e
}

// Compute derives player statistics, aggregate statistics and standings
func (e *Engine) Compute(game *models.Game) *Output {
	if game == nil {
		return &Output{
			Players:   []*models.PlayerStatistics{},
			Game:      &models.GameStatistics{},
			Standings: []*models.Standing{},
		}
	}

	ranks := Ranks(game.Players)
	wins := make([]int, len(game.Players))
	for _, record := range game.RoundHistory {
		if winner, ok := RoundWinner(record.Scores); ok {
			wins[winner]++
		}
	}

	players := make([]*models.PlayerStatistics, len(game.Players))
	for i, p := range game.Players {
		stats := e.player(p)
		stats.Rank = ranks[i]
		stats.RoundsWon = wins[i]
		players[i] = stats
	}

	return &Output{
		Players:   players,
		Game:      aggregate(game, players),
		Standings: standings(game.Players, ranks),
	}
}

func (e *Engine) player(p *models.Player) *models.PlayerStatistics {
	stats := &models.PlayerStatistics{
		PlayerID:   p.ID,
		PlayerName: p.Name,
	}

	n := len(p.Rounds)
	if n == 0 {
		return stats
	}

	sum := 0
	best, worst := p.Rounds[0].Score, p.Rounds[0].Score
	for _, r := range p.Rounds {
		sum += r.Score
		best = min(best, r.Score)
		worst = max(worst, r.Score)
		if r.IsDutch {
			stats.DutchCount++
		}
	}

	stats.AverageScore = int(math.Round(float64(sum) / float64(n)))
	stats.BestRound = &best
	stats.WorstRound = &worst

	for i := n - 1; i >= 0 && p.Rounds[i].Score <= e.threshold; i-- {
		stats.WinStreak++
	}

	stats.ConsistencyScore = stdDev(p.Rounds[max(0, n-e.window):])

	if n >= 2 {
		stats.ImprovementRate = p.Rounds[n-2].Score - p.Rounds[n-1].Score
	}

	return stats
}

// stdDev is the population standard deviation of the round scores
func stdDev(rounds []models.RoundEntry) float64 {
	if len(rounds) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range rounds {
		mean += float64(r.Score)
	}
	mean /= float64(len(rounds))

	variance := 0.0
	for _, r := range rounds {
		d := float64(r.Score) - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(rounds)))
}

// Ranks returns the 1-based rank of each player by ascending total score.
// Ties keep seating order.
func Ranks(players []*models.Player) []int {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return players[order[a]].TotalScore < players[order[b]].TotalScore
	})

	ranks := make([]int, len(players))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

// RoundWinner returns the seat with the lowest score of a round.
// A shared lowest score has no winner.
func RoundWinner(scores []int) (int, bool) {
	if len(scores) == 0 {
		return -1, false
	}

	winner, tied := 0, false
	for i := 1; i < len(scores); i++ {
		switch {
		case scores[i] < scores[winner]:
			winner, tied = i, false
		case scores[i] == scores[winner]:
			tied = true
		}
	}
	if tied {
		return -1, false
	}
	return winner, true
}

func standings(players []*models.Player, ranks []int) []*models.Standing {
	out := make([]*models.Standing, len(players))
	for i, p := range players {
		out[ranks[i]-1] = &models.Standing{
			Rank:       ranks[i],
			PlayerID:   p.ID,
			PlayerName: p.Name,
			TotalScore: p.TotalScore,
		}
	}
	return out
}

func aggregate(game *models.Game, players []*models.PlayerStatistics) *models.GameStatistics {
	agg := &models.GameStatistics{
		TotalRounds:  len(game.RoundHistory),
		TotalPlayers: len(game.Players),
	}
	if len(game.Players) == 0 {
		return agg
	}

	agg.BestTotal = game.Players[0].TotalScore
	agg.WorstTotal = game.Players[0].TotalScore
	averages := 0
	for i, p := range game.Players {
		agg.BestTotal = min(agg.BestTotal, p.TotalScore)
		agg.WorstTotal = max(agg.WorstTotal, p.TotalScore)
		agg.TotalDutchCalls += players[i].DutchCount
		averages += players[i].AverageScore
	}
	agg.AverageScore = float64(averages) / float64(len(game.Players))

	for _, p := range game.Players {
		for _, r := range p.Rounds {
			if agg.BestRound == nil || r.Score < *agg.BestRound {
				best := r.Score
				agg.BestRound = &best
			}
			if agg.WorstRound == nil || r.Score > *agg.WorstRound {
				worst := r.Score
				agg.WorstRound = &worst
			}
		}
	}

	return agg
}
