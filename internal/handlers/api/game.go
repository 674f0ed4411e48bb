package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/models"
	"github.com/KirkDiggler/dutch/internal/services/ledger"
	"github.com/KirkDiggler/dutch/internal/services/messaging"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledger.GetGame(r.Context(), &ledger.GetGameInput{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(out.Game, out.Statistics, true))
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	out, err := h.ledger.CreateGame(r.Context(), &ledger.CreateGameInput{
		PlayerNames: req.Players,
		ScoreLimit:  req.ScoreLimit,
	})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	view := newGameView(out.Game, out.Statistics, out.Persisted)
	if !out.Persisted {
		view.Notice = h.saveFailedNotice(r.Context())
	} else if msg, err := h.messaging.GetGameStartedMessage(r.Context(), &messaging.GetGameStartedMessageInput{
		PlayerCount: len(out.Game.Players),
		ScoreLimit:  out.Game.ScoreLimit,
	}); err == nil {
		view.Notice = &notice{Message: msg.Message, Tone: msg.Tone}
	}

	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) addRound(w http.ResponseWriter, r *http.Request) {
	var req addRoundRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	out, err := h.ledger.AddRound(r.Context(), &ledger.AddRoundInput{
		Scores:        req.Scores,
		DutchPlayerID: req.DutchPlayerID,
	})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	view := newGameView(out.Game, out.Statistics, out.Persisted)
	view.RoundWinnerID = out.RoundWinnerID

	switch {
	case !out.Persisted:
		view.Notice = h.saveFailedNotice(r.Context())
	case out.GameOver:
		view.Notice = h.gameOverNotice(r.Context(), out.Game, out.Statistics)
	default:
		view.Notice = h.roundNotice(r.Context(), out, req.DutchPlayerID)
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) undoLastRound(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledger.UndoLastRound(r.Context(), &ledger.UndoLastRoundInput{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	view := newGameView(out.Game, out.Statistics, out.Persisted)
	if !out.Persisted {
		view.Notice = h.saveFailedNotice(r.Context())
	} else if msg, err := h.messaging.GetUndoMessage(r.Context(), &messaging.GetUndoMessageInput{
		RoundNumber: out.Game.RoundCount() + 1,
	}); err == nil {
		view.Notice = &notice{Message: msg.Message}
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) continueGame(w http.ResponseWriter, r *http.Request) {
	var req continueGameRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	out, err := h.ledger.ContinueGame(r.Context(), &ledger.ContinueGameInput{AdditionalLimit: req.AdditionalLimit})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	view := newGameView(out.Game, out.Statistics, out.Persisted)
	if !out.Persisted {
		view.Notice = h.saveFailedNotice(r.Context())
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) resetGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledger.ResetGame(r.Context(), &ledger.ResetGameInput{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	view := &resetView{Archived: out.Archived, Persisted: out.Persisted}
	if !out.Persisted {
		view.Notice = h.saveFailedNotice(r.Context())
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) hasActiveGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.ledger.HasActiveGame(r.Context(), &ledger.HasActiveGameInput{})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &activeView{Active: out.Active})
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.badRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	out, err := h.ledger.ListHistory(r.Context(), &ledger.ListHistoryInput{Limit: limit})
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	games := out.Games
	if games == nil {
		games = []*models.ArchivedGame{}
	}
	writeJSON(w, http.StatusOK, &historyView{Games: games})
}

func (h *Handler) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ClearHistory(r.Context(), &ledger.ClearHistoryInput{}); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) saveFailedNotice(ctx context.Context) *notice {
	msg, err := h.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{ErrorType: messaging.ErrorTypeSaveFailed})
	if err != nil {
		h.logger.Warn("failed to build notice", zap.Error(err))
		return nil
	}
	return &notice{Message: msg.Message, Tone: msg.Tone}
}

func (h *Handler) roundNotice(ctx context.Context, out *ledger.AddRoundOutput, dutchPlayerID string) *notice {
	game := out.Game
	last := game.RoundHistory[len(game.RoundHistory)-1]

	input := &messaging.GetRoundResultMessageInput{RoundNumber: game.RoundCount()}
	if idx := game.PlayerIndex(out.RoundWinnerID); idx >= 0 {
		input.WinnerName = game.Players[idx].Name
		input.WinnerScore = last.Scores[idx]
	}
	if idx := game.PlayerIndex(dutchPlayerID); dutchPlayerID != "" && idx >= 0 {
		input.DutchCallerName = game.Players[idx].Name
		input.DutchCallerWon = dutchPlayerID == out.RoundWinnerID
	}

	msg, err := h.messaging.GetRoundResultMessage(ctx, input)
	if err != nil {
		h.logger.Warn("failed to build notice", zap.Error(err))
		return nil
	}
	return &notice{Title: msg.Title, Message: msg.Message, Tone: msg.Tone}
}

func (h *Handler) gameOverNotice(ctx context.Context, game *models.Game, stats *statistics.Output) *notice {
	if stats == nil || len(stats.Standings) == 0 {
		return nil
	}

	winner := stats.Standings[0]
	loser := stats.Standings[len(stats.Standings)-1]

	msg, err := h.messaging.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
		WinnerName:   winner.PlayerName,
		WinnerTotal:  winner.TotalScore,
		LoserName:    loser.PlayerName,
		LoserTotal:   loser.TotalScore,
		RoundsPlayed: game.RoundCount(),
	})
	if err != nil {
		h.logger.Warn("failed to build notice", zap.Error(err))
		return nil
	}
	return &notice{Title: msg.Title, Message: msg.Message, Tone: msg.Tone}
}
