package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/services/ledger"
	"github.com/KirkDiggler/dutch/internal/services/messaging"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// classify maps a ledger error to a status code and message kind
func classify(err error) (int, messaging.ErrorType) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest, messaging.ErrorTypeValidation
	case errors.Is(err, ledger.ErrEmptyHistory):
		return http.StatusConflict, messaging.ErrorTypeEmptyHistory
	case errors.Is(err, ledger.ErrNoActiveGame):
		return http.StatusNotFound, messaging.ErrorTypeNoActiveGame
	default:
		return http.StatusInternalServerError, ""
	}
}

// respondWithError writes err as JSON with a user-facing notice
func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status, errorType := classify(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}

	body := &errorView{Error: err.Error()}
	if msg, msgErr := h.messaging.GetErrorMessage(r.Context(), &messaging.GetErrorMessageInput{ErrorType: errorType}); msgErr == nil {
		body.Notice = &notice{Message: msg.Message, Tone: msg.Tone}
	}

	writeJSON(w, status, body)
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, &errorView{Error: message})
}
