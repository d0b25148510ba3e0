package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linyc/twmonitor/pkg/logger"
)

// TokenHandler persists the dashboard-supplied LINE token.
type TokenHandler struct {
	store  tokenStore
	logger *logger.Logger
}

type tokenStore interface {
	SetLineToken(ctx context.Context, token string) error
}

// NewTokenHandler creates the token endpoint handler.
func NewTokenHandler(store tokenStore, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		store:  store,
		logger: log.WithField("handler", "notify"),
	}
}

// SaveToken stores the LINE token in the key-value store.
// POST /api/notify/token with {"token": "..."}.
func (h *TokenHandler) SaveToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "Token is required",
		})
		return
	}

	if err := h.store.SetLineToken(r.Context(), body.Token); err != nil {
		h.logger.WithError(err).Error("Failed to save token")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to save token",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Token saved successfully",
	})
}
