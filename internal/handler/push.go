package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/superlista/internal/auth"
	"github.com/dukerupert/superlista/internal/push"
	"github.com/dukerupert/superlista/internal/store"
)

type PushHandler struct {
	tokens  *store.TokenStore
	service *push.Service
	logger  *slog.Logger
}

func NewPushHandler(ts *store.TokenStore, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{tokens: ts, service: svc, logger: logger}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// SaveToken handles PUT /api/push/token
func (h *PushHandler) SaveToken(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req tokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, err := push.ParseToken(req.Token); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error(), "field": "token"})
		return
	}

	if err := h.tokens.Upsert(r.Context(), userID, req.Token); err != nil {
		writeStoreError(w, h.logger, "save push token", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VAPIDPublicKey handles GET /api/push/vapid-public-key
func (h *PushHandler) VAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || !h.service.Enabled() {
		writeError(w, http.StatusNotFound, "push notifications not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.service.VAPIDPublicKey()})
}
