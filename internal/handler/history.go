package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/store"
)

type HistoryHandler struct {
	history *store.HistoryStore
	logger  *slog.Logger
}

func NewHistoryHandler(hs *store.HistoryStore, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: hs, logger: logger}
}

type actionTypeRow struct {
	ActionType model.ActionType `json:"action_type"`
}

type statsRPCRequest struct {
	UserUUID string `json:"user_uuid"`
}

// Append handles POST /api/history
func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	var entry model.HistoryEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	saved, err := h.history.Append(r.Context(), entry)
	if err != nil {
		writeStoreError(w, h.logger, "append history", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// List handles GET /api/history?user_id=
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required", "field": "user_id"})
		return
	}

	actions, err := h.history.ListActionTypes(r.Context(), userID)
	if err != nil {
		writeStoreError(w, h.logger, "list history", err)
		return
	}

	rows := make([]actionTypeRow, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, actionTypeRow{ActionType: a})
	}
	writeJSON(w, http.StatusOK, rows)
}

// HistoricalStats handles POST /api/rpc/get_user_historical_stats. The
// response is a one-row array.
func (h *HistoryHandler) HistoricalStats(w http.ResponseWriter, r *http.Request) {
	var req statsRPCRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserUUID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_uuid is required", "field": "user_uuid"})
		return
	}

	counts, err := h.history.Counts(r.Context(), req.UserUUID)
	if err != nil {
		writeStoreError(w, h.logger, "historical stats", err)
		return
	}
	writeJSON(w, http.StatusOK, []model.HistoricalStats{counts.Stats()})
}
