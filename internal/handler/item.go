package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dukerupert/superlista/internal/auth"
	"github.com/dukerupert/superlista/internal/grocery"
	"github.com/dukerupert/superlista/internal/metrics"
	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/store"
)

// ItemNotifier is satisfied by push.Notifier.
type ItemNotifier interface {
	ItemAdded(ctx context.Context, actorID, actorName, itemName string)
	ItemCompleted(ctx context.Context, actorID, actorName, itemName string)
}

type ItemHandler struct {
	items    *store.ItemStore
	notifier ItemNotifier
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// NewItemHandler creates an item handler. notifier may be nil when push is
// not configured.
func NewItemHandler(is *store.ItemStore, notifier ItemNotifier, m *metrics.Collector, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: is, notifier: notifier, metrics: m, logger: logger}
}

type itemRequest struct {
	model.ItemForm
	AddedBy string `json:"added_by"`
}

type checkedRequest struct {
	Checked bool `json:"checked"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// List handles GET /api/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeStoreError(w, h.logger, "list items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.items.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, h.logger, "get item", err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	form, err := grocery.NormalizeForm(req.ItemForm)
	if err != nil {
		writeStoreError(w, h.logger, "create item", err)
		return
	}

	actorName := req.AddedBy
	if actorName == "" {
		actorName = auth.UserName(r.Context())
	}

	item, err := h.items.Create(r.Context(), form, actorName)
	if err != nil {
		writeStoreError(w, h.logger, "create item", err)
		return
	}
	h.metrics.RecordItemMutation("create")

	actorID := auth.UserID(r.Context())
	h.notify(r.Context(), func(ctx context.Context, n ItemNotifier) {
		n.ItemAdded(ctx, actorID, actorName, item.Name)
	})

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form model.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	form, err := grocery.NormalizeForm(form)
	if err != nil {
		writeStoreError(w, h.logger, "update item", err)
		return
	}

	item, err := h.items.Update(r.Context(), r.PathValue("id"), form)
	if err != nil {
		writeStoreError(w, h.logger, "update item", err)
		return
	}
	h.metrics.RecordItemMutation("update")
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, h.logger, "delete item", err)
		return
	}
	h.metrics.RecordItemMutation("delete")
	w.WriteHeader(http.StatusNoContent)
}

// SetChecked handles PUT /api/items/{id}/checked
func (h *ItemHandler) SetChecked(w http.ResponseWriter, r *http.Request) {
	var req checkedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, changed, err := h.items.TransitionChecked(r.Context(), r.PathValue("id"), req.Checked)
	if err != nil {
		writeStoreError(w, h.logger, "set item checked", err)
		return
	}
	h.metrics.RecordItemMutation("check")

	if changed && item.Checked {
		actorID, actorName := auth.UserID(r.Context()), auth.UserName(r.Context())
		h.notify(r.Context(), func(ctx context.Context, n ItemNotifier) {
			n.ItemCompleted(ctx, actorID, actorName, item.Name)
		})
	}

	writeJSON(w, http.StatusOK, item)
}

// Reorder handles PUT /api/items/order
func (h *ItemHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.items.Reorder(r.Context(), req.IDs); err != nil {
		writeStoreError(w, h.logger, "reorder items", err)
		return
	}
	h.metrics.RecordItemMutation("reorder")
	w.WriteHeader(http.StatusNoContent)
}

// notify runs fn in the background, detached from the request lifetime.
func (h *ItemHandler) notify(ctx context.Context, fn func(context.Context, ItemNotifier)) {
	if h.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go fn(ctx, h.notifier)
}
