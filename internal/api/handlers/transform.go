package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/transform"
)

type TransformHandler struct {
	dispatcher *transform.Dispatcher
	ledger     *history.Ledger
	maxEntries int
}

func NewTransformHandler(d *transform.Dispatcher, l *history.Ledger, maxEntries int) *TransformHandler {
	return &TransformHandler{dispatcher: d, ledger: l, maxEntries: maxEntries}
}

func (h *TransformHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req transform.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	res, err := h.dispatcher.Run(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, transform.ErrEmptyInput) || errors.Is(err, transform.ErrUnknownSpell) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	h.maybeTrim(r.Context())
	writeJSON(w, http.StatusOK, res)
}

// maybeTrim prunes the ledger once it outgrows its cap. This must run in the
// serving process: the in-memory ledger is authoritative and re-persists the
// full set on every append, so a trim applied anywhere else would be
// overwritten immediately.
func (h *TransformHandler) maybeTrim(ctx context.Context) {
	if h.maxEntries <= 0 {
		return
	}
	if dropped := h.ledger.Trim(ctx, h.maxEntries); dropped > 0 {
		slog.Info("history trimmed", "dropped", dropped, "max", h.maxEntries)
	}
}
