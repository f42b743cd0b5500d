package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/queue"
	"github.com/kimiagar/backend/internal/storage"
)

type HistoryHandler struct {
	ledger *history.Ledger
	kv     storage.KV
	queue  *queue.Client
}

func NewHistoryHandler(ledger *history.Ledger, kv storage.KV, qc *queue.Client) *HistoryHandler {
	return &HistoryHandler{ledger: ledger, kv: kv, queue: qc}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	caseSensitive, _ := strconv.ParseBool(r.URL.Query().Get("case_sensitive"))

	records := h.ledger.Search(query, caseSensitive)
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records, "count": len(records)})
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// decodeIDs reads an optional ids body. An absent body decodes as no ids,
// which for exports means the whole ledger.
func decodeIDs(r *http.Request) (idsRequest, error) {
	var req idsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return idsRequest{}, nil
	}
	return req, err
}

func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, err := decodeIDs(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids required"})
		return
	}

	h.ledger.Remove(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, map[string]interface{}{"remaining": h.ledger.Len()})
}

// Export renders the export blob synchronously. Empty ids means the whole
// ledger.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, err := decodeIDs(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	records := h.ledger.All()
	if len(req.IDs) > 0 {
		records = h.ledger.Get(req.IDs)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alchemy_history.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(history.Export(records))); err != nil {
		slog.Warn("write export", "error", err)
	}
}

// ExportAsync parks the export artifact via the worker; the response carries
// the id to poll GetExport with.
func (h *HistoryHandler) ExportAsync(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "background queue unavailable"})
		return
	}

	req, err := decodeIDs(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	exportID := uuid.NewString()
	err = h.queue.EnqueueHistoryExport(queue.HistoryExportPayload{
		ExportID:  exportID,
		RecordIDs: req.IDs,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"export_id": exportID})
}

func (h *HistoryHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blob, ok, err := h.kv.Get(r.Context(), storage.ExportKeyPrefix+id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "export not ready"})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="alchemy_history.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(blob))
}
