package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/storage"
)

func newHistoryFixture(t *testing.T) (*HistoryHandler, *history.Ledger) {
	t.Helper()
	kv := storage.NewMemoryKV()
	ledger := history.NewLedger(context.Background(), kv)
	return NewHistoryHandler(ledger, kv, nil), ledger
}

func TestExportWithoutBodyExportsEverything(t *testing.T) {
	h, ledger := newHistoryFixture(t)
	ctx := context.Background()
	ledger.Append(ctx, models.TransformationRecord{
		ID: "1", Original: "in-1", Transformed: "out-1", Mode: "m", Timestamp: 1700000000000,
	})
	ledger.Append(ctx, models.TransformationRecord{
		ID: "2", Original: "in-2", Transformed: "out-2", Mode: "m", Timestamp: 1700000000000,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/export", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[ورودی]:\nin-1")
	assert.Contains(t, w.Body.String(), "[ورودی]:\nin-2")
}

func TestExportWithIDsFilters(t *testing.T) {
	h, ledger := newHistoryFixture(t)
	ctx := context.Background()
	ledger.Append(ctx, models.TransformationRecord{ID: "1", Original: "keep", Mode: "m"})
	ledger.Append(ctx, models.TransformationRecord{ID: "2", Original: "skip", Mode: "m"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/export", strings.NewReader(`{"ids":["1"]}`))
	w := httptest.NewRecorder()
	h.Export(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "keep")
	assert.NotContains(t, w.Body.String(), "skip")
}

func TestDeleteWithoutIDsRejected(t *testing.T) {
	h, ledger := newHistoryFixture(t)
	ledger.Append(context.Background(), models.TransformationRecord{ID: "1", Mode: "m"})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, ledger.Len())
}

func TestExportMalformedBodyRejected(t *testing.T) {
	h, _ := newHistoryFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/history/export", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	h.Export(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
