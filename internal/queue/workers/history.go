// Package workers holds the asynq task handlers run by cmd/worker.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/queue"
	"github.com/kimiagar/backend/internal/storage"
)

// HistoryWorker renders export artifacts. It loads the ledger from the shared
// KV store per task so it always reads the latest persisted state, not a
// snapshot from worker startup. Exports only read the ledger; mutations stay
// in the API process, whose in-memory ledger is authoritative.
type HistoryWorker struct {
	kv storage.KV
}

func NewHistoryWorker(kv storage.KV) *HistoryWorker {
	return &HistoryWorker{kv: kv}
}

func (w *HistoryWorker) ProcessExport(ctx context.Context, t *asynq.Task) error {
	var payload queue.HistoryExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	ledger := history.NewLedger(ctx, w.kv)
	records := ledger.All()
	if len(payload.RecordIDs) > 0 {
		records = ledger.Get(payload.RecordIDs)
	}

	blob := history.Export(records)
	key := storage.ExportKeyPrefix + payload.ExportID
	if err := w.kv.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("store export %s: %w", payload.ExportID, err)
	}

	slog.Info("history export ready", "export_id", payload.ExportID, "records", len(records))
	return nil
}
