// Package history keeps the append-only record of successful
// transformations, most-recent-first. The full set is written back to durable
// storage after every mutation; unreadable persisted data loads as an empty
// ledger.
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/storage"
)

type Ledger struct {
	mu      sync.RWMutex
	kv      storage.KV
	records []models.TransformationRecord
}

func NewLedger(ctx context.Context, kv storage.KV) *Ledger {
	l := &Ledger{kv: kv}

	raw, ok, err := kv.Get(ctx, storage.KeyHistory)
	if err != nil {
		slog.Warn("loading history failed, starting empty", "error", err)
		return l
	}
	if !ok {
		return l
	}
	if err := json.Unmarshal([]byte(raw), &l.records); err != nil {
		slog.Warn("persisted history unreadable, starting empty", "error", err)
		l.records = nil
	}
	return l
}

// Append inserts a record at the head.
func (l *Ledger) Append(ctx context.Context, rec models.TransformationRecord) {
	l.mu.Lock()
	l.records = append([]models.TransformationRecord{rec}, l.records...)
	l.persist(ctx)
	l.mu.Unlock()
}

// Remove deletes every record whose id is in ids; the order of the remaining
// records is unchanged.
func (l *Ledger) Remove(ctx context.Context, ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	l.mu.Lock()
	kept := l.records[:0]
	for _, rec := range l.records {
		if !drop[rec.ID] {
			kept = append(kept, rec)
		}
	}
	l.records = kept
	l.persist(ctx)
	l.mu.Unlock()
}

// All returns the records in ledger order (most recent first).
func (l *Ledger) All() []models.TransformationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.TransformationRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Search filters records whose original, transformed, or mode contains query.
// An empty query matches everything.
func (l *Ledger) Search(query string, caseSensitive bool) []models.TransformationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if query == "" {
		out := make([]models.TransformationRecord, len(l.records))
		copy(out, l.records)
		return out
	}

	match := func(s string) bool { return strings.Contains(s, query) }
	if !caseSensitive {
		q := strings.ToLower(query)
		match = func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	}

	var out []models.TransformationRecord
	for _, rec := range l.records {
		if match(rec.Original) || match(rec.Transformed) || match(rec.Mode) {
			out = append(out, rec)
		}
	}
	return out
}

// Get returns the records with the given ids, in ledger order. Unknown ids
// are skipped.
func (l *Ledger) Get(ids []string) []models.TransformationRecord {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.TransformationRecord
	for _, rec := range l.records {
		if want[rec.ID] {
			out = append(out, rec)
		}
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Trim prunes the oldest records until at most max remain, returning how many
// were dropped. max <= 0 disables trimming.
func (l *Ledger) Trim(ctx context.Context, max int) int {
	if max <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.records) <= max {
		return 0
	}
	dropped := len(l.records) - max
	l.records = l.records[:max]
	l.persist(ctx)
	return dropped
}

// persist writes the full set back, logging and swallowing failures. Callers
// hold l.mu.
func (l *Ledger) persist(ctx context.Context) {
	data, err := json.Marshal(l.records)
	if err != nil {
		slog.Error("marshal history", "error", err)
		return
	}
	if err := l.kv.Set(ctx, storage.KeyHistory, string(data)); err != nil {
		slog.Warn("persist history", "error", err)
	}
}
