// Package credential tracks the user-supplied upstream API key and whether
// the hosting environment already provides one.
package credential

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/kimiagar/backend/internal/storage"
)

type Holder struct {
	mu      sync.RWMutex
	kv      storage.KV
	key     string
	ambient bool
	miniApp bool
}

// NewHolder loads any persisted user credential. ambientProbe is checked once
// here, at startup; miniApp marks an embedded deployment that may always
// attempt a dispatch.
func NewHolder(ctx context.Context, kv storage.KV, ambientProbe func() bool, miniApp bool) *Holder {
	h := &Holder{kv: kv, miniApp: miniApp}
	if ambientProbe != nil {
		h.ambient = ambientProbe()
	}

	raw, ok, err := kv.Get(ctx, storage.KeyCredential)
	if err != nil {
		slog.Warn("loading credential failed", "error", err)
		return h
	}
	if ok {
		h.key = strings.TrimSpace(raw)
	}
	return h
}

// Get returns the current user credential, or empty when none is set.
func (h *Holder) Get() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key
}

// Set stores a new user credential, replacing any previous one. An explicit
// user credential is always treated as sufficient to proceed, so the ambient
// flag is raised regardless of environment state.
func (h *Holder) Set(ctx context.Context, key string) {
	key = strings.TrimSpace(key)

	h.mu.Lock()
	h.key = key
	h.ambient = true
	h.mu.Unlock()

	if err := h.kv.Set(ctx, storage.KeyCredential, key); err != nil {
		slog.Warn("persist credential", "error", err)
	}
}

// HasAmbient reports whether the environment exposes a usable credential.
func (h *Holder) HasAmbient() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ambient
}

// ClearAmbient records that the environment credential turned out to be
// unusable, typically after the provider reported a missing key.
func (h *Holder) ClearAmbient() {
	h.mu.Lock()
	h.ambient = false
	h.mu.Unlock()
}

// MayDispatch is the gating rule consumed before any upstream call: a user
// key, an ambient key, or an embedded deployment each permit an attempt.
// Embedded mode defers credential errors to response classification.
func (h *Holder) MayDispatch() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key != "" || h.ambient || h.miniApp
}
