// Package spell holds the set of transformation templates and the active
// selection. The full set is written back to durable storage after every
// mutation; a malformed persisted set falls back to the built-in defaults.
package spell

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/storage"
)

var (
	ErrNotFound = errors.New("spell not found")
	// ErrLastSpell rejects deleting the last remaining template. The set must
	// never become empty: composition and the active selection both assume at
	// least one template exists.
	ErrLastSpell = errors.New("cannot delete the last spell")
)

type Store struct {
	mu       sync.RWMutex
	kv       storage.KV
	spells   []models.Spell
	activeID string
}

// NewStore loads the persisted spell set, seeding defaults when absent or
// unparseable. The first template starts out selected.
func NewStore(ctx context.Context, kv storage.KV) *Store {
	s := &Store{kv: kv}
	s.spells = s.load(ctx)
	s.activeID = s.spells[0].ID
	return s
}

func (s *Store) load(ctx context.Context) []models.Spell {
	raw, ok, err := s.kv.Get(ctx, storage.KeySpells)
	if err != nil {
		slog.Warn("loading spells failed, using defaults", "error", err)
		return DefaultSpells()
	}
	if !ok {
		return DefaultSpells()
	}

	var spells []models.Spell
	if err := json.Unmarshal([]byte(raw), &spells); err != nil || len(spells) == 0 {
		slog.Warn("persisted spells unreadable, using defaults", "error", err)
		return DefaultSpells()
	}
	return spells
}

// List returns the templates in insertion order.
func (s *Store) List() []models.Spell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Spell, len(s.spells))
	copy(out, s.spells)
	return out
}

// Get returns the template with the given id.
func (s *Store) Get(id string) (models.Spell, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.spells {
		if sp.ID == id {
			return sp, true
		}
	}
	return models.Spell{}, false
}

// Add appends a user template, assigning a fresh id when the caller supplied
// none, and selects it.
func (s *Store) Add(ctx context.Context, sp models.Spell) models.Spell {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	sp.IconName = models.ResolveIcon(sp.IconName)
	sp.IsCustom = true

	s.mu.Lock()
	s.spells = append(s.spells, sp)
	s.activeID = sp.ID
	s.persist(ctx)
	s.mu.Unlock()
	return sp
}

// Update replaces the template with a matching id. It reports whether a
// replacement happened; an unknown id is a no-op.
func (s *Store) Update(ctx context.Context, sp models.Spell) bool {
	sp.IconName = models.ResolveIcon(sp.IconName)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.spells {
		if existing.ID == sp.ID {
			sp.IsCustom = existing.IsCustom
			s.spells[i] = sp
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Remove deletes the template with the given id. Deleting the active
// selection moves the selection to the first remaining template; deleting the
// last template is rejected.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.spells) == 1 {
		return ErrLastSpell
	}

	idx := -1
	for i, sp := range s.spells {
		if sp.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	s.spells = append(s.spells[:idx], s.spells[idx+1:]...)
	if s.activeID == id {
		s.activeID = s.spells[0].ID
	}
	s.persist(ctx)
	return nil
}

// Select makes the given template the active selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range s.spells {
		if sp.ID == id {
			s.activeID = id
			return nil
		}
	}
	return ErrNotFound
}

// Active returns the currently selected template.
func (s *Store) Active() models.Spell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sp := range s.spells {
		if sp.ID == s.activeID {
			return sp
		}
	}
	return s.spells[0]
}

// persist writes the full set back. Storage failures are logged and
// swallowed: persistence is fire-and-forget, the in-memory set stays
// authoritative for the session. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.spells)
	if err != nil {
		slog.Error("marshal spells", "error", err)
		return
	}
	if err := s.kv.Set(ctx, storage.KeySpells, string(data)); err != nil {
		slog.Warn("persist spells", "error", err)
	}
}
