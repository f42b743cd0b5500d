package spell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	return NewStore(context.Background(), kv), kv
}

func TestStoreSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	spells := s.List()
	require.Len(t, spells, 7)
	assert.Equal(t, models.SpellSummarize, spells[0].ID)
	assert.Equal(t, spells[0].ID, s.Active().ID)
}

func TestStoreFallsBackOnMalformedData(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.KeySpells, "{not json"))

	s := NewStore(ctx, kv)
	assert.Len(t, s.List(), 7)
}

func TestAddSelectsNewSpell(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	added := s.Add(ctx, models.Spell{Title: "طنزنویسی", PromptTemplate: "Make it funny:\n\n{{text}}"})
	assert.NotEmpty(t, added.ID)
	assert.True(t, added.IsCustom)
	assert.Equal(t, added.ID, s.Active().ID)
}

func TestAddResolvesUnknownIcon(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	added := s.Add(ctx, models.Spell{Title: "x", IconName: "NoSuchIcon"})
	assert.Equal(t, models.DefaultIconName, added.IconName)
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	replaced := s.Update(ctx, models.Spell{ID: "missing", Title: "x"})
	assert.False(t, replaced)
	assert.Len(t, s.List(), 7)
}

func TestRemoveActiveFallsBackToFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Select(models.SpellPoetry))
	require.NoError(t, s.Remove(ctx, models.SpellPoetry))

	assert.Equal(t, models.SpellSummarize, s.Active().ID)
	assert.Len(t, s.List(), 6)
}

func TestRemoveLastSpellRejected(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	spells := s.List()
	for _, sp := range spells[:len(spells)-1] {
		require.NoError(t, s.Remove(ctx, sp.ID))
	}

	err := s.Remove(ctx, spells[len(spells)-1].ID)
	assert.ErrorIs(t, err, ErrLastSpell)
	assert.Len(t, s.List(), 1)
}

func TestStoreRoundTripsThroughStorage(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	s := NewStore(ctx, kv)
	added := s.Add(ctx, models.Spell{Title: "سفارشی", PromptTemplate: "Do it:\n\n{{text}}"})

	reloaded := NewStore(ctx, kv)
	assert.Equal(t, s.List(), reloaded.List())

	got, ok := reloaded.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)
}
