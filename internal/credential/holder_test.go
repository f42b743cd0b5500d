package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimiagar/backend/internal/storage"
)

func TestSetReplacesPreviousKey(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(ctx, storage.NewMemoryKV(), nil, false)

	h.Set(ctx, "keyA")
	h.Set(ctx, "keyB")
	assert.Equal(t, "keyB", h.Get())
}

func TestSetTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(ctx, storage.NewMemoryKV(), nil, false)

	h.Set(ctx, "  secret \n")
	assert.Equal(t, "secret", h.Get())
}

func TestSetRaisesAmbientFlag(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(ctx, storage.NewMemoryKV(), func() bool { return false }, false)
	require.False(t, h.HasAmbient())

	h.Set(ctx, "secret")
	assert.True(t, h.HasAmbient())
}

func TestGatingRule(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		probe   bool
		miniApp bool
		userKey string
		want    bool
	}{
		{name: "nothing", want: false},
		{name: "user key", userKey: "k", want: true},
		{name: "ambient key", probe: true, want: true},
		{name: "mini app mode", miniApp: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHolder(ctx, storage.NewMemoryKV(), func() bool { return tt.probe }, tt.miniApp)
			if tt.userKey != "" {
				h.Set(ctx, tt.userKey)
			}
			assert.Equal(t, tt.want, h.MayDispatch())
		})
	}
}

func TestCredentialPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	NewHolder(ctx, kv, nil, false).Set(ctx, "persisted")

	reloaded := NewHolder(ctx, kv, nil, false)
	assert.Equal(t, "persisted", reloaded.Get())
}
